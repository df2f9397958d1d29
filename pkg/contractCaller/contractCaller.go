package contractCaller

import (
	"context"
	"math/big"

	"github.com/simple-dapp/simple-dapp-go/pkg/types"
)

// EventSink receives every contract event a listener delivers, in delivery order per listener.
type EventSink func(event *types.ContractEvent)

// IContractCaller is the page's gateway to the Lock contract. Every method requires a
// connected account and fails with types.ErrNoAccount before touching the wallet otherwise.
type IContractCaller interface {
	// Deposit locks amount wei for lockDuration seconds.
	Deposit(ctx context.Context, amount *big.Int, lockDuration *big.Int) (*types.TransactionReceiptRef, error)

	// Withdraw releases the caller's unlocked deposit.
	Withdraw(ctx context.Context) (*types.TransactionReceiptRef, error)

	// StartListening adds a listener for Deposited and Withdrawn from the latest block on.
	// Listeners stop when ctx is done.
	StartListening(ctx context.Context, sink EventSink) error
}
