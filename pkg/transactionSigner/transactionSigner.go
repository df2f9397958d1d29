package transactionSigner

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// TransactionRequest is an unsigned call handed to the wallet. The wallet fills in
// nonce, gas and fees.
type TransactionRequest struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}

// ITransactionSigner submits transactions on behalf of the connected account
type ITransactionSigner interface {
	// SendTransaction asks the wallet to sign and broadcast req and returns the transaction hash
	SendTransaction(ctx context.Context, req *TransactionRequest) (common.Hash, error)

	// GetFromAddress returns the address transactions are sent from
	GetFromAddress() (common.Address, error)
}

type SignerConfig struct {
	// WaitForReceipt makes SendTransaction block until the transaction is mined.
	WaitForReceipt bool `json:"waitForReceipt" yaml:"waitForReceipt"`
}

// AccountSource yields the account the wallet should sign with.
type AccountSource interface {
	ActiveAccount() (common.Address, bool)
}
