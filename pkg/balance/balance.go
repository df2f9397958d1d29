package balance

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/util"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"go.uber.org/zap"
)

// Reader shows the native balance of an account.
type Reader struct {
	provider provider.IProvider
	display  view.IDisplay
	logger   *zap.Logger
}

func NewReader(p provider.IProvider, display view.IDisplay, logger *zap.Logger) *Reader {
	return &Reader{
		provider: p,
		display:  display,
		logger:   logger,
	}
}

// GetBalance returns the balance of address at the latest block, in wei.
func (r *Reader) GetBalance(ctx context.Context, address common.Address) (*big.Int, error) {
	var balance hexutil.Big
	if err := r.provider.Request(ctx, &balance, "eth_getBalance", address, "latest"); err != nil {
		return nil, err
	}
	return balance.ToInt(), nil
}

// Refresh reads the balance and shows it in ether. Failures are shown in place of the balance.
func (r *Reader) Refresh(ctx context.Context, address common.Address) {
	balance, err := r.GetBalance(ctx, address)
	if err != nil {
		r.logger.Sugar().Errorw("Failed to get balance", "address", address.Hex(), "error", err)
		r.display.SetText(view.Element_ShowBalance, fmt.Sprintf("Error: %s", err.Error()))
		return
	}

	ether := util.FormatEther(balance)
	r.logger.Sugar().Infow("Balance fetched", "address", address.Hex(), "balance", ether)
	r.display.SetText(view.Element_ShowBalance, fmt.Sprintf("%s ETH", ether))
}
