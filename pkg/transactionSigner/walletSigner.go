package transactionSigner

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

// WalletTransactionSigner implements ITransactionSigner with eth_sendTransaction, leaving
// signing to the wallet's keys.
type WalletTransactionSigner struct {
	provider provider.IWalletProvider
	accounts AccountSource
	config   *SignerConfig
	logger   *zap.Logger
}

var _ ITransactionSigner = (*WalletTransactionSigner)(nil)

func NewWalletTransactionSigner(p provider.IWalletProvider, accounts AccountSource, cfg *SignerConfig, logger *zap.Logger) *WalletTransactionSigner {
	if cfg == nil {
		cfg = &SignerConfig{}
	}
	return &WalletTransactionSigner{
		provider: p,
		accounts: accounts,
		config:   cfg,
		logger:   logger,
	}
}

func (ws *WalletTransactionSigner) GetFromAddress() (common.Address, error) {
	from, ok := ws.accounts.ActiveAccount()
	if !ok {
		return common.Address{}, types.ErrNoAccount
	}
	return from, nil
}

// SendTransaction issues exactly one eth_sendTransaction. With WaitForReceipt set it then
// waits for the receipt and fails if the transaction reverted.
func (ws *WalletTransactionSigner) SendTransaction(ctx context.Context, req *TransactionRequest) (common.Hash, error) {
	from, err := ws.GetFromAddress()
	if err != nil {
		return common.Hash{}, err
	}

	txData := map[string]interface{}{
		"from": from,
		"to":   req.To,
	}
	if req.Value != nil {
		txData["value"] = hexutil.EncodeBig(req.Value)
	}
	if len(req.Data) > 0 {
		txData["data"] = hexutil.Encode(req.Data)
	}

	ws.logger.Info("SendTransaction: sending transaction",
		zap.String("from", from.Hex()),
		zap.String("to", req.To.Hex()),
		zap.Any("value", txData["value"]),
	)

	var hash common.Hash
	if err := ws.provider.Request(ctx, &hash, "eth_sendTransaction", txData); err != nil {
		return common.Hash{}, err
	}
	ws.logger.Info("SendTransaction: transaction accepted", zap.String("txHash", hash.Hex()))

	if !ws.config.WaitForReceipt {
		return hash, nil
	}
	receipt, err := bind.WaitMinedHash(ctx, ws.provider.Backend(), hash)
	if err != nil {
		return hash, fmt.Errorf("failed to wait for transaction receipt: %w", err)
	}
	if receipt.Status != ethtypes.ReceiptStatusSuccessful {
		ws.logger.Error("SendTransaction: transaction failed",
			zap.String("txHash", hash.Hex()),
			zap.Uint64("status", receipt.Status),
			zap.Uint64("gasUsed", receipt.GasUsed),
		)
		return hash, fmt.Errorf("transaction failed with status %d", receipt.Status)
	}

	fields := []zap.Field{
		zap.String("txHash", hash.Hex()),
		zap.Uint64("gasUsed", receipt.GasUsed),
	}
	if receipt.BlockNumber != nil {
		fields = append(fields, zap.Uint64("blockNumber", receipt.BlockNumber.Uint64()))
	}
	ws.logger.Info("SendTransaction: transaction succeeded", fields...)
	return hash, nil
}
