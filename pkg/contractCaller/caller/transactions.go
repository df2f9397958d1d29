package caller

import (
	"context"

	"github.com/simple-dapp/simple-dapp-go/pkg/transactionSigner"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"go.uber.org/zap"
)

// sendTransaction submits req once. Wallet errors are returned unwrapped so their
// message can be shown as the wallet sent it.
func (cc *ContractCaller) sendTransaction(ctx context.Context, operation string, req *transactionSigner.TransactionRequest) (*types.TransactionReceiptRef, error) {
	from, err := cc.signer.GetFromAddress()
	if err != nil {
		return nil, err
	}
	cc.logger.Sugar().Infow("Sending transaction",
		zap.String("operation", operation),
		zap.String("from", from.Hex()),
		zap.String("to", req.To.Hex()),
		zap.String("clickId", types.ClickIdFromContext(ctx)),
	)

	hash, err := cc.signer.SendTransaction(ctx, req)
	if err != nil {
		cc.logger.Sugar().Errorw("Transaction not sent", "operation", operation, "error", err)
		return nil, err
	}
	return &types.TransactionReceiptRef{TransactionHash: hash.Hex()}, nil
}
