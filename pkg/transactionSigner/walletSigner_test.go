package transactionSigner

import (
	"context"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/testutil"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedAccount struct {
	address *common.Address
}

func (a fixedAccount) ActiveAccount() (common.Address, bool) {
	if a.address == nil {
		return common.Address{}, false
	}
	return *a.address, true
}

var (
	fromAddr = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	toAddr   = common.HexToAddress("0x16820Abe1b73B010ffE1fcd0Ea9eF4E4eEa5Eb01")
	txHash   = common.HexToHash("0x5c504ed432cb51138bcf09aa5e8a410dd4a1e204ef84bfed1be16dfba1b22060")
)

func TestWalletTransactionSigner_SendTransaction(t *testing.T) {
	t.Run("Single request with value and data", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, nil, l)

		hash, err := signer.SendTransaction(context.Background(), &TransactionRequest{
			To:    toAddr,
			Value: big.NewInt(1_000_000_000),
			Data:  []byte{0xb6, 0xb5, 0x5f, 0x25},
		})
		require.NoError(t, err)
		assert.Equal(t, txHash, hash)

		reqs := p.RequestsFor("eth_sendTransaction")
		require.Len(t, reqs, 1)
		require.Len(t, reqs[0].Params, 1)
		tx := reqs[0].Params[0].(map[string]interface{})
		assert.Equal(t, strings.ToLower(fromAddr.Hex()), tx["from"])
		assert.Equal(t, strings.ToLower(toAddr.Hex()), tx["to"])
		assert.Equal(t, "0x3b9aca00", tx["value"])
		assert.Equal(t, "0xb6b55f25", tx["data"])
	})

	t.Run("Value and data are omitted when empty", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, nil, l)

		_, err := signer.SendTransaction(context.Background(), &TransactionRequest{To: toAddr})
		require.NoError(t, err)

		tx := p.RequestsFor("eth_sendTransaction")[0].Params[0].(map[string]interface{})
		assert.NotContains(t, tx, "value")
		assert.NotContains(t, tx, "data")
	})

	t.Run("No account", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		signer := NewWalletTransactionSigner(p, fixedAccount{}, nil, l)

		_, err := signer.SendTransaction(context.Background(), &TransactionRequest{To: toAddr})
		assert.ErrorIs(t, err, types.ErrNoAccount)
		assert.Empty(t, p.Requests())
	})

	t.Run("Rejected by user", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Fail("eth_sendTransaction", types.UserRejectedRequestCode, "User denied transaction signature.")
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, nil, l)

		_, err := signer.SendTransaction(context.Background(), &TransactionRequest{To: toAddr})
		require.Error(t, err)
		assert.Equal(t, "User denied transaction signature.", err.Error())
	})
}

func TestWalletTransactionSigner_WaitForReceipt(t *testing.T) {
	cfg := &SignerConfig{WaitForReceipt: true}

	t.Run("Successful receipt", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		p.ChainBackend().SetReceipt(txHash, &ethtypes.Receipt{
			Status:      ethtypes.ReceiptStatusSuccessful,
			TxHash:      txHash,
			BlockNumber: big.NewInt(12),
		})
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, cfg, l)

		hash, err := signer.SendTransaction(context.Background(), &TransactionRequest{To: toAddr})
		require.NoError(t, err)
		assert.Equal(t, txHash, hash)
	})

	t.Run("Reverted receipt", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		p.ChainBackend().SetReceipt(txHash, &ethtypes.Receipt{Status: ethtypes.ReceiptStatusFailed, TxHash: txHash})
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, cfg, l)

		hash, err := signer.SendTransaction(context.Background(), &TransactionRequest{To: toAddr})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 0")
		assert.Equal(t, txHash, hash)
	})

	t.Run("Receipt arrives later", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, cfg, l)

		go func() {
			time.Sleep(50 * time.Millisecond)
			p.ChainBackend().SetReceipt(txHash, &ethtypes.Receipt{Status: ethtypes.ReceiptStatusSuccessful, TxHash: txHash})
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, err := signer.SendTransaction(ctx, &TransactionRequest{To: toAddr})
		require.NoError(t, err)
	})

	t.Run("Context ends the wait", func(t *testing.T) {
		l := testutil.NewTestLogger(t)
		p := testutil.NewMockProvider(l)
		p.Respond("eth_sendTransaction", txHash)
		signer := NewWalletTransactionSigner(p, fixedAccount{&fromAddr}, cfg, l)

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		hash, err := signer.SendTransaction(ctx, &TransactionRequest{To: toAddr})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, txHash, hash)
	})
}
