package testutil

import (
	"crypto/ecdsa"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/simple-dapp/simple-dapp-go/pkg/bindings/LockV2"
	"github.com/simple-dapp/simple-dapp-go/pkg/logger"
	"go.uber.org/zap"
)

// NewTestLogger returns the production logger tests run with
func NewTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: false})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	return l
}

// TestAccount is a throwaway key pair standing in for a wallet account
type TestAccount struct {
	Key     *ecdsa.PrivateKey
	Address common.Address
}

// CreateTestAccounts generates n fresh accounts
func CreateTestAccounts(t *testing.T, n int) []*TestAccount {
	t.Helper()
	out := make([]*TestAccount, n)
	for i := 0; i < n; i++ {
		key, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("Failed to generate key: %v", err)
		}
		out[i] = &TestAccount{Key: key, Address: crypto.PubkeyToAddress(key.PublicKey)}
	}
	return out
}

// PersonalSign signs message the way a wallet answers personal_sign: the 65 byte
// signature over the prefixed hash, V in {27, 28}, hex encoded.
func PersonalSign(t *testing.T, key *ecdsa.PrivateKey, message []byte) string {
	t.Helper()
	sig, err := crypto.Sign(accounts.TextHash(message), key)
	if err != nil {
		t.Fatalf("Failed to sign message: %v", err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig)
}

// MakeDepositedLog builds a raw Deposited log emitted by contract
func MakeDepositedLog(t *testing.T, contract, user common.Address, amount, releaseTime *big.Int, block uint64, index uint) types.Log {
	t.Helper()
	return makeLockLog(t, "Deposited", contract, user, block, index, amount, releaseTime)
}

// MakeWithdrawnLog builds a raw Withdrawn log emitted by contract
func MakeWithdrawnLog(t *testing.T, contract, user common.Address, amount *big.Int, block uint64, index uint) types.Log {
	t.Helper()
	return makeLockLog(t, "Withdrawn", contract, user, block, index, amount)
}

func makeLockLog(t *testing.T, name string, contract, user common.Address, block uint64, index uint, values ...interface{}) types.Log {
	parsed, err := LockV2.LockV2MetaData.GetAbi()
	if err != nil {
		t.Fatalf("Failed to parse LockV2 abi: %v", err)
	}
	ev := parsed.Events[name]
	data, err := ev.Inputs.NonIndexed().Pack(values...)
	if err != nil {
		t.Fatalf("Failed to pack %s data: %v", name, err)
	}
	return types.Log{
		Address:     contract,
		Topics:      []common.Hash{ev.ID, common.BytesToHash(user.Bytes())},
		Data:        data,
		BlockNumber: block,
		TxHash:      crypto.Keccak256Hash([]byte(name), big.NewInt(int64(block)).Bytes(), []byte{byte(index)}),
		Index:       index,
	}
}
