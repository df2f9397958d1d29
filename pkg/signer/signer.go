// Package signer asks the wallet to sign a fixed message and checks the result
// locally and through the wallet.
package signer

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/simple-dapp/simple-dapp-go/pkg/provider"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
	"github.com/simple-dapp/simple-dapp-go/pkg/view"
	"go.uber.org/zap"
)

const ExampleMessage = "Example message to sign"

// AccountSource yields the account requests are made from.
type AccountSource interface {
	ActiveAccount() (common.Address, bool)
}

// VerifyResult holds what each verification path recovered.
type VerifyResult struct {
	Local       common.Address
	LocalErr    error
	Provider    common.Address
	ProviderErr error
}

type Signer struct {
	provider provider.IProvider
	display  view.IDisplay
	accounts AccountSource
	logger   *zap.Logger

	mu     sync.RWMutex
	record *types.SignatureRecord
}

func NewSigner(p provider.IProvider, display view.IDisplay, accounts AccountSource, logger *zap.Logger) *Signer {
	return &Signer{
		provider: p,
		display:  display,
		accounts: accounts,
		logger:   logger,
	}
}

// Sign requests personal_sign over ExampleMessage from the active account and
// enables verification once a signature comes back.
func (s *Signer) Sign(ctx context.Context) (*types.SignatureRecord, error) {
	from, ok := s.accounts.ActiveAccount()
	if !ok {
		return nil, types.ErrNoAccount
	}

	msgHex := EncodeMessage(ExampleMessage)
	var signature string
	if err := s.provider.Request(ctx, &signature, "personal_sign", msgHex, from); err != nil {
		s.logger.Sugar().Errorw("personal_sign failed", "from", from.Hex(), "error", err)
		s.display.SetText(view.Element_PersonalSignResult, fmt.Sprintf("Error: %s", err.Error()))
		return nil, err
	}

	record := &types.SignatureRecord{
		Message:      ExampleMessage,
		SignatureHex: signature,
		Signer:       from,
	}
	s.mu.Lock()
	s.record = record
	s.mu.Unlock()

	s.logger.Sugar().Infow("Message signed", "from", from.Hex(), "signature", signature)
	s.display.SetText(view.Element_PersonalSignResult, signature)
	s.display.SetButtonDisabled(view.Button_PersonalVerify, false)
	return record, nil
}

// Verify checks the last signature by local recovery and by personal_ecRecover.
// The two paths do not depend on each other and each writes its own element.
func (s *Signer) Verify(ctx context.Context) (*VerifyResult, error) {
	s.mu.RLock()
	record := s.record
	s.mu.RUnlock()
	if record == nil {
		return nil, types.ErrNoSignature
	}

	msgHex := EncodeMessage(record.Message)
	result := &VerifyResult{}

	result.Local, result.LocalErr = RecoverPersonalSignature(msgHex, record.SignatureHex)
	s.show(view.Element_PersonalSignVerifySigUtilResult, "Failed comparing", record.Signer, result.Local, result.LocalErr)

	var recovered common.Address
	if err := s.provider.Request(ctx, &recovered, "personal_ecRecover", msgHex, record.SignatureHex); err != nil {
		result.ProviderErr = err
	} else {
		result.Provider = recovered
	}
	s.show(view.Element_PersonalSignVerifyECRecover, "Failed to verify signer when comparing", record.Signer, result.Provider, result.ProviderErr)

	return result, nil
}

// Record returns the last signature, if any.
func (s *Signer) Record() *types.SignatureRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.record == nil {
		return nil
	}
	r := *s.record
	return &r
}

func (s *Signer) show(id view.ElementId, mismatch string, expected, recovered common.Address, err error) {
	if err != nil {
		s.logger.Sugar().Errorw("Signature verification failed", "element", id, "error", err)
		s.display.SetText(id, fmt.Sprintf("Error: %s", err.Error()))
		return
	}
	if recovered != expected {
		s.logger.Sugar().Warnw("Recovered signer mismatch", "element", id, "recovered", recovered.Hex(), "expected", expected.Hex())
		s.display.SetText(id, fmt.Sprintf("Error: %s %s to %s", mismatch, recovered.Hex(), expected.Hex()))
		return
	}
	s.logger.Sugar().Infow("Signer verified", "element", id, "signer", recovered.Hex())
	s.display.SetText(id, recovered.Hex())
}
