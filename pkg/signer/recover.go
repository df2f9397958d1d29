package signer

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// RecoverPersonalSignature returns the address that produced sigHex over the
// personal_sign message msgHex. V may be 0/1 or 27/28.
func RecoverPersonalSignature(msgHex, sigHex string) (common.Address, error) {
	message, err := hexutil.Decode(msgHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid message hex: %w", err)
	}
	sig, err := hexutil.Decode(sigHex)
	if err != nil {
		return common.Address{}, fmt.Errorf("invalid signature hex: %w", err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("invalid signature length: expected %d bytes, got %d", crypto.SignatureLength, len(sig))
	}

	sig = append([]byte(nil), sig...)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

// EncodeMessage renders a UTF-8 message the way it is handed to personal_sign.
func EncodeMessage(message string) string {
	return hexutil.Encode([]byte(message))
}
