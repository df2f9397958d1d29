package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Session is the wallet state of one page load. It is only mutated by provider change events.
type Session struct {
	ActiveAccount *common.Address `json:"activeAccount,omitempty"`
	ChainId       string          `json:"chainId"`
}

// HasAccount reports whether an account is connected
func (s Session) HasAccount() bool {
	return s.ActiveAccount != nil
}

// SignatureRecord is the result of a personal_sign request, kept until verified.
type SignatureRecord struct {
	Message      string         `json:"message"`
	SignatureHex string         `json:"signature"`
	Signer       common.Address `json:"signer"`
}

// TransactionReceiptRef is the hash the wallet returns after accepting a transaction.
type TransactionReceiptRef struct {
	TransactionHash string `json:"transactionHash"`
}

type ContractEventName string

const (
	ContractEvent_Deposited ContractEventName = "Deposited"
	ContractEvent_Withdrawn ContractEventName = "Withdrawn"
)

// ContractEvent is a decoded Deposited or Withdrawn log of the lock contract.
type ContractEvent struct {
	Name        ContractEventName `json:"name"`
	User        common.Address    `json:"user"`
	Amount      *big.Int          `json:"amount"`
	ReleaseTime *big.Int          `json:"releaseTime,omitempty"`
	BlockNumber uint64            `json:"blockNumber"`
	TxHash      common.Hash       `json:"txHash"`
	LogIndex    uint              `json:"logIndex"`
}

// ReturnValues mirrors the named event arguments, rendered as decimal strings.
func (e *ContractEvent) ReturnValues() map[string]string {
	values := map[string]string{
		"user": e.User.Hex(),
	}
	if e.Amount != nil {
		values["amount"] = e.Amount.String()
	}
	if e.ReleaseTime != nil {
		values["releaseTime"] = e.ReleaseTime.String()
	}
	return values
}
