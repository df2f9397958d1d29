package types

import "errors"

var (
	// ErrProviderNotFound means no wallet provider answered at startup. It is fatal for the page.
	ErrProviderNotFound = errors.New("wallet provider not found")

	// ErrNoAccount means an action needs a connected account and none is tracked.
	ErrNoAccount = errors.New("no connected account")

	// ErrNoSignature means verification was requested before anything was signed.
	ErrNoSignature = errors.New("nothing has been signed yet")
)

// ConnectWalletAlert is shown when ErrNoAccount stops an action.
const ConnectWalletAlert = "Please connect wallet"

// UserRejectedRequestCode is the EIP-1193 error code a wallet returns when the user declines.
const UserRejectedRequestCode = 4001
