package provider

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/simple-dapp/simple-dapp-go/pkg/types"
)

// ProviderError is a JSON-RPC error returned by the wallet. Its message is what the page shows.
type ProviderError struct {
	Method  string
	Code    int
	Message string
	Data    interface{}
}

func (e *ProviderError) Error() string {
	return e.Message
}

func (e *ProviderError) ErrorCode() int {
	return e.Code
}

// IsUserRejected reports whether err is the wallet's "user rejected the request" error.
func IsUserRejected(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == types.UserRejectedRequestCode
}

func wrapProviderError(method string, err error) error {
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		pe := &ProviderError{
			Method:  method,
			Code:    rpcErr.ErrorCode(),
			Message: rpcErr.Error(),
		}
		var dataErr rpc.DataError
		if errors.As(err, &dataErr) {
			pe.Data = dataErr.ErrorData()
		}
		return pe
	}
	return fmt.Errorf("%s request failed: %w", method, err)
}
