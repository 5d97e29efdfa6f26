package errors

import (
	"errors"
	"fmt"
)

type ErrorCode string

// Checkout pipeline error codes. Conversion, wallet resolution and issuance
// failures abort the pipeline; cancellation is the only terminal failure of
// the settlement wait.
const (
	CodeInvalidAmount    ErrorCode = "invalid_amount"
	CodeRateUnavailable  ErrorCode = "rate_unavailable"
	CodeAuthentication   ErrorCode = "authentication"
	CodeWalletNotFound   ErrorCode = "wallet_not_found"
	CodeIssuanceRejected ErrorCode = "issuance_rejected"
	CodeTransport        ErrorCode = "transport"
	CodeCancelled        ErrorCode = "cancelled"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (se ServiceError) Error() string {
	if se.Err != nil {
		return fmt.Sprintf("%s: %v", se.Message, se.Err)
	}
	return se.Message
}

func (se ServiceError) Unwrap() error {
	return se.Err
}

// New wraps err (which may be nil) into a ServiceError with the given code
// and a message suitable for showing to the end user verbatim.
func New(code ErrorCode, message string, err error) ServiceError {
	return ServiceError{Code: code, Message: message, Err: err}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, err error, format string, args ...any) ServiceError {
	return ServiceError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of the outermost ServiceError in err's chain, or
// the empty code when there is none.
func CodeOf(err error) ErrorCode {
	var se ServiceError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsCode reports whether err carries the given checkout error code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
