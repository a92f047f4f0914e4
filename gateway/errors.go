package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrGatewayUnavailable covers connection failures and non-200 HTTP statuses.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
	// ErrMissingArgument is returned before any network call when a required argument is absent.
	ErrMissingArgument   = errors.New("missing argument")
	ErrInvalidRequest    = errors.New("invalid request")
	ErrMalformedResponse = errors.New("malformed gateway response")

	// ErrGateway is the generic kind of every error reported by the gateway itself.
	ErrGateway             = errors.New("gateway error")
	ErrTemporary           = errors.New("temporary gateway error")
	ErrWrongParams         = errors.New("wrong parameters")
	ErrInvalidSign         = errors.New("invalid signature")
	ErrAccessDenied        = errors.New("access denied")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrRefund              = errors.New("refund rejected")
	ErrCardToken           = errors.New("card token rejected")
	ErrRecurrent           = errors.New("recurrent payment rejected")
)

const codeUnknown = "unknown"

var codeKinds = map[string]error{
	"temporary":     ErrTemporary,
	"wrong_params":  ErrWrongParams,
	"wrong_sign":    ErrInvalidSign,
	"access_denied": ErrAccessDenied,
	"not_found":     ErrTransactionNotFound,
	"no_money":      ErrInsufficientFunds,
	"refund":        ErrRefund,
	"card_token":    ErrCardToken,
	"recurrent":     ErrRecurrent,
}

// KindForCode maps a gateway error code to its error kind. Unmapped codes yield ErrGateway.
func KindForCode(code string) error {
	if kind, ok := codeKinds[code]; ok {
		return kind
	}
	return ErrGateway
}

// GatewayError is a status=error response. It matches both its Kind and ErrGateway with errors.Is.
type GatewayError struct {
	Kind    error
	Code    string
	Message string
}

func newGatewayError(code, message string) *GatewayError {
	if code == "" {
		code = codeUnknown
	}
	return &GatewayError{
		Kind:    KindForCode(code),
		Code:    code,
		Message: message,
	}
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%v [%s]: %s", e.Kind, e.Code, e.Message)
}

func (e *GatewayError) Unwrap() []error {
	if e.Kind == ErrGateway {
		return []error{ErrGateway}
	}
	return []error{e.Kind, ErrGateway}
}

// UnavailableError reports a failed round trip: either Err is the transport error,
// or StatusCode is the unexpected HTTP status.
type UnavailableError struct {
	StatusCode int
	Err        error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrGatewayUnavailable, e.Err)
	}
	return fmt.Sprintf("%v: status %d", ErrGatewayUnavailable, e.StatusCode)
}

func (e *UnavailableError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrGatewayUnavailable, e.Err}
	}
	return []error{ErrGatewayUnavailable}
}
