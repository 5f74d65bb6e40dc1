package termsdk

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/gemterm/pkg/httpx"
)

const (
	ErrorCodeInvalidRequest      = "invalid_request"
	ErrorCodeInvalidToken        = "invalid_token"
	ErrorCodeForbidden           = "forbidden"
	ErrorCodeNotFound            = "not_found"
	ErrorCodeServerError         = "server_error"
	ErrorCodeRateLimited         = "rate_limit_exceeded"
	ErrorCodeInvalidCode         = "invalid_code"
	ErrorCodeCodeExpired         = "code_expired"
	ErrorCodeCodeAlreadyBound    = "code_already_bound"
	ErrorCodeMalformedIdentity   = "malformed_identity"
	ErrorCodeInvalidDuration     = "invalid_duration"
	ErrorCodeUnsupportedChain    = "unsupported_chain"
	ErrorCodeInvalidView         = "invalid_view"
	ErrorCodeTokenNotListed      = "token_not_listed"
	ErrorCodeProviderUnavailable = "provider_unavailable"
)

// APIError is the JSON error envelope returned by every non-2xx response.
// Handlers write it with WriteError; the SDK returns it from failed calls.
type APIError struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as the response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrInvalidJSON = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "invalid JSON body",
	}

	ErrInvalidCode = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCode,
		Description: "invite code is invalid",
	}

	ErrCodeExpired = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeCodeExpired,
		Description: "invite code has expired",
	}

	ErrCodeAlreadyBound = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeCodeAlreadyBound,
		Description: "invite code is bound to another identity",
	}

	ErrMalformedIdentity = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeMalformedIdentity,
		Description: "identity must be an email address",
	}

	ErrInvalidDuration = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidDuration,
		Description: "duration must be between one day and 36500 days, or lifetime",
	}

	ErrCodeNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "invite code not found",
	}

	ErrUnsupportedChain = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeUnsupportedChain,
		Description: "chain must be one of solana, ethereum, base, polygon",
	}

	ErrInvalidView = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidView,
		Description: "unknown view",
	}

	ErrTokenNotListed = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeTokenNotListed,
		Description: "token is not in the displayed list",
	}

	ErrSessionClosed = &APIError{
		StatusCode:  http.StatusGone,
		Code:        ErrorCodeInvalidToken,
		Description: "terminal session has ended",
	}

	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// parseErrorResponse turns a non-2xx response into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
