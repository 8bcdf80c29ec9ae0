package httpErrors

import (
	"net/http"

	dErrors "skillchain/pkg/domain-errors"
)

// ToHTTPStatus maps domain error codes to HTTP statuses so handlers never
// invent their own translation. TokenLocked maps to 423 (Locked) and
// CooldownActive to 429 since both clear with time; everything else follows
// the usual conventions.
func ToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeInvalidInput, dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeUnauthorized:
		return http.StatusUnauthorized
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeConflict, dErrors.CodeQuotaExceeded:
		return http.StatusConflict
	case dErrors.CodeTokenLocked:
		return http.StatusLocked
	case dErrors.CodeCooldownActive:
		return http.StatusTooManyRequests
	case dErrors.CodeInvalidApproval:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
