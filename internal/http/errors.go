package httpx

import (
	"net/http"

	apperrors "github.com/target/sortparam/internal/errors"
)

// statusForError maps an AppError code to an HTTP status and a response error code.
// Unknown errors map to 500 with fallback as the response code.
func statusForError(err error, fallback string) (int, string) {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound, "not_found"
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest, "validation_failed"
	case apperrors.ErrCodeConflict:
		return http.StatusConflict, "conflict"
	case apperrors.ErrCodeAmbiguousDefault:
		return http.StatusUnprocessableEntity, "ambiguous_default"
	case apperrors.ErrCodeUnsupportedDirectionMix:
		return http.StatusUnprocessableEntity, "unsupported_direction_mix"
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout, "timeout"
	case apperrors.ErrCodeCanceled:
		return http.StatusRequestTimeout, "canceled"
	case apperrors.ErrCodeConfiguration:
		return http.StatusInternalServerError, "configuration_error"
	default:
		return http.StatusInternalServerError, fallback
	}
}

// WriteAppError writes err with the status derived from its AppError code.
func WriteAppError(w http.ResponseWriter, err error, fallback string) {
	code, errCode := statusForError(err, fallback)
	WriteError(w, ErrorParams{Code: code, ErrCode: errCode, Err: err})
}
