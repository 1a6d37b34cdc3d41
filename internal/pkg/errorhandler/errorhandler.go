package errorhandler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/msrpanel/msr-api/internal/pkg/response"
)

// HandleError logs an error with request context and sends a formatted
// error response
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	event := log.Error().
		Str("request_id", getRequestID(ctx)).
		Str("error_code", code).
		Int("status_code", status)

	if err != nil {
		event.Err(err)
	}

	event.Msg(message)

	response.Error(w, status, code, message)
}

// LogValidationError logs validation failures with their field details
func LogValidationError(ctx context.Context, fieldErrors map[string]string) {
	errJSON, _ := json.Marshal(fieldErrors)
	log.Warn().
		Str("request_id", getRequestID(ctx)).
		RawJSON("validation_errors", errJSON).
		Msg("Validation error")
}

func getRequestID(ctx context.Context) string {
	if reqID := ctx.Value("request_id"); reqID != nil {
		if id, ok := reqID.(string); ok {
			return id
		}
	}
	return "unknown"
}
