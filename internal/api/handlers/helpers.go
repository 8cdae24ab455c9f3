package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"visit-route-service/internal/domain"
)

const dateLayout = "2006-01-02"

func writeJSON(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, status int, msg string) {
	writeJSON(w, r, logger, status, map[string]string{"error": msg})
}

// writeRejection maps a typed validation rejection to an HTTP status.
// Rejections are non-fatal: the planning session keeps its state and the
// caller may retry.
func writeRejection(w http.ResponseWriter, r *http.Request, logger *zap.Logger, ve *domain.ValidationError) {
	status := http.StatusBadRequest
	switch ve.Code {
	case domain.CodeEditForbidden:
		status = http.StatusForbidden
	case domain.CodeCapacityExceeded, domain.CodeDuplicatePatient:
		status = http.StatusConflict
	}
	writeJSON(w, r, logger, status, map[string]string{"code": ve.Code, "error": ve.Reason})
}

// parseDate reads a YYYY-MM-DD query value, defaulting to today.
func parseDate(v string) (time.Time, error) {
	if v == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(dateLayout, v)
}
