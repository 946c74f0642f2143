package models

import (
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func modelLogger() *zap.Logger {
	return zap.L().Named("persistence.models")
}

// encodeJSON renders v for a jsonb column, falling back when v cannot be encoded
func encodeJSON(v any, fallback string) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}

// decodeJSON parses a jsonb column into dest. Bad rows are logged and leave dest untouched.
func decodeJSON(raw string, dest any, column string, id uuid.UUID) {
	if raw == "" || raw == "null" {
		return
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		modelLogger().Warn("failed to parse JSON column",
			zap.String("column", column),
			zap.String("id", id.String()),
			zap.String("raw_json", raw),
			zap.Error(err))
	}
}
