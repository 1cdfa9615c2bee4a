package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	FieldCatalog   = "catalog"
	FieldCandidate = "candidate"
	FieldStrategy  = "skills_strategy"
	FieldProvider  = "ai_provider"
	FieldModel     = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches fields to logger. A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// MatchFields describes one matching run: where postings and the candidate came from
// and which skill strategy scores them.
func MatchFields(catalog, candidate, strategy string) []zap.Field {
	return StringFields(
		StringField{Key: FieldCatalog, Value: catalog},
		StringField{Key: FieldCandidate, Value: candidate},
		StringField{Key: FieldStrategy, Value: strategy},
	)
}

// WithAI attaches the AI provider and model to logger.
func WithAI(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)...)
}
