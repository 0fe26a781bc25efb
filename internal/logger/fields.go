package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldPageURL is the structured log field key for the page being filled.
	FieldPageURL = "page_url"
	// FieldCategory is the structured log field key for a classification category.
	FieldCategory = "category"
	// FieldControlKind is the structured log field key for a form control kind.
	FieldControlKind = "control_kind"
	// FieldLabel is the structured log field key for a control label signal.
	FieldLabel = "label"
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
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields attaches the provided fields to the logger, defaulting to a
// no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// ControlFields describes a single form control. Empty values are dropped.
func ControlFields(kind, category, label string) []zap.Field {
	return StringFields(
		StringField{Key: FieldControlKind, Value: kind},
		StringField{Key: FieldCategory, Value: category},
		StringField{Key: FieldLabel, Value: label},
	)
}

// WithPage attaches the page URL to the provided logger.
func WithPage(logger *zap.Logger, url string) *zap.Logger {
	return WithFields(logger, StringFields(StringField{Key: FieldPageURL, Value: url})...)
}
