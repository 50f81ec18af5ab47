package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aleister1102/outboundwatch/internal/common/timeutils"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
func ValidateConfig(cfg *GlobalConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration validation error: config is nil")
	}

	validate := newValidator()

	var messages []string
	if err := collectValidationErrors(validate.Struct(cfg), "", &messages); err != nil {
		return err
	}

	// map values are validated entry by entry
	for _, name := range sortedKeys(cfg.Processes) {
		prefix := fmt.Sprintf("Processes[%s].", name)
		if err := collectValidationErrors(validate.Struct(cfg.Processes[name]), prefix, &messages); err != nil {
			return err
		}
	}
	for _, step := range sortedKeys(cfg.TimeWindows) {
		prefix := fmt.Sprintf("TimeWindows[%s].", step)
		if err := collectValidationErrors(validate.Struct(cfg.TimeWindows[step]), prefix, &messages); err != nil {
			return err
		}
	}

	if len(messages) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(messages, "\n  "))
	}

	if err := validateWindowOrder(cfg); err != nil {
		return fmt.Errorf("configuration validation failed:\n  %w", err)
	}
	return nil
}

// collectValidationErrors appends one message per field error to messages.
// Errors that are not field errors are returned as-is.
func collectValidationErrors(err error, prefix string, messages *[]string) error {
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return fmt.Errorf("configuration validation error: %w", err)
	}
	for _, e := range errs {
		msg := fmt.Sprintf("Validation failed for '%s%s': rule '%s'", prefix, trimNamespace(e.Namespace()), e.Tag())
		if e.Param() != "" {
			msg += fmt.Sprintf(" (expected: %s)", e.Param())
		}
		if e.Value() != nil && e.Value() != "" {
			msg += fmt.Sprintf(", actual: '%v'", e.Value())
		}
		*messages = append(*messages, msg)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Register custom validation for LogLevel
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "debug", "info", "warn", "error", "fatal", "panic": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// Register custom validation for LogFormat
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json": // Allow empty for omitempty
			return true
		default:
			return false
		}
	})

	// HH:mm:ss or HH:mm wall-clock values
	_ = validate.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := timeutils.ParseTimeOfDay(fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("zonename", func(fl validator.FieldLevel) bool {
		_, err := timeutils.LoadZone(fl.Field().String())
		return err == nil
	})

	_ = validate.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		return timeutils.ValidateDateFormat(fl.Field().String()) == nil
	})

	_ = validate.RegisterValidation("stepname", func(fl validator.FieldLevel) bool {
		_, ok := CanonicalStepName(fl.Field().String())
		return ok
	})

	return validate
}

// validateWindowOrder rejects windows whose start is after their end.
func validateWindowOrder(cfg *GlobalConfig) error {
	for _, step := range sortedKeys(cfg.TimeWindows) {
		window := cfg.TimeWindows[step]
		start, errStart := timeutils.ParseTimeOfDay(window.Start)
		end, errEnd := timeutils.ParseTimeOfDay(window.End)
		if errStart != nil || errEnd != nil {
			continue
		}
		if start > end {
			return fmt.Errorf("Validation failed for 'time_windows[%s]': start %s is after end %s", step, start, end)
		}
	}
	return nil
}

// trimNamespace drops the root struct name from a validator namespace.
func trimNamespace(ns string) string {
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}
