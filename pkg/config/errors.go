package config

import "fmt"

// ValidationError reports a configuration field with an invalid value.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value for %s: %q", e.Field, e.Value)
}
