package mines

import "fmt"

type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

// ConfigError rejects board parameters before a game can start.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

// [ConfigError] implements [error]
func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid board config: %s = %d: %s", e.Field, e.Value, e.Reason)
}
