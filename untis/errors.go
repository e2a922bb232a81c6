package untis

import "errors"

// ConfigError marks a broken schedule configuration (unknown column tag,
// schema not matching the table). It aborts a whole table parse, unlike
// data quirks which only drop single rows.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "schedule config: " + e.Reason
}

// ErrRosterUnavailable is returned by roster callbacks that could not load
// the class list. Class expansion treats it as an empty roster instead of
// failing the parse.
var ErrRosterUnavailable = errors.New("class roster unavailable")
