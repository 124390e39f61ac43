package logging

import "fmt"

// Level is the user-facing output verbosity.
type Level int

const (
	LevelSilent Level = iota
	LevelDefault
	LevelInfo
	LevelVerbose
)

// String returns the flag name of the level
func (l Level) String() string {
	switch l {
	case LevelSilent:
		return "silent"
	case LevelDefault:
		return "default"
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}

// ParseLevel converts a level name to a Level.
func ParseLevel(s string) (Level, error) {
	switch s {
	case "silent":
		return LevelSilent, nil
	case "", "default":
		return LevelDefault, nil
	case "info":
		return LevelInfo, nil
	case "verbose":
		return LevelVerbose, nil
	default:
		return LevelDefault, fmt.Errorf("unknown log level %q (valid: silent, default, info, verbose)", s)
	}
}

// FromFlags resolves the verbosity flags. Silent wins over verbose, which
// wins over info.
func FromFlags(silent, verbose, info bool) Level {
	switch {
	case silent:
		return LevelSilent
	case verbose:
		return LevelVerbose
	case info:
		return LevelInfo
	default:
		return LevelDefault
	}
}

// Enabled reports whether output at min is shown at level l.
func (l Level) Enabled(min Level) bool {
	return l != LevelSilent && l >= min
}
