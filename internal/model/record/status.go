package record

import "fmt"

// Status discriminates the outcome of a store operation. None of these are
// errors; callers branch on them.
type Status int

const (
	StatusOK Status = iota
	StatusAdded
	StatusDuplicate
	StatusEmpty
	StatusNoMatch
	StatusRemoved
	StatusNotFound
	StatusMarked
	StatusUnchanged
	StatusAmbiguous
)

var statusNames = [...]string{
	StatusOK:        "ok",
	StatusAdded:     "added",
	StatusDuplicate: "duplicate",
	StatusEmpty:     "empty",
	StatusNoMatch:   "no_match",
	StatusRemoved:   "removed",
	StatusNotFound:  "not_found",
	StatusMarked:    "marked",
	StatusUnchanged: "unchanged",
	StatusAmbiguous: "ambiguous",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// MarshalText encodes the status by name for JSON responses and events.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name produced by MarshalText.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown record status %q", b)
}

// Warning reports whether the outcome deserves a warning-level signal.
func (s Status) Warning() bool {
	return s == StatusDuplicate || s == StatusNotFound || s == StatusAmbiguous
}
