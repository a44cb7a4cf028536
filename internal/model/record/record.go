package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("record validation failed")

// Record is the capability every stored entity exposes to the generic store.
type Record interface {
	ID() string
	// Label is the identifying display field reported on removal.
	Label() string
	// SearchFields lists the text fields matched by Store.Search.
	SearchFields() []string
}

// Cloner is implemented by record kinds that hand out independent copies.
// Guarded services return clones so callers never share a record that a
// later Mark may change.
type Cloner[T any] interface {
	Clone() T
}

// Snapshot returns item.Clone() when T implements Cloner, item otherwise.
func Snapshot[T any](item T) T {
	if c, ok := any(item).(Cloner[T]); ok {
		return c.Clone()
	}
	return item
}

// Describable renders a record for console or log output.
type Describable interface {
	Describe() string
}

// ValidationError reports the fields that failed construction.
type ValidationError struct {
	Kind   string
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(e.Fields, ", "))
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Validator collects field failures before any id is generated.
type Validator struct {
	kind    string
	fields  []string
	reasons []string
}

// NewValidator starts a validation pass for the given record kind.
func NewValidator(kind string) *Validator {
	return &Validator{kind: kind}
}

// Require flags field when value is blank.
func (v *Validator) Require(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.fields = append(v.fields, field)
		v.reasons = append(v.reasons, field+" is required")
	}
	return v
}

// Check flags field with reason when ok is false.
func (v *Validator) Check(ok bool, field, reason string) *Validator {
	if !ok {
		v.fields = append(v.fields, field)
		v.reasons = append(v.reasons, reason)
	}
	return v
}

// Err returns a *ValidationError when any check failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{
		Kind:   v.kind,
		Fields: append([]string(nil), v.fields...),
		Reason: strings.Join(v.reasons, "; "),
	}
}

// NewID returns a random 128-bit identifier prefixed with kind.
func NewID(kind string) string {
	return kind + "-" + uuid.NewString()
}
