package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

// Kind is the record kind and id prefix for to-do tasks.
const Kind = "task"

// Priorities accepted by New, lowest first.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task is a to-do entry. Done moves from false to true once.
type Task struct {
	RecordID    string    `json:"id"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Done        bool      `json:"done"`
	CreatedAt   time.Time `json:"createdAt"`
}

var (
	_ record.Record        = (*Task)(nil)
	_ record.Describable   = (*Task)(nil)
	_ record.Cloner[*Task] = (*Task)(nil)
)

// New validates the fields and returns a pending task with a fresh id.
// An empty priority defaults to medium; matching is case-insensitive.
func New(description, priority string) (*Task, error) {
	priority = strings.ToLower(strings.TrimSpace(priority))
	if priority == "" {
		priority = PriorityMedium
	}
	if err := record.NewValidator(Kind).
		Require("description", description).
		Check(validPriority(priority), "priority", "priority must be low, medium or high").
		Err(); err != nil {
		return nil, err
	}
	return &Task{
		RecordID:    record.NewID(Kind),
		Description: strings.TrimSpace(description),
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func (t *Task) ID() string             { return t.RecordID }
func (t *Task) Label() string          { return t.Description }
func (t *Task) SearchFields() []string { return []string{t.Description} }

// ShortID is the id truncated for display; any unique prefix resolves.
func (t *Task) ShortID() string {
	const n = len(Kind) + 1 + 8
	if len(t.RecordID) <= n {
		return t.RecordID
	}
	return t.RecordID[:n]
}

func (t *Task) Describe() string {
	status := "pending"
	if t.Done {
		status = "done"
	}
	return fmt.Sprintf("ID: %s...\n  Description: %s\n  Priority: %s\n  Status: %s\n  Created: %s\n",
		t.ShortID(), t.Description, t.Priority, status, t.CreatedAt.Format("2006-01-02 15:04"))
}

// Complete is the Store.Mark setter for the done flag.
func Complete(t *Task) bool {
	if t.Done {
		return false
	}
	t.Done = true
	return true
}

// Pending is a Store.Filter predicate selecting unfinished tasks.
func Pending(t *Task) bool { return !t.Done }

// Clone returns an independent copy; a nil receiver yields nil.
func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
