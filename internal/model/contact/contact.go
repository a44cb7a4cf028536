package contact

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

// Kind is the record kind and id prefix for contacts.
const Kind = "contact"

// Contact is an address-book entry. Email is optional.
type Contact struct {
	RecordID string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email,omitempty"`
}

var (
	_ record.Record           = (*Contact)(nil)
	_ record.Describable      = (*Contact)(nil)
	_ record.Cloner[*Contact] = (*Contact)(nil)
)

// New validates the fields and returns a contact with a fresh id.
func New(name, phone, email string) (*Contact, error) {
	if err := record.NewValidator(Kind).
		Require("name", name).
		Require("phone", phone).
		Err(); err != nil {
		return nil, err
	}
	return &Contact{
		RecordID: record.NewID(Kind),
		Name:     strings.TrimSpace(name),
		Phone:    strings.TrimSpace(phone),
		Email:    strings.TrimSpace(email),
	}, nil
}

func (c *Contact) ID() string             { return c.RecordID }
func (c *Contact) Label() string          { return c.Name }
func (c *Contact) SearchFields() []string { return []string{c.Name} }

// Describe renders the contact, omitting the email line when unset.
func (c *Contact) Describe() string {
	var b strings.Builder
	fmt.Fprintf(&b, "ID: %s\nName: %s\nPhone: %s\n", c.RecordID, c.Name, c.Phone)
	if c.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", c.Email)
	}
	return b.String()
}

// Clone returns an independent copy; a nil receiver yields nil.
func (c *Contact) Clone() *Contact {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}
