package shopping

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

// Kind is the record kind and id prefix for shopping-list items.
const Kind = "item"

// Item is a shopping-list entry. Purchased moves from false to true once
// and never back.
type Item struct {
	RecordID  string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Purchased bool   `json:"purchased"`
}

var (
	_ record.Record        = (*Item)(nil)
	_ record.Describable   = (*Item)(nil)
	_ record.Cloner[*Item] = (*Item)(nil)
)

// New validates the fields and returns a pending item with a fresh id.
func New(name string, quantity int) (*Item, error) {
	if err := record.NewValidator(Kind).
		Require("name", name).
		Check(quantity > 0, "quantity", "quantity must be greater than zero").
		Err(); err != nil {
		return nil, err
	}
	return &Item{
		RecordID: record.NewID(Kind),
		Name:     strings.TrimSpace(name),
		Quantity: quantity,
	}, nil
}

func (i *Item) ID() string             { return i.RecordID }
func (i *Item) Label() string          { return i.Name }
func (i *Item) SearchFields() []string { return []string{i.Name} }

// Status returns the display state of the purchased flag.
func (i *Item) Status() string {
	if i.Purchased {
		return "PURCHASED"
	}
	return "PENDING"
}

func (i *Item) Describe() string {
	return fmt.Sprintf("ID: %s\n- %s (%d units) (%s)\n", i.RecordID, i.Name, i.Quantity, i.Status())
}

// MarkPurchased is the Store.Mark setter for the purchased flag. It
// reports false when the item was already purchased.
func MarkPurchased(i *Item) bool {
	if i.Purchased {
		return false
	}
	i.Purchased = true
	return true
}

// Clone returns an independent copy; a nil receiver yields nil.
func (i *Item) Clone() *Item {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}
