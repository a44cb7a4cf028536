package book

import (
	"fmt"
	"strings"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

// Kind is the record kind and id prefix for library books.
const Kind = "book"

// Book is a library catalogue entry.
type Book struct {
	RecordID string `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     int    `json:"year"`
}

var (
	_ record.Record        = (*Book)(nil)
	_ record.Describable   = (*Book)(nil)
	_ record.Cloner[*Book] = (*Book)(nil)
)

// New validates the fields and returns a book with a fresh id. Year 0 is
// treated as missing; negative years are allowed for ancient works.
func New(title, author string, year int) (*Book, error) {
	if err := record.NewValidator(Kind).
		Require("title", title).
		Require("author", author).
		Check(year != 0, "year", "year is required").
		Err(); err != nil {
		return nil, err
	}
	return &Book{
		RecordID: record.NewID(Kind),
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Year:     year,
	}, nil
}

func (b *Book) ID() string             { return b.RecordID }
func (b *Book) Label() string          { return b.Title }
func (b *Book) SearchFields() []string { return []string{b.Title, b.Author} }

func (b *Book) Describe() string {
	return fmt.Sprintf("ID: %s\n  Title: %s\n  Author: %s\n  Year: %d\n", b.RecordID, b.Title, b.Author, b.Year)
}

// Clone returns an independent copy; a nil receiver yields nil.
func (b *Book) Clone() *Book {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}
