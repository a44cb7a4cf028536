package demo

import (
	"context"

	"github.com/zhouzirui/z-ledger/backend/internal/model/book"
	"github.com/zhouzirui/z-ledger/backend/internal/model/contact"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/model/shopping"
	"github.com/zhouzirui/z-ledger/backend/internal/model/task"
	"github.com/zhouzirui/z-ledger/backend/internal/service/registry"
)

// SeedContacts returns the sample address book.
func SeedContacts() ([]*contact.Contact, error) {
	rows := []struct{ name, phone, email string }{
		{"João Silva", "(83) 98765-4321", "joao.silva@email.com"},
		{"Maria Oliveira", "(83) 99123-4567", ""},
		{"Pedro Souza", "(83) 98888-1111", "pedro.souza@email.com"},
	}
	out := make([]*contact.Contact, 0, len(rows))
	for _, r := range rows {
		c, err := contact.New(r.name, r.phone, r.email)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// SeedBooks returns the sample library catalogue.
func SeedBooks() ([]*book.Book, error) {
	rows := []struct {
		title, author string
		year          int
	}{
		{"O Pequeno Príncipe", "Antoine de Saint-Exupéry", 1943},
		{"Dom Quixote", "Miguel de Cervantes", 1605},
		{"Clean Code", "Robert C. Martin", 2008},
		{"Refactoring", "Martin Fowler", 1999},
	}
	out := make([]*book.Book, 0, len(rows))
	for _, r := range rows {
		b, err := book.New(r.title, r.author, r.year)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// SeedShopping returns the sample shopping list, rice first.
func SeedShopping() ([]*shopping.Item, error) {
	rows := []struct {
		name string
		qty  int
	}{
		{"Arroz", 2},
		{"Feijão", 1},
		{"Leite", 3},
		{"Pão", 1},
		{"Café", 1},
	}
	out := make([]*shopping.Item, 0, len(rows))
	for _, r := range rows {
		item, err := shopping.New(r.name, r.qty)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// SeedTasks returns the sample to-do list.
func SeedTasks() ([]*task.Task, error) {
	rows := []struct{ description, priority string }{
		{"Review pull requests", task.PriorityHigh},
		{"Water the plants", task.PriorityLow},
		{"Plan the sprint", ""},
	}
	out := make([]*task.Task, 0, len(rows))
	for _, r := range rows {
		t, err := task.New(r.description, r.priority)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Load adds every seed set to its registry.
func Load(ctx context.Context,
	contacts *registry.Service[*contact.Contact],
	books *registry.Service[*book.Book],
	items *registry.Service[*shopping.Item],
	tasks *registry.Service[*task.Task],
) error {
	cs, err := SeedContacts()
	if err != nil {
		return err
	}
	bs, err := SeedBooks()
	if err != nil {
		return err
	}
	is, err := SeedShopping()
	if err != nil {
		return err
	}
	ts, err := SeedTasks()
	if err != nil {
		return err
	}

	addAll(ctx, contacts, cs)
	addAll(ctx, books, bs)
	addAll(ctx, items, is)
	addAll(ctx, tasks, ts)
	return nil
}

func addAll[T record.Record](ctx context.Context, svc *registry.Service[T], items []T) {
	for _, item := range items {
		svc.Add(ctx, item)
	}
}
