// Package demo replays the sample sessions of each record manager and
// provides the seed data loaded with SEED_DEMO.
package demo

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/zhouzirui/z-ledger/backend/internal/model/book"
	"github.com/zhouzirui/z-ledger/backend/internal/model/contact"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/model/shopping"
	"github.com/zhouzirui/z-ledger/backend/internal/model/task"
	"github.com/zhouzirui/z-ledger/backend/internal/service/registry"
)

// Scenario prints one manager session to w; observer receives the events.
type Scenario func(ctx context.Context, w io.Writer, observer record.Observer) error

var scenarios = map[string]Scenario{
	"contacts": Contacts,
	"books":    Books,
	"shopping": Shopping,
	"tasks":    Tasks,
}

// Names lists the available scenarios in a stable order.
func Names() []string {
	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the scenario registered under name.
func Lookup(name string) (Scenario, bool) {
	s, ok := scenarios[name]
	return s, ok
}

func printList[T interface {
	record.Record
	record.Describable
}](w io.Writer, title string, items []T, status record.Status) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	switch status {
	case record.StatusEmpty:
		fmt.Fprintln(w, "(empty)")
		return
	case record.StatusNoMatch:
		fmt.Fprintln(w, "(no matches)")
		return
	}
	for _, item := range items {
		fmt.Fprint(w, item.Describe())
		fmt.Fprintln(w, "---")
	}
}

// Contacts adds three contacts, searches and removes one.
func Contacts(ctx context.Context, w io.Writer, observer record.Observer) error {
	svc := registry.NewService[*contact.Contact](contact.Kind, observer)
	seeds, err := SeedContacts()
	if err != nil {
		return err
	}
	for _, c := range seeds {
		svc.Add(ctx, c)
	}

	items, status := svc.List(ctx)
	printList(w, "All contacts", items, status)

	for _, term := range []string{"Silva", "Pedro", "Carlos"} {
		items, status = svc.Search(ctx, term)
		printList(w, fmt.Sprintf("Search %q", term), items, status)
	}

	if removed, status := svc.Remove(ctx, seeds[0].ID()); status == record.StatusRemoved {
		fmt.Fprintf(w, "\nRemoved %s\n", removed.Label())
	}
	items, status = svc.List(ctx)
	printList(w, "Contacts after removal", items, status)

	if _, err := contact.New("", "(83) 1234-5678", ""); err != nil {
		fmt.Fprintf(w, "\nRejected contact: %v\n", err)
	}
	return nil
}

// Books catalogues four books, searches by title and author and removes one.
func Books(ctx context.Context, w io.Writer, observer record.Observer) error {
	svc := registry.NewService[*book.Book](book.Kind, observer)
	seeds, err := SeedBooks()
	if err != nil {
		return err
	}
	for _, b := range seeds {
		svc.Add(ctx, b)
	}

	items, status := svc.List(ctx)
	printList(w, "Library", items, status)

	for _, term := range []string{"Cervantes", "code", "Senhor dos Anéis"} {
		items, status = svc.Search(ctx, term)
		printList(w, fmt.Sprintf("Search %q", term), items, status)
	}

	if removed, status := svc.Remove(ctx, seeds[0].ID()); status == record.StatusRemoved {
		fmt.Fprintf(w, "\nRemoved %s (ID: %s)\n", removed.Label(), removed.ID())
	}
	items, status = svc.List(ctx)
	printList(w, "Library after removal", items, status)
	return nil
}

// Shopping fills a list, marks, removes and searches items.
func Shopping(ctx context.Context, w io.Writer, observer record.Observer) error {
	svc := registry.NewService[*shopping.Item](shopping.Kind, observer)
	seeds, err := SeedShopping()
	if err != nil {
		return err
	}
	for _, item := range seeds {
		svc.Add(ctx, item)
	}
	rice, beans := seeds[0], seeds[1]

	items, status := svc.List(ctx)
	printList(w, "Shopping list", items, status)

	svc.Mark(ctx, rice.ID(), shopping.MarkPurchased)
	if _, status := svc.Mark(ctx, rice.ID(), shopping.MarkPurchased); status == record.StatusUnchanged {
		fmt.Fprintf(w, "\n%s was already purchased\n", rice.Label())
	}
	svc.Remove(ctx, beans.ID())

	items, status = svc.List(ctx)
	printList(w, "Shopping list after updates", items, status)

	for _, term := range []string{"ão", "cenoura"} {
		items, status = svc.Search(ctx, term)
		printList(w, fmt.Sprintf("Search %q", term), items, status)
	}

	for _, bad := range []struct {
		name string
		qty  int
	}{{"Açúcar", 0}, {"", 1}} {
		if _, err := shopping.New(bad.name, bad.qty); err != nil {
			fmt.Fprintf(w, "\nRejected item: %v\n", err)
		}
	}
	return nil
}

// Tasks adds tasks, completes one by id prefix and lists pending work.
func Tasks(ctx context.Context, w io.Writer, observer record.Observer) error {
	svc := registry.NewService[*task.Task](task.Kind, observer)
	seeds, err := SeedTasks()
	if err != nil {
		return err
	}
	for _, t := range seeds {
		svc.Add(ctx, t)
	}

	items, status := svc.List(ctx)
	printList(w, "All tasks", items, status)

	if found, status := svc.Resolve(ctx, seeds[0].ShortID()); status == record.StatusOK {
		svc.Mark(ctx, found.ID(), task.Complete)
		fmt.Fprintf(w, "\nCompleted %s\n", found.Label())
	}

	pending := svc.Filter(ctx, task.Pending)
	status = record.StatusOK
	if len(pending) == 0 {
		status = record.StatusEmpty
	}
	printList(w, "Pending tasks", pending, status)
	return nil
}
