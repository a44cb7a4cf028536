package contact_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zhouzirui/z-ledger/backend/internal/model/contact"
	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
)

func TestNewContact(t *testing.T) {
	c, err := contact.New("João Silva", "(83) 98765-4321", "joao.silva@email.com")
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	if !strings.HasPrefix(c.ID(), contact.Kind+"-") {
		t.Fatalf("unexpected id %q", c.ID())
	}
	if c.Label() != "João Silva" {
		t.Fatalf("unexpected label %q", c.Label())
	}
	if !strings.Contains(c.Describe(), "Email: joao.silva@email.com") {
		t.Fatalf("expected email in description: %s", c.Describe())
	}
}

func TestNewContactWithoutEmail(t *testing.T) {
	c, err := contact.New("Maria Oliveira", "(83) 99123-4567", "")
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	if strings.Contains(c.Describe(), "Email") {
		t.Fatalf("unexpected email line: %s", c.Describe())
	}
}

func TestNewContactValidation(t *testing.T) {
	cases := []struct {
		name, phone string
		fields      []string
	}{
		{"", "123", []string{"name"}},
		{"Ana", " ", []string{"phone"}},
		{"", "", []string{"name", "phone"}},
	}
	for _, tc := range cases {
		c, err := contact.New(tc.name, tc.phone, "")
		if c != nil {
			t.Fatalf("expected no contact for %q/%q", tc.name, tc.phone)
		}
		var verr *record.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if strings.Join(verr.Fields, ",") != strings.Join(tc.fields, ",") {
			t.Fatalf("expected fields %v, got %v", tc.fields, verr.Fields)
		}
	}
}

func TestContactStoreScenario(t *testing.T) {
	store := record.NewStore[*contact.Contact](contact.Kind, nil)

	joao, err := contact.New("João Silva", "123", "")
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	maria, err := contact.New("Maria", "456", "")
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	store.Add(joao)
	store.Add(maria)

	all, _ := store.List()
	if len(all) != 2 || all[0] != joao || all[1] != maria {
		t.Fatalf("unexpected list %+v", all)
	}

	found, _ := store.Search("maria")
	if len(found) != 1 || found[0] != maria {
		t.Fatalf("unexpected search result %+v", found)
	}

	found, _ = store.Search("silva")
	if len(found) != 1 || found[0] != joao {
		t.Fatalf("expected case-insensitive match on João, got %+v", found)
	}

	removed, status := store.Remove(joao.ID())
	if status != record.StatusRemoved || removed.Label() != "João Silva" {
		t.Fatalf("unexpected removal %s %+v", status, removed)
	}

	all, _ = store.List()
	if len(all) != 1 || all[0] != maria {
		t.Fatalf("expected only Maria, got %+v", all)
	}
}
