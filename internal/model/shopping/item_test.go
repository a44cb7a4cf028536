package shopping_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/zhouzirui/z-ledger/backend/internal/model/record"
	"github.com/zhouzirui/z-ledger/backend/internal/model/shopping"
)

func TestNewItemValidation(t *testing.T) {
	for _, qty := range []int{0, -3} {
		item, err := shopping.New("Açúcar", qty)
		if item != nil || !errors.Is(err, record.ErrValidation) {
			t.Fatalf("quantity %d: expected validation error, got %v", qty, err)
		}
	}
	if _, err := shopping.New("", 1); !errors.Is(err, record.ErrValidation) {
		t.Fatalf("expected validation error for empty name, got %v", err)
	}
}

func TestInvalidItemLeavesStoreUntouched(t *testing.T) {
	store := record.NewStore[*shopping.Item](shopping.Kind, nil)
	if item, err := shopping.New("", 1); err == nil {
		store.Add(item)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestMarkPurchased(t *testing.T) {
	store := record.NewStore[*shopping.Item](shopping.Kind, nil)
	rice, err := shopping.New("Arroz", 2)
	if err != nil {
		t.Fatalf("New err: %v", err)
	}
	store.Add(rice)

	if rice.Purchased {
		t.Fatal("new item must start pending")
	}
	if _, status := store.Mark(rice.ID(), shopping.MarkPurchased); status != record.StatusMarked {
		t.Fatalf("expected marked, got %s", status)
	}
	if !rice.Purchased || !strings.Contains(rice.Describe(), "PURCHASED") {
		t.Fatalf("expected purchased item, got %+v", rice)
	}
	if _, status := store.Mark(rice.ID(), shopping.MarkPurchased); status != record.StatusUnchanged {
		t.Fatalf("expected unchanged, got %s", status)
	}
	if !rice.Purchased {
		t.Fatal("purchased flag must stay set")
	}
}

func TestSearchAccentedSuffix(t *testing.T) {
	store := record.NewStore[*shopping.Item](shopping.Kind, nil)
	for _, name := range []string{"Arroz", "Leite", "Pão", "Feijão"} {
		item, _ := shopping.New(name, 1)
		store.Add(item)
	}
	found, _ := store.Search("ão")
	if len(found) != 2 || found[0].Name != "Pão" || found[1].Name != "Feijão" {
		t.Fatalf("unexpected matches %+v", found)
	}
}
