package services_test

import (
	"testing"

	"github.com/google/uuid"

	"github.com/api-sage/banking-frontend/src/internal/usecase/services"
)

func TestSessionStoreReturnsSameSessionForID(t *testing.T) {
	store, err := services.NewSessionStore(&stubClient{}, 4)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	id, first := store.Session("")
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected a uuid session id, got %q", id)
	}

	again, second := store.Session(id)
	if again != id || first != second {
		t.Fatal("expected the same session for the same id")
	}
}

func TestSessionStoreReplacesInvalidID(t *testing.T) {
	store, err := services.NewSessionStore(&stubClient{}, 4)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	id, _ := store.Session("not-a-uuid")
	if id == "not-a-uuid" {
		t.Fatal("expected invalid id to be replaced")
	}
}

func TestSessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, err := services.NewSessionStore(&stubClient{}, 2)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	idA, a := store.Session("")
	idB, b := store.Session("")
	store.Session(idA)
	store.Session("")

	if store.Len() != 2 {
		t.Fatalf("expected capacity to bound the store, got %d", store.Len())
	}
	if _, got := store.Session(idA); got != a {
		t.Fatal("expected recently used session to survive")
	}
	if _, got := store.Session(idB); got == b {
		t.Fatal("expected a fresh session for an evicted id")
	}
}

func TestNewSessionStoreRejectsZeroCapacity(t *testing.T) {
	if _, err := services.NewSessionStore(&stubClient{}, 0); err == nil {
		t.Fatal("expected error for zero capacity")
	}
}
