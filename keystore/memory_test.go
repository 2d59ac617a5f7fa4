package keystore

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestMemoryStoreSaveGetDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	kid, err := store.Save(&KeyRecord{KID: "k1", Key: "{}"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if kid != "k1" {
		t.Fatalf("explicit kid must be kept, got %q", kid)
	}

	rec, err := store.GetKeyByID(ctx, "k1")
	if err != nil || rec == nil {
		t.Fatalf("expected a hit, got rec=%+v err=%v", rec, err)
	}

	store.Delete("k1")
	rec, err = store.GetKeyByID(ctx, "k1")
	if err != nil || rec != nil {
		t.Fatalf("deleted kid must be a miss, got rec=%+v err=%v", rec, err)
	}
}

func TestMemoryStoreGeneratesKid(t *testing.T) {
	store := NewMemoryStore()

	kid, err := store.Save(&KeyRecord{Key: "{}"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := uuid.Parse(kid); err != nil {
		t.Fatalf("generated kid must be a uuid, got %q: %v", kid, err)
	}
}

func TestMemoryStoreRejectsEmptyKey(t *testing.T) {
	store := NewMemoryStore()
	if _, err := store.Save(&KeyRecord{KID: "k1"}); err == nil {
		t.Fatal("expected save without key material to fail")
	}
}
