package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tamzrod/jackdaw/internal/settings"
	"github.com/tamzrod/jackdaw/internal/settings/settingstest"
)

func openTestStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_Contract(t *testing.T) {
	store := openTestStore(t, filepath.Join(t.TempDir(), "settings.db"))
	settingstest.RunStoreContract(t, store)
}

func TestStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := settings.SetUint16(ctx, first, settings.KeyPanAddr, 0xFFFF); err != nil {
		t.Fatalf("SetUint16: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second := openTestStore(t, path)
	got, err := settings.GetUint16(ctx, second, settings.KeyPanAddr)
	if err != nil {
		t.Fatalf("GetUint16 after reopen: %v", err)
	}
	if got != 0xFFFF {
		t.Fatalf("pan addr after reopen: got=%#x want=0xffff", got)
	}
}
