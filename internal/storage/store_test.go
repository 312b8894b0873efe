package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	coreconfig "github.com/m3rciful/ipbot/core/config"
)

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "ips.json"))
	entries, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty list, got %v", entries)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "ips.json")
	s := NewFileStore(path)
	want := []string{"8.8.8.8", "10.0.0.5", "1.1.1.1"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := NewFileStore(path).Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip = %v, expected %v", got, want)
	}

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save empty: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("empty registry written as %q", data)
	}
}

func TestFileStoreMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ips.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := coreconfig.StorageConfig{
		Driver: coreconfig.StorageSQLite,
		Path:   filepath.Join(t.TempDir(), "ips.db"),
	}
	s, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if got, err := s.Load(ctx); err != nil || len(got) != 0 {
		t.Fatalf("fresh load = %v, %v", got, err)
	}
	if err := s.Save(ctx, []string{"8.8.8.8", "192.168.1.1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	want := []string{"1.1.1.1", "8.8.8.8"}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip = %v, expected %v", got, want)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), coreconfig.StorageConfig{Driver: "redis"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
