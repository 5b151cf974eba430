package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordMerge(t *testing.T) {
	r := Record{"name": "existing", "status": "error"}
	r.Merge(map[string]any{
		"name":    "incoming",
		"version": "1.2.3",
		"status":  "ok",
	})

	if r["name"] != "existing" {
		t.Errorf("name = %v, want existing field preserved", r["name"])
	}
	if r["version"] != "1.2.3" {
		t.Errorf("version = %v, want 1.2.3", r["version"])
	}
	if r.Status() != "ok" {
		t.Errorf("status = %q, want ok (status always overwritten)", r.Status())
	}
}

func TestRecordMergeKeepsNilValues(t *testing.T) {
	r := Record{"license": nil}
	r.Merge(map[string]any{"license": "MIT"})
	if r["license"] != nil {
		t.Errorf("license = %v, want existing nil preserved", r["license"])
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	doc, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(doc) != 0 {
		t.Errorf("doc has %d entries, want 0", len(doc))
	}
}

func TestFileStoreRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cache.json")
	s := NewFileStore(path)
	ctx := context.Background()

	doc := Document{
		"vscode:octo/plugin": {"status": "ok", "version": "1.0.0"},
	}
	if err := s.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rec, ok := got["vscode:octo/plugin"]
	if !ok {
		t.Fatal("record missing after roundtrip")
	}
	if rec.Status() != "ok" || rec["version"] != "1.0.0" {
		t.Errorf("record = %v", rec)
	}
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	s := NewFileStore(filepath.Join(t.TempDir(), "cache.json"))
	ctx := context.Background()

	if err := s.Save(ctx, Document{"a": {"status": "ok"}, "b": {"status": "ok"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(ctx, Document{"a": {"status": "ok"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, exists := got["b"]; exists {
		t.Error("stale key survived a full overwrite")
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileStore(path).Load(context.Background()); err == nil {
		t.Error("Load on corrupt file succeeded, want error")
	}
}
