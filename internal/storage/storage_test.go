package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mlevasseur/reportforge/internal/report"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)

	r := report.New(report.Metadata{StudentName: "Durand", CompanyName: "Acme"})
	blob := &report.Blob{Version: report.BlobVersion, Report: r}

	if err := l.Save(blob); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded == nil || loaded.Report == nil {
		t.Fatal("loaded blob is empty")
	}
	if loaded.Report.StudentName != "Durand" || loaded.Report.CompanyName != "Acme" {
		t.Errorf("metadata lost: %+v", loaded.Report)
	}
	if len(loaded.Report.Plan.Sections) != len(r.Plan.Sections) {
		t.Errorf("section count changed: %d != %d", len(loaded.Report.Plan.Sections), len(r.Plan.Sections))
	}
}

func TestLoad_NothingSavedReturnsNil(t *testing.T) {
	l := NewLocal(t.TempDir())

	blob, err := l.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if blob != nil {
		t.Errorf("expected nil blob, got %+v", blob)
	}
}

func TestLoad_CorruptFileErrors(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "report.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewLocal(dir).Load(); err == nil {
		t.Error("corrupt file should error")
	}
}

func TestSave_ReplacesPreviousVersion(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir)

	first := report.New(report.Metadata{StudentName: "v1"})
	if err := l.Save(&report.Blob{Version: report.BlobVersion, Report: first}); err != nil {
		t.Fatal(err)
	}
	second := report.New(report.Metadata{StudentName: "v2"})
	if err := l.Save(&report.Blob{Version: report.BlobVersion, Report: second}); err != nil {
		t.Fatal(err)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Report.StudentName != "v2" {
		t.Errorf("expected latest version, got %s", loaded.Report.StudentName)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}
}
