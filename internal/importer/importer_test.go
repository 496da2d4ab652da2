package importer

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestStateDBRoundtrip verifies the imported-file bookkeeping.
func TestStateDBRoundtrip(t *testing.T) {
	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	imported, err := state.IsImported("exports/2026-01.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if imported {
		t.Error("fresh file reported as imported")
	}

	if err := state.MarkImported("exports/2026-01.json", 100, "abc"); err != nil {
		t.Fatal(err)
	}

	imported, err = state.IsImported("exports/2026-01.json", 100, "abc")
	if err != nil {
		t.Fatal(err)
	}
	if !imported {
		t.Error("marked file not reported as imported")
	}

	// A changed hash means the file must be re-sent.
	imported, err = state.IsImported("exports/2026-01.json", 100, "different")
	if err != nil {
		t.Fatal(err)
	}
	if imported {
		t.Error("file with new hash reported as imported")
	}
}

// TestParseExportFile verifies both accepted export shapes.
func TestParseExportFile(t *testing.T) {
	dir := t.TempDir()

	bare := filepath.Join(dir, "bare.json")
	if err := os.WriteFile(bare, []byte(`[{"exercise_name":"Squat","sets":3,"reps":5,"weight_kg":80}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err := parseExportFile(bare)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ExerciseName != "Squat" {
		t.Errorf("bare array parse = %+v", records)
	}

	wrapped := filepath.Join(dir, "wrapped.json")
	if err := os.WriteFile(wrapped, []byte(`{"logs":[{"exercise_name":"Bench Press","sets":3,"reps":8,"weight_kg":60}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	records, err = parseExportFile(wrapped)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].ExerciseName != "Bench Press" {
		t.Errorf("wrapped parse = %+v", records)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`not json`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := parseExportFile(bad); err == nil {
		t.Error("expected error for malformed file")
	}
}

// TestParseExportFileAssignsStableIDs: records without an id get a
// valid UUID that is identical across parses, and two records with
// the same content still get distinct ids.
func TestParseExportFileAssignsStableIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "export.json")
	content := `[
		{"exercise_name":"Squat","sets":3,"reps":5,"weight_kg":80},
		{"exercise_name":"Squat","sets":3,"reps":5,"weight_kg":80},
		{"id":"6ba7b810-9dad-11d1-80b4-00c04fd430c8","exercise_name":"Row","sets":3,"reps":8}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	first, err := parseExportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for i, r := range first {
		if _, err := uuid.Parse(r.ID); err != nil {
			t.Errorf("record %d id %q is not a UUID: %v", i, r.ID, err)
		}
	}
	if first[0].ID == first[1].ID {
		t.Error("identical records in one file share an id")
	}
	if first[2].ID != "6ba7b810-9dad-11d1-80b4-00c04fd430c8" {
		t.Errorf("explicit id overwritten: %q", first[2].ID)
	}

	second, err := parseExportFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("record %d id changed across parses: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}

// TestRunSendsAndSkips verifies the full pipeline: a first run sends
// every file, a second run skips them via the state DB.
func TestRunSendsAndSkips(t *testing.T) {
	exportDir := t.TempDir()
	for name, content := range map[string]string{
		"jan.json":   `[{"exercise_name":"Squat","sets":3,"reps":5,"weight_kg":80}]`,
		"feb.json":   `[{"exercise_name":"Deadlift","sets":1,"reps":5,"weight_kg":120}]`,
		"empty.json": `[]`,
	} {
		if err := os.WriteFile(filepath.Join(exportDir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var batches [][]Record
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/import" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("api key = %q, want test-key", got)
		}
		var records []Record
		if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
			t.Fatal(err)
		}
		batches = append(batches, records)
		json.NewEncoder(w).Encode(ImportResult{Imported: len(records)})
	}))
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	im := New(NewClient(ts.URL, "test-key"), state, exportDir, false, 100, discardLogger())
	stats, err := im.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesTotal != 3 {
		t.Errorf("files total = %d, want 3", stats.FilesTotal)
	}
	if stats.FilesImported != 2 || stats.FilesSkipped != 1 {
		t.Errorf("imported/skipped = %d/%d, want 2/1", stats.FilesImported, stats.FilesSkipped)
	}
	if stats.RecordsImported != 2 {
		t.Errorf("records imported = %d, want 2", stats.RecordsImported)
	}
	if len(batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(batches))
	}

	// Second run: everything already in the state DB.
	im = New(NewClient(ts.URL, "test-key"), state, exportDir, false, 100, discardLogger())
	stats, err = im.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.FilesSkipped != 3 || stats.FilesImported != 0 {
		t.Errorf("second run skipped/imported = %d/%d, want 3/0", stats.FilesSkipped, stats.FilesImported)
	}
	if len(batches) != 1 {
		t.Errorf("second run sent %d extra batches", len(batches)-1)
	}
}

// TestRunDryRun verifies no requests are made in dry-run mode.
func TestRunDryRun(t *testing.T) {
	exportDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(exportDir, "jan.json"),
		[]byte(`[{"exercise_name":"Squat","sets":3,"reps":5}]`), 0o644); err != nil {
		t.Fatal(err)
	}

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("dry run made an HTTP request")
	}))
	defer ts.Close()

	state, err := OpenStateDB(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer state.Close()

	im := New(NewClient(ts.URL, "test-key"), state, exportDir, true, 100, discardLogger())
	stats, err := im.Run()
	if err != nil {
		t.Fatal(err)
	}
	if stats.RecordsSent != 1 {
		t.Errorf("records sent = %d, want 1", stats.RecordsSent)
	}
}
