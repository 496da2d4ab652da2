// Package importer walks a directory of JSON export files (one array
// of exercise logs per file) and sends their contents to the server's
// bulk import endpoint. A local SQLite state database remembers which
// files were already sent, so re-running over the same export tree is
// cheap and safe.
package importer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Stats tracks import progress.
type Stats struct {
	FilesTotal    int
	FilesImported int
	FilesSkipped  int
	FilesErrored  int

	RecordsSent     int
	RecordsImported int
	RecordsSkipped  int
}

// Importer walks an export directory, parses log files, and POSTs them
// to the IronFlow server.
type Importer struct {
	client    *Client
	state     *StateDB
	exportDir string
	dryRun    bool
	batchSize int
	log       *slog.Logger
	stats     Stats
}

// New creates a new Importer.
func New(client *Client, state *StateDB, exportDir string, dryRun bool, batchSize int, log *slog.Logger) *Importer {
	return &Importer{
		client:    client,
		state:     state,
		exportDir: exportDir,
		dryRun:    dryRun,
		batchSize: batchSize,
		log:       log,
	}
}

// fileInfo tracks a file's metadata for state DB operations.
type fileInfo struct {
	relPath string
	size    int64
	hash    string
}

// Run executes the import pipeline.
func (im *Importer) Run() (*Stats, error) {
	files, err := filepath.Glob(filepath.Join(im.exportDir, "*.json"))
	if err != nil {
		return &im.stats, fmt.Errorf("listing %s: %w", im.exportDir, err)
	}

	var pending []Record
	var pendingFiles []fileInfo

	for _, f := range files {
		im.stats.FilesTotal++

		relPath, _ := filepath.Rel(im.exportDir, f)
		info, err := os.Stat(f)
		if err != nil {
			im.log.Warn("stat failed", "file", f, "error", err)
			im.stats.FilesErrored++
			continue
		}

		hash, err := HashFile(f)
		if err != nil {
			im.log.Warn("hash failed", "file", f, "error", err)
			im.stats.FilesErrored++
			continue
		}

		imported, err := im.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			im.log.Warn("state check failed", "file", f, "error", err)
			im.stats.FilesErrored++
			continue
		}
		if imported {
			im.stats.FilesSkipped++
			continue
		}

		records, err := parseExportFile(f)
		if err != nil {
			im.log.Warn("parse failed", "file", f, "error", err)
			im.stats.FilesErrored++
			continue
		}

		if len(records) == 0 {
			im.stats.FilesSkipped++
			// Mark empty files so we don't re-check them.
			_ = im.state.MarkImported(relPath, info.Size(), hash)
			continue
		}

		pending = append(pending, records...)
		pendingFiles = append(pendingFiles, fileInfo{relPath: relPath, size: info.Size(), hash: hash})

		if len(pending) >= im.batchSize {
			if err := im.flush(pending, pendingFiles); err != nil {
				return &im.stats, err
			}
			pending = nil
			pendingFiles = nil
		}
	}

	if len(pending) > 0 {
		if err := im.flush(pending, pendingFiles); err != nil {
			return &im.stats, err
		}
	}

	return &im.stats, nil
}

// flush sends one batch and marks its source files as imported.
func (im *Importer) flush(records []Record, files []fileInfo) error {
	if im.dryRun {
		im.log.Info("dry-run: would send batch", "records", len(records), "files", len(files))
	} else {
		result, err := im.client.SendBatch(records)
		if err != nil {
			return fmt.Errorf("sending batch: %w", err)
		}
		im.stats.RecordsImported += result.Imported
		im.stats.RecordsSkipped += result.Skipped
	}
	im.stats.RecordsSent += len(records)

	for _, fi := range files {
		if err := im.state.MarkImported(fi.relPath, fi.size, fi.hash); err != nil {
			im.log.Warn("failed to mark imported", "file", fi.relPath, "error", err)
		}
		im.stats.FilesImported++
	}

	im.log.Info("imported batch", "records", len(records), "files", len(files))
	return nil
}

// recordNamespace is the UUIDv5 namespace for generated record ids.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("import.ironflow"))

// fillRecordIDs assigns a deterministic id to every record that lacks
// one, derived from the source file name, the record's position, and
// its content. Re-parsing the same export yields the same ids, so the
// server drops records it already holds when a batch is retried.
func fillRecordIDs(path string, records []Record) {
	base := filepath.Base(path)
	for i := range records {
		if records[i].ID != "" {
			continue
		}
		r := records[i]
		key := fmt.Sprintf("%s|%d|%s|%d|%d|%g|%d|%s",
			base, i, r.ExerciseName, r.Sets, r.Reps, r.Weight, r.DurationMinutes, r.LoggedAt)
		records[i].ID = uuid.NewSHA1(recordNamespace, []byte(key)).String()
	}
}

// parseExportFile reads one export file. Both a bare array of records
// and an object with a "logs" field are accepted. Records without an
// id get a deterministic one.
func parseExportFile(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err == nil {
		fillRecordIDs(path, records)
		return records, nil
	}

	var wrapped struct {
		Logs []Record `json:"logs"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	fillRecordIDs(path, wrapped.Logs)
	return wrapped.Logs, nil
}
