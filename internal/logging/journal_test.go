// ABOUTME: Tests for journal file writing
// ABOUTME: Validates record formatting and daily file appends
package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testRecord(at time.Time, action, detail string) Record {
	return Record{
		Timestamp: at,
		Action:    action,
		Detail:    detail,
		Username:  "testuser",
		Hostname:  "testhost",
	}
}

func TestWriteJournal(t *testing.T) {
	tmpDir := t.TempDir()
	dir := filepath.Join(tmpDir, "journal")

	rec := testRecord(time.Date(2025, 11, 29, 14, 30, 0, 0, time.UTC), "set", "run[3] = 80")
	if err := WriteJournal(dir, "markdown", rec); err != nil {
		t.Fatalf("WriteJournal failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "2025-11-29.log"))
	if err != nil {
		t.Fatalf("failed to read journal: %v", err)
	}

	expected := `## 14:30:00 - set
- **Change**: run[3] = 80
- **User**: testuser@testhost

`
	if string(content) != expected {
		t.Errorf("got:\n%s\nwant:\n%s", string(content), expected)
	}
}

func TestWriteJournalJSON(t *testing.T) {
	dir := t.TempDir()

	rec := testRecord(time.Date(2025, 11, 29, 14, 30, 0, 0, time.UTC), "new-class", "read")
	if err := WriteJournal(dir, "json", rec); err != nil {
		t.Fatalf("WriteJournal failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(dir, "2025-11-29.log"))
	if err != nil {
		t.Fatalf("failed to read journal: %v", err)
	}

	var got Record
	if err := json.Unmarshal(content, &got); err != nil {
		t.Fatalf("journal line is not JSON: %v", err)
	}
	if got.Action != "new-class" || got.Detail != "read" {
		t.Errorf("unexpected record: %+v", got)
	}
}

func TestWriteJournalAppends(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 11, 29, 10, 0, 0, 0, time.UTC)

	for _, action := range []string{"new", "set"} {
		if err := WriteJournal(dir, "markdown", testRecord(at, action, "")); err != nil {
			t.Fatalf("WriteJournal failed: %v", err)
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, "2025-11-29.log"))
	if err != nil {
		t.Fatalf("failed to read journal: %v", err)
	}
	if strings.Count(string(content), "## 10:00:00") != 2 {
		t.Errorf("expected two records, got:\n%s", content)
	}
	if strings.Contains(string(content), "**Change**") {
		t.Errorf("empty detail should be omitted:\n%s", content)
	}
}

func TestNewRecord(t *testing.T) {
	t.Setenv("USER", "")
	rec := NewRecord("rename", "a -> b")
	if rec.Username != "unknown" {
		t.Errorf("expected unknown user, got %s", rec.Username)
	}
	if rec.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}
