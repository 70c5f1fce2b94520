// ABOUTME: Journal of grid mutations
// ABOUTME: Formats records as markdown or JSON and appends to daily files
package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Record describes one change made to the grid.
type Record struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
	Username  string    `json:"username"`
	Hostname  string    `json:"hostname"`
}

// NewRecord fills user and host for an action happening now.
func NewRecord(action, detail string) Record {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = "unknown"
	}
	return Record{
		Timestamp: time.Now(),
		Action:    action,
		Detail:    detail,
		Username:  username,
		Hostname:  hostname,
	}
}

// WriteJournal appends rec to the day's journal file in dir
func WriteJournal(dir, format string, rec Record) error {
	if err := os.MkdirAll(dir, 0755); err != nil { //nolint:gosec // Standard directory permissions for user data
		return err
	}

	journalFile := filepath.Join(dir, rec.Timestamp.Format("2006-01-02")+".log")

	var content string
	switch format {
	case "json":
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		content = string(data) + "\n"
	case "markdown":
		fallthrough
	default:
		content = formatMarkdown(rec)
	}

	f, err := os.OpenFile(journalFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // Journal is user-readable
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(content)
	return err
}

func formatMarkdown(rec Record) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("## %s - %s\n", rec.Timestamp.Format("15:04:05"), rec.Action))
	if rec.Detail != "" {
		sb.WriteString(fmt.Sprintf("- **Change**: %s\n", rec.Detail))
	}
	sb.WriteString(fmt.Sprintf("- **User**: %s@%s\n", rec.Username, rec.Hostname))
	sb.WriteString("\n")

	return sb.String()
}
