// ABOUTME: Grid backup to Charm KV
// ABOUTME: Stores the TOML document and push metadata under fixed keys
package charm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harper/tally/internal/grid"
	"github.com/harper/tally/internal/store"
)

const (
	// GridKey holds the encoded grid document.
	GridKey = "grid"

	// MetaKey holds PushMeta for the last push.
	MetaKey = "grid:meta"
)

// PushMeta records when and from where the grid was last pushed.
type PushMeta struct {
	PushedAt time.Time `json:"pushed_at"`
	Hostname string    `json:"hostname"`
	Classes  int       `json:"classes"`
	Rows     int       `json:"rows"`
}

// PushGrid uploads d and its metadata, then syncs.
func (c *Client) PushGrid(d *grid.Data, hostname string) (*PushMeta, error) {
	doc, metaJSON, meta, err := encodePush(d, hostname, time.Now())
	if err != nil {
		return nil, err
	}

	if err := c.Set([]byte(GridKey), doc); err != nil {
		return nil, fmt.Errorf("push grid: %w", err)
	}
	if err := c.Set([]byte(MetaKey), metaJSON); err != nil {
		return nil, fmt.Errorf("push metadata: %w", err)
	}
	if !c.autoSync {
		if err := c.Sync(); err != nil {
			return nil, fmt.Errorf("sync: %w", err)
		}
	}
	return meta, nil
}

// PullGrid syncs and decodes the remote grid.
func (c *Client) PullGrid() (*grid.Data, error) {
	if err := c.Sync(); err != nil {
		return nil, fmt.Errorf("sync: %w", err)
	}

	raw, err := c.Get([]byte(GridKey))
	if err != nil {
		return nil, fmt.Errorf("pull grid: %w", err)
	}
	return decodeGrid(raw)
}

// LastPush returns metadata for the latest push, or nil if none exists.
func (c *Client) LastPush() (*PushMeta, error) {
	return lastPush(c.Get)
}

func encodePush(d *grid.Data, hostname string, at time.Time) (doc, metaJSON []byte, meta *PushMeta, err error) {
	var buf bytes.Buffer
	if err := store.Encode(&buf, d); err != nil {
		return nil, nil, nil, err
	}

	meta = &PushMeta{
		PushedAt: at,
		Hostname: hostname,
		Classes:  len(d.Classes),
		Rows:     d.Rows(),
	}
	metaJSON, err = json.Marshal(meta)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("marshal: %w", err)
	}
	return buf.Bytes(), metaJSON, meta, nil
}

func decodeGrid(raw []byte) (*grid.Data, error) {
	d, err := store.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode remote grid: %w", err)
	}
	return d, nil
}

func lastPush(get func(key []byte) ([]byte, error)) (*PushMeta, error) {
	raw, err := get([]byte(MetaKey))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var meta PushMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("decode push metadata: %w", err)
	}
	return &meta, nil
}
