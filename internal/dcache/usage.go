package dcache

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
)

const usageSchemaVersion uint16 = 1

// Usage tracks how much of the daily AI budget has been spent. The
// counters reset whenever the stored day stamp no longer matches today.
type Usage struct {
	Schema uint16

	Day         string // local date, 2006-01-02
	Conversions uint64
	Tokens      uint64
}

func dayStamp(now time.Time) string {
	return now.Format("2006-01-02")
}

func (c *Cache) usagePath() string {
	return filepath.Join(c.dir, "usage.mp")
}

// LoadUsage returns today's usage counters, starting fresh when the stored
// stamp belongs to an earlier day or no record exists yet.
func (c *Cache) LoadUsage(now time.Time) (*Usage, error) {
	u := &Usage{Schema: usageSchemaVersion, Day: dayStamp(now)}
	if c == nil {
		return u, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.usagePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return u, nil
		}
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	var stored Usage
	if err := msgpack.NewDecoder(f).Decode(&stored); err != nil {
		return nil, err
	}
	if stored.Schema != usageSchemaVersion || stored.Day != u.Day {
		return u, nil
	}
	return &stored, nil
}

// Charge records one conversion of the given token estimate against
// today's counters and persists the result.
func (c *Cache) Charge(now time.Time, tokens int) (*Usage, error) {
	n, err := safecast.Conv[uint64](tokens)
	if err != nil {
		return nil, err
	}
	u, err := c.LoadUsage(now)
	if err != nil {
		return nil, err
	}
	u.Conversions++
	u.Tokens += n
	if c == nil {
		return u, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return nil, err
	}
	if err := writeAtomic(c.usagePath(), u); err != nil {
		return nil, err
	}
	return u, nil
}
