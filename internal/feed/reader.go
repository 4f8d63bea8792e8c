package feed

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonesrussell/tourcrawl/internal/domain"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

// maxLineBytes bounds one NDJSON line; descriptions can get long.
const maxLineBytes = 1 << 20

// Reader streams raw records from an NDJSON source.
type Reader struct {
	crawlerVersion string
	logger         logger.Interface
}

// NewReader creates a reader. crawlerVersion is stamped on records whose
// source block carries none.
func NewReader(crawlerVersion string, log logger.Interface) *Reader {
	return &Reader{
		crawlerVersion: crawlerVersion,
		logger:         log.WithComponent("feed"),
	}
}

// Stream decodes records line by line onto the returned channel, closing
// it at EOF or on context cancellation. Malformed lines are logged and
// skipped; they never stop the stream.
func (r *Reader) Stream(ctx context.Context, src io.Reader) <-chan *domain.Activity {
	out := make(chan *domain.Activity)

	go func() {
		defer close(out)

		scanner := bufio.NewScanner(src)
		scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineBytes)

		line := 0
		for scanner.Scan() {
			line++
			raw := bytes.TrimSpace(scanner.Bytes())
			if len(raw) == 0 {
				continue
			}

			var record RawRecord
			if err := json.Unmarshal(raw, &record); err != nil {
				r.logger.Warn("skipping malformed record", "line", line, "error", err)
				continue
			}

			select {
			case out <- record.ToActivity(r.crawlerVersion):
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			r.logger.Error("feed read failed", "line", line, "error", err)
		}
	}()

	return out
}

// ReadAll decodes an entire NDJSON source into memory. Intended for tests
// and small feeds.
func (r *Reader) ReadAll(ctx context.Context, src io.Reader) ([]*domain.Activity, error) {
	var activities []*domain.Activity
	for activity := range r.Stream(ctx, src) {
		activities = append(activities, activity)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("feed read cancelled: %w", err)
	}
	return activities, nil
}
