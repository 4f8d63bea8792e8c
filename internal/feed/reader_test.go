package feed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/tourcrawl/internal/feed"
	"github.com/jonesrussell/tourcrawl/internal/logger"
)

func TestReader_ReadAll(t *testing.T) {
	src := strings.NewReader(`
{"name": "義民祭", "location": {"address": "新竹縣新埔鎮"}}

{"name": "燈會", "price_text": "免費"}
`)

	reader := feed.NewReader("1.0.0", logger.NewNoOp())
	activities, err := reader.ReadAll(context.Background(), src)

	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "義民祭", activities[0].Name)
	assert.Equal(t, "燈會", activities[1].Name)
}

func TestReader_SkipsMalformedLines(t *testing.T) {
	src := strings.NewReader(`{"name": "ok"}
not json at all
{"name": "also ok"}
`)

	reader := feed.NewReader("1.0.0", logger.NewNoOp())
	activities, err := reader.ReadAll(context.Background(), src)

	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "ok", activities[0].Name)
	assert.Equal(t, "also ok", activities[1].Name)
}

func TestReader_EmptySource(t *testing.T) {
	reader := feed.NewReader("1.0.0", logger.NewNoOp())
	activities, err := reader.ReadAll(context.Background(), strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, activities)
}

func TestReader_StreamStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	lines := make([]string, 0, 100)
	for range [100]struct{}{} {
		lines = append(lines, `{"name": "x"}`)
	}
	src := strings.NewReader(strings.Join(lines, "\n"))

	reader := feed.NewReader("1.0.0", logger.NewNoOp())
	stream := reader.Stream(ctx, src)

	// Take one record, then cancel; the stream must close.
	<-stream
	cancel()

	count := 0
	for range stream {
		count++
	}
	assert.Less(t, count, 100)
}
