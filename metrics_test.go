package notesync

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/hupe1980/notesync/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	m := &BasicMetricsCollector{}
	boom := errors.New("boom")

	m.RecordLoad(time.Millisecond, 3, nil)
	m.RecordSave(2*time.Millisecond, 100, nil)
	m.RecordSave(4*time.Millisecond, 50, boom)
	m.RecordMutation("add", true, nil)
	m.RecordMutation("delete", false, nil)
	m.RecordMutation("add", false, boom)
	m.RecordCoalesced()

	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.LoadCount)
	assert.Equal(t, int64(0), stats.LoadErrors)
	assert.Equal(t, int64(2), stats.SaveCount)
	assert.Equal(t, int64(1), stats.SaveErrors)
	assert.Equal(t, int64(150), stats.SaveBytes)
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.SaveAvgNanos)
	assert.Equal(t, int64(3), stats.MutationCount)
	assert.Equal(t, int64(1), stats.MutationNoops)
	assert.Equal(t, int64(1), stats.MutationErrors)
	assert.Equal(t, int64(1), stats.CoalescedCount)

	assert.Zero(t, (&BasicMetricsCollector{}).GetStats().SaveAvgNanos)
}

func TestStore_LogsOperations(t *testing.T) {
	ctx := waitCtx(t)
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, tr := newLoadedStore(t, `[]`, WithLogger(logger))
	tr.SetPutStatus(500)

	id, res := s.Add(model.Note{Width: 1, Height: 1, Text: "a"})
	require.Error(t, res.Wait(ctx))
	require.NoError(t, s.Close())

	out := buf.String()
	assert.Contains(t, out, `"msg":"load completed"`)
	assert.Contains(t, out, `"msg":"mutation applied"`)
	assert.Contains(t, out, `"msg":"save failed"`)
	assert.Contains(t, out, id.String())
	assert.Contains(t, out, `"url":"`+testURL+`"`)
}

func TestOptions(t *testing.T) {
	o := applyOptions(nil)
	assert.Equal(t, DefaultLoadTimeout, o.loadTimeout)
	assert.Equal(t, DefaultSaveTimeout, o.saveTimeout)
	assert.NotNil(t, o.hub)
	assert.NotNil(t, o.codec)
	assert.False(t, o.createIfMissing)

	o = applyOptions([]Option{
		WithLoadTimeout(time.Second),
		WithSaveTimeout(-1),
		WithCodec(nil),
		WithLogger(nil),
		WithMetricsCollector(nil),
		WithLogLevel(slog.LevelWarn),
		nil,
	})
	assert.Equal(t, time.Second, o.loadTimeout)
	assert.Equal(t, DefaultSaveTimeout, o.saveTimeout)
	assert.NotNil(t, o.codec)
	assert.NotNil(t, o.logger)
	assert.IsType(t, NoopMetricsCollector{}, o.metricsCollector)

	NoopLogger().LogLoad(context.Background(), 0, 0, nil)
}
