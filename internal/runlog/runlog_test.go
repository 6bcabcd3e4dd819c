package runlog

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/staging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.May, 10, 14, 30, 0, 0, time.UTC)
	}
}

func TestAppend_CreatesAndStamps(t *testing.T) {
	ctx := context.Background()
	store := staging.NewMemoryStore()
	l := New(store, staging.LogPath, testLogger())
	l.SetClock(fixedClock())

	l.Append(ctx, "Trello ETL run started.")

	data, err := store.Read(ctx, staging.LogPath)
	require.NoError(t, err)
	assert.Equal(t, "\r\n05/10/2024 02:30 PM -> Trello ETL run started.", string(data))
}

func TestAppend_PreservesExistingContent(t *testing.T) {
	ctx := context.Background()
	store := staging.NewMemoryStore()
	require.NoError(t, store.Write(ctx, staging.LogPath, []byte("history")))

	l := New(store, staging.LogPath, testLogger())
	l.SetClock(fixedClock())
	l.Append(ctx, "new entry")

	data, err := store.Read(ctx, staging.LogPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "history"))
	assert.Contains(t, string(data), "new entry")
}

func TestEnd_AppendsSeparator(t *testing.T) {
	ctx := context.Background()
	store := staging.NewMemoryStore()
	l := New(store, staging.LogPath, testLogger())
	l.SetClock(fixedClock())

	l.End(ctx, "Trello ETL run finished.")

	data, err := store.Read(ctx, staging.LogPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Trello ETL run finished.")
	assert.True(t, strings.HasSuffix(text, strings.Repeat("*", 92)))
}

func TestEnd_WithoutMessageOnlySeparator(t *testing.T) {
	ctx := context.Background()
	store := staging.NewMemoryStore()
	l := New(store, staging.LogPath, testLogger())
	l.SetClock(fixedClock())

	l.End(ctx, "")

	data, err := store.Read(ctx, staging.LogPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "->")
}

func TestAppend_StoreFailureDoesNotPanic(t *testing.T) {
	ctx := context.Background()
	store := staging.NewMemoryStore()
	store.FailWrites(staging.LogPath, errors.New("store down"))

	l := New(store, staging.LogPath, testLogger())
	l.SetClock(fixedClock())

	assert.NotPanics(t, func() { l.Append(ctx, "entry") })
}
