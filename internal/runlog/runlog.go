// Package runlog maintains the durable, append-only textual record of
// a pipeline run on the staging store. The log is the sole
// failure-visibility channel: every stage transition and every
// per-table failure lands here.
package runlog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dmitrijs2005/trelloetl/internal/logging"
	"github.com/dmitrijs2005/trelloetl/internal/staging"
)

// stampLayout matches the historical log format.
const stampLayout = "01/02/2006 03:04 PM"

const separator = "********************************************************************************************"

// Log appends entries to a single text object via read-modify-write.
// A failure to persist an entry is reported to the process logger and
// otherwise swallowed: the run log must never take the run down.
type Log struct {
	store  staging.Store
	path   string
	logger logging.Logger
	now    func() time.Time
}

// New builds a Log writing to path on store.
func New(store staging.Store, path string, logger logging.Logger) *Log {
	return &Log{store: store, path: path, logger: logger, now: time.Now}
}

// SetClock overrides the timestamp source.
func (l *Log) SetClock(now func() time.Time) {
	l.now = now
}

// Append adds one timestamped entry.
func (l *Log) Append(ctx context.Context, msg string) {
	stamp := l.now().Format(stampLayout)
	l.appendRaw(ctx, "\r\n"+stamp+" -> "+msg)
}

// End adds an optional final timestamped entry followed by the
// separator line that closes the run.
func (l *Log) End(ctx context.Context, msg string) {
	var b strings.Builder
	if msg != "" {
		b.WriteString("\r\n" + l.now().Format(stampLayout) + " -> " + msg)
	}
	b.WriteString("\r\n" + separator)
	l.appendRaw(ctx, b.String())
}

func (l *Log) appendRaw(ctx context.Context, text string) {
	current, err := l.store.Read(ctx, l.path)
	if err != nil && !errors.Is(err, staging.ErrNotFound) {
		l.logger.Error(ctx, "run log read failed", "path", l.path, "error", err)
		return
	}
	if err := l.store.Write(ctx, l.path, append(current, []byte(text)...)); err != nil {
		l.logger.Error(ctx, "run log write failed", "path", l.path, "error", err)
	}
}
