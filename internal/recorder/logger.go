package recorder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/reclog/internal/prompt"
	"github.com/roach88/reclog/internal/timefmt"
)

// KeyFunc derives the key for a log entry written at the given time.
type KeyFunc func(at time.Time) string

// TimeKey keys an entry by its ISO time, "2006-01-02 15:04:05".
// Two entries logged in the same second share a key, so the later one
// replaces the earlier.
func TimeKey(at time.Time) string {
	return timefmt.ISOTime(at)
}

// UniqueTimeKey keys an entry by its ISO time followed by a UUIDv7.
// Keys still sort by time, and entries in the same second stay distinct.
func UniqueTimeKey(at time.Time) string {
	return timefmt.ISOTime(at) + " " + uuid.Must(uuid.NewV7()).String()
}

// Logger adds log-style operations to a RecordStore.
type Logger struct {
	RecordStore

	prompt prompt.Prompter
	key    KeyFunc
	logger *slog.Logger
}

// NewLogger wraps records. p is asked to confirm deletions. A nil key
// selects TimeKey.
func NewLogger(records RecordStore, p prompt.Prompter, key KeyFunc) *Logger {
	if key == nil {
		key = TimeKey
	}
	return &Logger{
		RecordStore: records,
		prompt:      p,
		key:         key,
		logger:      slog.Default().With("component", "logger"),
	}
}

// Log stores text under a key derived from at and returns the key.
func (l *Logger) Log(ctx context.Context, at time.Time, text string) (string, error) {
	key := l.key(at)
	if err := l.Add(ctx, key, []byte(text)); err != nil {
		return "", err
	}
	return key, nil
}

// DelLast deletes the record with the greatest key after the user confirms.
//
// With no records it returns at once without prompting. The prompt shows
// the record's value and defaults to "n"; only "y" or "Y" deletes. A
// declined prompt is not an error: DelLast reports false and a nil error.
func (l *Logger) DelLast(ctx context.Context) (bool, error) {
	rec, ok, err := l.Last(ctx)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	answer, err := l.prompt.ReadString(fmt.Sprintf("%s\nconfirm? [n] ", rec.Value), "n")
	if err != nil {
		return false, fmt.Errorf("confirm delete %q: %w", rec.Key, err)
	}
	if answer != "y" && answer != "Y" {
		l.logger.Debug("delete declined", "key", rec.Key)
		return false, nil
	}

	if err := l.Delete(ctx, rec.Key); err != nil {
		return false, err
	}
	l.logger.Info("last record deleted", "key", rec.Key)
	return true, nil
}
