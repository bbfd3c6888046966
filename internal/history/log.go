// Package history keeps the append-only log of study attempts and the
// watermark marking when the most recent Study session began.
package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/conorfennell/tarjeta/internal/domain"
	"github.com/conorfennell/tarjeta/internal/storage"
)

var (
	ErrInvalidResult   = errors.New("history: invalid result")
	ErrMalformedLog    = errors.New("history: persisted log is malformed")
	ErrMalformedMarker = errors.New("history: persisted session start is malformed")
)

// Log is the history of assessed attempts. It is not safe for concurrent use.
type Log struct {
	kv      storage.KV
	records []domain.SessionRecord
	now     func() time.Time
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the clock used for record timestamps and the watermark.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// Open loads the persisted log from kv. A missing log is empty.
func Open(kv storage.KV, opts ...Option) (*Log, error) {
	l := &Log{kv: kv, now: domain.Now}
	for _, opt := range opts {
		opt(l)
	}

	raw, ok, err := kv.Get(storage.HistoryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if ok {
		if err := json.Unmarshal([]byte(raw), &l.records); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedLog, err)
		}
	}
	return l, nil
}

// Records returns a snapshot of the log in append order.
func (l *Log) Records() []domain.SessionRecord {
	return append([]domain.SessionRecord(nil), l.records...)
}

// AddRecord appends an attempt for cardID and persists the full log.
// The card id is not checked against the deck.
func (l *Log) AddRecord(cardID string, result domain.Result) ([]domain.SessionRecord, error) {
	if !result.Valid() {
		return l.Records(), fmt.Errorf("%w: %q", ErrInvalidResult, result)
	}

	updated := append(l.Records(), domain.SessionRecord{
		CardID:    cardID,
		Result:    result,
		Timestamp: l.now(),
	})
	raw, err := json.Marshal(updated)
	if err != nil {
		return l.Records(), fmt.Errorf("failed to encode history: %w", err)
	}
	if err := l.kv.Set(storage.HistoryKey, string(raw)); err != nil {
		return l.Records(), fmt.Errorf("failed to save history: %w", err)
	}
	l.records = updated
	return l.Records(), nil
}

// MarkSessionStart records now as the start of the latest Study session.
func (l *Log) MarkSessionStart() error {
	if err := l.kv.Set(storage.SessionStartKey, domain.FormatTimestamp(l.now())); err != nil {
		return fmt.Errorf("failed to save session start: %w", err)
	}
	return nil
}

// SessionStart returns the persisted watermark, if any.
func (l *Log) SessionStart() (time.Time, bool, error) {
	raw, ok, err := l.kv.Get(storage.SessionStartKey)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to read session start: %w", err)
	}
	if !ok {
		return time.Time{}, false, nil
	}
	t, err := domain.ParseTimestamp(raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %v", ErrMalformedMarker, err)
	}
	return t, true, nil
}

// LastSessionRecords returns the records at or after the watermark, in
// append order. Without a watermark it returns nothing.
//
// The watermark is a range boundary, not a session id: two sessions started
// within the same millisecond cannot be told apart.
func (l *Log) LastSessionRecords() ([]domain.SessionRecord, error) {
	start, ok, err := l.SessionStart()
	if err != nil || !ok {
		return nil, err
	}

	var out []domain.SessionRecord
	for _, r := range l.records {
		if !r.Timestamp.Before(start) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Clear removes the log and the watermark.
func (l *Log) Clear() error {
	if err := l.kv.Remove(storage.HistoryKey); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	l.records = nil
	if err := l.kv.Remove(storage.SessionStartKey); err != nil {
		return fmt.Errorf("failed to clear session start: %w", err)
	}
	return nil
}
