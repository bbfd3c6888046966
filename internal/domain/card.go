package domain

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"time"
)

// TimestampLayout is the ISO-8601 form used for persisted timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Card is a single Spanish/English word pair in the deck.
type Card struct {
	ID        string    `json:"id"`
	Spanish   string    `json:"spanish"`
	English   string    `json:"english"`
	CreatedAt time.Time `json:"createdAt"`
}

// Result is the outcome of a single assessed attempt.
type Result string

const (
	Correct   Result = "correct"
	Incorrect Result = "incorrect"
)

// Valid reports whether r is one of the known results.
func (r Result) Valid() bool {
	return r == Correct || r == Incorrect
}

// SessionRecord records one assessed attempt at a card.
// CardID is a weak reference: the card may since have been deleted.
type SessionRecord struct {
	CardID    string    `json:"cardId"`
	Result    Result    `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalJSON writes Timestamp in TimestampLayout so stored records sort
// as strings the same way as the session start marker.
func (r SessionRecord) MarshalJSON() ([]byte, error) {
	type plain SessionRecord
	return json.Marshal(struct {
		plain
		Timestamp string `json:"timestamp"`
	}{plain(r), FormatTimestamp(r.Timestamp)})
}

// Now returns the current time in UTC at millisecond resolution,
// the precision timestamps are persisted with.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses any RFC 3339 timestamp, with or without fractional seconds.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t, nil
}

//go:embed seed_cards.json
var seedJSON []byte

// SeedCards returns a fresh copy of the bundled starter deck.
func SeedCards() []Card {
	var cards []Card
	if err := json.Unmarshal(seedJSON, &cards); err != nil {
		panic(fmt.Sprintf("domain: bundled seed deck is malformed: %v", err))
	}
	return cards
}
