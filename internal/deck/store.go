// Package deck owns the learner's collection of cards and persists it
// as a single JSON document on every mutation.
package deck

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/conorfennell/tarjeta/internal/domain"
	"github.com/conorfennell/tarjeta/internal/storage"
)

// Store is the authoritative deck. It is not safe for concurrent use.
type Store struct {
	kv       storage.KV
	cards    []domain.Card
	now      func() time.Time
	newID    func() string
	validate *validator.Validate
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides how new card ids are generated.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// cardFields carries trimmed user input through validation.
type cardFields struct {
	Spanish string `validate:"required"`
	English string `validate:"required"`
}

// Load returns the persisted deck, or writes and returns the bundled seed
// deck when nothing has been persisted yet.
func Load(kv storage.KV) ([]domain.Card, error) {
	raw, ok, err := kv.Get(storage.DeckKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read deck: %w", err)
	}
	if !ok {
		seed := domain.SeedCards()
		if err := save(kv, seed); err != nil {
			return nil, err
		}
		return seed, nil
	}

	var cards []domain.Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDeck, err)
	}
	return cards, nil
}

// Open loads the deck from kv into a new Store.
func Open(kv storage.KV, opts ...Option) (*Store, error) {
	cards, err := Load(kv)
	if err != nil {
		return nil, err
	}
	s := &Store{
		kv:       kv,
		cards:    cards,
		now:      domain.Now,
		newID:    uuid.NewString,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Cards returns a snapshot of the deck in insertion order.
func (s *Store) Cards() []domain.Card {
	return append([]domain.Card(nil), s.cards...)
}

// Find looks up a card by id.
func (s *Store) Find(id string) (domain.Card, bool) {
	for _, c := range s.cards {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Card{}, false
}

// Add appends a new card with a fresh id.
func (s *Store) Add(spanish, english string) ([]domain.Card, error) {
	f, err := s.check(spanish, english)
	if err != nil {
		return s.Cards(), err
	}

	card := domain.Card{
		ID:        s.newID(),
		Spanish:   f.Spanish,
		English:   f.English,
		CreatedAt: s.now(),
	}
	updated := append(s.Cards(), card)
	return s.commit(updated)
}

// Edit replaces the text of the card with the given id. An unknown id leaves
// the deck unchanged but it is still persisted.
func (s *Store) Edit(id, spanish, english string) ([]domain.Card, error) {
	f, err := s.check(spanish, english)
	if err != nil {
		return s.Cards(), err
	}

	updated := s.Cards()
	for i := range updated {
		if updated[i].ID == id {
			updated[i].Spanish = f.Spanish
			updated[i].English = f.English
		}
	}
	return s.commit(updated)
}

// Delete removes the card with the given id, if present.
func (s *Store) Delete(id string) ([]domain.Card, error) {
	updated := make([]domain.Card, 0, len(s.cards))
	for _, c := range s.cards {
		if c.ID != id {
			updated = append(updated, c)
		}
	}
	return s.commit(updated)
}

func (s *Store) check(spanish, english string) (cardFields, error) {
	f := cardFields{
		Spanish: strings.TrimSpace(spanish),
		English: strings.TrimSpace(english),
	}
	err := s.validate.Struct(f)
	if err == nil {
		return f, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return f, fmt.Errorf("failed to validate card: %w", err)
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, strings.ToLower(fe.Field()))
	}
	return f, ve
}

// commit persists updated and only then makes it the in-memory deck.
func (s *Store) commit(updated []domain.Card) ([]domain.Card, error) {
	if err := save(s.kv, updated); err != nil {
		return s.Cards(), err
	}
	s.cards = updated
	return s.Cards(), nil
}

func save(kv storage.KV, cards []domain.Card) error {
	if cards == nil {
		cards = []domain.Card{}
	}
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("failed to encode deck: %w", err)
	}
	if err := kv.Set(storage.DeckKey, string(raw)); err != nil {
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}
