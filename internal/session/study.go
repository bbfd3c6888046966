package session

import (
	"math/rand/v2"

	"github.com/conorfennell/tarjeta/internal/domain"
)

// StudyLog is the part of the history log a Study session needs.
type StudyLog interface {
	Recorder
	MarkSessionStart() error
}

// Study walks the whole deck in a random order, self-assessed.
type Study struct {
	pass
	log   StudyLog
	cards []domain.Card
	rng   *rand.Rand
}

// NewStudy starts a Study session over cards. Starting a session marks the
// watermark even when the deck is empty.
func NewStudy(cards []domain.Card, log StudyLog, opts ...Option) (*Study, error) {
	o := buildOptions(opts)
	s := &Study{
		pass:  pass{rec: log},
		log:   log,
		cards: append([]domain.Card(nil), cards...),
		rng:   o.rng,
	}
	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart reshuffles the deck, marks a new watermark and resets the tally.
func (s *Study) Restart() error {
	if err := s.log.MarkSessionStart(); err != nil {
		return err
	}
	s.begin(shuffled(s.rng, s.cards))
	return nil
}
