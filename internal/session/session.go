// Package session drives a single Study, Quiz or Review pass over the deck.
//
// All three modes share one shape: a working deck, a position into it, a
// per-pass tally and a phase. Engines are not safe for concurrent use; a
// front-end is expected to serialize calls.
package session

import (
	"errors"
	"math/rand/v2"

	"github.com/conorfennell/tarjeta/internal/domain"
)

var (
	ErrNotInProgress   = errors.New("session: not in progress")
	ErrNotFlipped      = errors.New("session: card must be flipped before it is assessed")
	ErrAlreadyAnswered = errors.New("session: question already answered")
	ErrNotAnswered     = errors.New("session: question not answered yet")
	ErrQuizUnavailable = errors.New("session: quiz needs at least 4 cards")
	ErrInvalidOrder    = errors.New("session: invalid quiz order")
)

// Phase is the state of an engine.
type Phase int

const (
	// Setup is the quiz settings screen.
	Setup Phase = iota
	InProgress
	Complete
	// Empty is a terminal gate: no cards to study, fewer than four cards for
	// a quiz, or nothing to review. No tallies are ever kept in it.
	Empty
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "setup"
	case InProgress:
		return "in progress"
	case Complete:
		return "complete"
	case Empty:
		return "empty"
	}
	return "unknown"
}

// Recorder appends assessed attempts to the history log.
type Recorder interface {
	AddRecord(cardID string, result domain.Result) ([]domain.SessionRecord, error)
}

// Summary is the tally of one pass.
type Summary struct {
	Correct   int
	Incorrect int
}

// Total is the number of assessed cards.
func (s Summary) Total() int {
	return s.Correct + s.Incorrect
}

func (s *Summary) add(r domain.Result) {
	if r == domain.Correct {
		s.Correct++
	} else {
		s.Incorrect++
	}
}

type options struct {
	rng *rand.Rand
}

// Option configures an engine.
type Option func(*options)

// WithRand sets the random source used for shuffling.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return o
}

// shuffled returns a uniformly random permutation of in, leaving in untouched.
func shuffled[T any](r *rand.Rand, in []T) []T {
	out := append([]T(nil), in...)
	r.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// pass is the flip-and-assess flow shared by Study and Review.
type pass struct {
	rec     Recorder
	deck    []domain.Card
	pos     int
	flipped bool
	tally   Summary
	phase   Phase
}

func (p *pass) begin(deck []domain.Card) {
	p.deck = deck
	p.pos = 0
	p.flipped = false
	p.tally = Summary{}
	if len(deck) == 0 {
		p.phase = Empty
		return
	}
	p.phase = InProgress
}

// Phase returns the current phase.
func (p *pass) Phase() Phase { return p.phase }

// Current returns the card being studied.
func (p *pass) Current() (domain.Card, bool) {
	if p.phase != InProgress {
		return domain.Card{}, false
	}
	return p.deck[p.pos], true
}

// Progress returns the zero-based position and the working deck size.
func (p *pass) Progress() (int, int) { return p.pos, len(p.deck) }

// Flipped reports whether the current card shows its English side.
func (p *pass) Flipped() bool { return p.flipped }

// Flip toggles the visible face of the current card.
func (p *pass) Flip() {
	if p.phase == InProgress {
		p.flipped = !p.flipped
	}
}

// Summary returns the tally so far.
func (p *pass) Summary() Summary { return p.tally }

// Assess records the learner's verdict on the current card and advances.
func (p *pass) Assess(result domain.Result) error {
	if p.phase != InProgress {
		return ErrNotInProgress
	}
	if !p.flipped {
		return ErrNotFlipped
	}
	if _, err := p.rec.AddRecord(p.deck[p.pos].ID, result); err != nil {
		return err
	}
	p.tally.add(result)
	p.pos++
	p.flipped = false
	if p.pos >= len(p.deck) {
		p.phase = Complete
	}
	return nil
}
