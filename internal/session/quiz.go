package session

import (
	"fmt"
	"math/rand/v2"

	"github.com/conorfennell/tarjeta/internal/domain"
)

// MinQuizCards is the smallest deck a quiz can be built from: each
// question needs the correct answer plus three distractors.
const MinQuizCards = 4

const distractors = 3

// Order is how quiz questions are drawn from the deck.
type Order string

const (
	Random     Order = "random"
	Sequential Order = "sequential"
)

// ParseOrder validates s as an Order.
func ParseOrder(s string) (Order, error) {
	switch o := Order(s); o {
	case Random, Sequential:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrder, s)
}

// Settings are chosen on the quiz setup screen.
type Settings struct {
	NumQuestions int
	Order        Order
}

// Question is one multiple-choice prompt.
type Question struct {
	Card          domain.Card
	Options       []string
	CorrectAnswer string
}

// Quiz asks the learner to pick each card's English translation out of four.
type Quiz struct {
	rec       Recorder
	cards     []domain.Card
	rng       *rand.Rand
	settings  Settings
	questions []Question
	pos       int
	selected  string
	answered  bool
	tally     Summary
	phase     Phase
}

// NewQuiz opens the setup screen for a quiz over cards. Decks smaller than
// MinQuizCards put the quiz straight into the Empty phase.
func NewQuiz(cards []domain.Card, rec Recorder, opts ...Option) *Quiz {
	o := buildOptions(opts)
	q := &Quiz{
		rec:      rec,
		cards:    append([]domain.Card(nil), cards...),
		rng:      o.rng,
		settings: Settings{NumQuestions: len(cards), Order: Random},
		phase:    Setup,
	}
	if len(cards) < MinQuizCards {
		q.phase = Empty
	}
	return q
}

// Available reports whether the deck is large enough for a quiz.
func (q *Quiz) Available() bool { return len(q.cards) >= MinQuizCards }

// DeckSize is the number of cards the quiz draws from.
func (q *Quiz) DeckSize() int { return len(q.cards) }

// Settings returns the current settings.
func (q *Quiz) Settings() Settings { return q.settings }

// SetNumQuestions clamps n to [1, deck size] and stores it.
func (q *Quiz) SetNumQuestions(n int) int {
	q.settings.NumQuestions = max(1, min(n, len(q.cards)))
	return q.settings.NumQuestions
}

// SetOrder stores the question order.
func (q *Quiz) SetOrder(o Order) error {
	if _, err := ParseOrder(string(o)); err != nil {
		return err
	}
	q.settings.Order = o
	return nil
}

// Phase returns the current phase.
func (q *Quiz) Phase() Phase { return q.phase }

// Start builds the questions from the current settings and begins the quiz.
func (q *Quiz) Start() error {
	if !q.Available() {
		return ErrQuizUnavailable
	}
	q.questions = q.buildQuestions()
	q.pos = 0
	q.selected = ""
	q.answered = false
	q.tally = Summary{}
	q.phase = InProgress
	return nil
}

// Retake rebuilds the quiz from the current settings.
func (q *Quiz) Retake() error { return q.Start() }

func (q *Quiz) buildQuestions() []Question {
	ordered := q.cards
	if q.settings.Order == Random {
		ordered = shuffled(q.rng, q.cards)
	}
	n := max(1, min(q.settings.NumQuestions, len(ordered)))
	ordered = ordered[:n]

	questions := make([]Question, 0, n)
	for _, card := range ordered {
		others := make([]domain.Card, 0, len(q.cards)-1)
		for _, c := range q.cards {
			if c.ID != card.ID {
				others = append(others, c)
			}
		}
		options := []string{card.English}
		for _, c := range shuffled(q.rng, others)[:min(distractors, len(others))] {
			options = append(options, c.English)
		}
		questions = append(questions, Question{
			Card:          card,
			Options:       shuffled(q.rng, options),
			CorrectAnswer: card.English,
		})
	}
	return questions
}

// Questions returns the questions of the current attempt.
func (q *Quiz) Questions() []Question {
	return append([]Question(nil), q.questions...)
}

// Current returns the question being asked.
func (q *Quiz) Current() (Question, bool) {
	if q.phase != InProgress {
		return Question{}, false
	}
	return q.questions[q.pos], true
}

// Progress returns the zero-based position and the number of questions.
func (q *Quiz) Progress() (int, int) { return q.pos, len(q.questions) }

// Answered returns the option picked for the current question, if any.
func (q *Quiz) Answered() (string, bool) { return q.selected, q.answered }

// SelectAnswer scores option against the current question and records the
// attempt. Each question accepts one answer.
func (q *Quiz) SelectAnswer(option string) (bool, error) {
	if q.phase != InProgress {
		return false, ErrNotInProgress
	}
	if q.answered {
		return false, ErrAlreadyAnswered
	}

	cur := q.questions[q.pos]
	result := domain.Incorrect
	if option == cur.CorrectAnswer {
		result = domain.Correct
	}
	if _, err := q.rec.AddRecord(cur.Card.ID, result); err != nil {
		return false, err
	}
	q.selected = option
	q.answered = true
	q.tally.add(result)
	return result == domain.Correct, nil
}

// Next moves past an answered question; after the last one the quiz is Complete.
func (q *Quiz) Next() error {
	if q.phase != InProgress {
		return ErrNotInProgress
	}
	if !q.answered {
		return ErrNotAnswered
	}
	q.pos++
	q.selected = ""
	q.answered = false
	if q.pos >= len(q.questions) {
		q.phase = Complete
	}
	return nil
}

// Summary returns the tally so far.
func (q *Quiz) Summary() Summary { return q.tally }
