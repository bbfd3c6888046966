// Package cli is the terminal front-end: card management, the three study
// modes and the statistics view, driven over an io.Reader and io.Writer.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"text/tabwriter"

	"github.com/conorfennell/tarjeta/internal/deck"
	"github.com/conorfennell/tarjeta/internal/history"
	"github.com/conorfennell/tarjeta/internal/session"
)

// App wires the stores to a terminal.
type App struct {
	deck      *deck.Store
	history   *history.Log
	in        *bufio.Scanner
	out       io.Writer
	quizOrder session.Order
	rng       *rand.Rand
}

// Option configures an App.
type Option func(*App)

// WithQuizOrder sets the order preselected on the quiz setup screen.
func WithQuizOrder(o session.Order) Option {
	return func(a *App) { a.quizOrder = o }
}

// WithRand fixes the random source for shuffles.
func WithRand(r *rand.Rand) Option {
	return func(a *App) { a.rng = r }
}

// New returns an App reading answers from in and writing to out.
func New(d *deck.Store, h *history.Log, in io.Reader, out io.Writer, opts ...Option) *App {
	a := &App{
		deck:      d,
		history:   h,
		in:        bufio.NewScanner(in),
		out:       out,
		quizOrder: session.Random,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) sessionOptions() []session.Option {
	if a.rng == nil {
		return nil
	}
	return []session.Option{session.WithRand(a.rng)}
}

// prompt prints label and reads one trimmed line. ok is false at EOF.
func (a *App) prompt(label string) (string, bool) {
	fmt.Fprintf(a.out, "%s ", label)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return strings.TrimSpace(a.in.Text()), true
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// List prints the deck as a table.
func (a *App) List() error {
	cards := a.deck.Cards()
	if len(cards) == 0 {
		a.printf("No cards in your deck yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSPANISH\tENGLISH")
	for _, c := range cards {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Spanish, c.English)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	a.printf("%d cards\n", len(cards))
	return nil
}

// Add creates a card. Validation failures are reported, not returned.
func (a *App) Add(spanish, english string) error {
	cards, err := a.deck.Add(spanish, english)
	if a.reported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	c := cards[len(cards)-1]
	a.printf("Added %s: %s = %s\n", c.ID, c.Spanish, c.English)
	return nil
}

// Edit changes a card's text.
func (a *App) Edit(id, spanish, english string) error {
	_, err := a.deck.Edit(id, spanish, english)
	if a.reported(err) {
		return nil
	}
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", id)
	return nil
}

// Delete removes a card.
func (a *App) Delete(id string) error {
	if _, err := a.deck.Delete(id); err != nil {
		return err
	}
	a.printf("Deleted %s\n", id)
	return nil
}

// ClearHistory wipes the history after confirmation.
func (a *App) ClearHistory() error {
	answer, _ := a.prompt("Clear all study history? This cannot be undone. [y/N]")
	if !strings.EqualFold(answer, "y") {
		a.printf("Kept history.\n")
		return nil
	}
	if err := a.history.Clear(); err != nil {
		return err
	}
	a.printf("History cleared.\n")
	return nil
}

func (a *App) reported(err error) bool {
	var ve *deck.ValidationError
	if errors.As(err, &ve) {
		a.printf("Both Spanish and English fields are required.\n")
		return true
	}
	return false
}
