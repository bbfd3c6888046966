package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/conorfennell/tarjeta/internal/stats"
)

// Stats prints the statistics view.
func (a *App) Stats() error {
	r := stats.Compute(a.deck.Cards(), a.history.Records())
	if r.Total == 0 {
		a.printf("No study history yet. Study some cards to see your stats.\n")
		return nil
	}

	a.printf("Total Studied: %d\nCorrect:       %d\nIncorrect:     %d\nAccuracy:      %s\n",
		r.Total, r.Correct, r.Incorrect, r.AccuracyLabel())

	a.printf("\nCards Never Studied (%d)\n", len(r.NeverStudied))
	if len(r.NeverStudied) == 0 {
		a.printf("  You've studied every card!\n")
	}
	for _, c := range r.NeverStudied {
		a.printf("  %s = %s\n", c.Spanish, c.English)
	}

	a.printf("\nHardest Cards (top %d with >= %d attempts)\n", stats.MaxHardest, stats.MinAttempts)
	if len(r.Hardest) == 0 {
		a.printf("  Not enough data yet.\n")
		return nil
	}
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, h := range r.Hardest {
		name := "(deleted card)"
		if h.Card != nil {
			name = h.Card.Spanish + " = " + h.Card.English
		}
		fmt.Fprintf(tw, "  %s\t%d attempts\t%s\n", name, h.Attempts, h.Label())
	}
	return tw.Flush()
}
