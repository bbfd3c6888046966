// Package stats derives study statistics from the deck and the history log.
package stats

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/conorfennell/tarjeta/internal/domain"
)

const (
	// MinAttempts is how many attempts a card needs to rank as hard.
	MinAttempts = 3
	// MaxHardest bounds the hardest-cards list.
	MaxHardest = 5
)

// CardStat aggregates the attempts at one card id.
type CardStat struct {
	CardID         string       `json:"cardId"`
	Card           *domain.Card `json:"card,omitempty"` // nil when the card was deleted
	Attempts       int          `json:"attempts"`
	Correct        int          `json:"correct"`
	Incorrect      int          `json:"incorrect"`
	IncorrectRatio float64      `json:"incorrectRatio"`
}

// Label renders the incorrect ratio as a whole percentage, halves rounded up.
func (c CardStat) Label() string {
	return fmt.Sprintf("%.0f%% incorrect", roundHalfUp(c.IncorrectRatio*100, 0))
}

// roundHalfUp rounds a non-negative x to places decimals with halves going
// up. fmt and strconv round halves to even.
func roundHalfUp(x float64, places int) float64 {
	p := math.Pow10(places)
	return math.Floor(x*p+0.5) / p
}

// Report is the statistics view.
type Report struct {
	Total     int `json:"total"`
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
	// Accuracy is the correct percentage to one decimal, empty without history.
	Accuracy     string        `json:"accuracy,omitempty"`
	NeverStudied []domain.Card `json:"neverStudied"`
	Hardest      []CardStat    `json:"hardest"`
}

// AccuracyLabel renders Accuracy for display.
func (r Report) AccuracyLabel() string {
	if r.Accuracy == "" {
		return "N/A"
	}
	return r.Accuracy + "%"
}

// Compute builds a Report. It never mutates its inputs.
func Compute(cards []domain.Card, records []domain.SessionRecord) Report {
	r := Report{
		Total:        len(records),
		NeverStudied: []domain.Card{},
		Hardest:      []CardStat{},
	}

	var order []string
	groups := make(map[string]*CardStat)
	for _, rec := range records {
		g, ok := groups[rec.CardID]
		if !ok {
			g = &CardStat{CardID: rec.CardID}
			groups[rec.CardID] = g
			order = append(order, rec.CardID)
		}
		if rec.Result == domain.Correct {
			r.Correct++
			g.Correct++
		} else {
			r.Incorrect++
			g.Incorrect++
		}
	}

	if r.Total > 0 {
		pct := float64(r.Correct) / float64(r.Total) * 100
		r.Accuracy = strconv.FormatFloat(roundHalfUp(pct, 1), 'f', 1, 64)
	}

	for _, c := range cards {
		if _, studied := groups[c.ID]; !studied {
			r.NeverStudied = append(r.NeverStudied, c)
		}
	}

	for _, id := range order {
		g := groups[id]
		g.Attempts = g.Correct + g.Incorrect
		if g.Attempts < MinAttempts {
			continue
		}
		g.IncorrectRatio = float64(g.Incorrect) / float64(g.Attempts)
		r.Hardest = append(r.Hardest, *g)
	}
	sort.SliceStable(r.Hardest, func(i, j int) bool {
		return r.Hardest[i].IncorrectRatio > r.Hardest[j].IncorrectRatio
	})
	if len(r.Hardest) > MaxHardest {
		r.Hardest = r.Hardest[:MaxHardest]
	}

	byID := make(map[string]domain.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	for i := range r.Hardest {
		if c, ok := byID[r.Hardest[i].CardID]; ok {
			r.Hardest[i].Card = &c
		}
	}
	return r
}
