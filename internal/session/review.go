package session

import (
	"github.com/conorfennell/tarjeta/internal/domain"
)

// ReviewLog is the part of the history log a Review session needs.
type ReviewLog interface {
	Recorder
	LastSessionRecords() ([]domain.SessionRecord, error)
}

// Review re-presents the cards missed in the last Study session.
// It has no restart; an Empty phase means there is nothing to review.
type Review struct {
	pass
}

// NewReview selects the cards to review and starts the pass.
func NewReview(cards []domain.Card, log ReviewLog) (*Review, error) {
	records, err := log.LastSessionRecords()
	if err != nil {
		return nil, err
	}
	r := &Review{pass: pass{rec: log}}
	r.begin(ReviewCards(cards, records))
	return r, nil
}

// ReviewCards returns, in deck order, the cards that were marked incorrect
// in records and never marked correct in the same records.
func ReviewCards(cards []domain.Card, records []domain.SessionRecord) []domain.Card {
	incorrect := make(map[string]bool)
	correct := make(map[string]bool)
	for _, r := range records {
		switch r.Result {
		case domain.Incorrect:
			incorrect[r.CardID] = true
		case domain.Correct:
			correct[r.CardID] = true
		}
	}

	var out []domain.Card
	for _, c := range cards {
		if incorrect[c.ID] && !correct[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
