package session

import (
	"errors"
	"testing"

	"github.com/conorfennell/tarjeta/internal/domain"
)

func TestQuizGate(t *testing.T) {
	testCases := []struct {
		name      string
		deckSize  int
		available bool
		phase     Phase
	}{
		{"empty deck", 0, false, Empty},
		{"three cards", 3, false, Empty},
		{"four cards", 4, true, Setup},
		{"many cards", 25, true, Setup},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := NewQuiz(makeCards(tc.deckSize), &fakeLog{}, seeded())
			if q.Available() != tc.available {
				t.Errorf("Expected Available() = %v", tc.available)
			}
			if q.Phase() != tc.phase {
				t.Errorf("Expected phase %v, got %v", tc.phase, q.Phase())
			}
			err := q.Start()
			if !tc.available && !errors.Is(err, ErrQuizUnavailable) {
				t.Errorf("Expected ErrQuizUnavailable, got %v", err)
			}
			if tc.available && err != nil {
				t.Errorf("Start() returned an unexpected error: %v", err)
			}
		})
	}
}

func TestQuizSetNumQuestions(t *testing.T) {
	q := NewQuiz(makeCards(4), &fakeLog{}, seeded())
	if n := q.Settings().NumQuestions; n != 4 {
		t.Errorf("Expected default of deck size 4, got %d", n)
	}
	if q.Settings().Order != Random {
		t.Errorf("Expected random order by default, got %q", q.Settings().Order)
	}

	testCases := []struct {
		in, want int
	}{
		{0, 1},
		{-5, 1},
		{1, 1},
		{3, 3},
		{4, 4},
		{99, 4},
	}
	for _, tc := range testCases {
		if got := q.SetNumQuestions(tc.in); got != tc.want {
			t.Errorf("SetNumQuestions(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestQuizSetOrder(t *testing.T) {
	q := NewQuiz(makeCards(4), &fakeLog{}, seeded())
	if err := q.SetOrder(Sequential); err != nil {
		t.Fatalf("SetOrder() returned an unexpected error: %v", err)
	}
	if err := q.SetOrder(Order("alphabetical")); !errors.Is(err, ErrInvalidOrder) {
		t.Errorf("Expected ErrInvalidOrder, got %v", err)
	}
	if q.Settings().Order != Sequential {
		t.Error("Expected a rejected order to leave the setting unchanged")
	}
}

func TestQuizOptionIntegrity(t *testing.T) {
	cards := makeCards(8)
	q := NewQuiz(cards, &fakeLog{}, seeded())
	if err := q.Start(); err != nil {
		t.Fatalf("Start() returned an unexpected error: %v", err)
	}

	questions := q.Questions()
	if len(questions) != len(cards) {
		t.Fatalf("Expected %d questions, got %d", len(cards), len(questions))
	}
	for _, question := range questions {
		if question.CorrectAnswer != question.Card.English {
			t.Errorf("Correct answer %q does not match card %q", question.CorrectAnswer, question.Card.English)
		}
		if len(question.Options) != 4 {
			t.Fatalf("Expected 4 options, got %d", len(question.Options))
		}
		seen := make(map[string]int)
		for _, o := range question.Options {
			seen[o]++
		}
		if seen[question.CorrectAnswer] != 1 {
			t.Errorf("Expected the correct answer exactly once, got %d", seen[question.CorrectAnswer])
		}
		if len(seen) != 4 {
			t.Errorf("Expected 4 distinct options, got %v", question.Options)
		}
	}
}

func TestQuizSequential(t *testing.T) {
	cards := makeCards(6)
	q := NewQuiz(cards, &fakeLog{}, seeded())
	q.SetOrder(Sequential)
	q.SetNumQuestions(3)
	q.Start()

	questions := q.Questions()
	if len(questions) != 3 {
		t.Fatalf("Expected 3 questions, got %d", len(questions))
	}
	for i, question := range questions {
		if question.Card.ID != cards[i].ID {
			t.Errorf("Question %d: expected card %s, got %s", i, cards[i].ID, question.Card.ID)
		}
	}
}

func TestQuizDuplicateEnglishNotDeduplicated(t *testing.T) {
	cards := makeCards(4)
	for i := range cards {
		cards[i].English = "same"
	}
	q := NewQuiz(cards, &fakeLog{}, seeded())
	q.Start()
	question, _ := q.Current()
	if len(question.Options) != 4 {
		t.Fatalf("Expected 4 options, got %d", len(question.Options))
	}
	for _, o := range question.Options {
		if o != "same" {
			t.Errorf("Unexpected option %q", o)
		}
	}
}

func TestQuizFlow(t *testing.T) {
	log := &fakeLog{}
	q := NewQuiz(makeCards(4), log, seeded())
	q.SetNumQuestions(2)
	q.Start()

	if err := q.Next(); !errors.Is(err, ErrNotAnswered) {
		t.Fatalf("Expected ErrNotAnswered, got %v", err)
	}

	first, _ := q.Current()
	ok, err := q.SelectAnswer(first.CorrectAnswer)
	if err != nil || !ok {
		t.Fatalf("Expected a correct answer, got ok=%v err=%v", ok, err)
	}
	if _, err := q.SelectAnswer("anything"); !errors.Is(err, ErrAlreadyAnswered) {
		t.Fatalf("Expected ErrAlreadyAnswered, got %v", err)
	}
	if len(log.records) != 1 {
		t.Fatalf("Expected the answer to be recorded immediately, got %d records", len(log.records))
	}
	if sel, answered := q.Answered(); !answered || sel != first.CorrectAnswer {
		t.Errorf("Expected answered with %q, got %q %v", first.CorrectAnswer, sel, answered)
	}
	q.Next()

	second, _ := q.Current()
	wrong := ""
	for _, o := range second.Options {
		if o != second.CorrectAnswer {
			wrong = o
			break
		}
	}
	ok, err = q.SelectAnswer(wrong)
	if err != nil || ok {
		t.Fatalf("Expected an incorrect answer, got ok=%v err=%v", ok, err)
	}
	if q.Phase() != InProgress {
		t.Fatal("Expected the quiz to wait for Next before completing")
	}
	q.Next()

	if q.Phase() != Complete {
		t.Fatalf("Expected Complete, got %v", q.Phase())
	}
	sum := q.Summary()
	if sum.Correct != 1 || sum.Incorrect != 1 || sum.Total() != 2 {
		t.Errorf("Unexpected summary: %+v", sum)
	}
	if log.records[0].CardID != first.Card.ID || log.records[0].Result != domain.Correct ||
		log.records[1].CardID != second.Card.ID || log.records[1].Result != domain.Incorrect {
		t.Errorf("Unexpected records: %+v", log.records)
	}

	if err := q.Retake(); err != nil {
		t.Fatalf("Retake() returned an unexpected error: %v", err)
	}
	if q.Phase() != InProgress || q.Summary().Total() != 0 {
		t.Errorf("Expected a fresh attempt, got %v %+v", q.Phase(), q.Summary())
	}
	if _, total := q.Progress(); total != 2 {
		t.Errorf("Expected retake to keep 2 questions, got %d", total)
	}
}

func TestParseOrder(t *testing.T) {
	for _, s := range []string{"random", "sequential"} {
		if _, err := ParseOrder(s); err != nil {
			t.Errorf("ParseOrder(%q) returned an unexpected error: %v", s, err)
		}
	}
	if _, err := ParseOrder("Random"); err == nil {
		t.Error("Expected orders to be case sensitive")
	}
}
