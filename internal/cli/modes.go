package cli

import (
	"strconv"
	"strings"

	"github.com/conorfennell/tarjeta/internal/domain"
	"github.com/conorfennell/tarjeta/internal/session"
)

// flashcardPass is the flip-and-assess surface shared by Study and Review.
type flashcardPass interface {
	Phase() session.Phase
	Current() (domain.Card, bool)
	Progress() (int, int)
	Flipped() bool
	Flip()
	Assess(domain.Result) error
	Summary() session.Summary
}

// runPass drives a Study or Review pass until it completes or the learner
// quits. It reports whether the pass completed.
func (a *App) runPass(p flashcardPass) (bool, error) {
	for p.Phase() == session.InProgress {
		c, _ := p.Current()
		pos, total := p.Progress()
		a.printf("\nCard %d of %d\n", pos+1, total)

		if !p.Flipped() {
			a.printf("  %s\n", c.Spanish)
			answer, ok := a.prompt("[f]lip, [q]uit:")
			if !ok || answer == "q" {
				return false, nil
			}
			if answer == "f" || answer == "" {
				p.Flip()
			}
			continue
		}

		a.printf("  %s = %s\n", c.Spanish, c.English)
		answer, ok := a.prompt("[y] got it right, [n] got it wrong, [f]lip back, [q]uit:")
		if !ok {
			return false, nil
		}
		switch answer {
		case "y":
			if err := p.Assess(domain.Correct); err != nil {
				return false, err
			}
		case "n":
			if err := p.Assess(domain.Incorrect); err != nil {
				return false, err
			}
		case "f":
			p.Flip()
		case "q":
			return false, nil
		}
	}
	return p.Phase() == session.Complete, nil
}

func (a *App) printSummary(title string, s session.Summary) {
	a.printf("\n%s\n  Correct:   %d\n  Incorrect: %d\n", title, s.Correct, s.Incorrect)
}

// Study runs a self-assessed pass over the whole deck.
func (a *App) Study() error {
	s, err := session.NewStudy(a.deck.Cards(), a.history, a.sessionOptions()...)
	if err != nil {
		return err
	}
	if s.Phase() == session.Empty {
		a.printf("No cards in your deck yet.\nAdd some cards to get started!\n")
		return nil
	}

	for {
		done, err := a.runPass(s)
		if err != nil || !done {
			return err
		}
		a.printSummary("Session Complete!", s.Summary())
		answer, _ := a.prompt("[r]estart, [v] review incorrect, [q]uit:")
		switch answer {
		case "r":
			if err := s.Restart(); err != nil {
				return err
			}
		case "v":
			return a.Review()
		default:
			return nil
		}
	}
}

// Review re-presents the cards missed in the last Study session.
func (a *App) Review() error {
	r, err := session.NewReview(a.deck.Cards(), a.history)
	if err != nil {
		return err
	}
	if r.Phase() == session.Empty {
		a.printf("You got everything right!\nNothing to review.\n")
		return nil
	}
	a.printf("Review Mode\n")

	done, err := a.runPass(r)
	if err != nil || !done {
		return err
	}
	a.printSummary("Review Complete!", r.Summary())
	return nil
}

// Quiz runs the setup screen and then multiple-choice questions.
func (a *App) Quiz() error {
	q := session.NewQuiz(a.deck.Cards(), a.history, a.sessionOptions()...)
	if !q.Available() {
		a.printf("You need at least %d cards to start a quiz. You currently have %d.\n",
			session.MinQuizCards, q.DeckSize())
		return nil
	}
	if err := q.SetOrder(a.quizOrder); err != nil {
		return err
	}

	if !a.quizSetup(q) {
		return nil
	}
	if err := q.Start(); err != nil {
		return err
	}

	for {
		done, err := a.runQuiz(q)
		if err != nil || !done {
			return err
		}
		sum := q.Summary()
		a.printSummary("Quiz Complete!", sum)
		a.printf("  Score:     %d/%d\n", sum.Correct, sum.Total())
		answer, _ := a.prompt("[r]etake, [q]uit:")
		if answer != "r" {
			return nil
		}
		if err := q.Retake(); err != nil {
			return err
		}
	}
}

// quizSetup reads the settings. It reports false when input ends.
func (a *App) quizSetup(q *session.Quiz) bool {
	settings := q.Settings()
	answer, ok := a.prompt("Number of questions [1-" + strconv.Itoa(q.DeckSize()) + "] (default " +
		strconv.Itoa(settings.NumQuestions) + "):")
	if !ok {
		return false
	}
	if answer != "" {
		n, err := strconv.Atoi(answer)
		if err != nil {
			n = 1
		}
		q.SetNumQuestions(n)
	}

	for {
		answer, ok = a.prompt("Order [random/sequential] (default " + string(q.Settings().Order) + "):")
		if !ok {
			return false
		}
		if answer == "" {
			return true
		}
		if err := q.SetOrder(session.Order(strings.ToLower(answer))); err == nil {
			return true
		}
		a.printf("Choose random or sequential.\n")
	}
}

// runQuiz asks questions until the quiz completes or the learner quits.
func (a *App) runQuiz(q *session.Quiz) (bool, error) {
	for q.Phase() == session.InProgress {
		question, _ := q.Current()
		pos, total := q.Progress()
		a.printf("\nQuestion %d of %d\n  %s\n", pos+1, total, question.Card.Spanish)
		for i, o := range question.Options {
			a.printf("  %d) %s\n", i+1, o)
		}

		answer, ok := a.prompt("Answer [1-" + strconv.Itoa(len(question.Options)) + "], [q]uit:")
		if !ok || answer == "q" {
			return false, nil
		}
		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(question.Options) {
			a.printf("Pick one of the numbered options.\n")
			continue
		}

		correct, err := q.SelectAnswer(question.Options[choice-1])
		if err != nil {
			return false, err
		}
		if correct {
			a.printf("Correct!\n")
		} else {
			a.printf("Incorrect. The answer is: %s\n", question.CorrectAnswer)
		}

		label := "[enter] next question, [q]uit:"
		if pos+1 == total {
			label = "[enter] see results, [q]uit:"
		}
		answer, ok = a.prompt(label)
		if !ok || answer == "q" {
			return false, nil
		}
		if err := q.Next(); err != nil {
			return false, err
		}
	}
	return q.Phase() == session.Complete, nil
}
