// Package testengine отвечает за определения психометрических тестов,
// подсчёт баллов и детерминированный подбор результата.
package testengine

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTestNotFound — неизвестный идентификатор теста.
	ErrTestNotFound = errors.New("test not found")
	// ErrAnswerOutOfRange — индекс вопроса или варианта вне диапазона.
	ErrAnswerOutOfRange = errors.New("answer index out of range")
	// ErrNotScorable возвращается при попытке посчитать балл селектора.
	ErrNotScorable = errors.New("test is not scorable")
)

// Option is one answer choice. A regular option carries Weight; a selector
// option carries NextTestID instead.
type Option struct {
	Text       string
	Weight     int
	NextTestID string
}

// Question is a single multiple-choice question.
type Question struct {
	Text    string
	Options []Option
}

// Band maps a score range to its result payload. Bands are ordered by
// MaxScore; the first band with score <= MaxScore wins.
type Band struct {
	MaxScore int
	Summary  string
	Focus    string
	Detail   string
}

// Definition is a complete test.
type Definition struct {
	ID        string
	Name      string
	Selector  bool
	Questions []Question
	Bands     []Band
}

// Result is the rendered outcome of a completed test. It is a pure function
// of (testID, score, answers).
type Result struct {
	Summary           string
	ConsultationFocus string
	FullHTML          string
}

// Get returns the test definition by id.
func Get(testID string) (*Definition, error) {
	def, ok := tests[testID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTestNotFound, testID)
	}
	return def, nil
}

// Score recomputes the total from the stored answer indices. The answer list
// is the source of truth: nothing incremental is trusted.
func Score(testID string, answers []int) (int, error) {
	def, err := Get(testID)
	if err != nil {
		return 0, err
	}
	if def.Selector {
		return 0, fmt.Errorf("%w: %s", ErrNotScorable, testID)
	}
	total := 0
	for qIdx, ansIdx := range answers {
		if qIdx >= len(def.Questions) {
			return 0, fmt.Errorf("%w: question %d of test %s", ErrAnswerOutOfRange, qIdx, testID)
		}
		opts := def.Questions[qIdx].Options
		if ansIdx < 0 || ansIdx >= len(opts) {
			return 0, fmt.Errorf("%w: answer %d to question %d of test %s", ErrAnswerOutOfRange, ansIdx, qIdx, testID)
		}
		total += opts[ansIdx].Weight
	}
	return total, nil
}

// Lookup renders the result for a finished test. Deterministic: the same
// (testID, score, answers) triple always yields the same payload.
func Lookup(testID string, score int, answers []int) (*Result, error) {
	def, err := Get(testID)
	if err != nil {
		return nil, err
	}
	if def.Selector || len(def.Bands) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotScorable, testID)
	}
	band := def.Bands[len(def.Bands)-1]
	for _, b := range def.Bands {
		if score <= b.MaxScore {
			band = b
			break
		}
	}
	return &Result{
		Summary:           band.Summary,
		ConsultationFocus: band.Focus,
		FullHTML:          renderHTML(def, band, score, answers),
	}, nil
}

// NextTest resolves a selector answer to the follow-up test id.
func NextTest(testID string, ansIdx int) (string, error) {
	def, err := Get(testID)
	if err != nil {
		return "", err
	}
	if !def.Selector || len(def.Questions) != 1 {
		return "", fmt.Errorf("%w: %s", ErrNotScorable, testID)
	}
	opts := def.Questions[0].Options
	if ansIdx < 0 || ansIdx >= len(opts) {
		return "", fmt.Errorf("%w: answer %d of selector %s", ErrAnswerOutOfRange, ansIdx, testID)
	}
	return opts[ansIdx].NextTestID, nil
}

func renderHTML(def *Definition, band Band, score int, answers []int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<h1>Результаты теста «%s»</h1>\n", def.Name)
	fmt.Fprintf(&b, "<p><b>Ваш балл: %d</b></p>\n", score)
	fmt.Fprintf(&b, "<h2>%s</h2>\n", band.Summary)
	fmt.Fprintf(&b, "<p>%s</p>\n", band.Detail)
	b.WriteString("<h3>Ваши ответы</h3>\n<ol>\n")
	for qIdx, ansIdx := range answers {
		if qIdx < len(def.Questions) && ansIdx >= 0 && ansIdx < len(def.Questions[qIdx].Options) {
			fmt.Fprintf(&b, "<li>%s — <i>%s</i></li>\n",
				def.Questions[qIdx].Text, def.Questions[qIdx].Options[ansIdx].Text)
		}
	}
	b.WriteString("</ol>\n")
	fmt.Fprintf(&b, "<p>Фокус консультации: %s</p>\n", band.Focus)
	return b.String()
}
