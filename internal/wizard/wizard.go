// Package wizard holds the state of the multi-step intake entry flow. Front
// ends own a *Wizard and drive it; nothing here touches storage or rendering.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/nicolog/internal/dose"
	"github.com/julianstephens/nicolog/internal/models"
	"github.com/julianstephens/nicolog/internal/validation"
)

// Step is one screen of the entry flow
type Step int

const (
	StepSource Step = iota
	StepAmount
	StepReason
	StepEffects
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepSource:
		return "source"
	case StepAmount:
		return "amount"
	case StepReason:
		return "reason"
	case StepEffects:
		return "effects"
	case StepReview:
		return "review"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	ErrAtStart  = errors.New("already at the first step")
	ErrComplete = errors.New("entry is already complete")
)

// Wizard is the in-progress state of one entry.
type Wizard struct {
	step     Step
	history  []Step
	source   models.Source
	amount   float64
	strength float64
	reason   *string
	effects  []string
}

func New() *Wizard {
	return &Wizard{step: StepSource}
}

// Reset discards everything entered so far
func (w *Wizard) Reset() {
	*w = Wizard{step: StepSource}
}

func (w *Wizard) Step() Step {
	return w.step
}

// Done reports whether the entry has reached review
func (w *Wizard) Done() bool {
	return w.step == StepReview
}

func (w *Wizard) Source() models.Source {
	return w.source
}

// SetSource selects the product. The default strength for the source is
// applied unless one was already chosen for it.
func (w *Wizard) SetSource(source models.Source) {
	if source != w.source {
		w.strength = dose.DefaultStrength(source)
	}
	w.source = source
}

// SetAmount records the quantity and strength per unit
func (w *Wizard) SetAmount(amount, strength float64) {
	w.amount = amount
	w.strength = strength
}

func (w *Wizard) Amount() (float64, float64) {
	return w.amount, w.strength
}

// SetReason records the reason; blank clears it
func (w *Wizard) SetReason(reason string) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		w.reason = nil
		return
	}
	w.reason = &reason
}

// SetEffects records the health effect tags, dropping blanks and repeats
func (w *Wizard) SetEffects(effects []string) {
	seen := make(map[string]bool, len(effects))
	w.effects = []string{}
	for _, e := range effects {
		e = strings.TrimSpace(e)
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		w.effects = append(w.effects, e)
	}
}

func (w *Wizard) validate() error {
	switch w.step {
	case StepSource:
		if !w.source.Valid() {
			return fmt.Errorf("select a source")
		}
	case StepAmount:
		if err := validation.ValidateAmount(w.amount); err != nil {
			return err
		}
		if w.amount == 0 {
			return fmt.Errorf("amount must be greater than zero")
		}
		if w.strength <= 0 {
			return fmt.Errorf("strength must be greater than zero")
		}
	}
	return nil
}

func (w *Wizard) following() Step {
	if w.step == StepSource && w.source == models.SourceNone {
		return StepReason
	}
	return w.step + 1
}

// Next validates the current step and moves forward.
func (w *Wizard) Next() error {
	if w.step == StepReview {
		return ErrComplete
	}
	if err := w.validate(); err != nil {
		return fmt.Errorf("%s: %w", w.step, err)
	}
	w.history = append(w.history, w.step)
	w.step = w.following()
	return nil
}

// Back returns to the step shown before the current one.
func (w *Wizard) Back() error {
	if len(w.history) == 0 {
		return ErrAtStart
	}
	w.step = w.history[len(w.history)-1]
	w.history = w.history[:len(w.history)-1]
	return nil
}

// EstimatedMg returns the dose implied by the current inputs
func (w *Wizard) EstimatedMg() float64 {
	if w.source == models.SourceNone {
		return 0
	}
	return dose.EstimateMg(w.source, w.amount, w.strength)
}

// Draft builds the record to append. It is only available at review.
func (w *Wizard) Draft() (models.LogRecord, error) {
	if w.step != StepReview {
		return models.LogRecord{}, fmt.Errorf("entry incomplete: at %s step", w.step)
	}

	amount := w.amount
	if w.source == models.SourceNone {
		amount = 0
	}

	effects := append([]string{}, w.effects...)
	return models.LogRecord{
		Source:        w.source,
		UnitType:      dose.UnitFor(w.source),
		Amount:        amount,
		EstimatedMg:   w.EstimatedMg(),
		Reason:        w.reason,
		HealthEffects: effects,
	}, nil
}

// Entry is a complete set of wizard inputs, as submitted by non-interactive
// front ends.
type Entry struct {
	Source        models.Source `json:"source"`
	Amount        float64       `json:"amount"`
	Strength      float64       `json:"strength,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	HealthEffects []string      `json:"healthEffects,omitempty"`
}

// Build runs entry through every step and returns the resulting draft. A zero
// strength takes the source's default.
func Build(entry Entry) (models.LogRecord, error) {
	w := New()

	w.SetSource(entry.Source)
	if err := w.Next(); err != nil {
		return models.LogRecord{}, err
	}

	if w.Step() == StepAmount {
		strength := entry.Strength
		if strength == 0 {
			strength = dose.DefaultStrength(entry.Source)
		}
		w.SetAmount(entry.Amount, strength)
		if err := w.Next(); err != nil {
			return models.LogRecord{}, err
		}
	}

	w.SetReason(entry.Reason)
	if err := w.Next(); err != nil {
		return models.LogRecord{}, err
	}

	w.SetEffects(entry.HealthEffects)
	if err := w.Next(); err != nil {
		return models.LogRecord{}, err
	}

	return w.Draft()
}
