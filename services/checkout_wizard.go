// services/checkout_wizard.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-backend/models"

	"github.com/shopspring/decimal"
)

// The checkout wizard walks an operator through three ordered, non-skippable
// steps. It holds form state only; derived figures are recomputed on demand
// so they can never drift from the checklist.
type WizardStep int

const (
	StepInspectionDetails  WizardStep = 1
	StepInventoryChecklist WizardStep = 2
	StepFinancialSummary   WizardStep = 3
)

// ChecklistEntry is one assignment awaiting inspection. Entries default to
// unchecked / good / zero cost.
type ChecklistEntry struct {
	AssignmentID uint
	ItemName     string
	Checked      bool
	Condition    models.ItemCondition
	DamageCost   decimal.Decimal
	Notes        string
}

// WizardSummary is recomputed per call, never stored.
type WizardSummary struct {
	CheckedCount    int
	GoodCount       int
	DamagedCount    int
	MissingCount    int
	TotalDamageCost decimal.Decimal
	// DepositExceedsDamage is a warning, not a gate: deduction larger than
	// the damage total is allowed through.
	DepositExceedsDamage bool
}

type CheckoutWizard struct {
	step WizardStep

	BookingID        uint
	GuestID          uint
	CheckoutDate     time.Time
	Inspector        string
	DepositDeduction decimal.Decimal
	Notes            string

	Entries []ChecklistEntry

	submitted bool
	lastError error
}

// NewCheckoutWizard seeds one checklist entry per eligible assignment.
func NewCheckoutWizard(bookingID, guestID uint, assignments []AssignmentView) *CheckoutWizard {
	entries := make([]ChecklistEntry, 0, len(assignments))
	for _, a := range assignments {
		entries = append(entries, ChecklistEntry{
			AssignmentID: a.AssignmentID,
			ItemName:     a.ItemName,
			Checked:      false,
			Condition:    models.ConditionGood,
			DamageCost:   decimal.Zero,
		})
	}
	return &CheckoutWizard{
		step:             StepInspectionDetails,
		BookingID:        bookingID,
		GuestID:          guestID,
		DepositDeduction: decimal.Zero,
		Entries:          entries,
	}
}

func (w *CheckoutWizard) Step() WizardStep { return w.step }

func (w *CheckoutWizard) Submitted() bool { return w.submitted }

// LastError is the failure kept on screen after a rejected submit.
func (w *CheckoutWizard) LastError() error { return w.lastError }

// SetEntry updates one checklist line in place.
func (w *CheckoutWizard) SetEntry(assignmentID uint, checked bool, condition models.ItemCondition, damageCost decimal.Decimal, notes string) error {
	if !condition.Valid() {
		return fmt.Errorf("invalid condition %q", condition)
	}
	if damageCost.IsNegative() {
		return errors.New("damage cost must not be negative")
	}
	for i := range w.Entries {
		if w.Entries[i].AssignmentID == assignmentID {
			w.Entries[i].Checked = checked
			w.Entries[i].Condition = condition
			w.Entries[i].DamageCost = damageCost
			w.Entries[i].Notes = notes
			return nil
		}
	}
	return fmt.Errorf("no checklist entry for assignment %d", assignmentID)
}

// Next advances one step after the current step's gate passes.
func (w *CheckoutWizard) Next() error {
	switch w.step {
	case StepInspectionDetails:
		if w.CheckoutDate.IsZero() {
			return errors.New("missing_checkout_date")
		}
		if strings.TrimSpace(w.Inspector) == "" {
			return errors.New("missing_inspector")
		}
		w.step = StepInventoryChecklist
		return nil

	case StepInventoryChecklist:
		// partial inspection is rejected: every assignment must be checked
		for _, e := range w.Entries {
			if !e.Checked {
				return fmt.Errorf("checklist_incomplete:%d", e.AssignmentID)
			}
			if e.Condition != models.ConditionGood && !e.DamageCost.IsPositive() {
				return fmt.Errorf("missing_damage_cost:%d", e.AssignmentID)
			}
		}
		w.step = StepFinancialSummary
		return nil

	case StepFinancialSummary:
		return errors.New("already_at_final_step")
	}
	return fmt.Errorf("invalid wizard step %d", w.step)
}

// Back never validates.
func (w *CheckoutWizard) Back() error {
	if w.step <= StepInspectionDetails {
		return errors.New("already_at_first_step")
	}
	w.step--
	return nil
}

// Summary recomputes the derived figures from the checklist.
func (w *CheckoutWizard) Summary() WizardSummary {
	s := WizardSummary{TotalDamageCost: decimal.Zero}
	for _, e := range w.Entries {
		if !e.Checked {
			continue
		}
		s.CheckedCount++
		switch e.Condition {
		case models.ConditionGood:
			s.GoodCount++
		case models.ConditionDamaged:
			s.DamagedCount++
		case models.ConditionMissing:
			s.MissingCount++
		}
		s.TotalDamageCost = s.TotalDamageCost.Add(e.DamageCost)
	}
	s.DepositExceedsDamage = w.DepositDeduction.GreaterThan(s.TotalDamageCost)
	return s
}

// CanSubmit: submission is only enabled at the financial summary step.
func (w *CheckoutWizard) CanSubmit() bool {
	return w.step == StepFinancialSummary && !w.submitted
}

// BuildInput assembles the orchestrator input from checked entries only.
func (w *CheckoutWizard) BuildInput() (CompleteCheckoutInput, error) {
	if !w.CanSubmit() {
		return CompleteCheckoutInput{}, errors.New("wizard_not_ready")
	}
	items := make([]CheckoutItemInput, 0, len(w.Entries))
	for _, e := range w.Entries {
		if !e.Checked {
			continue
		}
		items = append(items, CheckoutItemInput{
			AssignmentID: e.AssignmentID,
			Condition:    e.Condition,
			DamageCost:   e.DamageCost,
			Notes:        e.Notes,
		})
	}
	return CompleteCheckoutInput{
		BookingID:        w.BookingID,
		GuestID:          w.GuestID,
		CheckoutDate:     w.CheckoutDate,
		Inspector:        w.Inspector,
		DepositDeduction: w.DepositDeduction,
		Notes:            w.Notes,
		Items:            items,
	}, nil
}

// MarkSubmitted is the success terminal state; the wizard is discarded after.
func (w *CheckoutWizard) MarkSubmitted() {
	w.submitted = true
	w.lastError = nil
}

// MarkFailed keeps the wizard at the financial summary with all form data
// intact so the operator can resubmit.
func (w *CheckoutWizard) MarkFailed(err error) {
	w.lastError = err
	w.step = StepFinancialSummary
}
