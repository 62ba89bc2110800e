package services_test

import (
	"errors"
	"testing"
	"time"

	"rental-backend/models"
	"rental-backend/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWizard() *services.CheckoutWizard {
	return services.NewCheckoutWizard(42, 9, []services.AssignmentView{
		{AssignmentID: 501, ItemName: "Smart TV 55\""},
		{AssignmentID: 502, ItemName: "Sofa"},
	})
}

func advanceToChecklist(t *testing.T, w *services.CheckoutWizard) {
	t.Helper()
	w.CheckoutDate = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	w.Inspector = "Jane"
	require.NoError(t, w.Next())
	require.Equal(t, services.StepInventoryChecklist, w.Step())
}

func TestWizard_StartsAtInspectionDetails(t *testing.T) {
	w := newWizard()
	assert.Equal(t, services.StepInspectionDetails, w.Step())
	assert.False(t, w.CanSubmit())

	// entries seeded unchecked / good / zero cost
	require.Len(t, w.Entries, 2)
	for _, e := range w.Entries {
		assert.False(t, e.Checked)
		assert.Equal(t, models.ConditionGood, e.Condition)
		assert.True(t, e.DamageCost.IsZero())
	}
}

func TestWizard_Step1Gates(t *testing.T) {
	w := newWizard()

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, "missing_checkout_date", err.Error())

	w.CheckoutDate = time.Now()
	err = w.Next()
	require.Error(t, err)
	assert.Equal(t, "missing_inspector", err.Error())

	w.Inspector = "  "
	err = w.Next()
	require.Error(t, err)
	assert.Equal(t, "missing_inspector", err.Error())

	w.Inspector = "Jane"
	require.NoError(t, w.Next())
	assert.Equal(t, services.StepInventoryChecklist, w.Step())
}

func TestWizard_ChecklistRejectsPartialInspection(t *testing.T) {
	w := newWizard()
	advanceToChecklist(t, w)

	require.NoError(t, w.SetEntry(501, true, models.ConditionGood, decimal.Zero, ""))

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, "checklist_incomplete:502", err.Error())
	assert.Equal(t, services.StepInventoryChecklist, w.Step())
}

func TestWizard_ChecklistRequiresCostForNonGood(t *testing.T) {
	w := newWizard()
	advanceToChecklist(t, w)

	require.NoError(t, w.SetEntry(501, true, models.ConditionGood, decimal.Zero, ""))
	require.NoError(t, w.SetEntry(502, true, models.ConditionDamaged, decimal.Zero, "scratched"))

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, "missing_damage_cost:502", err.Error())

	require.NoError(t, w.SetEntry(502, true, models.ConditionDamaged, decimal.NewFromInt(5000), "scratched"))
	require.NoError(t, w.Next())
	assert.Equal(t, services.StepFinancialSummary, w.Step())
}

func TestWizard_SetEntryValidation(t *testing.T) {
	w := newWizard()

	err := w.SetEntry(501, true, "broken", decimal.Zero, "")
	require.Error(t, err)

	err = w.SetEntry(501, true, models.ConditionGood, decimal.NewFromInt(-1), "")
	require.Error(t, err)

	err = w.SetEntry(999, true, models.ConditionGood, decimal.Zero, "")
	require.Error(t, err)
}

func TestWizard_BackNeverValidates(t *testing.T) {
	w := newWizard()

	err := w.Back()
	require.Error(t, err)
	assert.Equal(t, "already_at_first_step", err.Error())

	advanceToChecklist(t, w)
	require.NoError(t, w.Back())
	assert.Equal(t, services.StepInspectionDetails, w.Step())

	// form state survives the round trip
	assert.Equal(t, "Jane", w.Inspector)
}

func TestWizard_SummaryIsDerived(t *testing.T) {
	w := newWizard()
	require.NoError(t, w.SetEntry(501, true, models.ConditionGood, decimal.Zero, ""))
	require.NoError(t, w.SetEntry(502, true, models.ConditionDamaged, decimal.NewFromInt(5000), ""))
	w.DepositDeduction = decimal.NewFromInt(3000)

	s := w.Summary()
	assert.Equal(t, 2, s.CheckedCount)
	assert.Equal(t, 1, s.GoodCount)
	assert.Equal(t, 1, s.DamagedCount)
	assert.Equal(t, 0, s.MissingCount)
	assert.True(t, s.TotalDamageCost.Equal(decimal.NewFromInt(5000)))
	assert.False(t, s.DepositExceedsDamage)

	// editing the checklist changes the next summary, no stale totals
	require.NoError(t, w.SetEntry(502, true, models.ConditionMissing, decimal.NewFromInt(1000), ""))
	s = w.Summary()
	assert.Equal(t, 0, s.DamagedCount)
	assert.Equal(t, 1, s.MissingCount)
	assert.True(t, s.TotalDamageCost.Equal(decimal.NewFromInt(1000)))
	assert.True(t, s.DepositExceedsDamage)
}

func TestWizard_BuildInputOnlyWhenReady(t *testing.T) {
	w := newWizard()

	_, err := w.BuildInput()
	require.Error(t, err)
	assert.Equal(t, "wizard_not_ready", err.Error())

	advanceToChecklist(t, w)
	require.NoError(t, w.SetEntry(501, true, models.ConditionGood, decimal.Zero, ""))
	require.NoError(t, w.SetEntry(502, true, models.ConditionDamaged, decimal.NewFromInt(5000), "scratched frame"))
	require.NoError(t, w.Next())
	require.True(t, w.CanSubmit())

	w.DepositDeduction = decimal.NewFromInt(3000)
	input, err := w.BuildInput()
	require.NoError(t, err)
	assert.Equal(t, uint(42), input.BookingID)
	assert.Equal(t, uint(9), input.GuestID)
	assert.Equal(t, "Jane", input.Inspector)
	assert.True(t, input.DepositDeduction.Equal(decimal.NewFromInt(3000)))
	require.Len(t, input.Items, 2)
	assert.Equal(t, uint(502), input.Items[1].AssignmentID)
	assert.Equal(t, models.ConditionDamaged, input.Items[1].Condition)
}

func TestWizard_TerminalStates(t *testing.T) {
	w := newWizard()
	advanceToChecklist(t, w)
	require.NoError(t, w.SetEntry(501, true, models.ConditionGood, decimal.Zero, ""))
	require.NoError(t, w.SetEntry(502, true, models.ConditionGood, decimal.Zero, ""))
	require.NoError(t, w.Next())

	err := w.Next()
	require.Error(t, err)
	assert.Equal(t, "already_at_final_step", err.Error())

	// rejected submit keeps the wizard at the summary with the error on screen
	submitErr := errors.New("booking_not_found")
	w.MarkFailed(submitErr)
	assert.Equal(t, services.StepFinancialSummary, w.Step())
	assert.Equal(t, submitErr, w.LastError())
	assert.True(t, w.CanSubmit())

	w.MarkSubmitted()
	assert.True(t, w.Submitted())
	assert.Nil(t, w.LastError())
	assert.False(t, w.CanSubmit())
}
