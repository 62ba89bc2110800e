package models

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingReserved   BookingStatus = "reserved"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
	BookingCompleted  BookingStatus = "completed"
)

// Open means the booking still blocks its unit for the check-in day.
func (s BookingStatus) Open() bool {
	switch s {
	case BookingPending, BookingReserved, BookingCheckedIn:
		return true
	}
	return false
}

// UnitStatus is the closed set of unit states.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "available"
	UnitOccupied    UnitStatus = "occupied"
	UnitReserved    UnitStatus = "reserved"
	UnitBooked      UnitStatus = "booked"
	UnitMaintenance UnitStatus = "maintenance"
)

// ItemCondition is the inspected state of one inventory line at checkout.
type ItemCondition string

const (
	ConditionGood    ItemCondition = "good"
	ConditionDamaged ItemCondition = "damaged"
	ConditionMissing ItemCondition = "missing"
)

func (c ItemCondition) Valid() bool {
	switch c {
	case ConditionGood, ConditionDamaged, ConditionMissing:
		return true
	}
	return false
}

// MovementDirection classifies an inventory ledger entry.
type MovementDirection string

const (
	MovementToUnit  MovementDirection = "to_unit"
	MovementToStore MovementDirection = "to_store"
	MovementDamaged MovementDirection = "damaged"
	MovementMissing MovementDirection = "missing"
)
