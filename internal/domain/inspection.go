package domain

import "time"

type InspectionPhase string

const (
	InspectionPhasePickup InspectionPhase = "PICKUP"
	InspectionPhaseReturn InspectionPhase = "RETURN"
)

func (p InspectionPhase) IsValid() bool {
	return p == InspectionPhasePickup || p == InspectionPhaseReturn
}

type VehicleCondition string

const (
	ConditionGood    VehicleCondition = "GOOD"
	ConditionDamaged VehicleCondition = "DAMAGED"
)

// Inspection is a structured condition report recorded at handover or return.
// Records are write-once: a correction is a new record made by the admin
// layer, never an in-place edit here.
type Inspection struct {
	ID                int64            `json:"id"`
	BookingID         int64            `json:"booking_id"`
	Phase             InspectionPhase  `json:"phase"`
	OdometerKm        int64            `json:"odometer_km"`
	BatteryPercent    int32            `json:"battery_percent"`
	ExteriorCondition VehicleCondition `json:"exterior_condition"`
	InteriorCondition VehicleCondition `json:"interior_condition"`
	HasDamage         bool             `json:"has_damage"`
	ExcessiveDirt     bool             `json:"excessive_dirt"`
	DamageDescription string           `json:"damage_description,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	RecordedBy        int64            `json:"recorded_by"`
	RecordedAt        time.Time        `json:"recorded_at"`
}

// InspectionReading is the caller-supplied portion of an inspection.
type InspectionReading struct {
	OdometerKm        int64
	BatteryPercent    int32
	ExteriorCondition VehicleCondition
	InteriorCondition VehicleCondition
	HasDamage         bool
	ExcessiveDirt     bool
	DamageDescription string
	Notes             string
}
