package domain

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusRented      VehicleStatus = "RENTED"
	VehicleStatusMaintenance VehicleStatus = "MAINTENANCE"
)

// Vehicle is the catalog row the core reads: daily rate, category and a
// coarse fleet status. The catalog itself is owned by the admin layer.
type Vehicle struct {
	ID             int64         `json:"id"`
	Name           string        `json:"name"`
	Category       string        `json:"category"`
	DailyRateCents int64         `json:"daily_rate_cents"`
	Status         VehicleStatus `json:"status"`
}
