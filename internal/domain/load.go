package domain

import "time"

// LoadStatus represents the current status of a load.
type LoadStatus string

const (
	LoadStatusPending   LoadStatus = "pending"
	LoadStatusAtPickup  LoadStatus = "at_pickup"
	LoadStatusInTransit LoadStatus = "in_transit"
	LoadStatusDelivered LoadStatus = "delivered"
)

// ReadingStage identifies which leg of a load an odometer reading belongs to.
type ReadingStage string

const (
	StageReceived ReadingStage = "received"
	StagePickup   ReadingStage = "pickup"
	StageDelivery ReadingStage = "delivery"
)

// OdometerReading is a single odometer snapshot taken at a load stage.
type OdometerReading struct {
	Stage     ReadingStage `json:"stage"`
	Reading   int          `json:"reading"`
	Timestamp time.Time    `json:"timestamp"`
}

// FuelPurchase holds the fuel expense recorded for a load.
type FuelPurchase struct {
	Gallons        float64 `json:"gallons"`
	PricePerGallon float64 `json:"price_per_gallon"`
	TotalCost      float64 `json:"total_cost"`
}

// Load represents a dispatched load in the system.
type Load struct {
	ID               string            `json:"id"`
	Status           LoadStatus        `json:"status"`
	Origin           string            `json:"origin"`
	Destination      string            `json:"destination"`
	PickupDate       time.Time         `json:"pickup_date,omitempty"`
	DeliveryDate     time.Time         `json:"delivery_date,omitempty"`
	ClaimedMiles     int               `json:"claimed_miles"` // dispatcher-stated distance, immutable once set
	PayAmount        float64           `json:"pay_amount"`
	DriverID         string            `json:"driver_id"`
	DispatchID       string            `json:"dispatch_id"`
	OdometerReadings []OdometerReading `json:"odometer_readings"`
	Fuel             *FuelPurchase     `json:"fuel,omitempty"`
	DaysUsed         int               `json:"days_used,omitempty"`
	DailyTruckCost   float64           `json:"daily_truck_cost,omitempty"`
	Tolls            float64           `json:"tolls,omitempty"`
	MileageAlerts    []MileageAlert    `json:"mileage_alerts"` // cached, recomputed on every reading change
	CreatedAt        time.Time         `json:"created_at"`
	CompletedAt      time.Time         `json:"completed_at,omitempty"`
}

// Reading returns the odometer reading for the given stage, or nil if the
// stage has not been recorded yet.
func (l *Load) Reading(stage ReadingStage) *OdometerReading {
	for i := range l.OdometerReadings {
		if l.OdometerReadings[i].Stage == stage {
			return &l.OdometerReadings[i]
		}
	}
	return nil
}

// LoadCalculations holds the derived mileage and financial metrics for a
// load. It is recomputed on every request and never persisted.
type LoadCalculations struct {
	EmptyMiles       int     `json:"empty_miles"`
	LoadedMiles      int     `json:"loaded_miles"`
	ActualMiles      int     `json:"actual_miles"`
	FuelCost         float64 `json:"fuel_cost"`
	MileageSurcharge float64 `json:"mileage_surcharge"`
	DailyCosts       float64 `json:"daily_costs"`
	AdminCosts       float64 `json:"admin_costs"`
	Tolls            float64 `json:"tolls"`
	TotalExpenses    float64 `json:"total_expenses"`
	GrossPay         float64 `json:"gross_pay"`
	NetProfit        float64 `json:"net_profit"`
}
