package service

import (
	"time"

	"github.com/google/uuid"

	"loadtrack/internal/domain"
)

// SeedLoads generates the bootstrap dataset used when no collection
// document exists yet, so a fresh install has something to show.
func SeedLoads() []domain.Load {
	now := time.Now()

	delivered := domain.Load{
		ID:           uuid.New().String(),
		Status:       domain.LoadStatusDelivered,
		Origin:       "Dallas, TX",
		Destination:  "Atlanta, GA",
		ClaimedMiles: 780,
		PayAmount:    2450,
		OdometerReadings: []domain.OdometerReading{
			{Stage: domain.StageReceived, Reading: 118200, Timestamp: now.AddDate(0, 0, -6)},
			{Stage: domain.StagePickup, Reading: 118235, Timestamp: now.AddDate(0, 0, -6)},
			{Stage: domain.StageDelivery, Reading: 119010, Timestamp: now.AddDate(0, 0, -4)},
		},
		Fuel: &domain.FuelPurchase{
			Gallons:        130,
			PricePerGallon: 3.65,
			TotalCost:      474.50,
		},
		DaysUsed:       2,
		DailyTruckCost: 150,
		Tolls:          28.50,
		CreatedAt:      now.AddDate(0, 0, -6),
		CompletedAt:    now.AddDate(0, 0, -4),
	}

	inProgress := domain.Load{
		ID:           uuid.New().String(),
		Status:       domain.LoadStatusAtPickup,
		Origin:       "Atlanta, GA",
		Destination:  "Chicago, IL",
		ClaimedMiles: 720,
		PayAmount:    2100,
		OdometerReadings: []domain.OdometerReading{
			{Stage: domain.StageReceived, Reading: 119010, Timestamp: now.AddDate(0, 0, -2)},
			{Stage: domain.StagePickup, Reading: 119022, Timestamp: now.AddDate(0, 0, -2)},
		},
		CreatedAt: now.AddDate(0, 0, -2),
	}

	pending := domain.Load{
		ID:           uuid.New().String(),
		Status:       domain.LoadStatusPending,
		Origin:       "Chicago, IL",
		Destination:  "Denver, CO",
		ClaimedMiles: 1000,
		PayAmount:    2900,
		OdometerReadings: []domain.OdometerReading{
			{Stage: domain.StageReceived, Reading: 119750, Timestamp: now.AddDate(0, 0, -1)},
		},
		CreatedAt: now.AddDate(0, 0, -1),
	}

	loads := []domain.Load{pending, inProgress, delivered}
	for i := range loads {
		loads[i].MileageAlerts = CalculateMileageAlerts(&loads[i])
	}
	return loads
}
