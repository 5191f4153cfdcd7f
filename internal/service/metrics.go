package service

import (
	"fmt"
	"math"

	"loadtrack/internal/domain"
)

// Cost and alert constants.
const (
	// mileageSurchargeRate is the fixed per-mile operating cost applied
	// to actual miles.
	mileageSurchargeRate = 0.15

	// weeklyAdminCost is the fixed weekly overhead allocated
	// proportionally to the days a load consumed.
	weeklyAdminCost = 90.0

	emptyMilesWarnThreshold  = 100
	emptyMilesErrorThreshold = 200

	varianceWarnPercent  = 10.0
	varianceErrorPercent = 20.0

	highTotalMilesThreshold = 1000
)

// CalculateMetrics derives the mileage and financial metrics for a load
// from its current field values. It is a pure function: calling it twice
// on the same load yields identical results, and nothing is cached.
func CalculateMetrics(load *domain.Load) domain.LoadCalculations {
	var calc domain.LoadCalculations

	received := load.Reading(domain.StageReceived)
	pickup := load.Reading(domain.StagePickup)
	delivery := load.Reading(domain.StageDelivery)

	if received != nil && pickup != nil {
		calc.EmptyMiles = pickup.Reading - received.Reading
	}
	if pickup != nil && delivery != nil {
		calc.LoadedMiles = delivery.Reading - pickup.Reading
	}
	calc.ActualMiles = calc.EmptyMiles + calc.LoadedMiles

	if load.Fuel != nil {
		calc.FuelCost = load.Fuel.TotalCost
	}

	calc.MileageSurcharge = float64(calc.ActualMiles) * mileageSurchargeRate

	if load.DaysUsed > 0 && load.DailyTruckCost > 0 {
		calc.DailyCosts = float64(load.DaysUsed) * load.DailyTruckCost
	}
	if load.DaysUsed > 0 {
		calc.AdminCosts = float64(load.DaysUsed) * (weeklyAdminCost / 7)
	}

	calc.Tolls = load.Tolls
	calc.TotalExpenses = calc.FuelCost + calc.MileageSurcharge + calc.DailyCosts + calc.AdminCosts + calc.Tolls
	calc.GrossPay = load.PayAmount
	// May be negative, no flooring.
	calc.NetProfit = calc.GrossPay - calc.TotalExpenses

	return calc
}

// CalculateMileageAlerts evaluates the mileage-discrepancy rules against
// a load's odometer readings. Rules are independent: a load can carry
// several alerts at once. Without a received reading there is nothing to
// compare against and no alerts are produced.
func CalculateMileageAlerts(load *domain.Load) []domain.MileageAlert {
	if load.Reading(domain.StageReceived) == nil {
		return nil
	}

	calc := CalculateMetrics(load)
	var alerts []domain.MileageAlert

	switch {
	case calc.EmptyMiles > emptyMilesErrorThreshold:
		alerts = append(alerts, domain.MileageAlert{
			Type:      domain.AlertExcessiveEmptyMiles,
			Message:   fmt.Sprintf("Empty miles (%d) exceed %d mile limit", calc.EmptyMiles, emptyMilesErrorThreshold),
			Severity:  domain.AlertSeverityError,
			Value:     float64(calc.EmptyMiles),
			Threshold: emptyMilesErrorThreshold,
		})
	case calc.EmptyMiles > emptyMilesWarnThreshold:
		alerts = append(alerts, domain.MileageAlert{
			Type:      domain.AlertExcessiveEmptyMiles,
			Message:   fmt.Sprintf("Empty miles (%d) exceed %d miles", calc.EmptyMiles, emptyMilesWarnThreshold),
			Severity:  domain.AlertSeverityWarning,
			Value:     float64(calc.EmptyMiles),
			Threshold: emptyMilesWarnThreshold,
		})
	}

	if calc.ActualMiles > 0 && load.ClaimedMiles > 0 {
		variance := calc.ActualMiles - load.ClaimedMiles
		variancePercent := math.Abs(float64(variance)) / float64(load.ClaimedMiles) * 100

		switch {
		case variancePercent > varianceErrorPercent:
			alerts = append(alerts, domain.MileageAlert{
				Type:      domain.AlertMileageVariance,
				Message:   fmt.Sprintf("Actual miles (%d) differ from claimed (%d) by %.1f%%", calc.ActualMiles, load.ClaimedMiles, variancePercent),
				Severity:  domain.AlertSeverityError,
				Value:     variancePercent,
				Threshold: varianceErrorPercent,
			})
		case variancePercent > varianceWarnPercent:
			alerts = append(alerts, domain.MileageAlert{
				Type:      domain.AlertMileageVariance,
				Message:   fmt.Sprintf("Actual miles (%d) differ from claimed (%d) by %.1f%%", calc.ActualMiles, load.ClaimedMiles, variancePercent),
				Severity:  domain.AlertSeverityWarning,
				Value:     variancePercent,
				Threshold: varianceWarnPercent,
			})
		}
	}

	if calc.ActualMiles > highTotalMilesThreshold {
		alerts = append(alerts, domain.MileageAlert{
			Type:      domain.AlertHighTotalMiles,
			Message:   fmt.Sprintf("Total miles (%d) unusually high for a single load", calc.ActualMiles),
			Severity:  domain.AlertSeverityWarning,
			Value:     float64(calc.ActualMiles),
			Threshold: highTotalMilesThreshold,
		})
	}

	return alerts
}
