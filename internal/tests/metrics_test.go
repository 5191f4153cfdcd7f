package tests

import (
	"math"
	"reflect"
	"testing"
	"time"

	"loadtrack/internal/domain"
	"loadtrack/internal/service"
)

// ──────────────────────────────────────────────
// 1. METRICS CALCULATOR
// ──────────────────────────────────────────────

func reading(stage domain.ReadingStage, value int) domain.OdometerReading {
	return domain.OdometerReading{Stage: stage, Reading: value, Timestamp: time.Now()}
}

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMetrics_ReceivedOnlyLoadHasZeroMilesAndNoAlerts(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		ClaimedMiles: 850,
		PayAmount:    2000,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 100000),
		},
	}

	calc := service.CalculateMetrics(load)
	if calc.EmptyMiles != 0 || calc.LoadedMiles != 0 || calc.ActualMiles != 0 {
		t.Errorf("expected all mile figures 0, got empty=%d loaded=%d actual=%d",
			calc.EmptyMiles, calc.LoadedMiles, calc.ActualMiles)
	}

	if alerts := service.CalculateMileageAlerts(load); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %d", len(alerts))
	}
}

func TestMetrics_NoReceivedReadingProducesNoAlerts(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		ClaimedMiles: 100,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StagePickup, 100500),
		},
	}

	if alerts := service.CalculateMileageAlerts(load); len(alerts) != 0 {
		t.Errorf("expected no alerts without a received reading, got %d", len(alerts))
	}
}

func TestMetrics_WorkedScenario(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		ClaimedMiles: 850,
		PayAmount:    2000,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 100000),
			reading(domain.StagePickup, 100050),
			reading(domain.StageDelivery, 100900),
		},
		Fuel: &domain.FuelPurchase{
			Gallons:        120,
			PricePerGallon: 3.80,
			TotalCost:      456,
		},
		DaysUsed:       2,
		DailyTruckCost: 150,
		Tolls:          40,
	}

	calc := service.CalculateMetrics(load)

	if calc.EmptyMiles != 50 {
		t.Errorf("expected 50 empty miles, got %d", calc.EmptyMiles)
	}
	if calc.LoadedMiles != 850 {
		t.Errorf("expected 850 loaded miles, got %d", calc.LoadedMiles)
	}
	if calc.ActualMiles != 900 {
		t.Errorf("expected 900 actual miles, got %d", calc.ActualMiles)
	}
	if !floatEquals(calc.FuelCost, 456) {
		t.Errorf("expected fuel cost 456, got %v", calc.FuelCost)
	}
	if !floatEquals(calc.MileageSurcharge, 135.00) {
		t.Errorf("expected mileage surcharge 135.00, got %v", calc.MileageSurcharge)
	}
	if !floatEquals(calc.DailyCosts, 300) {
		t.Errorf("expected daily costs 300, got %v", calc.DailyCosts)
	}

	wantAdmin := 2 * (90.0 / 7)
	if !floatEquals(calc.AdminCosts, wantAdmin) {
		t.Errorf("expected admin costs %v, got %v", wantAdmin, calc.AdminCosts)
	}

	wantExpenses := 456 + 135.00 + 300 + wantAdmin + 40
	if !floatEquals(calc.TotalExpenses, wantExpenses) {
		t.Errorf("expected total expenses %v, got %v", wantExpenses, calc.TotalExpenses)
	}
	if !floatEquals(calc.NetProfit, 2000-wantExpenses) {
		t.Errorf("expected net profit %v, got %v", 2000-wantExpenses, calc.NetProfit)
	}

	// 5.88% variance, 50 empty miles, 900 actual miles: all under threshold.
	if alerts := service.CalculateMileageAlerts(load); len(alerts) != 0 {
		t.Errorf("expected no alerts, got %+v", alerts)
	}
}

func TestMetrics_NetProfitIdentityHolds(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		PayAmount: 500,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 1000),
			reading(domain.StagePickup, 1300),
			reading(domain.StageDelivery, 2100),
		},
		Fuel:           &domain.FuelPurchase{TotalCost: 610.42},
		DaysUsed:       3,
		DailyTruckCost: 175,
		Tolls:          12.75,
	}

	calc := service.CalculateMetrics(load)

	want := calc.GrossPay - (calc.FuelCost + calc.MileageSurcharge + calc.DailyCosts + calc.AdminCosts + calc.Tolls)
	if calc.NetProfit != want {
		t.Errorf("net profit identity broken: got %v, want %v", calc.NetProfit, want)
	}

	// Net profit may be negative, no flooring.
	if calc.NetProfit >= 0 {
		t.Errorf("expected negative net profit for this load, got %v", calc.NetProfit)
	}
}

func TestMetrics_PureAndIdempotent(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		ClaimedMiles: 700,
		PayAmount:    1800,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 50000),
			reading(domain.StagePickup, 50120),
			reading(domain.StageDelivery, 51000),
		},
		DaysUsed: 2,
	}

	first := service.CalculateMetrics(load)
	second := service.CalculateMetrics(load)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("CalculateMetrics not idempotent: %+v vs %+v", first, second)
	}

	firstAlerts := service.CalculateMileageAlerts(load)
	secondAlerts := service.CalculateMileageAlerts(load)
	if !reflect.DeepEqual(firstAlerts, secondAlerts) {
		t.Errorf("CalculateMileageAlerts not idempotent: %+v vs %+v", firstAlerts, secondAlerts)
	}
}

// ──────────────────────────────────────────────
// 2. ALERT BOUNDARIES
// ──────────────────────────────────────────────

func alertsOfType(alerts []domain.MileageAlert, alertType domain.AlertType) []domain.MileageAlert {
	var matched []domain.MileageAlert
	for _, a := range alerts {
		if a.Type == alertType {
			matched = append(matched, a)
		}
	}
	return matched
}

func TestAlerts_EmptyMilesBoundaries(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		pickup       int
		wantCount    int
		wantSeverity domain.AlertSeverity
	}{
		{"exactly 100 no alert", 1100, 0, ""},
		{"101 warning", 1101, 1, domain.AlertSeverityWarning},
		{"exactly 200 warning", 1200, 1, domain.AlertSeverityWarning},
		{"201 error", 1201, 1, domain.AlertSeverityError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			load := &domain.Load{
				OdometerReadings: []domain.OdometerReading{
					reading(domain.StageReceived, 1000),
					reading(domain.StagePickup, tc.pickup),
				},
			}

			alerts := alertsOfType(service.CalculateMileageAlerts(load), domain.AlertExcessiveEmptyMiles)
			if len(alerts) != tc.wantCount {
				t.Fatalf("expected %d empty-miles alerts, got %d", tc.wantCount, len(alerts))
			}
			if tc.wantCount == 1 {
				if alerts[0].Severity != tc.wantSeverity {
					t.Errorf("expected severity %s, got %s", tc.wantSeverity, alerts[0].Severity)
				}
				if alerts[0].Value != float64(tc.pickup-1000) {
					t.Errorf("expected alert value %d, got %v", tc.pickup-1000, alerts[0].Value)
				}
			}
		})
	}
}

func TestAlerts_VarianceBoundaries(t *testing.T) {
	t.Parallel()

	// Loads are built with 50 empty miles so only the variance (and, for
	// large totals, high-total-miles) rules can fire.
	cases := []struct {
		name         string
		claimed      int
		actual       int
		wantCount    int
		wantSeverity domain.AlertSeverity
	}{
		{"exactly 10 percent no alert", 500, 550, 0, ""},
		{"10.01 percent warning", 10000, 11001, 1, domain.AlertSeverityWarning},
		{"exactly 20 percent warning", 500, 600, 1, domain.AlertSeverityWarning},
		{"20.01 percent error", 10000, 12001, 1, domain.AlertSeverityError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			load := &domain.Load{
				ClaimedMiles: tc.claimed,
				OdometerReadings: []domain.OdometerReading{
					reading(domain.StageReceived, 100000),
					reading(domain.StagePickup, 100050),
					reading(domain.StageDelivery, 100000+tc.actual),
				},
			}

			alerts := alertsOfType(service.CalculateMileageAlerts(load), domain.AlertMileageVariance)
			if len(alerts) != tc.wantCount {
				t.Fatalf("expected %d variance alerts, got %d: %+v", tc.wantCount, len(alerts), alerts)
			}
			if tc.wantCount == 1 && alerts[0].Severity != tc.wantSeverity {
				t.Errorf("expected severity %s, got %s", tc.wantSeverity, alerts[0].Severity)
			}
		})
	}
}

func TestAlerts_HighTotalMilesIndependentOfOtherRules(t *testing.T) {
	t.Parallel()

	// 250 empty miles, 1250 total and a big claimed-miles gap: all three
	// rules fire at once.
	load := &domain.Load{
		ClaimedMiles: 900,
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 10000),
			reading(domain.StagePickup, 10250),
			reading(domain.StageDelivery, 11250),
		},
	}

	alerts := service.CalculateMileageAlerts(load)
	if len(alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d: %+v", len(alerts), alerts)
	}

	high := alertsOfType(alerts, domain.AlertHighTotalMiles)
	if len(high) != 1 {
		t.Fatalf("expected a high-total-miles alert, got %+v", alerts)
	}
	if high[0].Severity != domain.AlertSeverityWarning {
		t.Errorf("expected warning severity, got %s", high[0].Severity)
	}
	if high[0].Value != 1250 || high[0].Threshold != 1000 {
		t.Errorf("expected value=1250 threshold=1000, got value=%v threshold=%v", high[0].Value, high[0].Threshold)
	}
}

func TestAlerts_ExactThousandMilesNoHighTotalAlert(t *testing.T) {
	t.Parallel()

	load := &domain.Load{
		OdometerReadings: []domain.OdometerReading{
			reading(domain.StageReceived, 10000),
			reading(domain.StagePickup, 10050),
			reading(domain.StageDelivery, 11000),
		},
	}

	if alerts := alertsOfType(service.CalculateMileageAlerts(load), domain.AlertHighTotalMiles); len(alerts) != 0 {
		t.Errorf("expected no high-total-miles alert at exactly 1000, got %+v", alerts)
	}
}
