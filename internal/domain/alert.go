package domain

// AlertSeverity represents how serious a mileage alert is.
type AlertSeverity string

const (
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityError   AlertSeverity = "error"
)

// AlertType identifies the rule that produced a mileage alert.
type AlertType string

const (
	AlertExcessiveEmptyMiles AlertType = "excessive_empty_miles"
	AlertMileageVariance     AlertType = "mileage_variance"
	AlertHighTotalMiles      AlertType = "high_total_miles"
)

// MileageAlert flags a suspicious odometer reading pattern on a load.
// Value is the figure that triggered the rule and Threshold the limit it
// was compared against, kept for display and testability.
type MileageAlert struct {
	Type      AlertType     `json:"type"`
	Message   string        `json:"message"`
	Severity  AlertSeverity `json:"severity"`
	Value     float64       `json:"value"`
	Threshold float64       `json:"threshold"`
}
