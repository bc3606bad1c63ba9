package dashboard

import "go-meddevice-intelligence-ui/internal/connectors/prediction"

// Palette names used by badges and stat cards.
const (
	Gray  = "gray"
	Blue  = "blue"
	Amber = "amber"
	Red   = "red"
	Green = "green"
)

var hexByColor = map[string]string{
	Gray:  "#6b7280",
	Blue:  "#2563eb",
	Amber: "#f59e0b",
	Red:   "#ef4444",
	Green: "#10b981",
}

var statusColors = map[string]string{
	prediction.StatusTerminated:         Gray,
	prediction.StatusCompleted:          Blue,
	prediction.StatusOpenClassified:     Amber,
	prediction.StatusUnderInvestigation: Red,
}

var riskClassColors = map[prediction.PredictedClass]string{
	prediction.ClassI:   Green,
	prediction.ClassII:  Amber,
	prediction.ClassIII: Red,
}

// StatusColor maps an event status to its palette color; unknown statuses are gray.
func StatusColor(status string) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return Gray
}

// RiskClassColor maps a predicted class to its badge color.
func RiskClassColor(class prediction.PredictedClass) string {
	if c, ok := riskClassColors[class]; ok {
		return c
	}
	return Gray
}

// Hex returns the chart fill for a palette color.
func Hex(color string) string {
	if h, ok := hexByColor[color]; ok {
		return h
	}
	return hexByColor[Gray]
}

// GaugeColor colors the risk score gauge in thirds.
func GaugeColor(score float64) string {
	switch {
	case score <= 0.33:
		return Green
	case score <= 0.66:
		return Amber
	default:
		return Red
	}
}
