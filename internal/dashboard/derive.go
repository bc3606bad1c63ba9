package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

// ChartSlice is one labelled, colored value of a pie or bar chart.
type ChartSlice struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
	Hex   string  `json:"hex"`
	// Share is Value relative to the largest value of the chart, in [0,100].
	Share float64 `json:"share"`
}

// ProbabilityChart lays out the class distribution in severity order. The
// values are the server's, not renormalized.
func ProbabilityChart(p prediction.Probabilities) []ChartSlice {
	out := make([]ChartSlice, 0, len(prediction.PredictedClasses))
	for _, class := range prediction.PredictedClasses {
		color := RiskClassColor(class)
		v := p.Of(class)
		out = append(out, ChartSlice{Label: string(class), Value: v, Color: color, Hex: Hex(color), Share: clampPercent(v * 100)})
	}
	return out
}

// orderedStatuses returns canonical statuses first, then any others by name.
func orderedStatuses(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for _, s := range prediction.CanonicalStatuses {
		if _, ok := counts[s]; ok {
			out = append(out, s)
		}
	}
	extra := make([]string, 0)
	for s := range counts {
		if _, ok := statusColors[s]; !ok {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}

func StatusChart(counts map[string]int) []ChartSlice {
	statuses := orderedStatuses(counts)
	maxCount := 0
	for _, s := range statuses {
		if counts[s] > maxCount {
			maxCount = counts[s]
		}
	}
	out := make([]ChartSlice, 0, len(statuses))
	for _, s := range statuses {
		color := StatusColor(s)
		out = append(out, ChartSlice{
			Label: s,
			Value: float64(counts[s]),
			Color: color,
			Hex:   Hex(color),
			Share: share(counts[s], maxCount),
		})
	}
	return out
}

func TotalEvents(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

// MostCommonStatus returns the status with the highest count. Ties go to the
// status that comes first in chart order. Empty input yields "".
func MostCommonStatus(counts map[string]int) string {
	statuses := orderedStatuses(counts)
	sort.SliceStable(statuses, func(i, j int) bool {
		return counts[statuses[i]] > counts[statuses[j]]
	})
	if len(statuses) == 0 {
		return ""
	}
	return statuses[0]
}

// ActiveEvents counts events still open: classified or under investigation.
func ActiveEvents(counts map[string]int) int {
	return counts[prediction.StatusOpenClassified] + counts[prediction.StatusUnderInvestigation]
}

// ManufacturerChart keeps the server's order.
func ManufacturerChart(ms prediction.Manufacturers) []ChartSlice {
	maxCount := 0
	for _, m := range ms {
		if m.EventCount > maxCount {
			maxCount = m.EventCount
		}
	}
	out := make([]ChartSlice, 0, len(ms))
	for _, m := range ms {
		out = append(out, ChartSlice{
			Label: m.Name,
			Value: float64(m.EventCount),
			Color: Blue,
			Hex:   Hex(Blue),
			Share: share(m.EventCount, maxCount),
		})
	}
	return out
}

// FormatPercent renders a [0,1] ratio as a percentage with one decimal, e.g. 0.4567 -> "45.7%".
func FormatPercent(ratio float64) string {
	return decimal.NewFromFloat(ratio).Shift(2).StringFixed(1) + "%"
}

// FormatEventDate renders an ISO date as "Jan 15, 2024". Anything that does
// not parse is shown as received.
func FormatEventDate(s string) string {
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}

// RiskLabel is driven by the server's flag only, never by the score.
func RiskLabel(highRisk bool) string {
	if highRisk {
		return "High Risk"
	}
	return "Low Risk"
}

func RiskInterpretation(resp prediction.PostBinaryResponse) string {
	pct := FormatPercent(resp.Score)
	if resp.HighRisk() {
		return fmt.Sprintf("This device shows indicators of high risk for future use. The risk score of %s suggests increased monitoring and potential corrective actions may be warranted.", pct)
	}
	return fmt.Sprintf("This device shows low risk indicators for future use. The risk score of %s suggests the device can likely continue normal operation with standard monitoring protocols.", pct)
}

func share(n, maxCount int) float64 {
	if maxCount <= 0 {
		return 0
	}
	return clampPercent(float64(n) * 100 / float64(maxCount))
}

func clampPercent(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
