package dashboard

import (
	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

type PreMulticlassView struct {
	PredClass      string       `json:"pred_class"`
	BadgeColor     string       `json:"badge_color"`
	Chart          []ChartSlice `json:"chart"`
	Confidence     string       `json:"confidence"`
	HistoryPresent bool         `json:"history_present"`
	HistoryMessage string       `json:"history_message"`
	TopProbability string       `json:"top_probability"`
}

func NewPreMulticlassView(resp prediction.PreMulticlassResponse) PreMulticlassView {
	history := "No historical records were found for this device; the prediction relies on device attributes only."
	if resp.ComputedHistoryPresent {
		history = "Historical records for this device were included in the prediction."
	}
	return PreMulticlassView{
		PredClass:      string(resp.PredClass),
		BadgeColor:     RiskClassColor(resp.PredClass),
		Chart:          ProbabilityChart(resp.Probabilities),
		Confidence:     FormatPercent(resp.ConfidenceLevel),
		HistoryPresent: resp.ComputedHistoryPresent,
		HistoryMessage: history,
		TopProbability: FormatPercent(resp.Probabilities.Of(resp.PredClass)),
	}
}

type PostBinaryView struct {
	HighRisk       bool    `json:"high_risk"`
	Label          string  `json:"label"`
	Score          float64 `json:"score"`
	ScorePercent   string  `json:"score_percent"`
	GaugeColor     string  `json:"gauge_color"`
	GaugeHex       string  `json:"gauge_hex"`
	Confidence     string  `json:"confidence"`
	Interpretation string  `json:"interpretation"`
}

func NewPostBinaryView(resp prediction.PostBinaryResponse) PostBinaryView {
	gauge := GaugeColor(resp.Score)
	return PostBinaryView{
		HighRisk:       resp.HighRisk(),
		Label:          RiskLabel(resp.HighRisk()),
		Score:          resp.Score,
		ScorePercent:   FormatPercent(resp.Score),
		GaugeColor:     gauge,
		GaugeHex:       Hex(gauge),
		Confidence:     FormatPercent(resp.ConfidenceLevel),
		Interpretation: RiskInterpretation(resp),
	}
}

type StatCard struct {
	Title string `json:"title"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

type EventRow struct {
	prediction.Event
	Color string `json:"color"`
}

// StatusSummaryView is either an error view (Err set, nothing else) or the
// full set of summary sections.
type StatusSummaryView struct {
	Err              string       `json:"error,omitempty"`
	Cards            []StatCard   `json:"cards,omitempty"`
	StatusChart      []ChartSlice `json:"status_chart,omitempty"`
	TotalEvents      int          `json:"total_events"`
	MostCommonStatus string       `json:"most_common_status,omitempty"`
	ActiveEvents     int          `json:"active_events"`
	Events           []EventRow   `json:"events,omitempty"`
	Manufacturers    []ChartSlice `json:"manufacturers,omitempty"`
}

func (v StatusSummaryView) Failed() bool {
	return v.Err != ""
}

func NewStatusSummaryView(resp prediction.StatusSummaryResponse) StatusSummaryView {
	if resp.Failed() {
		return StatusSummaryView{Err: resp.Error}
	}

	chart := StatusChart(resp.StatusCounts)
	cards := make([]StatCard, 0, len(chart))
	for _, s := range chart {
		cards = append(cards, StatCard{Title: s.Label, Value: int(s.Value), Color: s.Color})
	}

	events := make([]EventRow, 0, len(resp.Top5Events))
	for _, e := range resp.Top5Events {
		events = append(events, EventRow{Event: e, Color: StatusColor(e.Status)})
	}

	return StatusSummaryView{
		Cards:            cards,
		StatusChart:      chart,
		TotalEvents:      TotalEvents(resp.StatusCounts),
		MostCommonStatus: MostCommonStatus(resp.StatusCounts),
		ActiveEvents:     ActiveEvents(resp.StatusCounts),
		Events:           events,
		Manufacturers:    ManufacturerChart(resp.Manufacturers),
	}
}
