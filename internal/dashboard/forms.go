package dashboard

import (
	"strings"

	"go-meddevice-intelligence-ui/internal/connectors/prediction"
)

// Tab is one of the three dashboard screens.
type Tab struct {
	ID          string
	Name        string
	Description string
}

const (
	TabPreMulticlass = "pre-multiclass"
	TabPostBinary    = "post-binary"
	TabStatusSummary = "status-summary"
)

var Tabs = []Tab{
	{ID: TabPreMulticlass, Name: "Pre-Use Severity", Description: "Predict device risk classification"},
	{ID: TabPostBinary, Name: "Post-Event Risk", Description: "Assess risk after incidents"},
	{ID: TabStatusSummary, Name: "Status Summary", Description: "Device event analytics"},
}

// ResolveTab falls back to the first tab for unknown ids.
func ResolveTab(id string) Tab {
	for _, t := range Tabs {
		if t.ID == id {
			return t
		}
	}
	return Tabs[0]
}

// RiskClassOption pairs the label shown in the form with the code sent upstream.
type RiskClassOption struct {
	Label string
	Code  prediction.RiskClass
	Risk  string
}

var RiskClassOptions = []RiskClassOption{
	{Label: "Basic/Regulatory Device", Code: prediction.RiskClassI, Risk: "Low"},
	{Label: "Moderate/Standard Regulatory Device", Code: prediction.RiskClassII, Risk: "Medium"},
	{Label: "Advanced/Critical Care Device", Code: prediction.RiskClassIII, Risk: "High"},
	{Label: "Other/Not Classified", Code: prediction.RiskClassOther, Risk: "Other"},
}

// ResolveRiskClass maps a form label back to its code. Codes pass through
// unchanged and anything else is returned as typed so validation can reject it.
func ResolveRiskClass(v string) prediction.RiskClass {
	v = strings.TrimSpace(v)
	for _, opt := range RiskClassOptions {
		if opt.Label == v || string(opt.Code) == v {
			return opt.Code
		}
	}
	return prediction.RiskClass(v)
}

type ActionOption struct {
	Value prediction.Action
	Title string
}

func ActionOptions() []ActionOption {
	out := make([]ActionOption, 0, len(prediction.Actions))
	for _, a := range prediction.Actions {
		s := string(a)
		out = append(out, ActionOption{Value: a, Title: strings.ToUpper(s[:1]) + s[1:]})
	}
	return out
}

var DeviceClassifications = []string{"Cardiac Device", "Ventilator", "Surgical Instrument", "Diagnostic Equipment"}

var preMulticlassCountryCodes = []string{
	"USA", "AUS", "AUT", "BEL", "BLR",
	"BRA", "CAN", "CHE", "COL", "CUB", "CZE",
	"DEU", "DNK", "ESP", "FIN", "FRA", "GBR",
	"GRC", "HKG", "HRV", "IND", "IRL", "ITA",
	"JPN", "KOR", "LBN", "LTU", "MEX", "MYS",
	"NLD", "NZL", "PAN", "PER", "PHL", "POL",
	"PRT", "RUS", "SAU", "SGP", "SLV", "SRB",
	"SVN", "SWE", "TUN", "TUR", "AND",
}

type CountryOption struct {
	Code string
	Name string
}

// PreMulticlassCountries lists the markets the pre-use model was trained on,
// labelled with their English names.
func PreMulticlassCountries() []CountryOption {
	out := make([]CountryOption, 0, len(preMulticlassCountryCodes))
	for _, code := range preMulticlassCountryCodes {
		name := code
		if c, ok := prediction.CountryByAlpha3(code); ok {
			name = c.Info().Name
		}
		out = append(out, CountryOption{Code: code, Name: name})
	}
	return out
}

// StatusSummaryCountries are sent verbatim to the status endpoint.
var StatusSummaryCountries = []string{"USA", "Canada", "United Kingdom", "Germany", "France", "Japan", "Australia"}
