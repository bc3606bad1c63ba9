package prediction

// RiskClass is the regulatory tier code submitted with a pre-use prediction.
type RiskClass string

const (
	RiskClassI     RiskClass = "I"
	RiskClassII    RiskClass = "II"
	RiskClassIII   RiskClass = "III"
	RiskClassOther RiskClass = "other"
)

// PredictedClass is the class label returned by the pre-use model.
type PredictedClass string

const (
	ClassI   PredictedClass = "CLASS I"
	ClassII  PredictedClass = "CLASS II"
	ClassIII PredictedClass = "CLASS III"
)

// PredictedClasses lists the labels in severity order.
var PredictedClasses = []PredictedClass{ClassI, ClassII, ClassIII}

// Action is the corrective action taken after an event.
type Action string

const (
	ActionRecall        Action = "recall"
	ActionNotification  Action = "notification"
	ActionRepair        Action = "repair"
	ActionInvestigation Action = "investigation"
	ActionWarning       Action = "warning"
)

var Actions = []Action{ActionRecall, ActionNotification, ActionRepair, ActionInvestigation, ActionWarning}

// Canonical status buckets.
const (
	StatusTerminated         = "Terminated"
	StatusCompleted          = "Completed"
	StatusOpenClassified     = "Open, Classified"
	StatusUnderInvestigation = "Under Investigation"
)

var CanonicalStatuses = []string{StatusTerminated, StatusCompleted, StatusOpenClassified, StatusUnderInvestigation}

// ErrDeviceNotFound is the domain error the status endpoint reports on a 200 response.
const ErrDeviceNotFound = "Device not found"

type PreMulticlassRequest struct {
	DeviceName             string    `json:"deviceName" validate:"required"`
	ManufacturerSourceName string    `json:"manufacturerSourceName" validate:"required"`
	RiskClass              RiskClass `json:"riskClass" validate:"required,oneof=I II III other"`
	Classification         string    `json:"classification" validate:"required"`
	Implanted              bool      `json:"implanted"`
	QuantityInCommerce     int       `json:"quantityInCommerce" validate:"gte=1,lte=100000"`
	Country                string    `json:"country" validate:"required,alpha3_country"`
	ParentCompany          string    `json:"parentCompany" validate:"required"`
}

// Probabilities is the per-class distribution returned by the server. It is
// consumed as already normalized.
type Probabilities struct {
	ClassI   float64 `json:"CLASS I" validate:"gte=0,lte=1"`
	ClassII  float64 `json:"CLASS II" validate:"gte=0,lte=1"`
	ClassIII float64 `json:"CLASS III" validate:"gte=0,lte=1"`
}

// Of returns the probability of a single class.
func (p Probabilities) Of(c PredictedClass) float64 {
	switch c {
	case ClassI:
		return p.ClassI
	case ClassII:
		return p.ClassII
	case ClassIII:
		return p.ClassIII
	}
	return 0
}

func (p Probabilities) Sum() float64 {
	return p.ClassI + p.ClassII + p.ClassIII
}

type PreMulticlassResponse struct {
	PredClass              PredictedClass `json:"pred_class" validate:"required,oneof='CLASS I' 'CLASS II' 'CLASS III'"`
	Probabilities          Probabilities  `json:"probabilities"`
	ConfidenceLevel        float64        `json:"confidence_level" validate:"gte=0,lte=1"`
	ComputedHistoryPresent bool           `json:"computed_history_present"`
}

func (PreMulticlassResponse) requiredKeys() []string {
	return []string{
		"pred_class",
		"probabilities.CLASS I",
		"probabilities.CLASS II",
		"probabilities.CLASS III",
		"confidence_level",
	}
}

type PostBinaryRequest struct {
	Reason        string `json:"reason" validate:"required"`
	Action        Action `json:"action" validate:"required,oneof=recall notification repair investigation warning"`
	ActionSummary string `json:"actionSummary" validate:"required"`
}

// PostBinaryResponse carries a score and a flag the server supplies
// independently. The flag alone decides the risk label.
type PostBinaryResponse struct {
	Score           float64 `json:"score" validate:"gte=0,lte=1"`
	PredHighRisk    int     `json:"pred_high_risk" validate:"oneof=0 1"`
	ConfidenceLevel float64 `json:"confidence_level" validate:"gte=0,lte=1"`
}

func (PostBinaryResponse) requiredKeys() []string {
	return []string{"score", "pred_high_risk", "confidence_level"}
}

// HighRisk reports the server's binary outcome.
func (r PostBinaryResponse) HighRisk() bool {
	return r.PredHighRisk == 1
}

type StatusSummaryRequest struct {
	Country    string `json:"country" validate:"required"`
	DeviceName string `json:"deviceName" validate:"required"`
}

type Event struct {
	ID     string `json:"id" validate:"required"`
	Action string `json:"action"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

type StatusSummaryResponse struct {
	StatusCounts  map[string]int `json:"statusCounts" validate:"dive,gte=0"`
	Top5Events    []Event        `json:"top5Events" validate:"max=5,dive"`
	Manufacturers Manufacturers  `json:"manufacturers" validate:"dive"`
	Error         string         `json:"error,omitempty"`
}

// Failed reports whether the server answered with a domain-level error.
func (r StatusSummaryResponse) Failed() bool {
	return r.Error != ""
}

// An error answer carries nothing but the error key.
func (r StatusSummaryResponse) requiredKeys() []string {
	if r.Failed() {
		return nil
	}
	return []string{"statusCounts"}
}
