package prediction

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Generator fabricates shape-correct responses for demo runs without a backend.
// Values are random, shapes are fixed. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator seeded from the wall clock.
func NewGenerator() *Generator {
	now := uint64(time.Now().UnixNano())
	return NewSeededGenerator(now, now>>17)
}

// NewSeededGenerator returns a generator with a reproducible sequence.
func NewSeededGenerator(seed1, seed2 uint64) *Generator {
	return &Generator{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

// uniform draws from [lo, hi).
func (g *Generator) uniform(lo, hi float64) float64 {
	return lo + g.rnd.Float64()*(hi-lo)
}

// intRange draws an integer from [lo, lo+span).
func (g *Generator) intRange(lo, span int) int {
	return lo + g.rnd.IntN(span)
}

func (g *Generator) coin() bool {
	return g.rnd.Float64() > 0.5
}

// Delay draws the artificial latency of a mocked call from [lo, hi).
func (g *Generator) Delay(lo, hi time.Duration) time.Duration {
	if hi <= lo {
		return lo
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return lo + time.Duration(g.rnd.Int64N(int64(hi-lo)))
}

// PreMulticlass echoes the requested tier as the predicted class and draws a
// normalized distribution. Only the risk class of the request is read.
func (g *Generator) PreMulticlass(req PreMulticlassRequest) PreMulticlassResponse {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := Probabilities{
		ClassI:   g.uniform(0.1, 0.5),
		ClassII:  g.uniform(0.1, 0.5),
		ClassIII: g.uniform(0.1, 0.5),
	}
	total := p.Sum()
	p.ClassI /= total
	p.ClassII /= total
	p.ClassIII /= total

	return PreMulticlassResponse{
		PredClass:              echoClass(req.RiskClass),
		Probabilities:          p,
		ConfidenceLevel:        g.uniform(0.7, 1.0),
		ComputedHistoryPresent: g.coin(),
	}
}

func echoClass(rc RiskClass) PredictedClass {
	switch rc {
	case RiskClassI:
		return ClassI
	case RiskClassII:
		return ClassII
	default:
		return ClassIII
	}
}

// PostBinary draws the score and the high-risk flag independently.
func (g *Generator) PostBinary(_ PostBinaryRequest) PostBinaryResponse {
	g.mu.Lock()
	defer g.mu.Unlock()

	flag := 0
	score := g.rnd.Float64()
	if g.coin() {
		flag = 1
	}
	return PostBinaryResponse{
		Score:           score,
		PredHighRisk:    flag,
		ConfidenceLevel: g.uniform(0.7, 1.0),
	}
}

var sampleEvents = []Event{
	{ID: "E001", Action: "Device recall due to software malfunction", Status: StatusCompleted, Date: "2024-01-15"},
	{ID: "E002", Action: "Safety notification for battery replacement", Status: StatusOpenClassified, Date: "2024-01-10"},
	{ID: "E003", Action: "Investigation of overheating reports", Status: StatusUnderInvestigation, Date: "2024-01-08"},
	{ID: "E004", Action: "Corrective action for manufacturing defect", Status: StatusCompleted, Date: "2024-01-05"},
	{ID: "E005", Action: "Field safety notice for calibration issue", Status: StatusTerminated, Date: "2024-01-02"},
}

var sampleManufacturers = []struct {
	name      string
	min, span int
}{
	{"Acme Medical", 10, 50},
	{"TechCorp Health", 8, 40},
	{"MedDevice Inc", 6, 35},
	{"Global Healthcare", 4, 30},
	{"Precision Med", 3, 25},
}

// StatusSummary returns the four canonical buckets with random counts, the
// fixed sample events and five manufacturers.
func (g *Generator) StatusSummary(_ StatusSummaryRequest) StatusSummaryResponse {
	g.mu.Lock()
	defer g.mu.Unlock()

	counts := map[string]int{
		StatusTerminated:         g.intRange(10, 50),
		StatusCompleted:          g.intRange(20, 100),
		StatusOpenClassified:     g.intRange(5, 30),
		StatusUnderInvestigation: g.intRange(2, 20),
	}

	events := make([]Event, len(sampleEvents))
	copy(events, sampleEvents)

	manufacturers := make(Manufacturers, 0, len(sampleManufacturers))
	for _, m := range sampleManufacturers {
		manufacturers = append(manufacturers, ManufacturerCount{Name: m.name, EventCount: g.intRange(m.min, m.span)})
	}

	return StatusSummaryResponse{
		StatusCounts:  counts,
		Top5Events:    events,
		Manufacturers: manufacturers,
	}
}
