package prediction

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_PreMulticlassProbabilitiesNormalized(t *testing.T) {
	g := NewSeededGenerator(1, 2)

	for i := 0; i < 500; i++ {
		resp := g.PreMulticlass(PreMulticlassRequest{RiskClass: RiskClassI})
		p := resp.Probabilities
		assert.Greater(t, p.ClassI, 0.0)
		assert.Greater(t, p.ClassII, 0.0)
		assert.Greater(t, p.ClassIII, 0.0)
		assert.InDelta(t, 1.0, p.Sum(), 1e-9)
		assert.GreaterOrEqual(t, resp.ConfidenceLevel, 0.7)
		assert.Less(t, resp.ConfidenceLevel, 1.0)
	}
}

func TestGenerator_PreMulticlassEchoesRiskClass(t *testing.T) {
	g := NewSeededGenerator(3, 4)

	cases := map[RiskClass]PredictedClass{
		RiskClassI:     ClassI,
		RiskClassII:    ClassII,
		RiskClassIII:   ClassIII,
		RiskClassOther: ClassIII,
	}
	for in, want := range cases {
		t.Run(string(in), func(t *testing.T) {
			resp := g.PreMulticlass(PreMulticlassRequest{RiskClass: in, DeviceName: "ignored"})
			assert.Equal(t, want, resp.PredClass)
		})
	}
}

func TestGenerator_PostBinaryRanges(t *testing.T) {
	g := NewSeededGenerator(5, 6)

	sawHigh, sawLow := false, false
	for i := 0; i < 500; i++ {
		resp := g.PostBinary(PostBinaryRequest{})
		assert.GreaterOrEqual(t, resp.Score, 0.0)
		assert.Less(t, resp.Score, 1.0)
		assert.GreaterOrEqual(t, resp.ConfidenceLevel, 0.7)
		assert.Less(t, resp.ConfidenceLevel, 1.0)
		assert.Contains(t, []int{0, 1}, resp.PredHighRisk)
		if resp.HighRisk() {
			sawHigh = true
		} else {
			sawLow = true
		}
	}
	assert.True(t, sawHigh)
	assert.True(t, sawLow)
}

func TestGenerator_StatusSummaryShape(t *testing.T) {
	g := NewSeededGenerator(7, 8)

	resp := g.StatusSummary(StatusSummaryRequest{Country: "USA", DeviceName: "Pump"})

	require.Len(t, resp.StatusCounts, 4)
	assert.GreaterOrEqual(t, resp.StatusCounts[StatusTerminated], 10)
	assert.Less(t, resp.StatusCounts[StatusTerminated], 60)
	assert.GreaterOrEqual(t, resp.StatusCounts[StatusCompleted], 20)
	assert.Less(t, resp.StatusCounts[StatusCompleted], 120)
	assert.GreaterOrEqual(t, resp.StatusCounts[StatusOpenClassified], 5)
	assert.Less(t, resp.StatusCounts[StatusOpenClassified], 35)
	assert.GreaterOrEqual(t, resp.StatusCounts[StatusUnderInvestigation], 2)
	assert.Less(t, resp.StatusCounts[StatusUnderInvestigation], 22)

	require.Len(t, resp.Top5Events, 5)
	assert.Equal(t, "E001", resp.Top5Events[0].ID)
	assert.Equal(t, "E005", resp.Top5Events[4].ID)

	require.Len(t, resp.Manufacturers, 5)
	assert.Equal(t, "Acme Medical", resp.Manufacturers[0].Name)
	for _, m := range resp.Manufacturers {
		assert.Greater(t, m.EventCount, 0)
	}
	assert.False(t, resp.Failed())
	assert.NoError(t, validateResponse("status", resp))
}

func TestGenerator_StatusSummaryEventsAreCopies(t *testing.T) {
	g := NewSeededGenerator(9, 10)

	first := g.StatusSummary(StatusSummaryRequest{})
	first.Top5Events[0].ID = "mutated"
	second := g.StatusSummary(StatusSummaryRequest{})

	assert.Equal(t, "E001", second.Top5Events[0].ID)
}

func TestGenerator_Delay(t *testing.T) {
	g := NewSeededGenerator(11, 12)

	for i := 0; i < 200; i++ {
		d := g.Delay(DefaultMockDelayMin, DefaultMockDelayMax)
		assert.GreaterOrEqual(t, d, 1500*time.Millisecond)
		assert.Less(t, d, 2500*time.Millisecond)
	}
	assert.Equal(t, time.Duration(0), g.Delay(0, 0))
}
