package matching

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredWith(id, name string, total int, risk float64) ScoredCandidate {
	return ScoredCandidate{
		Candidate: VendorCandidate{ID: id, Name: name, RiskScore: risk},
		Breakdown: ScoreBreakdown{Industry: total, Total: total},
	}
}

func TestAssembleSortsByScoreDescending(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "Alpha", 1, 0.5),
		scoredWith("v2", "Beta", 3, 0.5),
		scoredWith("v3", "Gamma", 2, 0.5),
	}
	results := Assemble(scored, (&Criteria{}).Normalize())

	require.Len(t, results, 3)
	assert.Equal(t, []string{"v2", "v3", "v1"},
		[]string{results[0].ID, results[1].ID, results[2].ID})
}

func TestAssembleRiskAscSecondary(t *testing.T) {
	// Equal scores, distinct risks: risk_asc orders them by ascending risk.
	scored := []ScoredCandidate{
		scoredWith("v1", "Alpha", 2, 0.50),
		scoredWith("v2", "Beta", 2, 0.10),
		scoredWith("v3", "Gamma", 2, 0.30),
		scoredWith("v4", "Delta", 2, 0.05),
		scoredWith("v5", "Epsilon", 2, 0.90),
	}
	criteria := (&Criteria{ResultLimit: 2, SortBy: SortRiskAsc}).Normalize()
	results := Assemble(scored, criteria)

	require.Len(t, results, 2)
	assert.Equal(t, "v4", results[0].ID)
	assert.Equal(t, "v2", results[1].ID)
}

func TestAssembleNameAscSecondary(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "Zephyr", 2, 0.1),
		scoredWith("v2", "Apex", 2, 0.9),
		scoredWith("v3", "Midway", 3, 0.5),
	}
	criteria := (&Criteria{SortBy: SortNameAsc}).Normalize()
	results := Assemble(scored, criteria)

	assert.Equal(t, []string{"v3", "v2", "v1"},
		[]string{results[0].ID, results[1].ID, results[2].ID})
}

func TestAssembleDefaultSortBreaksTiesByName(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "Zephyr", 2, 0.1),
		scoredWith("v2", "Apex", 2, 0.9),
	}
	results := Assemble(scored, (&Criteria{}).Normalize())
	assert.Equal(t, "Apex", results[0].Name)
	assert.Equal(t, "Zephyr", results[1].Name)
}

func TestAssembleIdenticalKeysFallBackToID(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v9", "Same", 1, 0.5),
		scoredWith("v1", "Same", 1, 0.5),
		scoredWith("v5", "Same", 1, 0.5),
	}
	// Repeated runs must agree on the order.
	for i := 0; i < 3; i++ {
		results := Assemble(scored, (&Criteria{}).Normalize())
		assert.Equal(t, []string{"v1", "v5", "v9"},
			[]string{results[0].ID, results[1].ID, results[2].ID}, "run %d", i)
	}
}

func TestAssembleDefaultCap(t *testing.T) {
	var scored []ScoredCandidate
	for i := 0; i < 30; i++ {
		scored = append(scored, scoredWith(
			fmt.Sprintf("v%02d", i), fmt.Sprintf("Vendor %02d", i), 0, 0.5))
	}
	results := Assemble(scored, (&Criteria{}).Normalize())
	assert.Len(t, results, DefaultResultLimit)
}

func TestAssembleExplicitLimit(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "A", 3, 0.5),
		scoredWith("v2", "B", 2, 0.5),
		scoredWith("v3", "C", 1, 0.5),
	}
	results := Assemble(scored, (&Criteria{ResultLimit: 1}).Normalize())
	require.Len(t, results, 1)
	assert.Equal(t, "v1", results[0].ID)
}

func TestAssembleKeepsZeroScoreCandidates(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "A", 0, 0.5),
		scoredWith("v2", "B", 0, 0.5),
	}
	results := Assemble(scored, (&Criteria{}).Normalize())
	assert.Len(t, results, 2)
	assert.Equal(t, 0, results[0].Score)
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	scored := []ScoredCandidate{
		scoredWith("v1", "A", 1, 0.5),
		scoredWith("v2", "B", 3, 0.5),
	}
	Assemble(scored, (&Criteria{}).Normalize())
	assert.Equal(t, "v1", scored[0].Candidate.ID)
	assert.Equal(t, "v2", scored[1].Candidate.ID)
}
