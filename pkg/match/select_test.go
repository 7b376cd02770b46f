package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBest_PicksMinimalDistance(t *testing.T) {
	pairs := []ScoredPair{
		{LeftIndex: 0, RightIndex: 0, LeftValue: "alpha", RightValue: "omega", Distance: 5},
		{LeftIndex: 0, RightIndex: 1, LeftValue: "alpha", RightValue: "alps", Distance: 2},
		{LeftIndex: 0, RightIndex: 2, LeftValue: "alpha", RightValue: "alpine", Distance: 3},
	}

	records := selectBest(pairs)

	require.Len(t, records, 1)
	assert.Equal(t, MatchRecord{LeftValue: "alpha", MatchedValue: "alps", Distance: 2}, records[0])
}

func TestSelectBest_TieGoesToEarlierRightIndex(t *testing.T) {
	// Both candidates are one edit away; the one scored earlier in
	// right-sequence order must win.
	pairs := []ScoredPair{
		{LeftIndex: 0, RightIndex: 0, LeftValue: "ab", RightValue: "a", Distance: 1},
		{LeftIndex: 0, RightIndex: 1, LeftValue: "ab", RightValue: "b", Distance: 1},
	}

	records := selectBest(pairs)

	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].MatchedValue, "Tie should resolve to the smaller right index")
}

func TestSelectBest_CollapsesDuplicateLeftValues(t *testing.T) {
	// The same left value at two positions yields one record, positioned by
	// its first appearance.
	pairs := []ScoredPair{
		{LeftIndex: 0, RightIndex: 0, LeftValue: "main", RightValue: "main st", Distance: 3},
		{LeftIndex: 1, RightIndex: 0, LeftValue: "oak", RightValue: "main st", Distance: 6},
		{LeftIndex: 2, RightIndex: 0, LeftValue: "main", RightValue: "main st", Distance: 3},
	}

	records := selectBest(pairs)

	require.Len(t, records, 2)
	assert.Equal(t, "main", records[0].LeftValue)
	assert.Equal(t, "oak", records[1].LeftValue)
}

func TestSelectBest_OrderFollowsFirstAppearance(t *testing.T) {
	pairs := []ScoredPair{
		{LeftIndex: 2, RightIndex: 0, LeftValue: "cherry", RightValue: "x", Distance: 1},
		{LeftIndex: 0, RightIndex: 0, LeftValue: "apple", RightValue: "x", Distance: 2},
		{LeftIndex: 1, RightIndex: 0, LeftValue: "banana", RightValue: "x", Distance: 3},
	}

	records := selectBest(pairs)

	require.Len(t, records, 3)
	assert.Equal(t, "apple", records[0].LeftValue)
	assert.Equal(t, "banana", records[1].LeftValue)
	assert.Equal(t, "cherry", records[2].LeftValue)
}

func TestSelectBest_IndependentOfPairOrder(t *testing.T) {
	// Workers can deliver chunks in any order; the selection must not care.
	pairs := []ScoredPair{
		{LeftIndex: 0, RightIndex: 0, LeftValue: "aa", RightValue: "ab", Distance: 1},
		{LeftIndex: 0, RightIndex: 1, LeftValue: "aa", RightValue: "aa", Distance: 0},
		{LeftIndex: 1, RightIndex: 0, LeftValue: "bb", RightValue: "ab", Distance: 1},
		{LeftIndex: 1, RightIndex: 1, LeftValue: "bb", RightValue: "aa", Distance: 2},
	}
	reversed := make([]ScoredPair, len(pairs))
	for i, p := range pairs {
		reversed[len(pairs)-1-i] = p
	}

	assert.Equal(t, selectBest(pairs), selectBest(reversed),
		"Selection must be identical regardless of pair arrival order")
}

func TestSelectBest_EmptyInput(t *testing.T) {
	records := selectBest(nil)

	assert.NotNil(t, records, "Empty input should yield an empty slice, not nil")
	assert.Empty(t, records)
}
