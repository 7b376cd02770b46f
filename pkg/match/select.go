package match

import "sort"

// selectBest reduces scored pairs to one record per distinct left value. The
// minimal distance wins and ties go to the smaller right index. Output order
// follows the first appearance of each left value in the left sequence, so
// the result is identical no matter how the pass was chunked.
func selectBest(pairs []ScoredPair) []MatchRecord {
	if len(pairs) == 0 {
		return []MatchRecord{}
	}

	type best struct {
		firstSeen int
		pair      ScoredPair
	}

	byValue := make(map[string]*best)
	for _, p := range pairs {
		b, ok := byValue[p.LeftValue]
		if !ok {
			byValue[p.LeftValue] = &best{firstSeen: p.LeftIndex, pair: p}
			continue
		}
		if p.LeftIndex < b.firstSeen {
			b.firstSeen = p.LeftIndex
		}
		if p.Distance < b.pair.Distance ||
			(p.Distance == b.pair.Distance && p.RightIndex < b.pair.RightIndex) {
			b.pair = p
		}
	}

	selected := make([]*best, 0, len(byValue))
	for _, b := range byValue {
		selected = append(selected, b)
	}
	sort.Slice(selected, func(i, j int) bool {
		return selected[i].firstSeen < selected[j].firstSeen
	})

	records := make([]MatchRecord, len(selected))
	for i, b := range selected {
		records[i] = MatchRecord{
			LeftValue:    b.pair.LeftValue,
			MatchedValue: b.pair.RightValue,
			Distance:     b.pair.Distance,
		}
	}
	return records
}
