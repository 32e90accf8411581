package analytics

import "sort"

// counter tallies labels and remembers the order they were first seen so
// equal counts keep that order after sorting.
type counter struct {
	index map[string]int
	items []LabelCount
}

func newCounter() *counter {
	return &counter{index: make(map[string]int)}
}

func (c *counter) add(label string, n int) {
	if i, ok := c.index[label]; ok {
		c.items[i].Count += n
		return
	}
	c.index[label] = len(c.items)
	c.items = append(c.items, LabelCount{Label: label, Count: n})
}

func (c *counter) len() int {
	return len(c.items)
}

// ranked returns the labels by descending count, ties in first-seen order.
// limit <= 0 returns every label.
func (c *counter) ranked(limit int) []LabelCount {
	out := make([]LabelCount, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
