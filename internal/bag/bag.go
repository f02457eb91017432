// Package bag counts term occurrences like a regular map, but stops storing new distinct terms
// once a limit is reached. The total count keeps growing past the limit.
package bag

import (
	"github.com/sirupsen/logrus"
	"sort"
)

const defaultLimit = 5000

// New returns a Bag holding at most limit distinct terms.
func New(limit int) *Bag {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Bag{
		limit:  limit,
		counts: make(map[string]int),
	}
}

// Bag is a bounded term counter. It is not safe for concurrent use.
type Bag struct {
	limit   int
	counts  map[string]int
	order   []string
	total   int
	dropped int
}

type Entry struct {
	Term  string
	Count int
}

// Add this observation to the bag
func (b *Bag) Observe(term string) {
	if term == "" {
		return
	}
	b.total++
	if _, ok := b.counts[term]; ok {
		b.counts[term]++
		return
	}
	if len(b.counts) >= b.limit {
		// After limit unique terms, cease mapping new values
		b.dropped++
		return
	}
	b.counts[term] = 1
	b.order = append(b.order, term)
}

func (b *Bag) Count(term string) int {
	return b.counts[term]
}

func (b *Bag) Len() int {
	return len(b.counts)
}

// Total is the number of observations, including those of terms that were not stored.
func (b *Bag) Total() int {
	return b.total
}

// Saturated reports whether observations were dropped because the limit was reached.
func (b *Bag) Saturated() bool {
	return b.dropped > 0
}

// Ranked returns the stored terms by descending count. Ties keep first-observed order.
func (b *Bag) Ranked() []Entry {
	entries := make([]Entry, 0, len(b.order))
	for _, term := range b.order {
		entries = append(entries, Entry{Term: term, Count: b.counts[term]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if b.dropped > 0 {
		logrus.Debugf("bag saturated at %d terms, %d observations not stored", b.limit, b.dropped)
	}
	return entries
}
