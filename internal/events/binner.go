package events

import (
	"sort"

	"ledgersim/internal/calendar"
)

// Bucket holds one month's events keyed by a sequential id.
type Bucket struct {
	ids    []int
	events map[int]Event
}

func newBucket() *Bucket {
	return &Bucket{events: make(map[int]Event)}
}

// Add stores e under the next id and returns it. Ids start at 1.
func (b *Bucket) Add(e Event) int {
	id := len(b.ids) + 1
	b.ids = append(b.ids, id)
	b.events[id] = e
	return id
}

func (b *Bucket) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ids)
}

// Get returns the event stored under id.
func (b *Bucket) Get(id int) (Event, bool) {
	if b == nil {
		return Event{}, false
	}
	e, ok := b.events[id]
	return e, ok
}

// IDs returns ids in insertion order.
func (b *Bucket) IDs() []int {
	if b == nil {
		return nil
	}
	return append([]int(nil), b.ids...)
}

// Each visits events in id order.
func (b *Bucket) Each(fn func(id int, e Event)) {
	if b == nil {
		return
	}
	for _, id := range b.ids {
		fn(id, b.events[id])
	}
}

// Bins maps months to their buckets.
type Bins struct {
	buckets map[calendar.YearMonth]*Bucket
	dropped int
}

func NewBins() *Bins {
	return &Bins{buckets: make(map[calendar.YearMonth]*Bucket)}
}

// Add bins each event whose month lies within slice and drops the rest.
// It returns how many events were kept.
func (b *Bins) Add(slice calendar.Slice, evs ...Event) int {
	kept := 0
	for _, e := range evs {
		ym := e.YearMonth()
		if !slice.Contains(ym) {
			b.dropped++
			continue
		}
		bucket, ok := b.buckets[ym]
		if !ok {
			bucket = newBucket()
			b.buckets[ym] = bucket
		}
		bucket.Add(e)
		kept++
	}
	return kept
}

// Month returns the bucket for ym, empty when nothing was binned there.
func (b *Bins) Month(ym calendar.YearMonth) *Bucket {
	if bucket, ok := b.buckets[ym]; ok {
		return bucket
	}
	return newBucket()
}

// Keys returns the populated months in chronological order.
func (b *Bins) Keys() []calendar.YearMonth {
	keys := make([]calendar.YearMonth, 0, len(b.buckets))
	for ym := range b.buckets {
		keys = append(keys, ym)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}

// Len counts binned events across all months.
func (b *Bins) Len() int {
	n := 0
	for _, bucket := range b.buckets {
		n += bucket.Len()
	}
	return n
}

// Dropped counts events that fell outside the slice.
func (b *Bins) Dropped() int {
	return b.dropped
}

// Bin expands series, then adds them ahead of oneOff into fresh bins.
func Bin(slice calendar.Slice, series []Recurring, oneOff []Event) (*Bins, error) {
	expanded, err := ExpandAll(series, slice)
	if err != nil {
		return nil, err
	}
	bins := NewBins()
	bins.Add(slice, expanded...)
	bins.Add(slice, oneOff...)
	return bins, nil
}
