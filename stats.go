package ringvec

import (
	"fmt"
	"sync/atomic"
)

// Stats defines buffer engine statistics indicator
type Stats struct {
	Reserves      uint64 // successful capacity increases
	Reallocs      uint64 // increases served by Reallocate
	FreshAllocs   uint64 // increases served by Allocate + two-range copy
	GrowRetries   uint64 // halved growth attempts after a refused reservation
	AllocFailures uint64 // growth or reserve requests that gave up
	Rotations     uint64 // alignments done by full juggling rotation
	Relocations   uint64 // alignments done by three bounded copies
	HeadMoves     uint64 // insert/erase gaps closed by moving the head side
	TailMoves     uint64 // insert/erase gaps closed by moving the tail side
	ElementsMoved uint64 // element copies done by shifting and alignment
}

func newStats() *Stats {
	return new(Stats)
}

// Header returns all field names
func (s *Stats) Header() []string {
	return []string{
		"Reserves",
		"Reallocs",
		"FreshAllocs",
		"GrowRetries",
		"AllocFailures",
		"Rotations",
		"Relocations",
		"HeadMoves",
		"TailMoves",
		"ElementsMoved",
	}
}

// ToSlice returns current stats info as a slice, in Header order
func (s *Stats) ToSlice() []string {
	c := s.Copy()
	return []string{
		fmt.Sprint(c.Reserves),
		fmt.Sprint(c.Reallocs),
		fmt.Sprint(c.FreshAllocs),
		fmt.Sprint(c.GrowRetries),
		fmt.Sprint(c.AllocFailures),
		fmt.Sprint(c.Rotations),
		fmt.Sprint(c.Relocations),
		fmt.Sprint(c.HeadMoves),
		fmt.Sprint(c.TailMoves),
		fmt.Sprint(c.ElementsMoved),
	}
}

// Copy make a copy of current stats snapshot
func (s *Stats) Copy() *Stats {
	d := newStats()
	d.Reserves = atomic.LoadUint64(&s.Reserves)
	d.Reallocs = atomic.LoadUint64(&s.Reallocs)
	d.FreshAllocs = atomic.LoadUint64(&s.FreshAllocs)
	d.GrowRetries = atomic.LoadUint64(&s.GrowRetries)
	d.AllocFailures = atomic.LoadUint64(&s.AllocFailures)
	d.Rotations = atomic.LoadUint64(&s.Rotations)
	d.Relocations = atomic.LoadUint64(&s.Relocations)
	d.HeadMoves = atomic.LoadUint64(&s.HeadMoves)
	d.TailMoves = atomic.LoadUint64(&s.TailMoves)
	d.ElementsMoved = atomic.LoadUint64(&s.ElementsMoved)
	return d
}

// Reset values to zero
func (s *Stats) Reset() {
	atomic.StoreUint64(&s.Reserves, 0)
	atomic.StoreUint64(&s.Reallocs, 0)
	atomic.StoreUint64(&s.FreshAllocs, 0)
	atomic.StoreUint64(&s.GrowRetries, 0)
	atomic.StoreUint64(&s.AllocFailures, 0)
	atomic.StoreUint64(&s.Rotations, 0)
	atomic.StoreUint64(&s.Relocations, 0)
	atomic.StoreUint64(&s.HeadMoves, 0)
	atomic.StoreUint64(&s.TailMoves, 0)
	atomic.StoreUint64(&s.ElementsMoved, 0)
}

// DefaultStats is the global engine statistics collector
var DefaultStats *Stats

func init() {
	DefaultStats = newStats()
}
