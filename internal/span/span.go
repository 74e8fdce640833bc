// Package span holds half-open sequence intervals.
package span

import "fmt"

// Interval is the half-open range [Start, Stop).
type Interval struct {
	Start int
	Stop  int
}

func New(start, stop int) Interval { return Interval{Start: start, Stop: stop} }

func (iv Interval) Len() int       { return iv.Stop - iv.Start }
func (iv Interval) Empty() bool    { return iv.Stop <= iv.Start }
func (iv Interval) String() string { return fmt.Sprintf("[%d, %d)", iv.Start, iv.Stop) }

// Shift moves iv by off.
func (iv Interval) Shift(off int) Interval { return Interval{iv.Start + off, iv.Stop + off} }

// Contains reports whether o lies within iv.
func (iv Interval) Contains(o Interval) bool { return iv.Start <= o.Start && o.Stop <= iv.Stop }

// Overlaps reports whether the two intervals share a position.
func (iv Interval) Overlaps(o Interval) bool { return iv.Start < o.Stop && o.Start < iv.Stop }
