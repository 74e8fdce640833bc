// Package stitch reconciles homologous fragments found in overlapping scan
// windows. Duplicates and fragments contained in an accepted one are dropped;
// fragments that only partly overlap are both kept.
package stitch

import "iseq/internal/span"

// Item is a value located on the target in global coordinates.
type Item[T any] struct {
	Interval span.Interval
	Value    T
}

// Intersect merges the still-open items of earlier windows with the
// candidates of the current one. Both inputs are sorted by start. Items that
// can no longer be extended come back in ready; the rest stay waiting.
// When starts tie the longer item wins, and anything contained in an
// accepted item is dropped.
func Intersect[T any](waiting, candidates []Item[T]) (ready, newWaiting []Item[T]) {
	i, j := 0, 0
	stop := 0
	for i < len(waiting) && j < len(candidates) {
		w, c := waiting[i].Interval, candidates[j].Interval
		switch {
		case w.Start < c.Start:
			ready = append(ready, waiting[i])
			stop = w.Stop
			i++
		case w.Start == c.Start:
			if w.Stop >= c.Stop {
				ready = append(ready, waiting[i])
				stop = w.Stop
			} else {
				newWaiting = append(newWaiting, candidates[j])
				stop = c.Stop
			}
			i++
			j++
		default:
			newWaiting = append(newWaiting, candidates[j])
			stop = c.Stop
			j++
		}
		for i < len(waiting) && waiting[i].Interval.Stop <= stop {
			i++
		}
		for j < len(candidates) && candidates[j].Interval.Stop <= stop {
			j++
		}
	}
	ready = append(ready, waiting[i:]...)
	newWaiting = append(newWaiting, candidates[j:]...)
	return ready, newWaiting
}

// Stitcher feeds windows through Intersect one at a time.
type Stitcher[T any] struct {
	waiting []Item[T]
}

// Push adds the candidates of the next window and returns the items that are
// now final.
func (s *Stitcher[T]) Push(candidates []Item[T]) []Item[T] {
	ready, waiting := Intersect(s.waiting, candidates)
	s.waiting = waiting
	return ready
}

// Flush returns the remaining items and resets the stitcher.
func (s *Stitcher[T]) Flush() []Item[T] {
	out := s.waiting
	s.waiting = nil
	return out
}

// Stitch runs every window through a fresh Stitcher.
func Stitch[T any](windows [][]Item[T]) []Item[T] {
	var s Stitcher[T]
	var out []Item[T]
	for _, w := range windows {
		out = append(out, s.Push(w)...)
	}
	return append(out, s.Flush()...)
}
