package crontab

import (
	"container/heap"
	"time"

	"github.com/reugn/go-cronparser/cronparser"
)

// Activation is a single upcoming run of a crontab entry.
type Activation struct {
	Time  time.Time
	Entry *Entry
}

// item is the activationQueue item.
type item struct {
	entry    *Entry
	schedule *cronparser.Schedule
	next     time.Time // item priority
	index    int       // maintained by the heap.Interface methods
}

// activationQueue implements the heap.Interface, ordering items by their
// next activation time and then by line number.
type activationQueue []*item

// Len returns the activationQueue length.
func (q activationQueue) Len() int { return len(q) }

// Less is the items less comparator.
func (q activationQueue) Less(i, j int) bool {
	if q[i].next.Equal(q[j].next) {
		return q[i].entry.Line < q[j].entry.Line
	}
	return q[i].next.Before(q[j].next)
}

// Swap exchanges the indexes of the items.
func (q activationQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

// Push implements the heap.Interface.Push.
// Adds x as element Len().
func (q *activationQueue) Push(x any) {
	it := x.(*item)
	it.index = len(*q)
	*q = append(*q, it)
}

// Pop implements the heap.Interface.Pop.
// Removes and returns element Len() - 1.
func (q *activationQueue) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*q = old[:n-1]
	return it
}

// upcomingCapacity bounds the preallocated result of Upcoming.
const upcomingCapacity = 64

// Upcoming returns the next n activations of all the entries after from,
// in chronological order. Entries activated at the same time are ordered by
// their line number. The entry expressions are not moved.
func (tab *Crontab) Upcoming(from time.Time, n int) []Activation {
	queue := make(activationQueue, 0, len(tab.Entries))
	for i := range tab.Entries {
		entry := &tab.Entries[i]
		schedule := entry.Expression.Schedule()
		if next := schedule.Next(from); !next.IsZero() {
			queue = append(queue, &item{entry: entry, schedule: schedule, next: next, index: len(queue)})
		}
	}
	heap.Init(&queue)

	activations := make([]Activation, 0, min(max(n, 0), upcomingCapacity))
	for len(activations) < n && queue.Len() > 0 {
		head := queue[0]
		activations = append(activations, Activation{Time: head.next, Entry: head.entry})
		if head.next = head.schedule.Next(head.next); head.next.IsZero() {
			heap.Pop(&queue)
		} else {
			heap.Fix(&queue, 0)
		}
	}
	return activations
}
