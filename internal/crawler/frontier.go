package crawler

import (
	"container/list"
	"context"
	"errors"
	"sync"
)

// ErrExhausted is returned by Frontier.Next when the queue is empty and no
// fetch is in flight, so nothing can ever be added again.
var ErrExhausted = errors.New("frontier exhausted")

// ErrClosed is returned by Frontier.Next after Close.
var ErrClosed = errors.New("frontier closed")

// Frontier holds every piece of shared crawl bookkeeping behind one mutex:
// the FIFO queue of URLs waiting to be fetched, the set of URLs that have
// been admitted (queued or visited), the visited registry itself and the
// in-flight counter used for termination detection.
//
// A URL moves through two states. TryClaim admits it, after which it sits
// in the queue. PopFront or Next removes it from the queue and records it
// as visited in the same critical section, so a URL is never queued and
// visited at the same time. Neither set ever shrinks.
type Frontier struct {
	mu   sync.Mutex
	cond *sync.Cond

	// queue holds admitted URLs in insertion order.
	queue *list.List

	// known contains every URL ever admitted through TryClaim.
	// The value is true once the URL has been dequeued.
	known map[string]bool

	// visited lists dequeued URLs in dequeue order.
	visited []string

	// inFlight counts URLs handed out by Next whose Done has not been called.
	inFlight int

	// exhausted latches once the queue is empty with nothing in flight.
	exhausted bool

	closed bool
}

// NewFrontier returns an empty Frontier.
func NewFrontier() *Frontier {
	f := &Frontier{
		queue: list.New(),
		known: make(map[string]bool),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// TryClaim admits pageURL if it has never been admitted before and reports
// whether it did. The membership check and the insertion happen under the
// same lock, so among any number of concurrent callers for the same URL
// exactly one receives true. Once a URL has been admitted every later call
// returns false.
func (f *Frontier) TryClaim(pageURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.known[pageURL]; ok {
		return false
	}
	f.known[pageURL] = false
	return true
}

// Push appends pageURL to the tail of the queue and wakes one waiter.
// It does not check for duplicates; callers must win TryClaim first.
func (f *Frontier) Push(pageURL string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queue.PushBack(pageURL)
	f.cond.Signal()
}

// Enqueue is TryClaim followed by Push on success.
func (f *Frontier) Enqueue(pageURL string) bool {
	if !f.TryClaim(pageURL) {
		return false
	}
	f.Push(pageURL)
	return true
}

// PopFront removes the head of the queue and records it as visited.
// It returns false when the queue is empty. It does not touch the
// in-flight counter.
func (f *Frontier) PopFront() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.popLocked()
}

func (f *Frontier) popLocked() (string, bool) {
	front := f.queue.Front()
	if front == nil {
		return "", false
	}
	pageURL, _ := f.queue.Remove(front).(string)
	f.known[pageURL] = true
	f.visited = append(f.visited, pageURL)
	return pageURL, true
}

// Next blocks until a URL is available, the frontier is exhausted or ctx
// is done. A returned URL counts as in flight until Done is called.
//
// The frontier is exhausted when the queue is empty and nothing is in
// flight: only an in-flight fetch can add new URLs, so an empty queue with
// no in-flight work stays empty forever. Several workers may observe a
// momentarily empty queue at once; they keep waiting as long as another
// worker still holds an in-flight URL.
func (f *Frontier) Next(ctx context.Context) (string, error) {
	stop := context.AfterFunc(ctx, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cond.Broadcast()
	})
	defer stop()

	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if f.closed {
			return "", ErrClosed
		}
		if f.exhausted {
			return "", ErrExhausted
		}
		if pageURL, ok := f.popLocked(); ok {
			f.inFlight++
			return pageURL, nil
		}
		if f.inFlight == 0 {
			f.exhausted = true
			f.cond.Broadcast()
			return "", ErrExhausted
		}
		f.cond.Wait()
	}
}

// Done marks one URL returned by Next as finished. Links discovered while
// fetching it must be pushed before calling Done.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight > 0 {
		f.inFlight--
	}
	if f.inFlight == 0 {
		f.cond.Broadcast()
	}
}

// Close makes every pending and later Next call return ErrClosed.
// Queued URLs stay in the queue and are not marked visited.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.cond.Broadcast()
}

// Visited returns a copy of the visited registry in dequeue order.
func (f *Frontier) Visited() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.visited))
	copy(out, f.visited)
	return out
}

// IsVisited reports whether pageURL has been dequeued.
func (f *Frontier) IsVisited(pageURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.known[pageURL]
}

// VisitedCount returns the size of the visited registry.
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}

// KnownCount returns the number of URLs ever admitted.
func (f *Frontier) KnownCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.known)
}

// Len returns the number of URLs waiting in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queue.Len()
}

// InFlight returns the number of URLs handed out by Next and not yet Done.
func (f *Frontier) InFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}
