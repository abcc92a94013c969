package sched

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Item is one submitted expression waiting to be evaluated.
type Item struct {
	// ID correlates the submission with its result and history record.
	ID uuid.UUID

	// Text is the expression exactly as the user left it.
	Text string

	// At is the submission time.
	At time.Time
}

// Mailbox holds the most recent submission: one mutable slot, deliberately
// not a queue. A newer submission replaces an older one that has not been
// taken; intermediate expressions are never evaluated.
//
// The mailbox also tracks whether a worker is draining it. Keeping the slot
// and the worker flag under one lock is what makes "at most one worker" and
// "no submission is ever stranded" hold at the same time: a submission that
// arrives between the worker's last empty check and its exit would otherwise
// be lost.
//
// Used by: Coordinator (submits), the worker goroutine (takes)
// Thread-safe: Yes (all operations lock)
type Mailbox struct {
	mutex   sync.Mutex
	slot    Item
	full    bool
	running bool
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Submit stores item, replacing any pending one. It returns true when the
// caller must start a worker: the mailbox claims the worker slot before
// returning, so two concurrent submitters can never both spawn.
func (m *Mailbox) Submit(item Item) (spawn bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.slot = item
	m.full = true
	if m.running {
		return false
	}
	m.running = true
	return true
}

// TryTake removes and returns the pending submission. When the mailbox is
// empty it releases the worker slot and returns false; the calling worker
// must exit without touching the mailbox again.
func (m *Mailbox) TryTake() (Item, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.full {
		m.running = false
		return Item{}, false
	}
	item := m.slot
	m.slot = Item{}
	m.full = false
	return item, true
}

// Has reports whether a submission is pending. The worker uses this to skip
// publishing a result that is already superseded.
func (m *Mailbox) Has() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.full
}

// Abandon releases the worker slot without draining. Called when a worker
// dies abnormally, so that the next submission starts a fresh one.
func (m *Mailbox) Abandon() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.running = false
}
