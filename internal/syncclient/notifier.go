package syncclient

import (
	"sync"
	"time"
)

// DefaultNotifyDelay is how long a notification stays visible.
const DefaultNotifyDelay = 5 * time.Second

// Kind distinguishes success from error notifications.
type Kind int

const (
	KindSuccess Kind = iota
	KindError
)

func (k Kind) String() string {
	if k == KindError {
		return "error"
	}
	return "success"
}

// Notification is a transient operator-facing message.
type Notification struct {
	Kind    Kind
	Message string
	At      time.Time
}

// Listener observes notifications being shown (active) and cleared.
type Listener func(n Notification, active bool)

// Notifier holds at most one notification and clears it after a delay. A new
// notification replaces the current one and cancels its pending clear.
type Notifier struct {
	mu       sync.Mutex
	delay    time.Duration
	current  *Notification
	timer    *time.Timer
	seq      uint64
	listener Listener
}

// NewNotifier creates a Notifier. delay <= 0 uses DefaultNotifyDelay;
// listener may be nil.
func NewNotifier(delay time.Duration, listener Listener) *Notifier {
	if delay <= 0 {
		delay = DefaultNotifyDelay
	}
	return &Notifier{delay: delay, listener: listener}
}

// Success shows a success message.
func (n *Notifier) Success(msg string) { n.show(KindSuccess, msg) }

// Error shows an error message.
func (n *Notifier) Error(msg string) { n.show(KindError, msg) }

// Current returns the visible notification, if any.
func (n *Notifier) Current() (Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notification{}, false
	}
	return *n.current, true
}

// Stop clears the notification and cancels any pending clear.
func (n *Notifier) Stop() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.seq++
	cleared := n.current
	n.current = nil
	n.mu.Unlock()

	if cleared != nil && n.listener != nil {
		n.listener(*cleared, false)
	}
}

func (n *Notifier) show(kind Kind, msg string) {
	note := Notification{Kind: kind, Message: msg, At: time.Now()}

	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.seq++
	seq := n.seq
	n.current = &note
	n.timer = time.AfterFunc(n.delay, func() { n.clear(seq) })
	n.mu.Unlock()

	if n.listener != nil {
		n.listener(note, true)
	}
}

// clear runs from the timer. A superseded timer that fired before Stop took
// effect finds a newer seq and does nothing.
func (n *Notifier) clear(seq uint64) {
	n.mu.Lock()
	if seq != n.seq || n.current == nil {
		n.mu.Unlock()
		return
	}
	cleared := *n.current
	n.current = nil
	n.timer = nil
	n.mu.Unlock()

	if n.listener != nil {
		n.listener(cleared, false)
	}
}
