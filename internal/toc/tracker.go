package toc

import "sync"

// State is the lifecycle phase of a Tracker.
type State int

const (
	// Idle: nothing mounted, or the mounted page has no headings.
	Idle State = iota
	// Measuring: headings are known but offsets are not computed yet.
	Measuring
	// Tracking: offsets computed and subscribed to scroll events.
	Tracking
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Measuring:
		return "measuring"
	case Tracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// Tracker maintains the active table-of-contents section of one page view.
type Tracker struct {
	src      ScrollSource
	onChange func(section string)

	mu          sync.Mutex
	state       State
	offsets     []Offset
	current     string
	gen         uint64
	unsubscribe func()
}

// NewTracker creates an idle tracker reading scroll positions from src.
// onChange, if non-nil, is called outside the tracker lock whenever the
// active section changes.
func NewTracker(src ScrollSource, onChange func(section string)) *Tracker {
	return &Tracker{src: src, onChange: onChange}
}

// Mount measures headings against doc and starts tracking. Any previous
// mount is released first. A page without headings leaves the tracker idle
// with no subscription.
func (t *Tracker) Mount(headings []Heading, doc Document) {
	t.Unmount()

	t.mu.Lock()
	if len(headings) == 0 {
		t.mu.Unlock()
		return
	}

	t.state = Measuring
	t.current = headings[0].ID
	t.offsets = Measure(headings, doc, t.src.ScrollY())

	gen := t.gen
	t.state = Tracking
	t.mu.Unlock()

	unsubscribe := t.src.Subscribe(func(y float64) { t.update(gen, y) })

	t.mu.Lock()
	if t.gen != gen {
		// Unmounted while subscribing.
		t.mu.Unlock()
		unsubscribe()
		return
	}
	t.unsubscribe = unsubscribe
	t.mu.Unlock()

	t.update(gen, t.src.ScrollY())
}

// Unmount releases the scroll subscription and resets the tracker to Idle.
// Scroll events delivered afterwards are ignored.
func (t *Tracker) Unmount() {
	t.mu.Lock()
	unsubscribe := t.unsubscribe
	t.unsubscribe = nil
	t.gen++
	t.state = Idle
	t.offsets = nil
	t.current = ""
	t.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (t *Tracker) update(gen uint64, scrollY float64) {
	t.mu.Lock()
	if gen != t.gen || t.state != Tracking || len(t.offsets) == 0 {
		t.mu.Unlock()
		return
	}
	next := ActiveSection(t.offsets, scrollY)
	changed := next != t.current
	t.current = next
	t.mu.Unlock()

	if changed && t.onChange != nil {
		t.onChange(next)
	}
}

// Current returns the active section id, or "" when nothing is mounted.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// State returns the tracker phase.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Offsets returns a copy of the measured offsets.
func (t *Tracker) Offsets() []Offset {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Offset, len(t.offsets))
	copy(out, t.offsets)
	return out
}

// Header tracks whether the page has been scrolled away from the top.
type Header struct {
	onChange func(scrolled bool)

	mu          sync.Mutex
	scrolled    bool
	gen         uint64
	unsubscribe func()
}

// NewHeader creates a detached header state.
func NewHeader(onChange func(scrolled bool)) *Header {
	return &Header{onChange: onChange}
}

// Attach computes the state once from src and then follows its scroll
// events until Detach.
func (h *Header) Attach(src ScrollSource) {
	h.Detach()

	h.mu.Lock()
	gen := h.gen
	h.mu.Unlock()

	unsubscribe := src.Subscribe(func(y float64) { h.update(gen, y) })

	h.mu.Lock()
	if h.gen != gen {
		h.mu.Unlock()
		unsubscribe()
		return
	}
	h.unsubscribe = unsubscribe
	h.mu.Unlock()

	h.update(gen, src.ScrollY())
}

// Detach releases the subscription. The last computed value is kept.
func (h *Header) Detach() {
	h.mu.Lock()
	unsubscribe := h.unsubscribe
	h.unsubscribe = nil
	h.gen++
	h.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (h *Header) update(gen uint64, scrollY float64) {
	h.mu.Lock()
	if gen != h.gen {
		h.mu.Unlock()
		return
	}
	next := IsScrolled(scrollY)
	changed := next != h.scrolled
	h.scrolled = next
	h.mu.Unlock()

	if changed && h.onChange != nil {
		h.onChange(next)
	}
}

// IsScrolled reports the current header state.
func (h *Header) IsScrolled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scrolled
}
