// Package live runs server-side scroll sessions: the browser streams its
// scroll position and heading geometry, the session answers with the active
// table-of-contents section, the header state and the page neighbours.
package live

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/toc"
)

// ErrNotMounted is returned by operations that need a mounted page.
var ErrNotMounted = errors.New("no page mounted")

// State is what a session reports back to the browser.
type State struct {
	SessionID  string     `json:"session_id"`
	Path       string     `json:"path,omitempty"`
	Section    string     `json:"section"`
	IsScrolled bool       `json:"is_scrolled"`
	Previous   *nav.Entry `json:"previous,omitempty"`
	Next       *nav.Entry `json:"next,omitempty"`
}

// Session is one page view. Its Feed is driven only by the owning
// connection, so tracker and header callbacks run on that goroutine.
type Session struct {
	id      string
	tree    *nav.Tree
	feed    *toc.Feed
	tracker *toc.Tracker
	header  *toc.Header

	mu         sync.Mutex
	mounted    bool
	path       string
	headings   []toc.Heading
	pagination nav.Pagination
	dirty      bool
}

// NewSession creates an unmounted session over tree.
func NewSession(tree *nav.Tree) *Session {
	s := &Session{
		id:   uuid.NewString(),
		tree: tree,
		feed: toc.NewFeed(),
	}
	s.tracker = toc.NewTracker(s.feed, func(string) { s.markDirty() })
	s.header = toc.NewHeader(func(bool) { s.markDirty() })
	return s
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Mount starts tracking the page at path. geo holds the heading geometry
// measured at scrollY. A previous mount is released first.
func (s *Session) Mount(path string, headings []toc.Heading, scrollY float64, geo toc.Document) State {
	s.Unmount()

	s.feed.Publish(scrollY)
	s.tracker.Mount(headings, geo)
	s.header.Attach(s.feed)

	s.mu.Lock()
	s.mounted = true
	s.path = path
	s.headings = headings
	s.pagination = s.tree.Locate(path)
	s.dirty = false
	s.mu.Unlock()

	return s.State()
}

// Scroll publishes a new scroll position. It reports whether the section or
// header state changed.
func (s *Session) Scroll(scrollY float64) (State, bool, error) {
	if !s.isMounted() {
		return State{}, false, ErrNotMounted
	}
	s.feed.Publish(scrollY)
	return s.State(), s.takeDirty(), nil
}

// Measure re-measures the mounted page, typically after a resize or once
// images have loaded.
func (s *Session) Measure(scrollY float64, geo toc.Document) (State, error) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return State{}, ErrNotMounted
	}
	path, headings := s.path, s.headings
	s.mu.Unlock()

	return s.Mount(path, headings, scrollY, geo), nil
}

// Unmount releases every subscription. It is safe to call repeatedly.
func (s *Session) Unmount() {
	s.tracker.Unmount()
	s.header.Detach()

	s.mu.Lock()
	s.mounted = false
	s.path = ""
	s.headings = nil
	s.pagination = nav.Pagination{}
	s.dirty = false
	s.mu.Unlock()
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := State{
		SessionID: s.id,
		Path:      s.path,
		Previous:  s.pagination.Previous,
		Next:      s.pagination.Next,
	}
	if s.mounted {
		st.Section = s.tracker.Current()
		st.IsScrolled = s.header.IsScrolled()
	}
	return st
}

// Subscribers returns the number of live feed subscriptions.
func (s *Session) Subscribers() int { return s.feed.Subscribers() }

func (s *Session) isMounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mounted
}

func (s *Session) markDirty() {
	s.mu.Lock()
	s.dirty = true
	s.mu.Unlock()
}

func (s *Session) takeDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.dirty
	s.dirty = false
	return d
}
