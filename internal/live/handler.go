package live

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/rubicon-docs/docsite/internal/nav"
	"github.com/rubicon-docs/docsite/internal/pages"
	"github.com/rubicon-docs/docsite/internal/toc"
)

// PageSource looks up indexed pages by route.
type PageSource interface {
	Get(ctx context.Context, path string) (*pages.Page, error)
}

// clientMessage is the incoming WebSocket message format.
type clientMessage struct {
	Type     string       `json:"type"` // "mount", "scroll", "measure" or "unmount"
	Path     string       `json:"path,omitempty"`
	ScrollY  float64      `json:"scroll_y"`
	Elements toc.Geometry `json:"elements,omitempty"`
}

// serverMessage is the outgoing WebSocket message format.
type serverMessage struct {
	Type string `json:"type"` // "state" or "error"
	State
	Error string `json:"error,omitempty"`
}

// Handler serves /ws/scroll.
type Handler struct {
	tree     *nav.Tree
	pages    PageSource
	log      *zap.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewHandler creates a Handler resolving tables of contents through src.
func NewHandler(tree *nav.Tree, src PageSource, log *zap.Logger) *Handler {
	return &Handler{
		tree:  tree,
		pages: src,
		log:   log,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		sessions: make(map[string]*Session),
	}
}

// RegisterRoutes mounts the scroll session endpoint on the given router.
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/ws/scroll", h.ServeHTTP)
}

// Sessions returns the number of open sessions.
func (h *Handler) Sessions() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s := NewSession(h.tree)
	h.track(s)
	defer h.untrack(s)
	defer s.Unmount()

	log := h.log.With(zap.String("session", s.ID()))
	log.Debug("scroll session opened")

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("websocket read failed", zap.Error(err))
			}
			log.Debug("scroll session closed")
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.send(conn, log, serverMessage{Type: "error", State: s.State(), Error: "invalid message format"})
			continue
		}

		reply, ok := h.handle(r.Context(), s, msg)
		if ok {
			h.send(conn, log, reply)
		}
	}
}

// handle applies one client message. ok is false when nothing needs to be
// sent back.
func (h *Handler) handle(ctx context.Context, s *Session, msg clientMessage) (serverMessage, bool) {
	switch msg.Type {
	case "mount":
		if msg.Path == "" {
			return errorMessage(s, "path is required"), true
		}
		headings, err := h.headings(ctx, msg.Path)
		if err != nil {
			h.log.Error("loading table of contents", zap.String("path", msg.Path), zap.Error(err))
			return errorMessage(s, "could not load page"), true
		}
		return serverMessage{Type: "state", State: s.Mount(msg.Path, headings, msg.ScrollY, geometry(msg.Elements))}, true

	case "scroll":
		st, changed, err := s.Scroll(msg.ScrollY)
		if err != nil {
			return errorMessage(s, err.Error()), true
		}
		return serverMessage{Type: "state", State: st}, changed

	case "measure":
		st, err := s.Measure(msg.ScrollY, geometry(msg.Elements))
		if err != nil {
			return errorMessage(s, err.Error()), true
		}
		return serverMessage{Type: "state", State: st}, true

	case "unmount":
		s.Unmount()
		return serverMessage{}, false

	default:
		return errorMessage(s, "unknown message type: "+msg.Type), true
	}
}

// headings returns the table of contents of path. Pages missing from the
// index have none; the session still reports neighbours for them.
func (h *Handler) headings(ctx context.Context, path string) ([]toc.Heading, error) {
	p, err := h.pages.Get(ctx, path)
	if errors.Is(err, pages.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p.TOC, nil
}

func (h *Handler) send(conn *websocket.Conn, log *zap.Logger, msg serverMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		log.Warn("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) track(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID()] = s
	h.mu.Unlock()
}

func (h *Handler) untrack(s *Session) {
	h.mu.Lock()
	delete(h.sessions, s.ID())
	h.mu.Unlock()
}

func errorMessage(s *Session, text string) serverMessage {
	return serverMessage{Type: "error", State: s.State(), Error: text}
}

func geometry(g toc.Geometry) toc.Geometry {
	if g == nil {
		return toc.Geometry{}
	}
	return g
}
