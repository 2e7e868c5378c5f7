package serve

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/marcus/splitview/internal/store"
)

// SSEEvent represents a single Server-Sent Event.
type SSEEvent struct {
	ID    string // change_token used as event ID
	Event string // "refresh" or "ping"
	Data  string // JSON payload
}

// refreshData is the JSON payload for a refresh event.
type refreshData struct {
	ChangeToken string `json:"change_token"`
	Timestamp   string `json:"timestamp"`
}

// pingData is the JSON payload for a ping event.
type pingData struct {
	ChangeToken string `json:"change_token"`
}

// SSEHub manages connected SSE clients and broadcasts layout change events.
type SSEHub struct {
	store        *store.Store
	pollInterval time.Duration

	mu        sync.Mutex
	clients   map[chan SSEEvent]struct{}
	lastToken string // token of the last event sent, poller dedupe

	cancel context.CancelFunc
	done   chan struct{}
}

// NewSSEHub creates a new SSEHub with the given store and poll interval.
func NewSSEHub(st *store.Store, pollInterval time.Duration) *SSEHub {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &SSEHub{
		store:        st,
		pollInterval: pollInterval,
		clients:      make(map[chan SSEEvent]struct{}),
		done:         make(chan struct{}),
	}
}

// Start begins the background polling goroutine that watches the store's
// change token and sends periodic pings.
func (h *SSEHub) Start(ctx context.Context) {
	ctx, h.cancel = context.WithCancel(ctx)

	go h.run(ctx)
}

// Stop shuts down the SSE hub, closing all client channels and stopping the
// polling goroutine. A hub that was never started stops immediately.
func (h *SSEHub) Stop() {
	if h.cancel == nil {
		h.closeAllClients()
		return
	}
	h.cancel()
	<-h.done
}

// register adds a client channel and returns it.
func (h *SSEHub) register() chan SSEEvent {
	ch := make(chan SSEEvent, 16) // buffered to avoid blocking broadcasts
	h.mu.Lock()
	h.clients[ch] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	slog.Debug("sse: client registered", "clients", n)
	return ch
}

// unregister removes a client channel and closes it.
func (h *SSEHub) unregister(ch chan SSEEvent) {
	h.mu.Lock()
	if _, ok := h.clients[ch]; ok {
		delete(h.clients, ch)
		close(ch)
	}
	n := len(h.clients)
	h.mu.Unlock()
	slog.Debug("sse: client unregistered", "clients", n)
}

// Broadcast sends a refresh event to all connected clients with the given
// change token. The token is recorded so the background poller does not
// re-announce a change that was already pushed.
func (h *SSEHub) Broadcast(changeToken string) {
	data, _ := json.Marshal(refreshData{
		ChangeToken: changeToken,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	})

	event := SSEEvent{
		ID:    changeToken,
		Event: "refresh",
		Data:  string(data),
	}

	h.mu.Lock()
	h.lastToken = changeToken
	for ch := range h.clients {
		select {
		case ch <- event:
		default:
			// Client too slow, skip this event (next poll will catch up)
			slog.Debug("sse: dropped event for slow client")
		}
	}
	h.mu.Unlock()
}

// pollBroadcast reads the store's change token and broadcasts a refresh if
// it moved past the last event sent on any path.
func (h *SSEHub) pollBroadcast() {
	token, err := h.store.GetChangeToken()
	if err != nil {
		slog.Debug("sse: poll change token error", "err", err)
		return
	}

	h.mu.Lock()
	changed := token != h.lastToken
	h.mu.Unlock()

	if changed {
		h.Broadcast(token)
	}
}

// run is the background goroutine that polls the change token and sends pings.
func (h *SSEHub) run(ctx context.Context) {
	defer close(h.done)

	pollTicker := time.NewTicker(h.pollInterval)
	defer pollTicker.Stop()

	pingTicker := time.NewTicker(30 * time.Second)
	defer pingTicker.Stop()

	if token, err := h.store.GetChangeToken(); err == nil {
		h.mu.Lock()
		h.lastToken = token
		h.mu.Unlock()
	}

	for {
		select {
		case <-ctx.Done():
			h.closeAllClients()
			return

		case <-pollTicker.C:
			h.pollBroadcast()

		case <-pingTicker.C:
			token, _ := h.store.GetChangeToken()

			data, _ := json.Marshal(pingData{
				ChangeToken: token,
			})

			event := SSEEvent{
				ID:    token,
				Event: "ping",
				Data:  string(data),
			}

			h.mu.Lock()
			h.lastToken = token
			for ch := range h.clients {
				select {
				case ch <- event:
				default:
				}
			}
			h.mu.Unlock()
		}
	}
}

// closeAllClients closes all registered client channels.
func (h *SSEHub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}

// handleEvents is the HTTP handler for GET /v1/events (SSE endpoint).
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	// Verify streaming support
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, ErrInternal, "streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Clear the write deadline for this long-lived connection.
	rc := http.NewResponseController(w)
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		slog.Debug("sse: failed to clear write deadline", "err", err)
	}

	hub := s.sseHub
	if hub == nil {
		WriteError(w, ErrInternal, "event stream unavailable", http.StatusInternalServerError)
		return
	}
	ch := hub.register()
	defer hub.unregister(ch)

	// Check Last-Event-ID for reconnect support
	lastEventID := r.Header.Get("Last-Event-ID")
	currentToken, _ := s.store.GetChangeToken()

	if lastEventID != "" && lastEventID != currentToken {
		// Client reconnecting with a stale token — send immediate refresh
		writeSSEEvent(w, flusher, SSEEvent{
			ID:    currentToken,
			Event: "refresh",
			Data: marshalJSON(refreshData{
				ChangeToken: currentToken,
				Timestamp:   time.Now().UTC().Format(time.RFC3339),
			}),
		})
	} else {
		// New connection — send initial ping so client knows it's connected
		writeSSEEvent(w, flusher, SSEEvent{
			ID:    currentToken,
			Event: "ping",
			Data: marshalJSON(pingData{
				ChangeToken: currentToken,
			}),
		})
	}

	// Stream events from the hub channel until client disconnects
	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				// Channel closed (hub shutting down)
				return
			}
			writeSSEEvent(w, flusher, event)
		}
	}
}

// writeSSEEvent writes a single SSE event to the response writer and flushes.
func writeSSEEvent(w http.ResponseWriter, flusher http.Flusher, event SSEEvent) {
	fmt.Fprintf(w, "id: %s\nevent: %s\ndata: %s\n\n", event.ID, event.Event, event.Data)
	flusher.Flush()
}

// marshalJSON is a helper that marshals to JSON, returning "{}" on error.
func marshalJSON(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// NotifyChange is called after successful write operations: it reads the
// current change token and broadcasts a refresh to all SSE clients.
func (s *Server) NotifyChange() {
	token, err := s.store.GetChangeToken()
	if err != nil {
		slog.Debug("serve: NotifyChange get token", "err", err)
		return
	}
	if s.sseHub != nil {
		s.sseHub.Broadcast(token)
	}
}
