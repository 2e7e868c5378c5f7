package serve

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marcus/splitview/internal/store"
)

func TestEventsStreamSendsInitialPing(t *testing.T) {
	s, _ := newTestServer(t, ServeConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/v1/events", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(rec, req)
		close(done)
	}()

	// Let the handler write the initial event, then hang up.
	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", got)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "event: ping") {
		t.Errorf("body missing initial ping event: %q", body)
	}
	if !strings.Contains(body, "change_token") {
		t.Errorf("ping payload missing change token: %q", body)
	}
}

func TestEventsStreamRefreshOnStaleReconnect(t *testing.T) {
	s, _ := newTestServer(t, ServeConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest("GET", "/v1/events", nil).WithContext(ctx)
	req.Header.Set("Last-Event-ID", "stale-token")
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		s.Handler().ServeHTTP(rec, req)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	if body := rec.Body.String(); !strings.Contains(body, "event: refresh") {
		t.Errorf("stale reconnect should get an immediate refresh, body %q", body)
	}
}

func TestPollerSkipsAlreadyBroadcastToken(t *testing.T) {
	s, st := newTestServer(t, ServeConfig{})
	hub := s.sseHub

	ch := hub.register()
	defer hub.unregister(ch)

	// A write notifies clients on the push path.
	if err := st.SaveLayout(&store.Layout{ID: "main", FirstSize: "240px"}); err != nil {
		t.Fatalf("SaveLayout: %v", err)
	}
	s.NotifyChange()

	select {
	case event := <-ch:
		if event.Event != "refresh" {
			t.Fatalf("event = %q, want refresh", event.Event)
		}
	case <-time.After(time.Second):
		t.Fatal("notify never reached the client channel")
	}

	// The next poll sees the same token and must stay quiet.
	hub.pollBroadcast()
	select {
	case event := <-ch:
		t.Fatalf("poller re-announced an already pushed change: %+v", event)
	default:
	}
}

func TestHubStopWithoutStart(t *testing.T) {
	s, _ := newTestServer(t, ServeConfig{})

	done := make(chan struct{})
	go func() {
		s.sseHub.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked without a running hub")
	}
}

func TestHubBroadcastReachesClients(t *testing.T) {
	s, st := newTestServer(t, ServeConfig{})
	hub := s.sseHub

	ch := hub.register()
	defer hub.unregister(ch)

	token, err := st.GetChangeToken()
	if err != nil {
		t.Fatalf("GetChangeToken: %v", err)
	}
	hub.Broadcast(token)

	select {
	case event := <-ch:
		if event.Event != "refresh" {
			t.Errorf("event = %q, want refresh", event.Event)
		}
		if event.ID != token {
			t.Errorf("event id = %q, want change token %q", event.ID, token)
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client channel")
	}
}
