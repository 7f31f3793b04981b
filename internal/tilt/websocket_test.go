package tilt

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestFromGravity(t *testing.T) {
	tests := []struct {
		name       string
		gx, gy, gz float64
		x, y       float64
		ok         bool
	}{
		{"flat", 0, 0, -9.81, 0, 0, true},
		{"right edge down", 1, 0, 0, 1, 0, true},
		{"bottom edge down", 0, 0.5, -0.5, 0, math.Sqrt(0.5), true},
		{"zero", 0, 0, 0, 0, 0, false},
		{"NaN", math.NaN(), 0, 1, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := FromGravity(tc.gx, tc.gy, tc.gz)
			if ok != tc.ok {
				t.Fatalf("ok = %v, expected %v", ok, tc.ok)
			}
			if math.Abs(x-tc.x) > 1e-12 || math.Abs(y-tc.y) > 1e-12 {
				t.Errorf("got (%f, %f), expected (%f, %f)", x, y, tc.x, tc.y)
			}
		})
	}
}

func TestMessageTilt(t *testing.T) {
	gx, gy := 1.0, 0.0
	tests := []struct {
		name string
		msg  Message
		x, y float64
		ok   bool
	}{
		{"pair", NewMessage(0.25, -0.5), 0.25, -0.5, true},
		{"pair clamped", NewMessage(3, -3), 1, -1, true},
		{"gravity", Message{GX: &gx, GY: &gy}, 1, 0, true},
		{"empty", Message{}, 0, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			x, y, ok := tc.msg.Tilt()
			if ok != tc.ok || x != tc.x || y != tc.y {
				t.Errorf("Tilt() = (%f, %f, %v), expected (%f, %f, %v)", x, y, ok, tc.x, tc.y, tc.ok)
			}
		})
	}
}

func TestWebSocketSourceReadsFeed(t *testing.T) {
	feed := NewFeedServer(FeedConfig{Amplitude: 0.5, Period: time.Second, Rate: 200}, nil)
	srv := httptest.NewServer(feed)
	defer srv.Close()

	src := NewWebSocketSource(wsURL(srv), nil)
	if _, _, ok := src.Read(); ok {
		t.Fatal("Read before Open should report no sample")
	}
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	waitFor(t, "first sample", func() bool {
		_, _, ok := src.Read()
		return ok
	})

	x, y, _ := src.Read()
	if math.Abs(x) > 0.5 || math.Abs(y) > 0.5 {
		t.Errorf("sample (%f, %f) exceeds feed amplitude", x, y)
	}
	if !src.Connected() {
		t.Error("source should be connected")
	}
}

func TestWebSocketSourceDropReturnsToRest(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		_ = conn.WriteJSON(NewMessage(0.9, 0.9))
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		conn.Close()
	}))
	defer srv.Close()

	src := NewWebSocketSource(wsURL(srv), nil)
	if err := src.Open(context.Background()); err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer src.Close()

	waitFor(t, "disconnect", func() bool { return !src.Connected() })

	x, y, ok := src.Read()
	if !ok || x != 0 || y != 0 {
		t.Errorf("Read after drop = (%f, %f, %v), expected rest", x, y, ok)
	}
}

func TestAdapterWithWebSocketSource(t *testing.T) {
	feed := NewFeedServer(FeedConfig{Amplitude: 0.5, Period: time.Second, Rate: 200}, nil)
	srv := httptest.NewServer(feed)
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.SampleRate = 200
	a := NewAdapter(NewWebSocketSource(wsURL(srv), nil), cfg, nil)
	a.Start(context.Background())
	defer a.Stop()

	if !a.Running() {
		t.Fatal("adapter should run with a reachable feed")
	}
	waitFor(t, "tilt to move", func() bool {
		st := a.State()
		return st.X != 0 || st.Y != 0
	})
}

func TestFeedServerAt(t *testing.T) {
	f := NewFeedServer(FeedConfig{Amplitude: 0.6, Period: 4 * time.Second, Rate: 30}, nil)

	x, y := f.At(0)
	if x != 0 || math.Abs(y-0.6) > 1e-12 {
		t.Errorf("At(0) = (%f, %f), expected (0, 0.6)", x, y)
	}

	x, _ = f.At(time.Second)
	if math.Abs(x-0.6) > 1e-12 {
		t.Errorf("quarter period x = %f, expected 0.6", x)
	}
}
