package hub

import (
	"testing"
)

func TestBroadcastReachesSessionSubscribers(t *testing.T) {
	h := New()
	a := h.Attach(nil, "s1")
	b := h.Attach(nil, "s1")
	other := h.Attach(nil, "s2")

	h.Broadcast("s1", []byte("chunk"))

	for _, conn := range []*Conn{a, b} {
		select {
		case data := <-conn.Send:
			if string(data) != "chunk" {
				t.Fatalf("unexpected payload: %s", data)
			}
		default:
			t.Fatal("expected payload on subscriber channel")
		}
	}

	select {
	case data := <-other.Send:
		t.Fatalf("unrelated session received %s", data)
	default:
	}
}

func TestDetachClosesSendChannel(t *testing.T) {
	h := New()
	conn := h.Attach(nil, "s1")

	h.Detach(conn)
	if _, ok := <-conn.Send; ok {
		t.Fatal("expected send channel to be closed")
	}
	if h.SubscriberCount("s1") != 0 {
		t.Fatalf("expected no subscribers, got %d", h.SubscriberCount("s1"))
	}

	// Detaching twice must be harmless.
	h.Detach(conn)
}

func TestBroadcastDropsSlowSubscriber(t *testing.T) {
	h := New()
	conn := h.Attach(nil, "s1")

	for i := 0; i < cap(conn.Send); i++ {
		conn.Send <- []byte("fill")
	}

	h.Broadcast("s1", []byte("overflow"))
	if h.SubscriberCount("s1") != 0 {
		t.Fatal("expected slow subscriber to be detached")
	}
}

func TestBroadcastJSON(t *testing.T) {
	h := New()
	conn := h.Attach(nil, "s1")

	if err := h.BroadcastJSON("s1", map[string]string{"event": "end"}); err != nil {
		t.Fatalf("BroadcastJSON failed: %v", err)
	}
	data := <-conn.Send
	if string(data) != `{"event":"end"}` {
		t.Fatalf("unexpected payload: %s", data)
	}
}
