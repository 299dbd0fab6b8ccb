package agentclient

import (
	"testing"

	"github.com/nkzhang905/chatgate/internal/domain"
)

func TestEventScannerReassemblesSplitLines(t *testing.T) {
	var s EventScanner

	events := s.Push(`{"event":"metadata","data":{"run_id":"r1"}}` + "\n" + `{"event":"on_chat`)
	if len(events) != 1 || events[0].Event != domain.StreamEventMetadata {
		t.Fatalf("unexpected events: %+v", events)
	}

	meta, err := ParseMetadataEvent(events[0].Data)
	if err != nil {
		t.Fatalf("ParseMetadataEvent failed: %v", err)
	}
	if meta.RunID != "r1" {
		t.Fatalf("unexpected run id: %q", meta.RunID)
	}

	events = s.Push(`_model_stream","data":{"content":"hi"}}` + "\n")
	if len(events) != 1 || events[0].Event != domain.StreamEventDelta {
		t.Fatalf("unexpected events: %+v", events)
	}
	delta, err := ParseDeltaEvent(events[0].Data)
	if err != nil {
		t.Fatalf("ParseDeltaEvent failed: %v", err)
	}
	if delta.Content != "hi" {
		t.Fatalf("unexpected content: %q", delta.Content)
	}
}

func TestEventScannerSkipsMalformedLines(t *testing.T) {
	var s EventScanner

	events := s.Push("not json\n\n" + `{"event":"end"}` + "\n")
	if len(events) != 1 || events[0].Event != domain.StreamEventEnd {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestEventScannerFlushTrailingLine(t *testing.T) {
	var s EventScanner

	if events := s.Push(`{"event":"end"}`); len(events) != 0 {
		t.Fatalf("expected no complete events yet, got %+v", events)
	}
	events := s.Flush()
	if len(events) != 1 || events[0].Event != domain.StreamEventEnd {
		t.Fatalf("unexpected flush result: %+v", events)
	}
	if events := s.Flush(); len(events) != 0 {
		t.Fatalf("second flush should be empty, got %+v", events)
	}
}
