package agentclient

import (
	"encoding/json"
	"strings"

	"github.com/nkzhang905/chatgate/internal/domain"
)

// EventScanner reassembles newline-delimited stream events from raw
// deltas. Consumers that want structured events feed it the chunks the
// handle delivers; malformed lines are skipped rather than failing the
// stream.
type EventScanner struct {
	buf strings.Builder
}

// Push appends a delta and returns any events completed by it.
func (s *EventScanner) Push(delta string) []domain.StreamEvent {
	s.buf.WriteString(delta)
	pending := s.buf.String()

	var events []domain.StreamEvent
	for {
		idx := strings.IndexByte(pending, '\n')
		if idx < 0 {
			break
		}
		line := pending[:idx]
		pending = pending[idx+1:]
		if evt, ok := parseEventLine(line); ok {
			events = append(events, evt)
		}
	}

	s.buf.Reset()
	s.buf.WriteString(pending)
	return events
}

// Flush parses any trailing line left without a newline terminator.
func (s *EventScanner) Flush() []domain.StreamEvent {
	line := s.buf.String()
	s.buf.Reset()
	if evt, ok := parseEventLine(line); ok {
		return []domain.StreamEvent{evt}
	}
	return nil
}

func parseEventLine(line string) (domain.StreamEvent, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return domain.StreamEvent{}, false
	}
	var evt domain.StreamEvent
	if err := json.Unmarshal([]byte(line), &evt); err != nil || evt.Event == "" {
		// Skip malformed lines
		return domain.StreamEvent{}, false
	}
	return evt, true
}

// ParseMetadataEvent parses a metadata event data.
func ParseMetadataEvent(data []byte) (*domain.MetadataEventData, error) {
	var meta domain.MetadataEventData
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// ParseDeltaEvent parses a content delta event data.
func ParseDeltaEvent(data []byte) (*domain.DeltaEventData, error) {
	var delta domain.DeltaEventData
	if err := json.Unmarshal(data, &delta); err != nil {
		return nil, err
	}
	return &delta, nil
}
