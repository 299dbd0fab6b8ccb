package domain

import "encoding/json"

// Event names emitted by the agent's stream, one JSON object per line.
const (
	StreamEventMetadata = "metadata"
	StreamEventDelta    = "on_chat_model_stream"
	StreamEventEnd      = "end"
)

// StreamEvent is a single framed event from the agent stream.
type StreamEvent struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// MetadataEventData is the data for a metadata event, sent once at the
// start of a stream.
type MetadataEventData struct {
	RunID string `json:"run_id"`
}

// DeltaEventData is the data for a content delta event.
type DeltaEventData struct {
	Content string `json:"content"`
	RunID   string `json:"run_id,omitempty"`
}
