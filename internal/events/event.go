// Spark - Career Discovery Video Personalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/spark

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/spark/internal/behavior"
)

// Topic carries behavior events. JetStream derives the stream name from it,
// so it must not contain dots.
const Topic = "spark_behavior"

// Metadata keys set on every message.
const (
	MetadataKind    = "kind"
	MetadataSession = "session_id"
)

// BehaviorEvent describes one applied behavior mutation.
type BehaviorEvent struct {
	EventID           string    `json:"event_id"`
	SessionID         string    `json:"session_id"`
	Kind              string    `json:"kind"`
	VideoID           string    `json:"video_id,omitempty"`
	Category          string    `json:"category,omitempty"`
	PreviousPreferred string    `json:"previous_preferred,omitempty"`
	Preferred         string    `json:"preferred,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

// FromChange converts a tracker change into an event with a fresh ID.
func FromChange(c behavior.Change) BehaviorEvent {
	return BehaviorEvent{
		EventID:           watermill.NewUUID(),
		SessionID:         c.SessionID,
		Kind:              string(c.Kind),
		VideoID:           c.VideoID,
		Category:          c.Category,
		PreviousPreferred: c.PreviousPreferred,
		Preferred:         c.Preferred,
		Timestamp:         c.At,
	}
}

// Message encodes the event as a Watermill message.
func (e BehaviorEvent) Message() (*message.Message, error) {
	if e.EventID == "" {
		e.EventID = watermill.NewUUID()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal behavior event: %w", err)
	}
	msg := message.NewMessage(e.EventID, data)
	msg.Metadata.Set(MetadataKind, e.Kind)
	msg.Metadata.Set(MetadataSession, e.SessionID)
	return msg, nil
}

// Decode parses a message payload.
func Decode(msg *message.Message) (BehaviorEvent, error) {
	var e BehaviorEvent
	if err := json.Unmarshal(msg.Payload, &e); err != nil {
		return BehaviorEvent{}, fmt.Errorf("unmarshal behavior event %s: %w", msg.UUID, err)
	}
	return e, nil
}
