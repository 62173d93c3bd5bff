package service

import (
	"github.com/nramli/gadai/gadai-backend/internal/websocket"
)

type publishedEvent struct {
	branchID int32
	event    websocket.Event
}

// capturingPublisher records published events for assertions.
type capturingPublisher struct {
	events []publishedEvent
}

func (p *capturingPublisher) Publish(branchID int32, event websocket.Event) {
	p.events = append(p.events, publishedEvent{branchID: branchID, event: event})
}

func (p *capturingPublisher) eventTypes() []string {
	types := make([]string, 0, len(p.events))
	for _, e := range p.events {
		types = append(types, e.event.Type)
	}
	return types
}
