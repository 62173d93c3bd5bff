package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents the type of event (created, applied, redeemed...)
type EventType string

const (
	EventTypeCreated   EventType = "created"
	EventTypeUpdated   EventType = "updated"
	EventTypeApplied   EventType = "applied"
	EventTypeRedeemed  EventType = "redeemed"
	EventTypeForfeited EventType = "forfeited"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypeLoan     EntityType = "loan"
	EntityTypePayment  EntityType = "payment"
	EntityTypeCustomer EntityType = "customer"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "payment.applied"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "payment"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// LoanCreated creates a loan.created event
func LoanCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLoan, payload)
}

// LoanUpdated creates a loan.updated event
func LoanUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeLoan, payload)
}

// LoanRedeemed creates a loan.redeemed event
func LoanRedeemed(payload interface{}) Event {
	return NewEvent(EventTypeRedeemed, EntityTypeLoan, payload)
}

// LoanForfeited creates a loan.forfeited event
func LoanForfeited(payload interface{}) Event {
	return NewEvent(EventTypeForfeited, EntityTypeLoan, payload)
}

// PaymentApplied creates a payment.applied event
func PaymentApplied(payload interface{}) Event {
	return NewEvent(EventTypeApplied, EntityTypePayment, payload)
}

// CustomerCreated creates a customer.created event
func CustomerCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCustomer, payload)
}
