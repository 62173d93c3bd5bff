package websocket

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventType_String(t *testing.T) {
	tests := []struct {
		name     string
		et       EventType
		expected string
	}{
		{"created", EventTypeCreated, "created"},
		{"applied", EventTypeApplied, "applied"},
		{"redeemed", EventTypeRedeemed, "redeemed"},
		{"forfeited", EventTypeForfeited, "forfeited"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.et))
		})
	}
}

func TestNewEvent(t *testing.T) {
	payload := map[string]interface{}{
		"id":        1,
		"ticket_no": "GDA-0001",
	}

	before := time.Now()
	evt := NewEvent(EventTypeCreated, EntityTypeLoan, payload)
	after := time.Now()

	assert.Equal(t, "loan.created", evt.Type)
	assert.Equal(t, EntityTypeLoan, evt.Entity)
	assert.Equal(t, payload, evt.Payload)
	assert.True(t, !evt.Timestamp.Before(before) && !evt.Timestamp.After(after))
}

func TestEvent_JSON_Serialization(t *testing.T) {
	fixedTime := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	payload := map[string]interface{}{
		"id":        float64(1),
		"ticket_no": "GDA-0001",
		"amount":    float64(150000),
	}

	evt := Event{
		Type:      "payment.applied",
		Entity:    EntityTypePayment,
		Payload:   payload,
		Timestamp: fixedTime,
	}

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var decoded Event
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, evt.Type, decoded.Type)
	assert.Equal(t, evt.Entity, decoded.Entity)
	assert.Equal(t, fixedTime.UTC(), decoded.Timestamp.UTC())

	// Payload should be preserved
	decodedPayload, ok := decoded.Payload.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), decodedPayload["id"])
	assert.Equal(t, "GDA-0001", decodedPayload["ticket_no"])
	assert.Equal(t, float64(150000), decodedPayload["amount"])
}

func TestEvent_ToJSON(t *testing.T) {
	payload := map[string]interface{}{
		"id": float64(42),
	}

	evt := NewEvent(EventTypeUpdated, EntityTypeLoan, payload)

	data, err := evt.ToJSON()
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	// Verify it's valid JSON
	var decoded map[string]interface{}
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)

	assert.Equal(t, "loan.updated", decoded["type"])
	assert.Equal(t, "loan", decoded["entity"])
	assert.NotNil(t, decoded["payload"])
	assert.NotNil(t, decoded["timestamp"])
}

func TestLoanEvent_Helpers(t *testing.T) {
	payload := map[string]interface{}{
		"id":        float64(1),
		"ticket_no": "GDA-0001",
		"status":    "active",
	}

	t.Run("LoanCreated", func(t *testing.T) {
		evt := LoanCreated(payload)
		assert.Equal(t, "loan.created", evt.Type)
		assert.Equal(t, EntityTypeLoan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("LoanRedeemed", func(t *testing.T) {
		evt := LoanRedeemed(payload)
		assert.Equal(t, "loan.redeemed", evt.Type)
		assert.Equal(t, EntityTypeLoan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("LoanForfeited", func(t *testing.T) {
		evt := LoanForfeited(payload)
		assert.Equal(t, "loan.forfeited", evt.Type)
		assert.Equal(t, EntityTypeLoan, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})

	t.Run("PaymentApplied", func(t *testing.T) {
		evt := PaymentApplied(payload)
		assert.Equal(t, "payment.applied", evt.Type)
		assert.Equal(t, EntityTypePayment, evt.Entity)
		assert.Equal(t, payload, evt.Payload)
	})
}
