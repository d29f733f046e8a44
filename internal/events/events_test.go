package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusPublishJSON(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingApproved, func(event *Event) error {
		received = append(received, event)
		return nil
	})
	bus.Subscribe(EventBookingRejected, func(event *Event) error {
		t.Fatal("handler for another type must not fire")
		return nil
	})

	payload := BookingEventPayload{BookingID: 1, ItemID: 2, BookerID: 3, Status: "APPROVED"}
	err := bus.PublishJSON(EventBookingApproved, payload)
	require.NoError(t, err)

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingApproved, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var decoded BookingEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &decoded))
	assert.Equal(t, payload, decoded)
}

func TestEventBusMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(EventCommentAdded, func(*Event) error {
			calls++
			return nil
		})
	}

	err := bus.PublishJSON(EventCommentAdded, CommentEventPayload{CommentID: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestEventBusNilSafe(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventBookingCreated, nil))
}
