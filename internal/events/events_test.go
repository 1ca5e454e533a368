package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishOrder(t *testing.T) {
	bus := NewBus()
	var got []string
	bus.Subscribe(PaymentStateChanged, func(e Event) error {
		got = append(got, "a:"+e.Payload.(string))
		return nil
	})
	bus.Subscribe(PaymentStateChanged, func(e Event) error {
		got = append(got, "b:"+e.Payload.(string))
		return nil
	})
	bus.Subscribe(SelectionChanged, func(Event) error {
		t.Fatal("wrong topic")
		return nil
	})

	assert.NoError(t, bus.Publish(Event{Type: PaymentStateChanged, Payload: "processing"}))
	assert.Equal(t, []string{"a:processing", "b:processing"}, got)
}

func TestBus_PublishError(t *testing.T) {
	bus := NewBus()
	calls := 0
	bus.Subscribe("x", func(Event) error { calls++; return errors.New("boom") })
	bus.Subscribe("x", func(Event) error { calls++; return nil })

	assert.EqualError(t, bus.Publish(Event{Type: "x"}), "boom")
	assert.Equal(t, 2, calls)
}

func TestBus_Nil(t *testing.T) {
	var bus *Bus
	assert.NoError(t, bus.Publish(Event{Type: "x"}))
}

func TestBus_SetsCreatedAt(t *testing.T) {
	bus := NewBus()
	bus.Subscribe("x", func(e Event) error {
		assert.False(t, e.CreatedAt.IsZero())
		return nil
	})
	_ = bus.Publish(Event{Type: "x"})
}
