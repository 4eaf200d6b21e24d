package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"horsebox_backend/platform/logger"
)

type testEvent struct{ BaseEvent }

func (testEvent) EventName() string { return "test.event" }

type captureHandler struct {
	got chan Event
	err error
}

func (h *captureHandler) Handle(_ context.Context, event Event) error {
	if h.err != nil {
		return h.err
	}
	h.got <- event
	return nil
}

func TestPublish_DeliversToSubscribedHandler(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	h := &captureHandler{got: make(chan Event, 1)}
	bus.Subscribe(testEvent{}.EventName(), h)

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})

	select {
	case event := <-h.got:
		if event.EventName() != "test.event" {
			t.Fatalf("unexpected event %q", event.EventName())
		}
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}

func TestPublishSync_DeliversInline(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	h := &captureHandler{got: make(chan Event, 1)}
	bus.Subscribe(testEvent{}.EventName(), h)

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("publish sync: %v", err)
	}

	select {
	case <-h.got:
	default:
		t.Fatal("handler did not run before PublishSync returned")
	}
}

func TestPublishSync_ReturnsHandlerError(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))
	bus.Subscribe(testEvent{}.EventName(), &captureHandler{err: errors.New("boom")})

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err == nil {
		t.Fatal("expected handler error")
	}
}

func TestPublish_NoSubscribersIsANoOp(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent()})
	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent()}); err != nil {
		t.Fatalf("publish sync without subscribers: %v", err)
	}
}
