package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesMatchingEvents(t *testing.T) {
	b := NewBroker()
	defer b.Clear()

	ch := b.Subscribe(EvalResultEvent)

	b.Publish(Event{Type: EvalResultEvent})
	b.Publish(Event{Type: HistoryUpdatedEvent})

	ev := <-ch
	assert.Equal(t, EvalResultEvent, ev.Type)

	select {
	case ev := <-ch:
		t.Fatalf("unexpected event %q", ev.Type)
	default:
	}
}

func TestSubscribeAllReceivesEverything(t *testing.T) {
	b := NewBroker()
	defer b.Clear()

	ch := b.Subscribe()

	b.Publish(Event{Type: EvalResultEvent})
	b.Publish(Event{Type: HistoryUpdatedEvent})

	assert.Equal(t, EvalResultEvent, (<-ch).Type)
	assert.Equal(t, HistoryUpdatedEvent, (<-ch).Type)
}

func TestPublishDropsWhenSubscriberIsFull(t *testing.T) {
	b := NewBroker()
	defer b.Clear()

	ch := b.Subscribe(StatusMessageEvent)

	// Overrun the buffer without draining. Publish must not block.
	for i := 0; i < 100; i++ {
		b.Publish(Event{Type: StatusMessageEvent})
	}

	drained := 0
	for {
		select {
		case <-ch:
			drained++
			continue
		default:
		}
		break
	}
	assert.Less(t, drained, 100)
}

func TestUnsubscribeClosesChannelOnce(t *testing.T) {
	b := NewBroker()

	ch := b.Subscribe(EvalResultEvent, HistoryUpdatedEvent)
	b.Unsubscribe(ch)

	_, open := <-ch
	require.False(t, open)

	b.Publish(Event{Type: EvalResultEvent})
}
