package events

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEmitDeliversToAllHandlers(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	wg.Add(2)
	var mu sync.Mutex
	var got []interface{}

	handler := func(data interface{}) {
		mu.Lock()
		got = append(got, data)
		mu.Unlock()
		wg.Done()
	}
	bus.On("news.created", handler)
	bus.On("news.created", handler)

	bus.Emit("news.created", "payload")
	wg.Wait()

	assert.Equal(t, []interface{}{"payload", "payload"}, got)
}

func TestEmitUnknownEventIsNoop(t *testing.T) {
	bus := NewEventBus()
	assert.NotPanics(t, func() {
		bus.Emit("nobody.listens", nil)
	})
}

// A panicking handler must neither crash the process nor starve the
// other handlers for the same event.
func TestEmitSurvivesPanickingHandler(t *testing.T) {
	bus := NewEventBus()

	done := make(chan struct{})
	bus.On("events.deleted", func(interface{}) {
		panic("boom")
	})
	bus.On("events.deleted", func(interface{}) {
		close(done)
	})

	assert.NotPanics(t, func() {
		bus.Emit("events.deleted", "id-1")
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("surviving handler was never invoked")
	}
}
