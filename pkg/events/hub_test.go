package events

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"github.com/stretchr/testify/require"

	"github.com/lumen-chain/lumen/pkg/clock"
)

func newTestHub() (*Hub, *clock.ManualClock) {
	clk := clock.NewManualClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	return NewHub(clk, log.NewNopLogger()), clk
}

func TestHubDeliversToSubscribers(t *testing.T) {
	hub, clk := newTestHub()
	defer hub.Close()

	sub := hub.Subscribe(4)

	hub.Emit(New("transfer", Attr("sender", "alice"), Attr("amount", "10")))

	ev := <-sub.C
	require.Equal(t, "transfer", ev.Type)
	require.Equal(t, clk.Now(), ev.Time)

	sender, ok := ev.Attribute("sender")
	require.True(t, ok)
	require.Equal(t, "alice", sender)

	_, ok = ev.Attribute("missing")
	require.False(t, ok)
}

func TestHubEmitNeverBlocks(t *testing.T) {
	hub, _ := newTestHub()
	defer hub.Close()

	// Subscriber with a single slot that never drains.
	hub.Subscribe(1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			hub.Emit(New("swap_executed"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on a full subscriber")
	}
	require.Equal(t, uint64(9), hub.Dropped())
}

func TestHubCloseStopsDelivery(t *testing.T) {
	hub, _ := newTestHub()
	sub := hub.Subscribe(0)

	hub.Close()
	_, open := <-sub.C
	require.False(t, open)

	// Emitting after close is a no-op, not a panic.
	hub.Emit(New("transfer"))
	require.Zero(t, hub.Dropped())
}

func TestSubscriptionClose(t *testing.T) {
	hub, _ := newTestHub()
	defer hub.Close()

	sub := hub.Subscribe(0)
	other := hub.Subscribe(4)
	sub.Close()

	hub.Emit(New("staked"))

	_, open := <-sub.C
	require.False(t, open)
	require.Equal(t, "staked", (<-other.C).Type)
}
