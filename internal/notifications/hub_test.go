package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(10, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(10, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount(10))

	hub.UnregisterClient(clientA)
	assert.Equal(t, 1, hub.ConnectionCount(10))

	// Unregistering twice must not corrupt the count.
	hub.UnregisterClient(clientA)
	assert.Equal(t, 1, hub.ConnectionCount(10))

	hub.UnregisterClient(clientB)
	assert.Equal(t, 0, hub.ConnectionCount(10))
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(5, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(5, nil)
	assert.Error(t, err)

	// Other users are unaffected by one user's limit.
	_, err = hub.Register(6, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastReachesEveryConnection(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register(3, nil)
	require.NoError(t, err)
	clientB, err := hub.Register(3, nil)
	require.NoError(t, err)
	other, err := hub.Register(4, nil)
	require.NoError(t, err)

	hub.Broadcast(3, "hello")

	for _, c := range []*Client{clientA, clientB} {
		select {
		case msg := <-c.Send:
			assert.Equal(t, "hello", string(msg))
		default:
			t.Fatal("expected a buffered message for user 3")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("user 4 must not receive user 3's broadcast")
	default:
	}
}

func TestHub_TrySendDropsWhenBufferFull(t *testing.T) {
	hub := NewHub()

	client, err := hub.Register(8, nil)
	require.NoError(t, err)

	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("fill"))
	}

	// Must not block with a full buffer.
	done := make(chan struct{})
	go func() {
		client.TrySend([]byte("overflow"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("TrySend blocked on a full buffer")
	}
	assert.Len(t, client.Send, cap(client.Send))
}

func TestHub_WiringDeliversMentionToSocketBuffer(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	hub := NewHub()
	n := NewNotifier(rdb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, hub.StartWiring(ctx, n))

	client, err := hub.Register(9, nil)
	require.NoError(t, err)

	ev := models.NewMentionEvent(5, 1, 9)
	require.NoError(t, n.EmitMention(ctx, ev))

	select {
	case msg := <-client.Send:
		var got models.MentionEvent
		require.NoError(t, json.Unmarshal(msg, &got))
		assert.Equal(t, ev.EventID, got.EventID)
		assert.Equal(t, uint(9), got.MentionedUserID)
	case <-time.After(time.Second):
		t.Fatal("mention did not reach the websocket buffer")
	}
}
