package hub

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedline/feedline/internal/model"
	"github.com/feedline/feedline/internal/testutil"
)

func receiveOne(t *testing.T, sub *Subscriber) model.FeedEvent {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		require.True(t, ok, "channel closed unexpectedly")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return model.FeedEvent{}
	}
}

func requireNoEvent(t *testing.T, sub *Subscriber) {
	t.Helper()
	select {
	case ev, ok := <-sub.Events():
		if ok {
			t.Fatalf("unexpected event: %+v", ev)
		}
	default:
	}
}

func TestHub_BroadcastToAllSubscribersExactlyOnce(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	first := h.Subscribe()
	second := h.Subscribe()
	require.Equal(t, 2, h.Len())

	postID := uuid.New()
	h.Broadcast(model.FeedEvent{Action: model.FeedActionCreate, Post: &model.Post{ID: postID}})

	for _, sub := range []*Subscriber{first, second} {
		ev := receiveOne(t, sub)
		assert.Equal(t, model.FeedActionCreate, ev.Action)
		assert.Equal(t, postID, ev.Post.ID)
		requireNoEvent(t, sub)
	}
}

func TestHub_LateSubscriberReceivesNothing(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	early := h.Subscribe()
	h.Broadcast(model.FeedEvent{Action: model.FeedActionDelete, PostID: uuid.New()})

	late := h.Subscribe()
	requireNoEvent(t, late)

	receiveOne(t, early)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	sub := h.Subscribe()
	h.Unsubscribe(sub)
	h.Unsubscribe(sub)
	h.Unsubscribe(nil)

	assert.Equal(t, 0, h.Len())

	// closed channel reads as done
	_, ok := <-sub.Events()
	assert.False(t, ok)
}

func TestHub_UnsubscribedReceivesNoFurtherEvents(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	gone := h.Subscribe()
	stays := h.Subscribe()
	h.Unsubscribe(gone)

	h.Broadcast(model.FeedEvent{Action: model.FeedActionUpdate, Post: &model.Post{ID: uuid.New()}})

	receiveOne(t, stays)
	_, ok := <-gone.Events()
	assert.False(t, ok)
}

func TestHub_FullSubscriberDoesNotBlockOthers(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	stuck := h.Subscribe()
	healthy := h.Subscribe()

	// Fill the stuck subscriber's buffer past capacity.
	for i := 0; i < subscriberBufSize+5; i++ {
		h.Broadcast(model.FeedEvent{Action: model.FeedActionCreate, Post: &model.Post{ID: uuid.New()}})
	}

	// The healthy subscriber drained nothing either, but broadcast never
	// blocked; both channels hold at most their buffer.
	assert.Len(t, stuck.events, subscriberBufSize)
	assert.Len(t, healthy.events, subscriberBufSize)
}

func TestHub_ConcurrentSubscribeBroadcastUnsubscribe(t *testing.T) {
	h := New(testutil.MakeNoopLogger())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := h.Subscribe()
			h.Broadcast(model.FeedEvent{Action: model.FeedActionDelete, PostID: uuid.New()})
			for range sub.Events() {
				break
			}
			h.Unsubscribe(sub)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, h.Len())
}
