package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mtorres/eventia/internal/core/model"
)

func TestEventStore_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()

	first := &model.Event{Title: "first"}
	second := &model.Event{Title: "second"}
	require.NoError(t, store.SaveEvent(ctx, first))
	require.NoError(t, store.SaveEvent(ctx, second))
	require.Equal(t, int64(1), first.ID)
	require.Equal(t, int64(2), second.ID)

	removed, err := store.DeleteEvent(ctx, second.ID)
	require.NoError(t, err)
	require.True(t, removed)

	// the freed id is not handed out again
	third := &model.Event{Title: "third"}
	require.NoError(t, store.SaveEvent(ctx, third))
	require.Equal(t, int64(3), third.ID)

	_, err = store.GetEvent(ctx, second.ID)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestEventStore_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	event := &model.Event{Title: "meetup"}
	require.NoError(t, store.SaveEvent(ctx, event))

	removed, err := store.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	require.True(t, removed)

	// deleting twice reports false without error
	removed, err = store.DeleteEvent(ctx, event.ID)
	require.NoError(t, err)
	require.False(t, removed)

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestEventStore_UpdateEventPreservesCreatedAt(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()
	store := NewEventStore(WithEventNowFunc(func() time.Time { return now }))

	event := &model.Event{Title: "meetup", Location: "porto"}
	require.NoError(t, store.SaveEvent(ctx, event))
	require.Equal(t, now, event.CreatedAt)

	replacement := &model.Event{ID: event.ID, Title: "renamed meetup", CreatedAt: now.Add(time.Hour)}
	require.NoError(t, store.UpdateEvent(ctx, replacement))
	require.Equal(t, now, replacement.CreatedAt)

	got, err := store.GetEvent(ctx, event.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed meetup", got.Title)
	require.Equal(t, now, got.CreatedAt)
	// the replace is full: unset fields are cleared
	require.Empty(t, got.Location)

	err = store.UpdateEvent(ctx, &model.Event{ID: 99})
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestEventStore_ListEventsKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()
	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, store.SaveEvent(ctx, &model.Event{Title: title}))
	}
	require.NoError(t, store.UpdateEvent(ctx, &model.Event{ID: 1, Title: "a2"}))

	events, err := store.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 3)
	require.Equal(t, "a2", events[0].Title)
	require.Equal(t, "b", events[1].Title)
	require.Equal(t, "c", events[2].Title)
}
