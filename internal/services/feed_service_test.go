package services

import (
	"context"
	"grammable/internal/enums"
	"grammable/internal/models"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedServiceLocalDelivery(t *testing.T) {
	feed := NewFeedService(nil)
	ctx, cancel := context.WithCancel(context.Background())

	first, err := feed.Subscribe(ctx)
	require.NoError(t, err)
	second, err := feed.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, feed.Publish(context.Background(), &models.FeedEvent{Event: enums.FEED_EVENT_GRAM_CREATED, GramID: 7}))

	for _, ch := range []<-chan *models.FeedEvent{first, second} {
		select {
		case event := <-ch:
			assert.Equal(t, enums.FEED_EVENT_GRAM_CREATED, event.Event)
			assert.EqualValues(t, 7, event.GramID)
		case <-time.After(time.Second):
			t.Fatal("expected event to be delivered")
		}
	}

	cancel()
	select {
	case _, open := <-first:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("expected subscription to close")
	}

	// publishing after every subscriber left must not block or panic
	require.NoError(t, feed.Publish(context.Background(), &models.FeedEvent{Event: enums.FEED_EVENT_GRAM_DESTROYED}))
}

func TestFeedServiceRedisDelivery(t *testing.T) {
	server := miniredis.RunT(t)
	newClient := func() *redis.Client {
		client := redis.NewClient(&redis.Options{Addr: server.Addr()})
		t.Cleanup(func() { client.Close() })
		return client
	}

	// two instances sharing one redis see each other's events
	subscriber := NewFeedService(newClient())
	publisher := NewFeedService(newClient())

	ctx, cancel := context.WithCancel(context.Background())
	events, err := subscriber.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), &models.FeedEvent{
		Event:   enums.FEED_EVENT_COMMENT_CREATED,
		GramID:  3,
		UserID:  9,
		Payload: map[string]string{"message": "nice"},
	}))

	select {
	case event := <-events:
		assert.Equal(t, enums.FEED_EVENT_COMMENT_CREATED, event.Event)
		assert.EqualValues(t, 3, event.GramID)
		assert.EqualValues(t, 9, event.UserID)
		assert.Equal(t, map[string]any{"message": "nice"}, event.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("expected event from redis")
	}

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("expected subscription to close")
	}
}

func TestFeedServicePublishQuietlySwallowsRedisErrors(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()
	feed := NewFeedService(client)

	server.SetError("READONLY no publishing")
	assert.Error(t, feed.Publish(context.Background(), &models.FeedEvent{Event: enums.FEED_EVENT_GRAM_DESTROYED}))
	assert.NotPanics(t, func() {
		feed.PublishQuietly(context.Background(), &models.FeedEvent{Event: enums.FEED_EVENT_GRAM_DESTROYED})
	})
}
