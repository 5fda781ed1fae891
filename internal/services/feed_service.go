package services

import (
	"context"
	"encoding/json"
	"grammable/internal/enums"
	"grammable/internal/metrics"
	"grammable/internal/models"
	"sync"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const feedSubscriberBuffer = 32

// FeedService fans gram and comment events out to live feed subscribers.
// With a Redis client events travel through a pub/sub channel so every instance sees them;
// without one they are delivered in-process.
type FeedService struct {
	redis       *redis.Client
	channel     string
	mu          sync.Mutex
	subscribers map[chan *models.FeedEvent]struct{}
}

func NewFeedService(redis *redis.Client) *FeedService {
	return &FeedService{
		redis:       redis,
		channel:     enums.FEED_CHANNEL,
		subscribers: make(map[chan *models.FeedEvent]struct{}),
	}
}

func (fs *FeedService) Publish(ctx context.Context, event *models.FeedEvent) error {
	if fs.redis == nil {
		fs.broadcast(event)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return fs.redis.Publish(ctx, fs.channel, payload).Err()
}

// PublishQuietly is used from request paths where a feed failure must not fail the request.
func (fs *FeedService) PublishQuietly(ctx context.Context, event *models.FeedEvent) {
	if err := fs.Publish(ctx, event); err != nil {
		metrics.FeedPublishErrors.Inc()
		log.WithError(err).WithField("event", event.Event).Warn("Failed to publish feed event")
	}
}

// Subscribe returns a channel of events that is closed once ctx is done.
func (fs *FeedService) Subscribe(ctx context.Context) (<-chan *models.FeedEvent, error) {
	events := make(chan *models.FeedEvent, feedSubscriberBuffer)

	if fs.redis == nil {
		fs.mu.Lock()
		fs.subscribers[events] = struct{}{}
		fs.mu.Unlock()

		go func() {
			<-ctx.Done()
			fs.mu.Lock()
			delete(fs.subscribers, events)
			close(events)
			fs.mu.Unlock()
		}()
		return events, nil
	}

	pubsub := fs.redis.Subscribe(ctx, fs.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, err
	}

	go func() {
		<-ctx.Done()
		pubsub.Close()
	}()

	go func() {
		defer close(events)
		for msg := range pubsub.Channel() {
			var event models.FeedEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("Error unmarshalling feed event: %v", err)
				continue
			}
			select {
			case events <- &event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

func (fs *FeedService) broadcast(event *models.FeedEvent) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for subscriber := range fs.subscribers {
		select {
		case subscriber <- event:
		default:
			log.Warn("Feed subscriber is full, dropping event")
		}
	}
}
