package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hotel_manager/model"
	"hotel_manager/service"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const timezoneTTL = 10 * time.Minute

func roomChannel(hotelID uint) string {
	return fmt.Sprintf("hotel:%d:rooms", hotelID)
}

func timezoneKey(hotelID uint) string {
	return fmt.Sprintf("hotel:%d:timezone", hotelID)
}

// TimezoneCache memoizes hotel timezones in redis. Every other directory call goes straight through.
type TimezoneCache struct {
	service.HotelDirectory
	rdb *redis.Client
	log logrus.FieldLogger
}

func NewTimezoneCache(next service.HotelDirectory, rdb *redis.Client, l logrus.FieldLogger) *TimezoneCache {
	return &TimezoneCache{HotelDirectory: next, rdb: rdb, log: l}
}

func (c *TimezoneCache) GetHotelTimezone(ctx context.Context, hotelID uint) (string, error) {
	key := timezoneKey(hotelID)
	tz, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return tz, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.log.WithError(err).WithField("hotel_id", hotelID).Warn("timezone cache read failed")
	}

	tz, err = c.HotelDirectory.GetHotelTimezone(ctx, hotelID)
	if err != nil {
		return "", err
	}
	if err := c.rdb.Set(ctx, key, tz, timezoneTTL).Err(); err != nil {
		c.log.WithError(err).WithField("hotel_id", hotelID).Warn("timezone cache write failed")
	}
	return tz, nil
}

// RoomEventBus carries room status changes between instances over redis pub/sub.
type RoomEventBus struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

func NewRoomEventBus(rdb *redis.Client, l logrus.FieldLogger) *RoomEventBus {
	return &RoomEventBus{rdb: rdb, log: l}
}

func (b *RoomEventBus) PublishRoomEvent(ctx context.Context, event model.RoomEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, roomChannel(event.HotelID), payload).Err()
}

func (b *RoomEventBus) SubscribeRoomEvents(ctx context.Context, hotelID uint) (<-chan model.RoomEvent, func(), error) {
	pubsub := b.rdb.Subscribe(ctx, roomChannel(hotelID))
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, err
	}

	out := make(chan model.RoomEvent, 16)
	done := make(chan struct{})
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var event model.RoomEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.log.WithError(err).WithField("channel", msg.Channel).Warn("dropping malformed room event")
				continue
			}
			select {
			case out <- event:
			case <-done:
				return
			}
		}
	}()

	var closed bool
	cancel := func() {
		if closed {
			return
		}
		closed = true
		close(done)
		pubsub.Close()
	}
	return out, cancel, nil
}
