package memory

import (
	"context"

	"hotel_manager/model"
)

const subscriberBuffer = 16

// PublishRoomEvent fans out to in-process subscribers. Slow subscribers miss events.
func (db *DB) PublishRoomEvent(_ context.Context, event model.RoomEvent) error {
	db.subMu.Lock()
	defer db.subMu.Unlock()

	for ch := range db.subscribers[event.HotelID] {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (db *DB) SubscribeRoomEvents(_ context.Context, hotelID uint) (<-chan model.RoomEvent, func(), error) {
	ch := make(chan model.RoomEvent, subscriberBuffer)

	db.subMu.Lock()
	if db.subscribers[hotelID] == nil {
		db.subscribers[hotelID] = make(map[chan model.RoomEvent]struct{})
	}
	db.subscribers[hotelID][ch] = struct{}{}
	db.subMu.Unlock()

	var closed bool
	cancel := func() {
		db.subMu.Lock()
		defer db.subMu.Unlock()
		if closed {
			return
		}
		closed = true
		delete(db.subscribers[hotelID], ch)
		close(ch)
	}
	return ch, cancel, nil
}
