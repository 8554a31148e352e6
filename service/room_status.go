package service

import (
	"context"
	"fmt"

	"hotel_manager/model"

	"github.com/sirupsen/logrus"
)

var roomTransitions = map[model.RoomStatus]model.RoomStatus{
	model.RoomAvailable: model.RoomOccupied,
	model.RoomOccupied:  model.RoomCleaning,
	model.RoomCleaning:  model.RoomAvailable,
}

// CanTransition follows available -> occupied -> cleaning -> available. Maintenance can be
// entered from and left to any state.
func CanTransition(from, to model.RoomStatus) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}
	if from == model.RoomMaintenance || to == model.RoomMaintenance {
		return true
	}
	return roomTransitions[from] == to
}

type RoomStatusService struct {
	rooms  RoomDirectory
	events RoomEventPublisher
	l      logrus.FieldLogger
}

func NewRoomStatusService(rooms RoomDirectory, events RoomEventPublisher, l logrus.FieldLogger) *RoomStatusService {
	return &RoomStatusService{rooms: rooms, events: events, l: l}
}

// Transition moves a room from expected to next with a conditional write. When another
// writer changed the status first the call fails with ErrConcurrentUpdate.
func (s *RoomStatusService) Transition(
	ctx context.Context,
	roomID uint,
	expected, next model.RoomStatus,
	reason string,
) (*model.Room, error) {
	if !CanTransition(expected, next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, expected, next)
	}

	room, err := s.rooms.GetRoomByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("get room %d: %w", roomID, err)
	}

	ok, err := s.rooms.UpdateRoomStatus(ctx, roomID, expected, next)
	if err != nil {
		return nil, fmt.Errorf("update status of room %d: %w", roomID, err)
	}
	if !ok {
		return nil, fmt.Errorf("room %d is no longer %s: %w", roomID, expected, ErrConcurrentUpdate)
	}

	room.Status = next
	s.publish(ctx, model.RoomEvent{
		HotelID:    room.HotelID,
		RoomID:     room.ID,
		RoomNumber: room.RoomNumber,
		From:       expected,
		To:         next,
		Reason:     reason,
	})

	return room, nil
}

func (s *RoomStatusService) publish(ctx context.Context, event model.RoomEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishRoomEvent(ctx, event); err != nil {
		s.l.WithFields(logrus.Fields{
			"room_id": event.RoomID,
			"to":      event.To,
		}).WithError(err).Warn("Failed to publish room event")
	}
}
