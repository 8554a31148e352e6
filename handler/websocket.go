package handler

import (
	"context"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RoomBoardUpgrade admits staff of the hotel to the websocket room board.
func (h *Handler) RoomBoardUpgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}
	hotelId := idParam(c, "hotelId")
	if ok, err := h.allowHotel(c, hotelId); !ok {
		return err
	}
	c.Locals("boardHotelId", hotelId)
	return c.Next()
}

// RoomBoard sends the room list once, then every room status change of the hotel.
func (h *Handler) RoomBoard(c *websocket.Conn) {
	hotelId, _ := c.Locals("boardHotelId").(uint)
	l := h.log.WithFields(logrus.Fields{"hotel_id": hotelId, "ws": "rooms"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer c.Close()

	rooms, err := h.svc.Hotels.Rooms(ctx, hotelId)
	if err != nil {
		l.WithError(err).Warn("room board: cannot list rooms")
		return
	}
	if err := c.WriteJSON(fiber.Map{"type": "snapshot", "rooms": rooms}); err != nil {
		return
	}

	if h.events == nil {
		return
	}
	events, unsubscribe, err := h.events.SubscribeRoomEvents(ctx, hotelId)
	if err != nil {
		l.WithError(err).Warn("room board: subscribe failed")
		return
	}
	defer unsubscribe()

	// the client never sends anything useful, reading only detects the disconnect
	go func() {
		defer cancel()
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := c.WriteJSON(fiber.Map{"type": "status", "event": event}); err != nil {
				return
			}
		}
	}
}
