package handler

import (
	"errors"
	"time"

	"hotel_manager/constants"
	"hotel_manager/helper"
	"hotel_manager/service"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Services      *service.Services
	Events        service.RoomEventSubscriber
	Logger        logrus.FieldLogger
	PortalBaseURL string
	// Now is the request clock. Defaults to time.Now.
	Now func() time.Time
}

type Handler struct {
	svc           *service.Services
	events        service.RoomEventSubscriber
	log           logrus.FieldLogger
	portalBaseURL string
	now           func() time.Time
}

func New(conf Config) *Handler {
	now := conf.Now
	if now == nil {
		now = time.Now
	}
	l := conf.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Handler{
		svc:           conf.Services,
		events:        conf.Events,
		log:           l,
		portalBaseURL: conf.PortalBaseURL,
		now:           now,
	}
}

func (h *Handler) Health(c *fiber.Ctx) error {
	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"time": h.now().UTC()})
}

func (h *Handler) logger(c *fiber.Ctx) logrus.FieldLogger {
	return h.log.WithFields(logrus.Fields{
		"request_id": c.Locals("requestId"),
		"path":       c.Path(),
	})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if inputErr := service.AsInputError(err); inputErr != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": constants.INVALID_INPUT,
			"error":   err.Error(),
			"fields":  inputErr.Fields(),
		})
	}

	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ROOM_NOT_FOUND, err)
	case errors.Is(err, service.ErrBookingNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.BOOKING_NOT_FOUND, err)
	case errors.Is(err, service.ErrPromotionNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PROMOTION_NOT_FOUND, err)
	case errors.Is(err, service.ErrHotelNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.HOTEL_NOT_FOUND, err)
	case errors.Is(err, service.ErrInvalidInput):
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	case errors.Is(err, service.ErrConcurrentUpdate):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.CONCURRENT_UPDATE, err)
	case errors.Is(err, service.ErrInvalidTransition):
		return utils.ErrorResponse(c, fiber.StatusConflict, constants.INVALID_TRANSITION, err)
	case errors.Is(err, service.ErrNoActiveBooking):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.NO_ACTIVE_BOOKING, err)
	case errors.Is(err, service.ErrGuestNameMismatch):
		return utils.ErrorResponse(c, fiber.StatusUnprocessableEntity, constants.GUEST_NAME_MISMATCH, err)
	}

	h.logger(c).WithError(err).Error("request failed")
	return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_SERVER_ERROR, errors.New("internal error"))
}

// allowHotel writes a 401/403 response and returns false when the signed-in staff member
// does not belong to hotelID.
func (h *Handler) allowHotel(c *fiber.Ctx, hotelID uint) (bool, error) {
	claim, ok := helper.GetStaffFromToken(c)
	if !ok {
		return false, utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.NOT_STAFF, errors.New("no staff claim"))
	}
	if !helper.CanAccessHotel(claim, hotelID) {
		return false, utils.ErrorResponse(c, fiber.StatusForbidden, constants.FORBIDDEN_HOTEL, errors.New("hotel not assigned"))
	}
	return true, nil
}

func idParam(c *fiber.Ctx, key string) uint {
	id, _ := c.Locals(key).(uint)
	return id
}
