package router

import (
	"time"

	"hotel_manager/handler"
	"hotel_manager/middleware"
	"hotel_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Config struct {
	JWTSecret string
	// GuestRateLimit caps guest requests per IP and minute. Zero disables the limiter.
	GuestRateLimit int
}

func SetupRoutes(app *fiber.App, h *handler.Handler, conf Config) {
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: "requestId",
	}))

	app.Get("/health", h.Health)

	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	guest := v1.Group("")
	if conf.GuestRateLimit > 0 {
		guest.Use(limiter.New(limiter.Config{
			Max:        conf.GuestRateLimit,
			Expiration: time.Minute,
		}))
	}
	guest.Get("/validate-room", validate.RoomLookup(), h.ValidateRoom)
	guest.Get("/promotions/active", validate.PromotionQuery(), h.ActivePromotions)
	guest.Get("/promotions/active-for-discount", validate.PromotionQuery(), h.PromotionForDiscount)
	guest.Post("/orders", validate.CreateOrder(), h.PlaceOrder)

	protected := middleware.Protected(conf.JWTSecret)
	admin := v1.Group("/admin", protected)

	admin.Get("/room-bookings", validate.RoomLookup(), h.RoomBookings)

	hotel := admin.Group("/hotels")
	hotel.Post("/", validate.CreateHotel(), h.CreateHotel)
	hotel.Get("/:hotelId", validate.GetById("hotelId"), h.GetHotelById)
	hotel.Get("/:hotelId/rooms", validate.GetById("hotelId"), h.GetRoomsByHotelId)
	hotel.Get("/:hotelId/promotions", validate.GetById("hotelId"), h.GetPromotions)
	hotel.Post("/:hotelId/promotions", validate.GetById("hotelId"), validate.PromotionInput(), h.CreatePromotion)

	room := admin.Group("/rooms")
	room.Patch("/:roomId/status", validate.GetById("roomId"), validate.UpdateRoomStatus(), h.UpdateRoomStatus)
	room.Get("/:roomId/qr", validate.GetById("roomId"), h.RoomQRCode)

	booking := admin.Group("/bookings")
	booking.Post("/:bookingId/check-in", validate.GetById("bookingId"), h.CheckIn)
	booking.Post("/:bookingId/check-out", validate.GetById("bookingId"), h.CheckOut)
	booking.Get("/:bookingId/checkout-info", validate.GetById("bookingId"), h.CheckoutInfo)

	promotion := admin.Group("/promotions")
	promotion.Put("/:promotionId", validate.GetById("promotionId"), validate.PromotionInput(), h.EditPromotion)
	promotion.Delete("/:promotionId", validate.GetById("promotionId"), h.DeletePromotion)

	app.Get("/ws/hotels/:hotelId/rooms",
		protected,
		validate.GetById("hotelId"),
		h.RoomBoardUpgrade,
		websocket.New(h.RoomBoard),
	)
}
