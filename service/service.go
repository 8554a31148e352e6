package service

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultTimezone applies to hotels without a usable timezone of their own.
const DefaultTimezone = "America/Chicago"

type Options struct {
	Logger          logrus.FieldLogger
	DefaultTimezone string
	StrictGuestName bool
	// Hotels replaces the backend's hotel directory, e.g. with a cached one.
	Hotels HotelDirectory
	Events RoomEventPublisher
}

// Services bundles the core components built over one backend.
type Services struct {
	Clock       *HotelClock
	Reconciler  *Reconciler
	Eligibility *EligibilityValidator
	Promotions  *PromotionEngine
	PromoAdmin  *PromotionAdmin
	RoomStatus  *RoomStatusService
	Lifecycle   *Lifecycle
	Orders      *OrderService
	Hotels      *HotelService
}

func New(backend Backend, opts Options) (*Services, error) {
	l := opts.Logger
	if l == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		l = discard
	}

	hotels := opts.Hotels
	if hotels == nil {
		hotels = backend
	}

	tz := opts.DefaultTimezone
	if tz == "" {
		tz = DefaultTimezone
	}
	clock, err := NewHotelClock(hotels, tz, l)
	if err != nil {
		return nil, err
	}

	reconciler := NewReconciler(backend, backend, l)
	eligibility := NewEligibilityValidator(reconciler)
	promotions := NewPromotionEngine(backend, clock, l)
	roomStatus := NewRoomStatusService(backend, opts.Events, l)

	return &Services{
		Clock:       clock,
		Reconciler:  reconciler,
		Eligibility: eligibility,
		Promotions:  promotions,
		PromoAdmin:  NewPromotionAdmin(backend, hotels, clock, l),
		RoomStatus:  roomStatus,
		Lifecycle:   NewLifecycle(backend, backend, backend, roomStatus, clock, l),
		Orders:      NewOrderService(eligibility, promotions, backend, clock, opts.StrictGuestName, l),
		Hotels:      NewHotelService(hotels, backend),
	}, nil
}
