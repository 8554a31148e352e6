package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel_manager/utils"

	"github.com/sirupsen/logrus"
)

// HotelClock turns instants into hotel-local civil time. It never reads the system clock.
type HotelClock struct {
	hotels   HotelDirectory
	fallback *time.Location
	l        logrus.FieldLogger
}

func NewHotelClock(hotels HotelDirectory, defaultTimezone string, l logrus.FieldLogger) (*HotelClock, error) {
	fallback, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("load default timezone %q: %w", defaultTimezone, err)
	}
	return &HotelClock{hotels: hotels, fallback: fallback, l: l}, nil
}

func (c *HotelClock) Location(ctx context.Context, hotelID uint) (*time.Location, error) {
	name, err := c.hotels.GetHotelTimezone(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("get timezone of hotel %d: %w", hotelID, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return c.fallback, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		c.l.WithFields(logrus.Fields{
			"hotel_id": hotelID,
			"timezone": name,
		}).Warn("Unknown hotel timezone, using default")
		return c.fallback, nil
	}
	return loc, nil
}

// Today is the hotel-local calendar date at now.
func (c *HotelClock) Today(ctx context.Context, hotelID uint, now time.Time) (utils.CustomDate, error) {
	loc, err := c.Location(ctx, hotelID)
	if err != nil {
		return utils.CustomDate{}, err
	}
	return utils.LocalToday(now, loc), nil
}
