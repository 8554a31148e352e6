package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/sirupsen/logrus"
)

// LocalMoment is an instant seen on a hotel's wall clock.
type LocalMoment struct {
	Date    utils.CustomDate
	Weekday time.Weekday
	Clock   utils.ClockTime
}

func LocalMomentOf(now time.Time, loc *time.Location) LocalMoment {
	local := now.In(loc)
	return LocalMoment{
		Date:    utils.NewCustomDate(local),
		Weekday: local.Weekday(),
		Clock:   utils.ClockOf(local),
	}
}

func (m LocalMoment) previousDay() LocalMoment {
	return LocalMoment{
		Date:    utils.CustomDate{Time: m.Date.AddDate(0, 0, -1)},
		Weekday: (m.Weekday + 6) % 7,
		Clock:   m.Clock,
	}
}

// Predicate is one independent condition on a promotion.
type Predicate func(p *model.Promotion, at LocalMoment) bool

func All(predicates ...Predicate) Predicate {
	return func(p *model.Promotion, at LocalMoment) bool {
		for _, pred := range predicates {
			if !pred(p, at) {
				return false
			}
		}
		return true
	}
}

func wrapsMidnight(p *model.Promotion) bool {
	return p.StartTime != nil && p.EndTime != nil && p.EndTime.Before(*p.StartTime)
}

// scheduleDay is the day whose schedule covers at. Past midnight inside an overnight
// window that is still the day the window opened.
func scheduleDay(p *model.Promotion, at LocalMoment) LocalMoment {
	if wrapsMidnight(p) && at.Clock.Before(*p.EndTime) {
		return at.previousDay()
	}
	return at
}

func IsEnabled(p *model.Promotion, _ LocalMoment) bool {
	return p.IsActive && !p.IsDeleted
}

func WithinDateRange(p *model.Promotion, at LocalMoment) bool {
	day := scheduleDay(p, at).Date
	if p.StartDate != nil && !p.StartDate.IsZero() && day.Before(*p.StartDate) {
		return false
	}
	if p.EndDate != nil && !p.EndDate.IsZero() && day.After(*p.EndDate) {
		return false
	}
	return true
}

// HasEnded reports whether the last scheduled day of p is behind at. The after-midnight
// part of an overnight window still belongs to the end date.
func HasEnded(p *model.Promotion, at LocalMoment) bool {
	if p.EndDate == nil || p.EndDate.IsZero() {
		return false
	}
	return scheduleDay(p, at).Date.After(*p.EndDate)
}

func OnScheduledDay(p *model.Promotion, at LocalMoment) bool {
	if len(p.DaysOfWeek) == 0 {
		return true
	}
	weekday := int64(scheduleDay(p, at).Weekday)
	for _, d := range p.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

// WithinTimeWindow checks [start, end) when both bounds are set. An end before the start
// wraps past midnight, equal bounds are an empty window.
func WithinTimeWindow(p *model.Promotion, at LocalMoment) bool {
	if p.StartTime == nil || p.EndTime == nil {
		return true
	}

	t := at.Clock
	start, end := *p.StartTime, *p.EndTime
	switch {
	case start == end:
		return false
	case start.Before(end):
		return !t.Before(start) && t.Before(end)
	default:
		return !t.Before(start) || t.Before(end)
	}
}

// AppliesToService scopes a promotion to a service type.
func AppliesToService(serviceType string) Predicate {
	serviceType = strings.TrimSpace(serviceType)
	return func(p *model.Promotion, _ LocalMoment) bool {
		if p.AppliesToAllProducts {
			return true
		}
		if serviceType == "" {
			return false
		}
		for _, st := range p.AppliesToServiceTypes {
			if strings.EqualFold(strings.TrimSpace(st), serviceType) {
				return true
			}
		}
		return false
	}
}

var LiveNow = All(IsEnabled, WithinDateRange, OnScheduledDay, WithinTimeWindow)

// BannerVisible is the carousel filter. show_always banners skip the weekday and
// time-of-day schedule but not the active flag or the date range.
func BannerVisible(p *model.Promotion, at LocalMoment) bool {
	switch {
	case p.ShowAlways:
		return IsEnabled(p, at) && WithinDateRange(p, at)
	case p.ShowBanner:
		return LiveNow(p, at)
	}
	return false
}

// IsPromotionLiveNow evaluates p on the hotel's wall clock, never the caller's. A nil
// location means the default hotel timezone.
func IsPromotionLiveNow(p *model.Promotion, now time.Time, hotelLocation *time.Location) bool {
	if hotelLocation == nil {
		loc, err := time.LoadLocation(DefaultTimezone)
		if err != nil {
			loc = time.UTC
		}
		hotelLocation = loc
	}
	return LiveNow(p, LocalMomentOf(now, hotelLocation))
}

type PromotionEngine struct {
	promotions PromotionStore
	clock      *HotelClock
	l          logrus.FieldLogger
}

func NewPromotionEngine(promotions PromotionStore, clock *HotelClock, l logrus.FieldLogger) *PromotionEngine {
	return &PromotionEngine{promotions: promotions, clock: clock, l: l}
}

func (e *PromotionEngine) candidates(ctx context.Context, hotelID uint, now time.Time) ([]model.Promotion, LocalMoment, error) {
	if hotelID == 0 {
		inputErr := NewInputError()
		inputErr.Add("hotel_id", "provide hotel_id")
		return nil, LocalMoment{}, inputErr
	}

	loc, err := e.clock.Location(ctx, hotelID)
	if err != nil {
		return nil, LocalMoment{}, err
	}

	promotions, err := e.promotions.ListPromotions(ctx, hotelID, PromotionFilter{ActiveOnly: true})
	if err != nil {
		return nil, LocalMoment{}, fmt.Errorf("list promotions of hotel %d: %w", hotelID, err)
	}
	return promotions, LocalMomentOf(now, loc), nil
}

// SelectPromotionForDiscount picks the newest live promotion covering serviceType, or nil.
func (e *PromotionEngine) SelectPromotionForDiscount(
	ctx context.Context,
	hotelID uint,
	serviceType string,
	now time.Time,
) (*model.Promotion, error) {
	promotions, at, err := e.candidates(ctx, hotelID, now)
	if err != nil {
		return nil, err
	}

	eligible := All(LiveNow, AppliesToService(serviceType))

	var best *model.Promotion
	for i := range promotions {
		p := &promotions[i]
		if !eligible(p, at) {
			continue
		}
		if best == nil || newer(p, best) {
			best = p
		}
	}
	return best, nil
}

// ActivePromotions returns the banner carousel, ordered by sort order then newest first.
func (e *PromotionEngine) ActivePromotions(ctx context.Context, hotelID uint, now time.Time) ([]model.Promotion, error) {
	promotions, at, err := e.candidates(ctx, hotelID, now)
	if err != nil {
		return nil, err
	}

	banners := make([]model.Promotion, 0, len(promotions))
	for i := range promotions {
		if BannerVisible(&promotions[i], at) {
			banners = append(banners, promotions[i])
		}
	}

	sort.SliceStable(banners, func(i, j int) bool {
		if banners[i].SortOrder != banners[j].SortOrder {
			return banners[i].SortOrder < banners[j].SortOrder
		}
		return newer(&banners[i], &banners[j])
	})
	return banners, nil
}

func newer(a, b *model.Promotion) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
