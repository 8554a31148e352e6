package helper

import (
	"context"
	"time"

	"hotel_manager/service"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

// PromotionExpiry deactivates promotions whose end date has passed in their hotel's timezone.
type PromotionExpiry struct {
	admin     *service.PromotionAdmin
	log       logrus.FieldLogger
	scheduler gocron.Scheduler
}

func NewPromotionExpiry(admin *service.PromotionAdmin, l logrus.FieldLogger) *PromotionExpiry {
	return &PromotionExpiry{admin: admin, log: l.WithField("job", "promotion-expiry")}
}

func (p *PromotionExpiry) Run() {
	n, err := p.admin.ExpireEnded(context.Background(), time.Now())
	if err != nil {
		p.log.WithError(err).Error("promotion expiry failed")
		return
	}
	if n > 0 {
		p.log.WithField("expired", n).Info("deactivated ended promotions")
	}
}

// Start runs hourly. Hotels span timezones, so a single daily run would miss local midnights.
func (p *PromotionExpiry) Start() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	p.scheduler = s

	_, err = s.NewJob(
		gocron.DurationJob(time.Hour),
		gocron.NewTask(p.Run),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	s.Start()
	p.log.Info("promotion expiry scheduled (hourly)")
	return nil
}

func (p *PromotionExpiry) Stop() {
	if p.scheduler == nil {
		return
	}
	if err := p.scheduler.Shutdown(); err != nil {
		p.log.WithError(err).Warn("promotion expiry shutdown")
	}
}
