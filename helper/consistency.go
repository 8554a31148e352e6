package helper

import (
	"context"
	"time"

	"hotel_manager/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// ConsistencySweeper periodically diagnoses every room of every hotel and logs rooms whose
// declared status disagrees with the booking ledger. It never corrects anything.
type ConsistencySweeper struct {
	svc       *service.Services
	log       logrus.FieldLogger
	now       func() time.Time
	scheduler *cron.Cron
}

func NewConsistencySweeper(svc *service.Services, l logrus.FieldLogger) *ConsistencySweeper {
	return &ConsistencySweeper{svc: svc, log: l.WithField("job", "consistency-sweep"), now: time.Now}
}

// Sweep runs one pass and returns how many inconsistent rooms were found.
func (s *ConsistencySweeper) Sweep(ctx context.Context) (int, error) {
	hotels, err := s.svc.Hotels.List(ctx)
	if err != nil {
		return 0, err
	}

	found := 0
	now := s.now()
	for _, hotel := range hotels {
		today, err := s.svc.Clock.Today(ctx, hotel.ID, now)
		if err != nil {
			s.log.WithError(err).WithField("hotel_id", hotel.ID).Warn("cannot resolve hotel day")
			continue
		}
		diagnoses, err := s.svc.Reconciler.SweepHotel(ctx, hotel.ID, today)
		if err != nil {
			s.log.WithError(err).WithField("hotel_id", hotel.ID).Error("sweep failed")
			continue
		}
		for _, d := range diagnoses {
			fields := logrus.Fields{
				"hotel_id":        hotel.ID,
				"room_id":         d.Room.ID,
				"room_number":     d.Room.RoomNumber,
				"declared_status": d.DeclaredStatus,
				"issues":          d.Issues,
				"as_of":           d.AsOf.String(),
			}
			if d.ActiveBooking != nil {
				fields["booking_id"] = d.ActiveBooking.ID
			}
			s.log.WithFields(fields).Warn("room status disagrees with bookings")
		}
		found += len(diagnoses)
	}
	return found, nil
}

// Start runs the sweep every five minutes, skipping a tick while the previous pass is still running.
func (s *ConsistencySweeper) Start() error {
	s.scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := s.scheduler.AddFunc("*/5 * * * *", func() {
		n, err := s.Sweep(context.Background())
		if err != nil {
			s.log.WithError(err).Error("consistency sweep failed")
			return
		}
		if n > 0 {
			s.log.WithField("inconsistent_rooms", n).Info("consistency sweep finished")
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.Start()
	s.log.Info("consistency sweep scheduled (every 5 minutes)")
	return nil
}

func (s *ConsistencySweeper) Stop() {
	if s.scheduler != nil {
		<-s.scheduler.Stop().Done()
		s.log.Info("consistency sweep stopped")
	}
}
