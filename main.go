package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel_manager/config"
	"hotel_manager/database"
	"hotel_manager/handler"
	"hotel_manager/helper"
	"hotel_manager/router"
	"hotel_manager/service"
	"hotel_manager/store"
	"hotel_manager/store/memory"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	settings, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := helper.NewLogger(settings.LogLevel, settings.LogFormat)

	ctx := context.Background()

	var (
		backend   service.Backend
		seeder    database.Seeder
		publisher service.RoomEventPublisher
		events    service.RoomEventSubscriber
		opts      = service.Options{
			Logger:          log,
			DefaultTimezone: settings.DefaultTimezone,
			StrictGuestName: settings.StrictGuestName,
		}
	)

	if settings.UseDatabase() {
		db, err := database.ConnectDB(settings, log)
		if err != nil {
			log.WithError(err).Fatal("database unavailable")
		}
		pg := store.New(db)
		backend, seeder = pg, pg
	} else {
		mem := memory.New(memory.Config{})
		backend, seeder = mem, mem
		publisher, events = mem, mem
		log.Warn("DB_HOST not set, running on the in-memory store")
	}

	rdb, err := database.ConnectRedis(ctx, settings, log)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without cache and room events across instances")
	}
	if rdb != nil {
		defer rdb.Close()
		bus := store.NewRoomEventBus(rdb, log)
		publisher, events = bus, bus
		opts.Hotels = store.NewTimezoneCache(backend, rdb, log)
	}
	opts.Events = publisher

	if err := database.SeedData(ctx, seeder, time.Now(), log); err != nil {
		log.WithError(err).Error("seeding demo data failed")
	}

	services, err := service.New(backend, opts)
	if err != nil {
		log.WithError(err).Fatal("cannot build services")
	}

	sweeper := helper.NewConsistencySweeper(services, log)
	if err := sweeper.Start(); err != nil {
		log.WithError(err).Fatal("cannot schedule consistency sweep")
	}
	defer sweeper.Stop()

	expiry := helper.NewPromotionExpiry(services.PromoAdmin, log)
	if err := expiry.Start(); err != nil {
		log.WithError(err).Fatal("cannot schedule promotion expiry")
	}
	defer expiry.Stop()

	app := fiber.New(fiber.Config{
		BodyLimit: 4 * 1024 * 1024,
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     settings.AllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	h := handler.New(handler.Config{
		Services:      services,
		Events:        events,
		Logger:        log,
		PortalBaseURL: settings.PortalBaseURL,
	})
	router.SetupRoutes(app, h, router.Config{JWTSecret: settings.JWTSecret, GuestRateLimit: 120})

	go func() {
		if err := app.Listen(":" + settings.Port); err != nil {
			log.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
