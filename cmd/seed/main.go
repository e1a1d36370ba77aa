package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Renanf68/nlw2-server/config"
	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/container"
	pginfra "github.com/Renanf68/nlw2-server/internal/infrastructure/postgres"
	"github.com/Renanf68/nlw2-server/internal/router"
	"github.com/Renanf68/nlw2-server/pkg/helpers"
)

// demoTutor is available on weekday mornings and Saturday afternoon.
var demoTutor = application.EnrollInput{
	Name:     "Diego Fernandes",
	Avatar:   "https://avatars.githubusercontent.com/u/2254731",
	Whatsapp: "5511999999999",
	Bio:      "Physics enthusiast. Teaches mechanics and electromagnetism through experiments.",
	Subject:  "Physics",
	Cost:     80,
	Schedule: []application.ScheduleInput{
		{WeekDay: 1, From: "08:00", To: "12:00"},
		{WeekDay: 3, From: "08:00", To: "12:00"},
		{WeekDay: 5, From: "08:00", To: "12:00"},
		{WeekDay: 6, From: "14:00", To: "18:00"},
	},
}

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, pginfra.PoolConfig{DSN: cfg.PostgresDSN(), MaxConns: 2})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)

	// publish the event too so a running worker indexes the demo class
	if cfg.RabbitMQURL != "" {
		if pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExchange); err == nil {
			defer pub.Close()
			container.SetRabbitPub(pub)
		}
	}

	id, err := router.NewClassService().Enroll(ctx, demoTutor)
	if err != nil {
		logger.Fatalf("failed to seed class: %v", err)
	}
	logger.WithFields(logrus.Fields{"class_id": id, "subject": demoTutor.Subject}).Info("seeded demo tutor")
}
