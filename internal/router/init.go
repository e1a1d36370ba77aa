package router

import (
	"github.com/Renanf68/nlw2-server/internal/application"
	"github.com/Renanf68/nlw2-server/internal/container"
	pginfra "github.com/Renanf68/nlw2-server/internal/infrastructure/postgres"
	handlers "github.com/Renanf68/nlw2-server/internal/interface/http"
	"github.com/Renanf68/nlw2-server/internal/interface/middleware"
	"github.com/Renanf68/nlw2-server/internal/router/modules"
	"github.com/Renanf68/nlw2-server/pkg/helpers"
)

func eventPublisher() application.EventPublisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}

func avatarStore() application.ObjectStore {
	cfg := container.GetConfig()
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		return &helpers.GCSBucket{Client: gcs, Name: cfg.GCSBucket}
	}
	return nil
}

func writeLimiter() middleware.Counter {
	if rdb := container.GetRedis(); rdb != nil {
		return middleware.RedisCounter{RDB: rdb}
	}
	return nil
}

// NewClassService builds the class use cases from the container. It is shared
// by the HTTP modules and the seeder.
func NewClassService() *application.ClassService {
	repo := pginfra.NewClassRepository(container.GetPGPool())
	return application.NewClassService(repo, eventPublisher(), container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	limit := modules.WriteLimit{
		Counter: writeLimiter(),
		Max:     cfg.RateLimitWrites,
		Window:  cfg.RateLimitWindow,
	}

	classHandler := handlers.NewClassHandler(NewClassService(), logger)
	r.Add(modules.NewClassModule(classHandler, limit))

	connSvc := application.NewConnectionService(pginfra.NewConnectionRepository(container.GetPGPool()), logger)
	r.Add(modules.NewConnectionModule(handlers.NewConnectionHandler(connSvc), limit))

	subjectSvc := application.NewSubjectService(container.GetES(), cfg.ESClassesIndex, logger)
	r.Add(modules.NewSubjectModule(handlers.NewSubjectHandler(subjectSvc)))

	avatarSvc := application.NewAvatarService(avatarStore(), logger)
	r.Add(modules.NewAvatarModule(handlers.NewAvatarHandler(avatarSvc), limit))

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(container.GetPGPool(), logger)))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(limit.Counter))
	}
}
