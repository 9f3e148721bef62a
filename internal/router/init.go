package router

import (
	"context"

	"github.com/oksasatya/feedback-board/internal/application"
	"github.com/oksasatya/feedback-board/internal/container"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	esinfra "github.com/oksasatya/feedback-board/internal/infrastructure/elasticsearch"
	gcsinfra "github.com/oksasatya/feedback-board/internal/infrastructure/gcs"
	mongoinfra "github.com/oksasatya/feedback-board/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/feedback-board/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/feedback-board/internal/interface/http"
	"github.com/oksasatya/feedback-board/internal/router/modules"
)

// Services are the application services built from the container.
type Services struct {
	Users       *application.UserService
	Suggestions *application.SuggestionService
	Roadmap     *application.RoadmapService
}

// BuildServices wires repositories and optional backends into services.
func BuildServices(c *container.Container) Services {
	userRepo := pginfra.NewUserRepository(c.PGPool)
	suggestionRepo := mongoinfra.NewSuggestionRepository(c.SuggestionsCollection())

	var avatars application.AvatarStore
	if c.GCS != nil && c.Config.GCSBucket != "" {
		avatars = gcsinfra.NewAvatarStore(c.GCS, c.Config.GCSBucket)
	}
	var index repo.SuggestionIndex
	if c.ES != nil {
		index = esinfra.NewSuggestionIndex(c.ES, c.Config.ESSuggestionsIndex)
	}

	return Services{
		Users:       application.NewUserService(userRepo, c.JWT, avatars, c.Logger),
		Suggestions: application.NewSuggestionService(suggestionRepo, index, c.Logger),
		Roadmap:     application.NewRoadmapService(suggestionRepo),
	}
}

// InitModules builds every feature module and adds it to the registry.
func InitModules(r *Registry, c *container.Container) {
	svc := BuildServices(c)

	health := handlers.NewHealthHandler(map[string]handlers.Pinger{
		"postgres": handlers.PingFunc(c.PGPool.Ping),
		"mongo": handlers.PingFunc(func(ctx context.Context) error {
			return c.Mongo.Client().Ping(ctx, nil)
		}),
	})

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Users, c.Cookies, c.Logger),
		handlers.NewUserHandler(svc.Users, c.Cookies, c.Logger),
		c,
	))
	r.Add(modules.NewSuggestionModule(handlers.NewSuggestionHandler(svc.Suggestions, c.Logger), c))
	r.Add(modules.NewRoadmapModule(handlers.NewRoadmapHandler(svc.Roadmap, c.Logger)))
	r.Add(modules.NewDebugModule(health, c))
}
