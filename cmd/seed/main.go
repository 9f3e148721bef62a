package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/feedback-board/config"
	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	mongoinfra "github.com/oksasatya/feedback-board/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/feedback-board/internal/infrastructure/postgres"
	"github.com/oksasatya/feedback-board/pkg/helpers"
)

var samples = []struct {
	title, description string
	category           entity.Category
	status             entity.Status
}{
	{"Add tags for solutions", "Easier to search for solutions based on a specific stack.", entity.CategoryEnhancement, entity.StatusSuggestion},
	{"Add a dark theme option", "It would help people with light sensitivities and who prefer dark mode.", entity.CategoryFeature, entity.StatusSuggestion},
	{"Q&A within the challenge hubs", "Challenge-specific Q&A would make for easy reference.", entity.CategoryFeature, entity.StatusSuggestion},
	{"Allow image/video upload to feedback", "Images and screencasts can enhance comments on solutions.", entity.CategoryEnhancement, entity.StatusSuggestion},
	{"Ability to follow others", "Stay updated on comments and solutions other people post.", entity.CategoryFeature, entity.StatusSuggestion},
	{"Preview images not loading", "Challenge preview images are missing when you apply a filter.", entity.CategoryBug, entity.StatusSuggestion},
	{"More comprehensive reports", "It would be great to see a more detailed breakdown of solutions.", entity.CategoryFeature, entity.StatusPlanned},
	{"Learning paths", "Sequenced projects for different goals to help people improve.", entity.CategoryFeature, entity.StatusPlanned},
	{"One-click portfolio generation", "Add ability to create professional looking portfolio from profile.", entity.CategoryFeature, entity.StatusInProgress},
	{"Bookmark challenges", "Be able to bookmark challenges to take later on.", entity.CategoryFeature, entity.StatusInProgress},
	{"Animated solution screenshots", "Screenshots of solutions with animations don't display correctly.", entity.CategoryBug, entity.StatusInProgress},
	{"Add micro-interactions", "Small animations at specific points can add delight.", entity.CategoryEnhancement, entity.StatusLive},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	users := pginfra.NewUserRepository(pool)

	admin, err := users.GetByEmail(ctx, cfg.AdminEmail)
	switch {
	case errors.Is(err, repo.ErrNotFound):
		hash, err := helpers.HashPassword(cfg.AdminPassword)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		now := time.Now().UTC()
		admin = &entity.User{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: hash,
			Role:     entity.RoleAdmin,
			JoinedAt: now,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.Fatalf("failed to seed admin: %v", err)
		}
		logger.WithField("id", admin.ID).Infof("seeded admin %s", admin.Email)
	case err != nil:
		log.Fatalf("failed to look up admin: %v", err)
	default:
		logger.WithField("id", admin.ID).Infof("admin %s already present", admin.Email)
	}

	client, err := mongoinfra.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	col := client.Database(cfg.MongoDB).Collection(cfg.MongoSuggestionsCollection)
	if err := mongoinfra.EnsureSuggestionIndexes(ctx, col); err != nil {
		log.Fatalf("failed to ensure mongo indexes: %v", err)
	}
	suggestions := mongoinfra.NewSuggestionRepository(col)

	n, err := suggestions.Count(ctx, nil)
	if err != nil {
		log.Fatalf("failed to count suggestions: %v", err)
	}
	if n > 0 {
		logger.Infof("%d suggestions already present, skipping samples", n)
		return
	}
	for _, s := range samples {
		now := time.Now().UTC()
		err := suggestions.Create(ctx, &entity.Suggestion{
			Title:       s.title,
			Description: s.description,
			Category:    s.category,
			Status:      s.status,
			CreatedBy:   admin.ID,
			UpvotedBy:   []string{},
			Comments:    []entity.Comment{},
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			log.Fatalf("failed to seed suggestion %q: %v", s.title, err)
		}
	}
	logger.Infof("seeded %d suggestions", len(samples))
}
