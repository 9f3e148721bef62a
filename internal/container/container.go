package container

import (
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/feedback-board/config"
	"github.com/oksasatya/feedback-board/internal/interface/middleware"
	"github.com/oksasatya/feedback-board/pkg/helpers"
)

// Container holds the process-wide clients built in main and handed to the
// router. Optional clients (Redis, GCS, ES) may be nil.
type Container struct {
	Config  *config.Config
	Logger  *logrus.Logger
	PGPool  *pgxpool.Pool
	Mongo   *mongo.Database
	Redis   *redis.Client
	GCS     *storage.Client
	ES      *elasticsearch.Client
	JWT     *helpers.JWTManager
	Cookies *helpers.Manager
}

// SuggestionsCollection returns the collection backing the suggestion store.
func (c *Container) SuggestionsCollection() *mongo.Collection {
	return c.Mongo.Collection(c.Config.MongoSuggestionsCollection)
}

// Authenticate returns the cookie gate configured for this process.
func (c *Container) Authenticate() gin.HandlerFunc {
	return middleware.Authenticate(c.JWT, c.Cookies)
}

// Limiter builds a Redis-backed limiter, or a pass-through when rate
// limiting is disabled.
func (c *Container) Limiter(max int, window time.Duration, key middleware.KeyFunc, allow middleware.AllowFunc) gin.HandlerFunc {
	rdb := c.Redis
	if !c.Config.RateLimitEnabled {
		rdb = nil
	}
	return middleware.RateLimit(rdb, max, window, key, allow)
}
