package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"renthub/pkg/logger"
)

type Repositories struct {
	User         UserRepository
	Property     PropertyRepository
	Message      MessageRepository
	Notification NotificationRepository
	RateLimit    RateLimitRepository
}

func NewRepositories(db *pgxpool.Pool, redis *redis.Client, log logger.Logger) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db, log),
		Property:     NewPropertyRepository(db, log),
		Message:      NewMessageRepository(db, log),
		Notification: NewNotificationRepository(db, log),
		RateLimit:    NewRateLimitRepository(redis, log),
	}
}
