package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_redis_errors_total",
		Help: "Total number of Redis errors by operation",
	}, []string{"operation"})

	// LoginAttempts counts logins by outcome ("success", "invalid_credentials", "error").
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_logins_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// LikeRequests counts like requests by outcome.
	LikeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_likes_total",
		Help: "Total number of like requests by result",
	}, []string{"result"})

	// PostsCreated counts successfully created posts.
	PostsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_posts_created_total",
		Help: "Total number of posts created",
	})
)
