package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	PostsUpdated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_updated_total",
			Help: "Total number of posts updated",
		},
	)

	PostsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_deleted_total",
			Help: "Total number of posts deleted",
		},
	)

	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed listings by scope",
		},
		[]string{"scope"},
	)
)
