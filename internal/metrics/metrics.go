// Package metrics holds the Prometheus collectors of the forum service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsCreated counts notifications written, by type
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_notifications_created_total",
		Help: "Notifications created by type",
	}, []string{"type"})

	// NotificationsFailed counts fan-out attempts that could not be stored
	NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_notifications_failed_total",
		Help: "Notifications dropped because they could not be created, by type",
	}, []string{"type"})

	// LikeToggles counts like toggles by outcome: liked, unliked, conflict
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_like_toggles_total",
		Help: "Like toggles by result",
	}, []string{"result"})

	ThrottleRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_throttle_rejections_total",
		Help: "Write actions rejected by the per-session cooldown",
	})

	// PostsDeleted counts cascade deletes and the dependent rows they removed
	PostsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "forum_posts_deleted_total",
		Help: "Posts removed through cascade delete",
	})

	CascadeRowsDeleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_cascade_rows_deleted_total",
		Help: "Dependent rows removed by post cascade delete, by table",
	}, []string{"table"})
)
