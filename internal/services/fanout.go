package services

import (
	"context"
	"fmt"

	"github.com/anonto42/nano-forum/backend/internal/metrics"
	"github.com/anonto42/nano-forum/backend/internal/models"
)

type recipient struct {
	username string
	kind     models.NotificationType
	message  string
}

// commentRecipients decides who hears about a new comment by actor. The
// actor is never notified, and the post author is notified at most once even
// when they also wrote the parent comment.
func commentRecipients(post *models.Post, parent *models.Comment, actor string) []recipient {
	var out []recipient
	if parent == nil {
		if post.Author != actor {
			out = append(out, recipient{
				username: post.Author,
				kind:     models.NotificationTypeComment,
				message:  fmt.Sprintf("%s commented on your post %q", actor, post.Title),
			})
		}
		return out
	}

	if post.Author != actor {
		out = append(out, recipient{
			username: post.Author,
			kind:     models.NotificationTypeReply,
			message:  fmt.Sprintf("%s replied to a comment on your post %q", actor, post.Title),
		})
	}
	if parent.Author != actor && parent.Author != post.Author {
		out = append(out, recipient{
			username: parent.Author,
			kind:     models.NotificationTypeReply,
			message:  fmt.Sprintf("%s replied to your comment on %q", actor, post.Title),
		})
	}
	return out
}

func (s *Service) fanOutComment(ctx context.Context, actor Actor, post *models.Post, parent *models.Comment, comment *models.Comment) {
	for _, r := range commentRecipients(post, parent, actor.Username) {
		commentID := comment.ID
		s.notify(ctx, r.username, &models.Notification{
			Type:      r.kind,
			Message:   r.message,
			PostID:    post.ID,
			CommentID: &commentID,
			FromUser:  actor.Username,
		})
	}
}

// notify stores one notification for username. It is best effort: failures
// are logged and counted but never returned, so the triggering write stands.
func (s *Service) notify(ctx context.Context, username string, n *models.Notification) {
	user, err := s.store.Users.GetUserByUsername(ctx, username)
	if err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(n.Type)).Inc()
		s.logger.Warn("Notification recipient lookup failed",
			"recipient", username, "type", n.Type, "post_id", n.PostID, "error", err)
		return
	}

	n.UserID = user.ID
	n.CreatedAt = s.now()
	if err := s.store.Notifications.CreateNotification(ctx, n); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(n.Type)).Inc()
		s.logger.Warn("Notification create failed",
			"recipient", username, "type", n.Type, "post_id", n.PostID, "error", err)
		return
	}
	metrics.NotificationsCreated.WithLabelValues(string(n.Type)).Inc()
}
