package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

const (
	ScheduleTypeNow      = "now"
	ScheduleTypeSchedule = "schedule"
)

// toNewPost resolves the composer form fields into the stored insert shape.
func (in CreatePostInput) toNewPost(actor Actor) (domain.NewPost, error) {
	out := domain.NewPost{
		Title:          in.Title,
		Content:        in.Content,
		Media:          in.Media,
		Platforms:      in.Platforms,
		AuthorID:       actor.UserID,
		TeamID:         actor.TeamID,
		Status:         in.Status,
		ScheduledAt:    in.ScheduledAt,
		ApprovalStatus: in.ApprovalStatus,
		ApproverID:     in.ApproverID,
	}
	switch strings.TrimSpace(in.ScheduleType) {
	case "":
	case ScheduleTypeNow:
		out.Status = domain.PostStatusPublished
		out.ScheduledAt = nil
	case ScheduleTypeSchedule:
		out.Status = domain.PostStatusScheduled
	default:
		ve := &domain.ValidationError{}
		ve.Add("scheduleType", "must be now or schedule")
		return domain.NewPost{}, ve
	}
	if in.RequireApproval != nil {
		if *in.RequireApproval {
			out.ApprovalStatus = domain.ApprovalPending
			out.ApproverID = nil
		} else {
			out.ApprovalStatus = domain.ApprovalApproved
		}
	}
	return out, nil
}

func (s *Service) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	return s.store.GetPost(ctx, id)
}

// ListTeamPosts returns the acting team's posts, newest first, without
// deleted ones.
func (s *Service) ListTeamPosts(ctx context.Context, actor Actor) ([]domain.Post, error) {
	posts, err := s.store.ListPostsByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	return livePosts(posts), nil
}

func (s *Service) ListUserPosts(ctx context.Context, actor Actor) ([]domain.Post, error) {
	posts, err := s.store.ListPostsByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return livePosts(posts), nil
}

func (s *Service) ListScheduledPosts(ctx context.Context) ([]domain.Post, error) {
	return s.store.ListScheduledPosts(ctx)
}

// ListTodayPosts returns posts scheduled within today in the configured
// location.
func (s *Service) ListTodayPosts(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.store.ListPostsForDay(ctx, s.nowFn().In(s.cfg.Location))
	if err != nil {
		return nil, err
	}
	return livePosts(posts), nil
}

func (s *Service) CreatePost(ctx context.Context, actor Actor, input CreatePostInput) (domain.Post, error) {
	return withIdempotency(ctx, s, actor, "create_post", input, func() (domain.Post, error) {
		return s.createPost(ctx, actor, input)
	})
}

func (s *Service) createPost(ctx context.Context, actor Actor, input CreatePostInput) (domain.Post, error) {
	newPost, err := input.toNewPost(actor)
	if err != nil {
		return domain.Post{}, err
	}
	post, err := s.store.CreatePost(ctx, newPost)
	if err != nil {
		return domain.Post{}, err
	}
	activityType, verb := "post_created", "created"
	if post.Status == domain.PostStatusScheduled {
		activityType, verb = "post_scheduled", "scheduled"
	}
	s.recordActivity(ctx, actor, activityType, verb+" post: "+postTitle(post), map[string]any{
		"postId":    post.ID,
		"platforms": post.Platforms,
	})
	return s.dispatchIfReady(ctx, actor, false, post), nil
}

// UpdatePost applies a partial update. Status moves are checked against the
// lifecycle, an approval without an approver is credited to the actor, and
// a post that just became published and approved is handed to the publish
// target.
func (s *Service) UpdatePost(ctx context.Context, actor Actor, id int64, patch domain.PostPatch) (domain.Post, error) {
	current, err := s.store.GetPost(ctx, id)
	if err != nil {
		return domain.Post{}, err
	}
	if current.Status == domain.PostStatusDeleted {
		ve := &domain.ValidationError{}
		ve.Add("status", "deleted posts cannot be changed")
		return domain.Post{}, ve
	}
	if patch.Status != nil && domain.IsValidPostStatus(*patch.Status) && !domain.CanTransition(current.Status, *patch.Status) {
		ve := &domain.ValidationError{}
		ve.Add("status", fmt.Sprintf("cannot move a %s post to %s", current.Status, *patch.Status))
		return domain.Post{}, ve
	}
	if patch.ApprovalStatus != nil && *patch.ApprovalStatus == domain.ApprovalApproved &&
		patch.ApproverID == nil && current.ApprovalStatus != domain.ApprovalApproved {
		approver := actor.UserID
		patch.ApproverID = &approver
	}

	updated, err := s.store.UpdatePost(ctx, id, patch)
	if err != nil {
		return domain.Post{}, err
	}
	if patch.ApprovalStatus != nil && *patch.ApprovalStatus != current.ApprovalStatus {
		approval := string(updated.ApprovalStatus)
		s.recordActivity(ctx, actor, "post_"+approval, approval+" post: "+postTitle(updated), map[string]any{
			"postId": updated.ID,
		})
	}
	return s.dispatchIfReady(ctx, actor, readyToPublish(current), updated), nil
}

// DeletePost soft-deletes a post. Deleting an already deleted post succeeds
// without a second activity.
func (s *Service) DeletePost(ctx context.Context, actor Actor, id int64) error {
	current, err := s.store.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if current.Status == domain.PostStatusDeleted {
		return nil
	}
	deleted := domain.PostStatusDeleted
	post, err := s.store.UpdatePost(ctx, id, domain.PostPatch{Status: &deleted})
	if err != nil {
		return err
	}
	s.recordActivity(ctx, actor, "post_deleted", "deleted post: "+postTitle(post), map[string]any{
		"postId": post.ID,
	})
	return nil
}

// BulkSchedule creates every item as scheduled, in order. The first failing
// item stops the batch; items created before it are kept and no aggregate
// activity is written.
func (s *Service) BulkSchedule(ctx context.Context, actor Actor, inputs []CreatePostInput) ([]domain.Post, error) {
	if len(inputs) == 0 {
		ve := &domain.ValidationError{}
		ve.Add("posts", "at least one post is required")
		return nil, ve
	}
	return withIdempotency(ctx, s, actor, "bulk_schedule", inputs, func() ([]domain.Post, error) {
		created := make([]domain.Post, 0, len(inputs))
		for i, input := range inputs {
			input.ScheduleType = ""
			input.Status = domain.PostStatusScheduled
			newPost, err := input.toNewPost(actor)
			if err != nil {
				return nil, prefixFieldErrors(err, fmt.Sprintf("posts[%d]", i))
			}
			post, err := s.store.CreatePost(ctx, newPost)
			if err != nil {
				return nil, prefixFieldErrors(err, fmt.Sprintf("posts[%d]", i))
			}
			created = append(created, post)
		}
		ids := make([]int64, 0, len(created))
		for _, p := range created {
			ids = append(ids, p.ID)
		}
		s.recordActivity(ctx, actor, "bulk_schedule", fmt.Sprintf("bulk scheduled %d posts", len(created)), map[string]any{
			"postIds": ids,
		})
		return created, nil
	})
}

func readyToPublish(p domain.Post) bool {
	return p.Status == domain.PostStatusPublished && p.ApprovalStatus == domain.ApprovalApproved
}

// dispatchIfReady hands a post to the publish target once per platform when
// it has just become published and approved. A delivery failure moves the
// post to failed and is recorded; the caller still gets the stored post.
func (s *Service) dispatchIfReady(ctx context.Context, actor Actor, wasReady bool, post domain.Post) domain.Post {
	if s.publisher == nil || wasReady || !readyToPublish(post) {
		return post
	}
	for _, platform := range post.Platforms {
		err := s.publisher.Publish(ctx, post, platform)
		if err == nil {
			continue
		}
		s.logger.WarnContext(ctx, "post publish failed",
			"module", "application",
			"layer", "service",
			"operation", "publish_post",
			"outcome", "failure",
			"request_id", actor.RequestID,
			"post_id", post.ID,
			"platform", platform,
			"error", err.Error(),
		)
		failed := domain.PostStatusFailed
		if !domain.CanRecordPublishOutcome(post.Status, failed) {
			return post
		}
		updated, updateErr := s.store.UpdatePost(ctx, post.ID, domain.PostPatch{Status: &failed})
		if updateErr != nil {
			s.logger.ErrorContext(ctx, "marking post failed",
				"module", "application",
				"layer", "service",
				"operation", "publish_post",
				"outcome", "failure",
				"request_id", actor.RequestID,
				"post_id", post.ID,
				"error", updateErr.Error(),
			)
			return post
		}
		s.recordActivity(ctx, actor, "post_failed", "failed to publish post: "+postTitle(updated), map[string]any{
			"postId":   updated.ID,
			"platform": platform,
			"error":    err.Error(),
		})
		return updated
	}
	return post
}

func livePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, 0, len(posts))
	for _, p := range posts {
		if p.IsLive() {
			out = append(out, p)
		}
	}
	return out
}

func prefixFieldErrors(err error, prefix string) error {
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	out := &domain.ValidationError{}
	for _, fe := range ve.Errors {
		out.Add(prefix+"."+fe.Field, fe.Message)
	}
	return out
}
