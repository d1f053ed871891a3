package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) GetPost(ctx context.Context, id int64) (domain.Post, error) {
	var rec postModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return domain.Post{}, translateError(err)
	}
	return toDomainPost(rec), nil
}

func (s *Store) CreatePost(ctx context.Context, in domain.NewPost) (domain.Post, error) {
	p, err := domain.BuildPost(in, s.nowFn())
	if err != nil {
		return domain.Post{}, err
	}
	rec := toPostModel(p)
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.Post{}, translateError(err)
	}
	p.ID = rec.ID
	return p, nil
}

func (s *Store) UpdatePost(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	var out domain.Post
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec postModel
		if err := tx.Where("id = ?", id).Take(&rec).Error; err != nil {
			return err
		}
		updated, err := toDomainPost(rec).Apply(patch, s.nowFn())
		if err != nil {
			return err
		}
		next := toPostModel(updated)
		if err := tx.Omit(clause.Associations).Save(&next).Error; err != nil {
			return err
		}
		out = updated
		return nil
	})
	if err != nil {
		var invalid *domain.ValidationError
		if errors.As(err, &invalid) {
			return domain.Post{}, err
		}
		return domain.Post{}, translateError(err)
	}
	return out, nil
}

func (s *Store) ListPostsByTeam(ctx context.Context, teamID int64) ([]domain.Post, error) {
	return s.findPosts(ctx, "created_at DESC, id DESC", "team_id = ?", teamID)
}

func (s *Store) ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error) {
	return s.findPosts(ctx, "created_at DESC, id DESC", "author_id = ?", userID)
}

func (s *Store) ListScheduledPosts(ctx context.Context) ([]domain.Post, error) {
	return s.findPosts(ctx, "scheduled_at ASC, id ASC",
		"status = ? AND scheduled_at IS NOT NULL", string(domain.PostStatusScheduled))
}

func (s *Store) ListPostsForDay(ctx context.Context, day time.Time) ([]domain.Post, error) {
	start, end := domain.DayWindow(day)
	return s.findPosts(ctx, "scheduled_at ASC, id ASC",
		"scheduled_at >= ? AND scheduled_at < ?", start.UTC(), end.UTC())
}

func (s *Store) findPosts(ctx context.Context, order string, query string, args ...any) ([]domain.Post, error) {
	var rows []postModel
	if err := s.db.WithContext(ctx).Where(query, args...).Order(order).Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.Post, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainPost(row))
	}
	return out, nil
}
