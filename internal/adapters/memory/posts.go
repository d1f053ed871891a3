package memory

import (
	"context"
	"sort"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func (s *Store) GetPost(_ context.Context, id int64) (domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *Store) CreatePost(_ context.Context, in domain.NewPost) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := domain.BuildPost(in, s.nowFn())
	if err != nil {
		return domain.Post{}, err
	}
	p.ID = s.nextID("posts")
	s.posts[p.ID] = p
	return p.Clone(), nil
}

func (s *Store) UpdatePost(_ context.Context, id int64, patch domain.PostPatch) (domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.posts[id]
	if !ok {
		return domain.Post{}, domain.ErrNotFound
	}
	updated, err := current.Apply(patch, s.nowFn())
	if err != nil {
		return domain.Post{}, err
	}
	s.posts[id] = updated
	return updated.Clone(), nil
}

func (s *Store) ListPostsByTeam(_ context.Context, teamID int64) ([]domain.Post, error) {
	return s.listPostsNewestFirst(func(p domain.Post) bool { return p.TeamID == teamID }), nil
}

func (s *Store) ListPostsByUser(_ context.Context, userID int64) ([]domain.Post, error) {
	return s.listPostsNewestFirst(func(p domain.Post) bool { return p.AuthorID == userID }), nil
}

func (s *Store) ListScheduledPosts(_ context.Context) ([]domain.Post, error) {
	return s.listPostsBySchedule(func(p domain.Post) bool {
		return p.Status == domain.PostStatusScheduled && p.ScheduledAt != nil
	}), nil
}

func (s *Store) ListPostsForDay(_ context.Context, day time.Time) ([]domain.Post, error) {
	start, end := domain.DayWindow(day)
	return s.listPostsBySchedule(func(p domain.Post) bool {
		return p.ScheduledAt != nil && domain.InWindow(*p.ScheduledAt, start, end)
	}), nil
}

func (s *Store) listPostsNewestFirst(match func(domain.Post) bool) []domain.Post {
	out := s.filterPosts(match)
	sortNewestFirst(out, func(p domain.Post) (time.Time, int64) { return p.CreatedAt, p.ID })
	return out
}

func (s *Store) listPostsBySchedule(match func(domain.Post) bool) []domain.Post {
	out := s.filterPosts(match)
	sort.Slice(out, func(i, j int) bool {
		a, b := *out[i].ScheduledAt, *out[j].ScheduledAt
		if !a.Equal(b) {
			return a.Before(b)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) filterPosts(match func(domain.Post) bool) []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Post{}
	for _, p := range s.posts {
		if match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
