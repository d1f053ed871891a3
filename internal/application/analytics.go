package application

import (
	"context"
	"math"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

// TotalReachPlaceholder stands in until reach is computed from snapshots.
const TotalReachPlaceholder = "45.2K"

// Completion is the rounded share of published posts, 0 when there are none.
func Completion(published, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(published) / float64(total) * 100))
}

func (s *Service) Overview(ctx context.Context, actor Actor) (Overview, error) {
	posts, err := s.store.ListPostsByTeam(ctx, actor.TeamID)
	if err != nil {
		return Overview{}, err
	}
	members, err := s.store.ListTeamMembers(ctx, actor.TeamID)
	if err != nil {
		return Overview{}, err
	}
	start, end := domain.DayWindow(s.nowFn().In(s.cfg.Location))
	out := Overview{TotalReach: TotalReachPlaceholder, TeamMembers: len(members)}
	for _, p := range livePosts(posts) {
		switch p.Status {
		case domain.PostStatusScheduled:
			out.ScheduledPosts++
		case domain.PostStatusPublished:
			if p.PublishedAt != nil && domain.InWindow(*p.PublishedAt, start, end) {
				out.PublishedToday++
			}
		}
	}
	return out, nil
}

// TeamPerformance rolls the team's posts up per member, in membership order.
func (s *Service) TeamPerformance(ctx context.Context, actor Actor) ([]MemberPerformance, error) {
	members, err := s.store.ListTeamMembers(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	posts, err := s.store.ListPostsByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	type tally struct{ total, published int }
	byAuthor := map[int64]*tally{}
	for _, p := range livePosts(posts) {
		t := byAuthor[p.AuthorID]
		if t == nil {
			t = &tally{}
			byAuthor[p.AuthorID] = t
		}
		t.total++
		if p.Status == domain.PostStatusPublished {
			t.published++
		}
	}
	out := make([]MemberPerformance, 0, len(members))
	for _, m := range members {
		row := MemberPerformance{User: m.User}
		if t := byAuthor[m.UserID]; t != nil {
			row.Posts, row.Published = t.total, t.published
		}
		row.Completion = Completion(row.Published, row.Posts)
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) ListPostAnalytics(ctx context.Context, postID int64) ([]domain.Analytics, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.store.ListAnalyticsByPost(ctx, postID)
}

func (s *Service) RecordPostAnalytics(ctx context.Context, postID int64, platform string, metrics map[string]any, date *time.Time) (domain.Analytics, error) {
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return domain.Analytics{}, err
	}
	in := domain.NewAnalytics{PostID: postID, Platform: platform, Metrics: metrics}
	if date != nil {
		in.Date = *date
	} else {
		in.Date = s.nowFn()
	}
	return s.store.CreateAnalytics(ctx, in)
}

func (s *Service) ListTeamAnalytics(ctx context.Context, actor Actor) ([]domain.Analytics, error) {
	return s.store.ListAnalyticsByTeam(ctx, actor.TeamID)
}
