package memory

import (
	"context"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var _ ports.Storage = (*Store)(nil)

func (s *Store) GetTemplate(_ context.Context, id int64) (domain.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return domain.Template{}, domain.ErrNotFound
	}
	return cloneTemplate(t), nil
}

func (s *Store) CreateTemplate(_ context.Context, in domain.NewTemplate) (domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := domain.BuildTemplate(in, s.nowFn())
	if err != nil {
		return domain.Template{}, err
	}
	t.ID = s.nextID("templates")
	s.templates[t.ID] = t
	return cloneTemplate(t), nil
}

func (s *Store) ListTemplatesByTeam(_ context.Context, teamID int64) ([]domain.Template, error) {
	return s.listTemplates(func(t domain.Template) bool { return t.TeamID == teamID }), nil
}

func (s *Store) ListPublicTemplates(_ context.Context) ([]domain.Template, error) {
	return s.listTemplates(func(t domain.Template) bool { return t.IsPublic }), nil
}

func (s *Store) listTemplates(match func(domain.Template) bool) []domain.Template {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Template{}
	for _, t := range s.templates {
		if match(t) {
			out = append(out, cloneTemplate(t))
		}
	}
	sortNewestFirst(out, func(t domain.Template) (time.Time, int64) { return t.CreatedAt, t.ID })
	return out
}

func (s *Store) CreateActivity(_ context.Context, in domain.NewActivity) (domain.Activity, error) {
	if err := domain.ValidateNewActivity(in); err != nil {
		return domain.Activity{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := domain.Activity{
		ID:          s.nextID("activities"),
		UserID:      in.UserID,
		TeamID:      in.TeamID,
		Type:        in.Type,
		Description: in.Description,
		Metadata:    domain.CloneJSONMap(in.Metadata),
		CreatedAt:   s.now(),
	}
	s.activities[a.ID] = a
	return cloneActivity(a), nil
}

func (s *Store) ListActivitiesByTeam(_ context.Context, teamID int64, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = ports.DefaultActivityLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Activity{}
	for _, a := range s.activities {
		if a.TeamID == teamID {
			out = append(out, cloneActivity(a))
		}
	}
	sortNewestFirst(out, func(a domain.Activity) (time.Time, int64) { return a.CreatedAt, a.ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) ListAnalyticsByPost(_ context.Context, postID int64) ([]domain.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Analytics{}
	for _, a := range s.analytics {
		if a.PostID == postID {
			out = append(out, cloneAnalytics(a))
		}
	}
	sortByID(out, func(a domain.Analytics) int64 { return a.ID })
	return out, nil
}

func (s *Store) CreateAnalytics(_ context.Context, in domain.NewAnalytics) (domain.Analytics, error) {
	if err := domain.ValidateNewAnalytics(in); err != nil {
		return domain.Analytics{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a := domain.Analytics{
		ID:        s.nextID("analytics"),
		PostID:    in.PostID,
		Platform:  in.Platform,
		Metrics:   domain.CloneJSONMap(in.Metrics),
		Date:      domain.NormalizeTime(in.Date),
		CreatedAt: s.now(),
	}
	s.analytics[a.ID] = a
	return cloneAnalytics(a), nil
}

func (s *Store) ListAnalyticsByTeam(_ context.Context, teamID int64) ([]domain.Analytics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Analytics{}
	for _, a := range s.analytics {
		if p, ok := s.posts[a.PostID]; ok && p.TeamID == teamID {
			out = append(out, cloneAnalytics(a))
		}
	}
	sortByID(out, func(a domain.Analytics) int64 { return a.ID })
	return out, nil
}

func cloneTemplate(t domain.Template) domain.Template {
	t.Description = copyString(t.Description)
	t.Category = copyString(t.Category)
	content := make(map[string]string, len(t.Content))
	for k, v := range t.Content {
		content[k] = v
	}
	t.Content = content
	return t
}

func cloneActivity(a domain.Activity) domain.Activity {
	a.Metadata = domain.CloneJSONMap(a.Metadata)
	return a
}

func cloneAnalytics(a domain.Analytics) domain.Analytics {
	a.Metrics = domain.CloneJSONMap(a.Metrics)
	return a
}
