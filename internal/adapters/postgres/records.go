package postgres

import (
	"context"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
	"gorm.io/gorm/clause"
)

func (s *Store) GetTemplate(ctx context.Context, id int64) (domain.Template, error) {
	var rec templateModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return domain.Template{}, translateError(err)
	}
	return toDomainTemplate(rec), nil
}

func (s *Store) CreateTemplate(ctx context.Context, in domain.NewTemplate) (domain.Template, error) {
	t, err := domain.BuildTemplate(in, s.nowFn())
	if err != nil {
		return domain.Template{}, err
	}
	rec := templateModel{
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		Category:    t.Category,
		AuthorID:    t.AuthorID,
		TeamID:      t.TeamID,
		IsPublic:    t.IsPublic,
		CreatedAt:   t.CreatedAt,
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.Template{}, translateError(err)
	}
	return toDomainTemplate(rec), nil
}

func (s *Store) ListTemplatesByTeam(ctx context.Context, teamID int64) ([]domain.Template, error) {
	return s.findTemplates(ctx, "team_id = ?", teamID)
}

func (s *Store) ListPublicTemplates(ctx context.Context) ([]domain.Template, error) {
	return s.findTemplates(ctx, "is_public = ?", true)
}

func (s *Store) findTemplates(ctx context.Context, query string, args ...any) ([]domain.Template, error) {
	var rows []templateModel
	err := s.db.WithContext(ctx).Where(query, args...).Order("created_at DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.Template, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainTemplate(row))
	}
	return out, nil
}

func (s *Store) CreateActivity(ctx context.Context, in domain.NewActivity) (domain.Activity, error) {
	if err := domain.ValidateNewActivity(in); err != nil {
		return domain.Activity{}, err
	}
	rec := activityModel{
		UserID:      in.UserID,
		TeamID:      in.TeamID,
		Type:        in.Type,
		Description: in.Description,
		Metadata:    domainToJSONMap(in.Metadata),
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.Activity{}, translateError(err)
	}
	return toDomainActivity(rec), nil
}

func (s *Store) ListActivitiesByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = ports.DefaultActivityLimit
	}
	var rows []activityModel
	err := s.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainActivity(row))
	}
	return out, nil
}

func (s *Store) ListAnalyticsByPost(ctx context.Context, postID int64) ([]domain.Analytics, error) {
	var rows []analyticsModel
	if err := s.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	return toDomainAnalyticsList(rows), nil
}

func (s *Store) CreateAnalytics(ctx context.Context, in domain.NewAnalytics) (domain.Analytics, error) {
	if err := domain.ValidateNewAnalytics(in); err != nil {
		return domain.Analytics{}, err
	}
	rec := analyticsModel{
		PostID:    in.PostID,
		Platform:  in.Platform,
		Metrics:   domainToJSONMap(in.Metrics),
		Date:      domain.NormalizeTime(in.Date),
		CreatedAt: s.now(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.Analytics{}, translateError(err)
	}
	return toDomainAnalytics(rec), nil
}

func (s *Store) ListAnalyticsByTeam(ctx context.Context, teamID int64) ([]domain.Analytics, error) {
	var rows []analyticsModel
	err := s.db.WithContext(ctx).
		Joins("JOIN posts ON posts.id = analytics.post_id").
		Where("posts.team_id = ?", teamID).
		Order("analytics.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	return toDomainAnalyticsList(rows), nil
}

func toDomainAnalyticsList(rows []analyticsModel) []domain.Analytics {
	out := make([]domain.Analytics, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainAnalytics(row))
	}
	return out
}
