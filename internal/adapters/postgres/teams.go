package postgres

import (
	"context"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (s *Store) GetTeam(ctx context.Context, id int64) (domain.Team, error) {
	var rec teamModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return domain.Team{}, translateError(err)
	}
	return toDomainTeam(rec), nil
}

func (s *Store) CreateTeam(ctx context.Context, in domain.NewTeam) (domain.Team, error) {
	if err := domain.ValidateNewTeam(in); err != nil {
		return domain.Team{}, err
	}
	rec := teamModel{
		Name:        in.Name,
		Description: in.Description,
		OwnerID:     in.OwnerID,
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.Team{}, translateError(err)
	}
	return toDomainTeam(rec), nil
}

func (s *Store) ListTeamsByUser(ctx context.Context, userID int64) ([]domain.Team, error) {
	var rows []teamModel
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainTeam(row))
	}
	return out, nil
}

// ListTeamMembers inner-joins users, so a membership whose user is gone is
// left out.
func (s *Store) ListTeamMembers(ctx context.Context, teamID int64) ([]domain.TeamMemberWithUser, error) {
	var rows []teamMemberModel
	err := s.db.WithContext(ctx).
		InnerJoins("User").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.TeamMemberWithUser, 0, len(rows))
	for _, row := range rows {
		if row.User == nil {
			continue
		}
		out = append(out, domain.TeamMemberWithUser{
			TeamMember: toDomainTeamMember(row),
			User:       toDomainUser(*row.User),
		})
	}
	return out, nil
}

func (s *Store) AddTeamMember(ctx context.Context, in domain.NewTeamMember) (domain.TeamMember, error) {
	if err := domain.ValidateNewTeamMember(in); err != nil {
		return domain.TeamMember{}, err
	}
	rec := teamMemberModel{
		TeamID:   in.TeamID,
		UserID:   in.UserID,
		Role:     in.Role,
		JoinedAt: s.now(),
	}
	if rec.Role == "" {
		rec.Role = domain.RoleMember
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.TeamMember{}, translateError(err)
	}
	return toDomainTeamMember(rec), nil
}

func (s *Store) ListSocialPlatforms(ctx context.Context, userID int64) ([]domain.SocialPlatform, error) {
	var rows []socialPlatformModel
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.SocialPlatform, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainSocialPlatform(row))
	}
	return out, nil
}

func (s *Store) CreateSocialPlatform(ctx context.Context, in domain.NewSocialPlatform) (domain.SocialPlatform, error) {
	if err := domain.ValidateNewSocialPlatform(in); err != nil {
		return domain.SocialPlatform{}, err
	}
	rec := socialPlatformModel{
		Name:        in.Name,
		DisplayName: in.DisplayName,
		Icon:        in.Icon,
		IsConnected: in.IsConnected,
		UserID:      in.UserID,
		Credentials: domainToJSONMap(in.Credentials),
		CreatedAt:   s.now(),
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&rec).Error; err != nil {
		return domain.SocialPlatform{}, translateError(err)
	}
	return toDomainSocialPlatform(rec), nil
}

func (s *Store) UpdateSocialPlatform(ctx context.Context, id int64, patch domain.SocialPlatformPatch) (domain.SocialPlatform, error) {
	if err := domain.ValidateSocialPlatformPatch(patch); err != nil {
		return domain.SocialPlatform{}, err
	}
	var out domain.SocialPlatform
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec socialPlatformModel
		if err := tx.Where("id = ?", id).Take(&rec).Error; err != nil {
			return err
		}
		if patch.DisplayName != nil {
			rec.DisplayName = *patch.DisplayName
		}
		if patch.Icon != nil {
			rec.Icon = *patch.Icon
		}
		if patch.IsConnected != nil {
			rec.IsConnected = *patch.IsConnected
		}
		if patch.Credentials != nil {
			rec.Credentials = domainToJSONMap(patch.Credentials)
		}
		if err := tx.Omit(clause.Associations).Save(&rec).Error; err != nil {
			return err
		}
		out = toDomainSocialPlatform(rec)
		return nil
	})
	if err != nil {
		return domain.SocialPlatform{}, translateError(err)
	}
	return out, nil
}
