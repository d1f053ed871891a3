package postgres

import (
	"encoding/json"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"gorm.io/datatypes"
)

func toDomainUser(m userModel) domain.User {
	return domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.Password,
		Email:        m.Email,
		Name:         m.Name,
		Role:         m.Role,
		Avatar:       m.Avatar,
		Timezone:     m.Timezone,
		CreatedAt:    domain.NormalizeTime(m.CreatedAt),
	}
}

func toDomainTeam(m teamModel) domain.Team {
	return domain.Team{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		CreatedAt:   domain.NormalizeTime(m.CreatedAt),
	}
}

func toDomainTeamMember(m teamMemberModel) domain.TeamMember {
	return domain.TeamMember{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     m.Role,
		JoinedAt: domain.NormalizeTime(m.JoinedAt),
	}
}

func toDomainSocialPlatform(m socialPlatformModel) domain.SocialPlatform {
	return domain.SocialPlatform{
		ID:          m.ID,
		Name:        m.Name,
		DisplayName: m.DisplayName,
		Icon:        m.Icon,
		IsConnected: m.IsConnected,
		UserID:      m.UserID,
		Credentials: jsonMapToDomain(m.Credentials),
		CreatedAt:   domain.NormalizeTime(m.CreatedAt),
	}
}

func toPostModel(p domain.Post) postModel {
	return postModel{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Media:          p.Media,
		Platforms:      p.Platforms,
		AuthorID:       p.AuthorID,
		TeamID:         p.TeamID,
		Status:         string(p.Status),
		ScheduledAt:    p.ScheduledAt,
		PublishedAt:    p.PublishedAt,
		ApprovalStatus: string(p.ApprovalStatus),
		ApproverID:     p.ApproverID,
		ApprovedAt:     p.ApprovedAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toDomainPost(m postModel) domain.Post {
	return domain.Post{
		ID:             m.ID,
		Title:          m.Title,
		Content:        m.Content,
		Media:          mediaOrNil(m.Media),
		Platforms:      m.Platforms,
		AuthorID:       m.AuthorID,
		TeamID:         m.TeamID,
		Status:         domain.PostStatus(m.Status),
		ScheduledAt:    normalizePtr(m.ScheduledAt),
		PublishedAt:    normalizePtr(m.PublishedAt),
		ApprovalStatus: domain.ApprovalStatus(m.ApprovalStatus),
		ApproverID:     m.ApproverID,
		ApprovedAt:     normalizePtr(m.ApprovedAt),
		CreatedAt:      domain.NormalizeTime(m.CreatedAt),
		UpdatedAt:      domain.NormalizeTime(m.UpdatedAt),
	}
}

func toDomainTemplate(m templateModel) domain.Template {
	return domain.Template{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Content:     m.Content,
		Category:    m.Category,
		AuthorID:    m.AuthorID,
		TeamID:      m.TeamID,
		IsPublic:    m.IsPublic,
		CreatedAt:   domain.NormalizeTime(m.CreatedAt),
	}
}

func toDomainActivity(m activityModel) domain.Activity {
	return domain.Activity{
		ID:          m.ID,
		UserID:      m.UserID,
		TeamID:      m.TeamID,
		Type:        m.Type,
		Description: m.Description,
		Metadata:    jsonMapToDomain(m.Metadata),
		CreatedAt:   domain.NormalizeTime(m.CreatedAt),
	}
}

func toDomainAnalytics(m analyticsModel) domain.Analytics {
	return domain.Analytics{
		ID:        m.ID,
		PostID:    m.PostID,
		Platform:  m.Platform,
		Metrics:   jsonMapToDomain(m.Metrics),
		Date:      domain.NormalizeTime(m.Date),
		CreatedAt: domain.NormalizeTime(m.CreatedAt),
	}
}

func jsonMapToDomain(m datatypes.JSONMap) map[string]any {
	if m == nil {
		return nil
	}
	return domain.CloneJSONMap(map[string]any(m))
}

func domainToJSONMap(m map[string]any) datatypes.JSONMap {
	if m == nil {
		return nil
	}
	return datatypes.JSONMap(domain.CloneJSONMap(m))
}

func mediaOrNil(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

func normalizePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := domain.NormalizeTime(*t)
	return &v
}
