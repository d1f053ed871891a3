package ports

import (
	"context"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

// Missing records are reported as domain.ErrNotFound by every method.

type UserStore interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error)
	UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type TeamStore interface {
	GetTeam(ctx context.Context, id int64) (domain.Team, error)
	CreateTeam(ctx context.Context, in domain.NewTeam) (domain.Team, error)
	ListTeamsByUser(ctx context.Context, userID int64) ([]domain.Team, error)
	ListTeamMembers(ctx context.Context, teamID int64) ([]domain.TeamMemberWithUser, error)
	AddTeamMember(ctx context.Context, in domain.NewTeamMember) (domain.TeamMember, error)
}

type SocialPlatformStore interface {
	ListSocialPlatforms(ctx context.Context, userID int64) ([]domain.SocialPlatform, error)
	CreateSocialPlatform(ctx context.Context, in domain.NewSocialPlatform) (domain.SocialPlatform, error)
	UpdateSocialPlatform(ctx context.Context, id int64, patch domain.SocialPlatformPatch) (domain.SocialPlatform, error)
}

type PostStore interface {
	GetPost(ctx context.Context, id int64) (domain.Post, error)
	CreatePost(ctx context.Context, in domain.NewPost) (domain.Post, error)
	UpdatePost(ctx context.Context, id int64, patch domain.PostPatch) (domain.Post, error)
	// ListPostsByTeam and ListPostsByUser return newest first.
	ListPostsByTeam(ctx context.Context, teamID int64) ([]domain.Post, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]domain.Post, error)
	// ListScheduledPosts returns scheduled posts that carry a schedule time,
	// soonest first.
	ListScheduledPosts(ctx context.Context) ([]domain.Post, error)
	// ListPostsForDay returns posts scheduled within the calendar day of day,
	// midnight to midnight in day's location.
	ListPostsForDay(ctx context.Context, day time.Time) ([]domain.Post, error)
}

type TemplateStore interface {
	GetTemplate(ctx context.Context, id int64) (domain.Template, error)
	CreateTemplate(ctx context.Context, in domain.NewTemplate) (domain.Template, error)
	ListTemplatesByTeam(ctx context.Context, teamID int64) ([]domain.Template, error)
	ListPublicTemplates(ctx context.Context) ([]domain.Template, error)
}

type ActivityStore interface {
	CreateActivity(ctx context.Context, in domain.NewActivity) (domain.Activity, error)
	// ListActivitiesByTeam returns at most limit records, newest first. A
	// non-positive limit means the default of 10.
	ListActivitiesByTeam(ctx context.Context, teamID int64, limit int) ([]domain.Activity, error)
}

type AnalyticsStore interface {
	ListAnalyticsByPost(ctx context.Context, postID int64) ([]domain.Analytics, error)
	CreateAnalytics(ctx context.Context, in domain.NewAnalytics) (domain.Analytics, error)
	ListAnalyticsByTeam(ctx context.Context, teamID int64) ([]domain.Analytics, error)
}

// Storage is the single owner of entity state. The in-memory and gorm
// backends implement it with the same observable behavior.
type Storage interface {
	UserStore
	TeamStore
	SocialPlatformStore
	PostStore
	TemplateStore
	ActivityStore
	AnalyticsStore
}

const DefaultActivityLimit = 10
