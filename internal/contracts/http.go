package contracts

import (
	"encoding/json"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every failed request. Errors is only present
// for validation failures.
type ErrorResponse struct {
	Message   string              `json:"message"`
	Errors    []domain.FieldError `json:"errors,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
}

// UserDTO never carries the stored credential.
type UserDTO struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Avatar    *string   `json:"avatar"`
	Timezone  *string   `json:"timezone"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewUserDTO(u domain.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Avatar:    u.Avatar,
		Timezone:  u.Timezone,
		CreatedAt: u.CreatedAt,
	}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User      UserDTO   `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type CreateUserRequest struct {
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Role     string  `json:"role"`
	Avatar   *string `json:"avatar"`
	Timezone *string `json:"timezone"`
}

type UpdateUserRequest struct {
	Password *string `json:"password"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Avatar   *string `json:"avatar"`
	Timezone *string `json:"timezone"`
}

type TeamDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	OwnerID     *int64    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewTeamDTO(t domain.Team) TeamDTO {
	return TeamDTO{ID: t.ID, Name: t.Name, Description: t.Description, OwnerID: t.OwnerID, CreatedAt: t.CreatedAt}
}

type TeamMemberDTO struct {
	ID       int64     `json:"id"`
	TeamID   int64     `json:"teamId"`
	UserID   int64     `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	User     *UserDTO  `json:"user,omitempty"`
}

func NewTeamMemberDTO(m domain.TeamMember) TeamMemberDTO {
	return TeamMemberDTO{ID: m.ID, TeamID: m.TeamID, UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
}

func NewTeamMemberWithUserDTO(m domain.TeamMemberWithUser) TeamMemberDTO {
	dto := NewTeamMemberDTO(m.TeamMember)
	user := NewUserDTO(m.User)
	dto.User = &user
	return dto
}

type AddTeamMemberRequest struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
}

// SocialPlatformDTO leaves out the credentials blob.
type SocialPlatformDTO struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Icon        string    `json:"icon"`
	IsConnected bool      `json:"isConnected"`
	UserID      int64     `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func NewSocialPlatformDTO(p domain.SocialPlatform) SocialPlatformDTO {
	return SocialPlatformDTO{
		ID:          p.ID,
		Name:        p.Name,
		DisplayName: p.DisplayName,
		Icon:        p.Icon,
		IsConnected: p.IsConnected,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
	}
}

type CreateSocialPlatformRequest struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Icon        string         `json:"icon"`
	IsConnected bool           `json:"isConnected"`
	Credentials map[string]any `json:"credentials"`
}

type UpdateSocialPlatformRequest struct {
	DisplayName *string        `json:"displayName"`
	Icon        *string        `json:"icon"`
	IsConnected *bool          `json:"isConnected"`
	Credentials map[string]any `json:"credentials"`
}

type PostDTO struct {
	ID             int64             `json:"id"`
	Title          *string           `json:"title"`
	Content        map[string]string `json:"content"`
	Media          json.RawMessage   `json:"media"`
	Platforms      []string          `json:"platforms"`
	AuthorID       int64             `json:"authorId"`
	TeamID         int64             `json:"teamId"`
	Status         string            `json:"status"`
	ScheduledAt    *time.Time        `json:"scheduledAt"`
	PublishedAt    *time.Time        `json:"publishedAt"`
	ApprovalStatus string            `json:"approvalStatus"`
	ApproverID     *int64            `json:"approverId"`
	ApprovedAt     *time.Time        `json:"approvedAt"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func NewPostDTO(p domain.Post) PostDTO {
	media := p.Media
	if len(media) == 0 {
		media = json.RawMessage("null")
	}
	return PostDTO{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		Media:          media,
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

func NewPostDTOs(posts []domain.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}

// CreatePostRequest accepts the stored insert shape (status, approvalStatus,
// approverId) and the composer form shape (scheduleType, requireApproval).
// When the form fields are present they decide status and approval.
type CreatePostRequest struct {
	Title          *string           `json:"title"`
	Content        map[string]string `json:"content"`
	Media          json.RawMessage   `json:"media"`
	Platforms      []string          `json:"platforms"`
	Status         string            `json:"status"`
	ScheduledAt    *time.Time        `json:"scheduledAt"`
	ApprovalStatus string            `json:"approvalStatus"`
	ApproverID     *int64            `json:"approverId"`

	ScheduleType    string `json:"scheduleType"`
	RequireApproval *bool  `json:"requireApproval"`
}

// UpdatePostRequest keeps scheduledAt raw so an explicit null can clear it.
type UpdatePostRequest struct {
	Title          *string           `json:"title"`
	Content        map[string]string `json:"content"`
	Media          json.RawMessage   `json:"media"`
	Platforms      []string          `json:"platforms"`
	Status         *string           `json:"status"`
	ScheduledAt    json.RawMessage   `json:"scheduledAt"`
	ApprovalStatus *string           `json:"approvalStatus"`
	ApproverID     *int64            `json:"approverId"`
}

type BulkScheduleRequest struct {
	Posts []CreatePostRequest `json:"posts"`
}

type TemplateDTO struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Content     map[string]string `json:"content"`
	Category    *string           `json:"category"`
	AuthorID    int64             `json:"authorId"`
	TeamID      int64             `json:"teamId"`
	IsPublic    bool              `json:"isPublic"`
	CreatedAt   time.Time         `json:"createdAt"`
}

func NewTemplateDTO(t domain.Template) TemplateDTO {
	return TemplateDTO{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Content:     t.Content,
		Category:    t.Category,
		AuthorID:    t.AuthorID,
		TeamID:      t.TeamID,
		IsPublic:    t.IsPublic,
		CreatedAt:   t.CreatedAt,
	}
}

type CreateTemplateRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Content     map[string]string `json:"content"`
	Category    *string           `json:"category"`
	IsPublic    bool              `json:"isPublic"`
}

// ActivityDTO is an activity enriched with its acting user; User is null when
// that user no longer exists.
type ActivityDTO struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"userId"`
	TeamID      int64          `json:"teamId"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
	CreatedAt   time.Time      `json:"createdAt"`
	User        *UserDTO       `json:"user"`
}

type AnalyticsDTO struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"postId"`
	Platform  string         `json:"platform"`
	Metrics   map[string]any `json:"metrics"`
	Date      time.Time      `json:"date"`
	CreatedAt time.Time      `json:"createdAt"`
}

func NewAnalyticsDTO(a domain.Analytics) AnalyticsDTO {
	return AnalyticsDTO{ID: a.ID, PostID: a.PostID, Platform: a.Platform, Metrics: a.Metrics, Date: a.Date, CreatedAt: a.CreatedAt}
}

type CreateAnalyticsRequest struct {
	Platform string         `json:"platform"`
	Metrics  map[string]any `json:"metrics"`
	Date     time.Time      `json:"date"`
}

type OverviewResponse struct {
	ScheduledPosts int    `json:"scheduledPosts"`
	PublishedToday int    `json:"publishedToday"`
	TotalReach     string `json:"totalReach"`
	TeamMembers    int    `json:"teamMembers"`
}

type MemberPerformanceDTO struct {
	User       UserDTO `json:"user"`
	Posts      int     `json:"posts"`
	Published  int     `json:"published"`
	Completion int     `json:"completion"`
}
