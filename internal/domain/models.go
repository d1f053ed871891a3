package domain

import (
	"encoding/json"
	"time"
)

const (
	RoleMember  = "member"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Email        string
	Name         string
	Role         string
	Avatar       *string
	Timezone     *string
	CreatedAt    time.Time
}

type NewUser struct {
	Username     string
	PasswordHash string
	Email        string
	Name         string
	Role         string
	Avatar       *string
	Timezone     *string
}

// UserPatch carries the fields a partial update may change. Nil means unchanged.
type UserPatch struct {
	PasswordHash *string
	Email        *string
	Name         *string
	Role         *string
	Avatar       *string
	Timezone     *string
}

type Team struct {
	ID          int64
	Name        string
	Description *string
	OwnerID     *int64
	CreatedAt   time.Time
}

type NewTeam struct {
	Name        string
	Description *string
	OwnerID     *int64
}

type TeamMember struct {
	ID       int64
	TeamID   int64
	UserID   int64
	Role     string
	JoinedAt time.Time
}

type NewTeamMember struct {
	TeamID int64
	UserID int64
	Role   string
}

// TeamMemberWithUser is a membership joined with its user record.
type TeamMemberWithUser struct {
	TeamMember
	User User
}

type SocialPlatform struct {
	ID          int64
	Name        string
	DisplayName string
	Icon        string
	IsConnected bool
	UserID      int64
	Credentials map[string]any
	CreatedAt   time.Time
}

type NewSocialPlatform struct {
	Name        string
	DisplayName string
	Icon        string
	IsConnected bool
	UserID      int64
	Credentials map[string]any
}

// SocialPlatformPatch leaves nil fields untouched; a nil Credentials map keeps
// the stored blob.
type SocialPlatformPatch struct {
	DisplayName *string
	Icon        *string
	IsConnected *bool
	Credentials map[string]any
}

type Post struct {
	ID             int64
	Title          *string
	Content        map[string]string
	Media          json.RawMessage
	Platforms      []string
	AuthorID       int64
	TeamID         int64
	Status         PostStatus
	ScheduledAt    *time.Time
	PublishedAt    *time.Time
	ApprovalStatus ApprovalStatus
	ApproverID     *int64
	ApprovedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewPost is the insert shape of a post. Empty Status and ApprovalStatus take
// the defaults draft and pending.
type NewPost struct {
	Title          *string
	Content        map[string]string
	Media          json.RawMessage
	Platforms      []string
	AuthorID       int64
	TeamID         int64
	Status         PostStatus
	ScheduledAt    *time.Time
	ApprovalStatus ApprovalStatus
	ApproverID     *int64
}

// PostPatch is a partial post update. Nil fields are left as stored.
// ClearScheduledAt removes the schedule and wins over ScheduledAt.
type PostPatch struct {
	Title            *string
	Content          map[string]string
	Media            json.RawMessage
	Platforms        []string
	Status           *PostStatus
	ScheduledAt      *time.Time
	ClearScheduledAt bool
	ApprovalStatus   *ApprovalStatus
	ApproverID       *int64
}

type Template struct {
	ID          int64
	Name        string
	Description *string
	Content     map[string]string
	Category    *string
	AuthorID    int64
	TeamID      int64
	IsPublic    bool
	CreatedAt   time.Time
}

type NewTemplate struct {
	Name        string
	Description *string
	Content     map[string]string
	Category    *string
	AuthorID    int64
	TeamID      int64
	IsPublic    bool
}

// Activity is an append-only audit record.
type Activity struct {
	ID          int64
	UserID      int64
	TeamID      int64
	Type        string
	Description string
	Metadata    map[string]any
	CreatedAt   time.Time
}

type NewActivity struct {
	UserID      int64
	TeamID      int64
	Type        string
	Description string
	Metadata    map[string]any
}

// Analytics is a per-post, per-platform metrics snapshot.
type Analytics struct {
	ID        int64
	PostID    int64
	Platform  string
	Metrics   map[string]any
	Date      time.Time
	CreatedAt time.Time
}

type NewAnalytics struct {
	PostID   int64
	Platform string
	Metrics  map[string]any
	Date     time.Time
}
