package postgres

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Timestamps are written by the application clock, never by gorm hooks, so
// both storage backends report identical values.

type userModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Username  string    `gorm:"column:username;not null;uniqueIndex:users_username_key"`
	Password  string    `gorm:"column:password;not null"`
	Email     string    `gorm:"column:email;not null;uniqueIndex:users_email_key"`
	Name      string    `gorm:"column:name;not null"`
	Role      string    `gorm:"column:role;not null;default:member"`
	Avatar    *string   `gorm:"column:avatar"`
	Timezone  *string   `gorm:"column:timezone"`
	CreatedAt time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`
}

func (userModel) TableName() string { return "users" }

type teamModel struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	OwnerID     *int64    `gorm:"column:owner_id"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime:false"`

	Owner *userModel `gorm:"foreignKey:OwnerID;constraint:OnDelete:RESTRICT"`
}

func (teamModel) TableName() string { return "teams" }

type teamMemberModel struct {
	ID       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID   int64     `gorm:"column:team_id;not null;uniqueIndex:team_members_team_user_key,priority:1"`
	UserID   int64     `gorm:"column:user_id;not null;uniqueIndex:team_members_team_user_key,priority:2"`
	Role     string    `gorm:"column:role;not null;default:member"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"`

	Team *teamModel `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	User *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (teamMemberModel) TableName() string { return "team_members" }

type socialPlatformModel struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string            `gorm:"column:name;not null"`
	DisplayName string            `gorm:"column:display_name;not null"`
	Icon        string            `gorm:"column:icon;not null"`
	IsConnected bool              `gorm:"column:is_connected;not null;default:false"`
	UserID      int64             `gorm:"column:user_id;not null;index"`
	Credentials datatypes.JSONMap `gorm:"column:credentials"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`

	User *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (socialPlatformModel) TableName() string { return "social_platforms" }

type postModel struct {
	ID             int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Title          *string           `gorm:"column:title"`
	Content        map[string]string `gorm:"column:content;type:text;serializer:json;not null"`
	Media          json.RawMessage   `gorm:"column:media;type:text;serializer:json"`
	Platforms      []string          `gorm:"column:platforms;type:text;serializer:json;not null"`
	AuthorID       int64             `gorm:"column:author_id;not null;index"`
	TeamID         int64             `gorm:"column:team_id;not null;index"`
	Status         string            `gorm:"column:status;not null;default:draft"`
	ScheduledAt    *time.Time        `gorm:"column:scheduled_at;index"`
	PublishedAt    *time.Time        `gorm:"column:published_at"`
	ApprovalStatus string            `gorm:"column:approval_status;not null;default:pending"`
	ApproverID     *int64            `gorm:"column:approver_id"`
	ApprovedAt     *time.Time        `gorm:"column:approved_at"`
	CreatedAt      time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`
	UpdatedAt      time.Time         `gorm:"column:updated_at;not null;autoUpdateTime:false"`

	Author   *userModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Team     *teamModel `gorm:"foreignKey:TeamID;constraint:OnDelete:RESTRICT"`
	Approver *userModel `gorm:"foreignKey:ApproverID;constraint:OnDelete:SET NULL"`
}

func (postModel) TableName() string { return "posts" }

type templateModel struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	Content     map[string]string `gorm:"column:content;type:text;serializer:json;not null"`
	Category    *string           `gorm:"column:category"`
	AuthorID    int64             `gorm:"column:author_id;not null"`
	TeamID      int64             `gorm:"column:team_id;not null;index"`
	IsPublic    bool              `gorm:"column:is_public;not null;default:false"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`

	Author *userModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Team   *teamModel `gorm:"foreignKey:TeamID;constraint:OnDelete:RESTRICT"`
}

func (templateModel) TableName() string { return "templates" }

type activityModel struct {
	ID          int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      int64             `gorm:"column:user_id;not null"`
	TeamID      int64             `gorm:"column:team_id;not null;index"`
	Type        string            `gorm:"column:type;not null"`
	Description string            `gorm:"column:description;not null"`
	Metadata    datatypes.JSONMap `gorm:"column:metadata"`
	CreatedAt   time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`

	User *userModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Team *teamModel `gorm:"foreignKey:TeamID;constraint:OnDelete:RESTRICT"`
}

func (activityModel) TableName() string { return "activities" }

type analyticsModel struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement"`
	PostID    int64             `gorm:"column:post_id;not null;index"`
	Platform  string            `gorm:"column:platform;not null"`
	Metrics   datatypes.JSONMap `gorm:"column:metrics;not null"`
	Date      time.Time         `gorm:"column:date;not null"`
	CreatedAt time.Time         `gorm:"column:created_at;not null;autoCreateTime:false"`

	Post *postModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

func (analyticsModel) TableName() string { return "analytics" }

func allModels() []any {
	return []any{
		&userModel{},
		&teamModel{},
		&teamMemberModel{},
		&socialPlatformModel{},
		&postModel{},
		&templateModel{},
		&activityModel{},
		&analyticsModel{},
	}
}
