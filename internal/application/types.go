package application

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

type Config struct {
	ServiceName    string
	IdempotencyTTL time.Duration
	// DefaultUserID and DefaultTeamID act for callers that present no token.
	DefaultUserID int64
	DefaultTeamID int64
	// Location bounds the "today" window.
	Location *time.Location
}

type Actor struct {
	UserID         int64
	TeamID         int64
	RequestID      string
	IdempotencyKey string
}

// CreatePostInput accepts both the plain insert shape and the composer form
// shape. A non-empty ScheduleType or a non-nil RequireApproval switches to
// the form semantics.
type CreatePostInput struct {
	Title          *string
	Content        map[string]string
	Media          json.RawMessage
	Platforms      []string
	Status         domain.PostStatus
	ScheduledAt    *time.Time
	ApprovalStatus domain.ApprovalStatus
	ApproverID     *int64

	ScheduleType    string
	RequireApproval *bool
}

type RegisterUserInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Role     string
	Avatar   *string
	Timezone *string
}

// UpdateProfileInput is a self-service profile change. Role is not editable
// here.
type UpdateProfileInput struct {
	Password *string
	Email    *string
	Name     *string
	Avatar   *string
	Timezone *string
}

type CreateTemplateInput struct {
	Name        string
	Description *string
	Content     map[string]string
	Category    *string
	IsPublic    bool
}

type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type ActivityWithUser struct {
	domain.Activity
	// User is nil when the author no longer resolves.
	User *domain.User
}

type Overview struct {
	ScheduledPosts int
	PublishedToday int
	TotalReach     string
	TeamMembers    int
}

type MemberPerformance struct {
	User       domain.User
	Posts      int
	Published  int
	Completion int
}

type Service struct {
	cfg Config

	store     ports.Storage
	verifier  ports.CredentialVerifier
	tokens    ports.TokenIssuer
	publisher ports.PublishTarget
	events    ports.EventPublisher
	cache     ports.Cache
	logger    *slog.Logger
	nowFn     func() time.Time
}

type Dependencies struct {
	Config Config

	Store     ports.Storage
	Verifier  ports.CredentialVerifier
	Tokens    ports.TokenIssuer
	Publisher ports.PublishTarget
	Events    ports.EventPublisher
	Cache     ports.Cache
	Logger    *slog.Logger
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "M31-Content-Scheduling-Service"
	}
	if cfg.IdempotencyTTL <= 0 {
		cfg.IdempotencyTTL = 24 * time.Hour
	}
	if cfg.DefaultUserID <= 0 {
		cfg.DefaultUserID = 1
	}
	if cfg.DefaultTeamID <= 0 {
		cfg.DefaultTeamID = 1
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:       cfg,
		store:     deps.Store,
		verifier:  deps.Verifier,
		tokens:    deps.Tokens,
		publisher: deps.Publisher,
		events:    deps.Events,
		cache:     deps.Cache,
		logger:    logger,
		nowFn:     func() time.Time { return time.Now().UTC() },
	}
}

// DefaultActor is the acting identity for an anonymous request.
func (s *Service) DefaultActor() Actor {
	return Actor{UserID: s.cfg.DefaultUserID, TeamID: s.cfg.DefaultTeamID}
}

func (s *Service) Config() Config {
	return s.cfg
}

func postTitle(p domain.Post) string {
	if p.Title == nil || *p.Title == "" {
		return "Untitled"
	}
	return *p.Title
}
