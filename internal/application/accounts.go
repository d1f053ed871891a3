package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

// Login checks a username and password and opens a session. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, domain.ErrUnauthorized
	}
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Session{}, domain.ErrUnauthorized
		}
		return Session{}, err
	}
	if err := s.verifier.Verify(user.PasswordHash, password); err != nil {
		return Session{}, domain.ErrUnauthorized
	}
	session := Session{User: user}
	if s.tokens != nil {
		token, claims, err := s.tokens.Issue(user.ID)
		if err != nil {
			return Session{}, err
		}
		session.Token, session.ExpiresAt = token, claims.ExpiresAt
	}
	return session, nil
}

// ResolveActor turns a bearer token into the acting identity. The team is the
// configured default team.
func (s *Service) ResolveActor(ctx context.Context, token string) (Actor, error) {
	if s.tokens == nil {
		return Actor{}, domain.ErrUnauthorized
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return Actor{}, domain.ErrUnauthorized
	}
	if _, err := s.store.GetUser(ctx, claims.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Actor{}, domain.ErrUnauthorized
		}
		return Actor{}, err
	}
	return Actor{UserID: claims.UserID, TeamID: s.cfg.DefaultTeamID}, nil
}

func (s *Service) CurrentUser(ctx context.Context, actor Actor) (domain.User, error) {
	return s.store.GetUser(ctx, actor.UserID)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) RegisterUser(ctx context.Context, input RegisterUserInput) (domain.User, error) {
	ve := &domain.ValidationError{}
	if len(input.Password) < 6 {
		ve.Add("password", "must be at least 6 characters")
	}
	validateTimezone(ve, input.Timezone)
	if err := ve.Err(); err != nil {
		return domain.User{}, err
	}
	hash, err := s.verifier.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, domain.NewUser{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Email:        strings.TrimSpace(input.Email),
		Name:         input.Name,
		Role:         input.Role,
		Avatar:       input.Avatar,
		Timezone:     input.Timezone,
	})
}

func (s *Service) UpdateProfile(ctx context.Context, actor Actor, input UpdateProfileInput) (domain.User, error) {
	ve := &domain.ValidationError{}
	if input.Password != nil && len(*input.Password) < 6 {
		ve.Add("password", "must be at least 6 characters")
	}
	validateTimezone(ve, input.Timezone)
	if err := ve.Err(); err != nil {
		return domain.User{}, err
	}
	patch := domain.UserPatch{
		Email:    input.Email,
		Name:     input.Name,
		Avatar:   input.Avatar,
		Timezone: input.Timezone,
	}
	if input.Password != nil {
		hash, err := s.verifier.Hash(*input.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}
	return s.store.UpdateUser(ctx, actor.UserID, patch)
}

func validateTimezone(ve *domain.ValidationError, tz *string) {
	if tz == nil {
		return
	}
	if _, err := time.LoadLocation(*tz); err != nil || *tz == "" {
		ve.Add("timezone", "must be an IANA time zone name")
	}
}

func (s *Service) ListMyTeams(ctx context.Context, actor Actor) ([]domain.Team, error) {
	return s.store.ListTeamsByUser(ctx, actor.UserID)
}

func (s *Service) GetTeam(ctx context.Context, id int64) (domain.Team, error) {
	return s.store.GetTeam(ctx, id)
}

func (s *Service) ListTeamMembers(ctx context.Context, teamID int64) ([]domain.TeamMemberWithUser, error) {
	return s.store.ListTeamMembers(ctx, teamID)
}

// AddTeamMember checks both references up front so every backend answers a
// missing team or user with not found.
func (s *Service) AddTeamMember(ctx context.Context, actor Actor, teamID, userID int64, role string) (domain.TeamMember, error) {
	if _, err := s.store.GetTeam(ctx, teamID); err != nil {
		return domain.TeamMember{}, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return domain.TeamMember{}, err
	}
	member, err := s.store.AddTeamMember(ctx, domain.NewTeamMember{TeamID: teamID, UserID: userID, Role: role})
	if err != nil {
		return domain.TeamMember{}, err
	}
	memberActor := actor
	memberActor.TeamID = teamID
	s.recordActivity(ctx, memberActor, "member_added", "added "+user.Name+" to the team", map[string]any{
		"userId": userID,
		"role":   member.Role,
	})
	return member, nil
}

func (s *Service) ListSocialPlatforms(ctx context.Context, actor Actor) ([]domain.SocialPlatform, error) {
	return s.store.ListSocialPlatforms(ctx, actor.UserID)
}

func (s *Service) ConnectSocialPlatform(ctx context.Context, actor Actor, in domain.NewSocialPlatform) (domain.SocialPlatform, error) {
	in.UserID = actor.UserID
	return s.store.CreateSocialPlatform(ctx, in)
}

func (s *Service) UpdateSocialPlatform(ctx context.Context, id int64, patch domain.SocialPlatformPatch) (domain.SocialPlatform, error) {
	return s.store.UpdateSocialPlatform(ctx, id, patch)
}

// ListTemplates returns the team's templates followed by public ones; a
// public team template is listed once.
func (s *Service) ListTemplates(ctx context.Context, actor Actor) ([]domain.Template, error) {
	own, err := s.store.ListTemplatesByTeam(ctx, actor.TeamID)
	if err != nil {
		return nil, err
	}
	public, err := s.store.ListPublicTemplates(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[int64]struct{}, len(own))
	out := make([]domain.Template, 0, len(own)+len(public))
	for _, t := range own {
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	for _, t := range public {
		if _, dup := seen[t.ID]; dup {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) CreateTemplate(ctx context.Context, actor Actor, input CreateTemplateInput) (domain.Template, error) {
	return withIdempotency(ctx, s, actor, "create_template", input, func() (domain.Template, error) {
		tpl, err := s.store.CreateTemplate(ctx, domain.NewTemplate{
			Name:        input.Name,
			Description: input.Description,
			Content:     input.Content,
			Category:    input.Category,
			AuthorID:    actor.UserID,
			TeamID:      actor.TeamID,
			IsPublic:    input.IsPublic,
		})
		if err != nil {
			return domain.Template{}, err
		}
		s.recordActivity(ctx, actor, "template_created", "created template: "+tpl.Name, map[string]any{
			"templateId": tpl.ID,
		})
		return tpl, nil
	})
}
