package memory

import (
	"context"
	"fmt"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func (s *Store) GetTeam(_ context.Context, id int64) (domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[id]
	if !ok {
		return domain.Team{}, domain.ErrNotFound
	}
	return cloneTeam(t), nil
}

func (s *Store) CreateTeam(_ context.Context, in domain.NewTeam) (domain.Team, error) {
	if err := domain.ValidateNewTeam(in); err != nil {
		return domain.Team{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t := domain.Team{
		ID:          s.nextID("teams"),
		Name:        in.Name,
		Description: copyString(in.Description),
		OwnerID:     copyInt64(in.OwnerID),
		CreatedAt:   s.now(),
	}
	s.teams[t.ID] = t
	return cloneTeam(t), nil
}

func (s *Store) ListTeamsByUser(_ context.Context, userID int64) ([]domain.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Team{}
	for _, m := range s.members {
		if m.UserID != userID {
			continue
		}
		if t, ok := s.teams[m.TeamID]; ok {
			out = append(out, cloneTeam(t))
		}
	}
	sortByID(out, func(t domain.Team) int64 { return t.ID })
	return out, nil
}

func (s *Store) ListTeamMembers(_ context.Context, teamID int64) ([]domain.TeamMemberWithUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.TeamMemberWithUser{}
	for _, m := range s.members {
		if m.TeamID != teamID {
			continue
		}
		u, ok := s.users[m.UserID]
		if !ok {
			continue
		}
		out = append(out, domain.TeamMemberWithUser{TeamMember: m, User: cloneUser(u)})
	}
	sortByID(out, func(m domain.TeamMemberWithUser) int64 { return m.ID })
	return out, nil
}

func (s *Store) AddTeamMember(_ context.Context, in domain.NewTeamMember) (domain.TeamMember, error) {
	if err := domain.ValidateNewTeamMember(in); err != nil {
		return domain.TeamMember{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := [2]int64{in.TeamID, in.UserID}
	if _, exists := s.memberByKey[key]; exists {
		return domain.TeamMember{}, fmt.Errorf("%w: user is already a member of the team", domain.ErrConflict)
	}
	m := domain.TeamMember{
		ID:       s.nextID("team_members"),
		TeamID:   in.TeamID,
		UserID:   in.UserID,
		Role:     in.Role,
		JoinedAt: s.now(),
	}
	if m.Role == "" {
		m.Role = domain.RoleMember
	}
	s.members[m.ID] = m
	s.memberByKey[key] = m.ID
	return m, nil
}

func (s *Store) ListSocialPlatforms(_ context.Context, userID int64) ([]domain.SocialPlatform, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.SocialPlatform{}
	for _, p := range s.platforms {
		if p.UserID == userID {
			out = append(out, clonePlatform(p))
		}
	}
	sortByID(out, func(p domain.SocialPlatform) int64 { return p.ID })
	return out, nil
}

func (s *Store) CreateSocialPlatform(_ context.Context, in domain.NewSocialPlatform) (domain.SocialPlatform, error) {
	if err := domain.ValidateNewSocialPlatform(in); err != nil {
		return domain.SocialPlatform{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p := domain.SocialPlatform{
		ID:          s.nextID("social_platforms"),
		Name:        in.Name,
		DisplayName: in.DisplayName,
		Icon:        in.Icon,
		IsConnected: in.IsConnected,
		UserID:      in.UserID,
		Credentials: domain.CloneJSONMap(in.Credentials),
		CreatedAt:   s.now(),
	}
	s.platforms[p.ID] = p
	return clonePlatform(p), nil
}

func (s *Store) UpdateSocialPlatform(_ context.Context, id int64, patch domain.SocialPlatformPatch) (domain.SocialPlatform, error) {
	if err := domain.ValidateSocialPlatformPatch(patch); err != nil {
		return domain.SocialPlatform{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.platforms[id]
	if !ok {
		return domain.SocialPlatform{}, domain.ErrNotFound
	}
	if patch.DisplayName != nil {
		p.DisplayName = *patch.DisplayName
	}
	if patch.Icon != nil {
		p.Icon = *patch.Icon
	}
	if patch.IsConnected != nil {
		p.IsConnected = *patch.IsConnected
	}
	if patch.Credentials != nil {
		p.Credentials = domain.CloneJSONMap(patch.Credentials)
	}
	s.platforms[id] = p
	return clonePlatform(p), nil
}

func cloneTeam(t domain.Team) domain.Team {
	t.Description = copyString(t.Description)
	t.OwnerID = copyInt64(t.OwnerID)
	return t
}

func clonePlatform(p domain.SocialPlatform) domain.SocialPlatform {
	p.Credentials = domain.CloneJSONMap(p.Credentials)
	return p
}

func copyInt64(n *int64) *int64 {
	if n == nil {
		return nil
	}
	v := *n
	return &v
}
