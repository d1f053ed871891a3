package memory

import (
	"context"
	"fmt"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func (s *Store) GetUser(_ context.Context, id int64) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return domain.User{}, domain.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, in domain.NewUser) (domain.User, error) {
	if err := domain.ValidateNewUser(in); err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUserUnique(0, in.Username, in.Email); err != nil {
		return domain.User{}, err
	}
	u := domain.User{
		ID:           s.nextID("users"),
		Username:     in.Username,
		PasswordHash: in.PasswordHash,
		Email:        in.Email,
		Name:         in.Name,
		Role:         in.Role,
		Avatar:       copyString(in.Avatar),
		Timezone:     copyString(in.Timezone),
		CreatedAt:    s.now(),
	}
	if u.Role == "" {
		u.Role = domain.RoleMember
	}
	if u.Timezone == nil {
		utc := "UTC"
		u.Timezone = &utc
	}
	s.users[u.ID] = u
	return cloneUser(u), nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if err := domain.ValidateUserPatch(patch); err != nil {
		return domain.User{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	if patch.Email != nil {
		if err := s.checkUserUnique(id, "", *patch.Email); err != nil {
			return domain.User{}, err
		}
		u.Email = *patch.Email
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Avatar != nil {
		u.Avatar = copyString(patch.Avatar)
	}
	if patch.Timezone != nil {
		u.Timezone = copyString(patch.Timezone)
	}
	s.users[id] = u
	return cloneUser(u), nil
}

func (s *Store) ListUsers(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	sortByID(out, func(u domain.User) int64 { return u.ID })
	return out, nil
}

func (s *Store) checkUserUnique(selfID int64, username, email string) error {
	for _, u := range s.users {
		if u.ID == selfID {
			continue
		}
		if username != "" && u.Username == username {
			return fmt.Errorf("%w: username already taken", domain.ErrConflict)
		}
		if email != "" && u.Email == email {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	return nil
}

func cloneUser(u domain.User) domain.User {
	u.Avatar = copyString(u.Avatar)
	u.Timezone = copyString(u.Timezone)
	return u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
