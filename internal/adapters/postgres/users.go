package postgres

import (
	"context"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"gorm.io/gorm"
)

func (s *Store) GetUser(ctx context.Context, id int64) (domain.User, error) {
	var rec userModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).Take(&rec).Error; err != nil {
		return domain.User{}, translateError(err)
	}
	return toDomainUser(rec), nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	var rec userModel
	if err := s.db.WithContext(ctx).Where("username = ?", username).Take(&rec).Error; err != nil {
		return domain.User{}, translateError(err)
	}
	return toDomainUser(rec), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	var rec userModel
	if err := s.db.WithContext(ctx).Where("email = ?", email).Take(&rec).Error; err != nil {
		return domain.User{}, translateError(err)
	}
	return toDomainUser(rec), nil
}

func (s *Store) CreateUser(ctx context.Context, in domain.NewUser) (domain.User, error) {
	if err := domain.ValidateNewUser(in); err != nil {
		return domain.User{}, err
	}
	rec := userModel{
		Username:  in.Username,
		Password:  in.PasswordHash,
		Email:     in.Email,
		Name:      in.Name,
		Role:      in.Role,
		Avatar:    in.Avatar,
		Timezone:  in.Timezone,
		CreatedAt: s.now(),
	}
	if rec.Role == "" {
		rec.Role = domain.RoleMember
	}
	if rec.Timezone == nil {
		utc := "UTC"
		rec.Timezone = &utc
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return domain.User{}, translateError(err)
	}
	return toDomainUser(rec), nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if err := domain.ValidateUserPatch(patch); err != nil {
		return domain.User{}, err
	}
	var out domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec userModel
		if err := tx.Where("id = ?", id).Take(&rec).Error; err != nil {
			return err
		}
		if patch.Email != nil {
			rec.Email = *patch.Email
		}
		if patch.PasswordHash != nil {
			rec.Password = *patch.PasswordHash
		}
		if patch.Name != nil {
			rec.Name = *patch.Name
		}
		if patch.Role != nil {
			rec.Role = *patch.Role
		}
		if patch.Avatar != nil {
			rec.Avatar = patch.Avatar
		}
		if patch.Timezone != nil {
			rec.Timezone = patch.Timezone
		}
		if err := tx.Save(&rec).Error; err != nil {
			return err
		}
		out = toDomainUser(rec)
		return nil
	})
	if err != nil {
		return domain.User{}, translateError(err)
	}
	return out, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userModel
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translateError(err)
	}
	out := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDomainUser(row))
	}
	return out, nil
}
