package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/storagetest"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

func TestStoreBehavior(t *testing.T) {
	storagetest.Run(t, func(_ *testing.T, clock func() time.Time) ports.Storage {
		return NewStore(clock)
	})
}

func TestStoreAcceptsUnknownReferences(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	p, err := s.CreatePost(ctx, domain.NewPost{
		Content:   map[string]string{"en": "orphan"},
		Platforms: []string{"facebook"},
		AuthorID:  42,
		TeamID:    7,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), p.ID)

	_, err = s.CreateActivity(ctx, domain.NewActivity{UserID: 42, TeamID: 7, Type: "post_created", Description: "x"})
	require.NoError(t, err)
}

func TestListTeamMembersSkipsMissingUsers(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	u, err := s.CreateUser(ctx, domain.NewUser{Username: "emma", PasswordHash: "x", Email: "emma@example.com", Name: "Emma"})
	require.NoError(t, err)
	team, err := s.CreateTeam(ctx, domain.NewTeam{Name: "Design"})
	require.NoError(t, err)

	_, err = s.AddTeamMember(ctx, domain.NewTeamMember{TeamID: team.ID, UserID: u.ID})
	require.NoError(t, err)
	_, err = s.AddTeamMember(ctx, domain.NewTeamMember{TeamID: team.ID, UserID: 999})
	require.NoError(t, err)

	members, err := s.ListTeamMembers(ctx, team.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	require.Equal(t, "emma", members[0].User.Username)
}

func TestReturnedRecordsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewStore(nil)

	p, err := s.CreatePost(ctx, domain.NewPost{
		Content:   map[string]string{"en": "original"},
		Platforms: []string{"twitter"},
		AuthorID:  1,
		TeamID:    1,
	})
	require.NoError(t, err)
	p.Content["en"] = "changed"
	p.Platforms[0] = "tiktok"

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "original", got.Content["en"])
	require.Equal(t, "twitter", got.Platforms[0])
}
