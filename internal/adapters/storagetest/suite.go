// Package storagetest holds the behavior every ports.Storage backend must
// share. Backend packages call Run from their own tests.
package storagetest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

// Factory builds an empty store that reads time from clock.
type Factory func(t *testing.T, clock func() time.Time) ports.Storage

// Clock is a settable time source for tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

var epoch = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

type fixture struct {
	ctx   context.Context
	store ports.Storage
	clock *Clock
	user  domain.User
	team  domain.Team
}

func newFixture(t *testing.T, factory Factory) *fixture {
	t.Helper()
	clock := NewClock(epoch)
	f := &fixture{ctx: context.Background(), clock: clock}
	f.store = factory(t, clock.Now)

	var err error
	f.user, err = f.store.CreateUser(f.ctx, domain.NewUser{
		Username:     "sarah",
		PasswordHash: "hash",
		Email:        "sarah@example.com",
		Name:         "Sarah Johnson",
		Role:         domain.RoleAdmin,
	})
	require.NoErrorf(t, err, "create user: %s", err)
	f.team, err = f.store.CreateTeam(f.ctx, domain.NewTeam{Name: "Marketing", OwnerID: &f.user.ID})
	require.NoErrorf(t, err, "create team: %s", err)
	return f
}

func (f *fixture) newPost(t *testing.T, mutate func(*domain.NewPost)) domain.Post {
	t.Helper()
	in := domain.NewPost{
		Content:   map[string]string{"en": "hello"},
		Platforms: []string{"twitter"},
		AuthorID:  f.user.ID,
		TeamID:    f.team.ID,
	}
	if mutate != nil {
		mutate(&in)
	}
	p, err := f.store.CreatePost(f.ctx, in)
	require.NoErrorf(t, err, "create post: %s", err)
	return p
}

// Run executes the shared storage behavior against the backend built by
// factory.
func Run(t *testing.T, factory Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, factory) })
	t.Run("PostDefaultsAndIDs", func(t *testing.T) { testPostDefaultsAndIDs(t, factory) })
	t.Run("PostRejectsEmptyContent", func(t *testing.T) { testPostRejectsEmptyContent(t, factory) })
	t.Run("PostLifecycleTimestamps", func(t *testing.T) { testPostLifecycleTimestamps(t, factory) })
	t.Run("DeletedPostStaysReadable", func(t *testing.T) { testDeletedPostStaysReadable(t, factory) })
	t.Run("PostListingOrder", func(t *testing.T) { testPostListingOrder(t, factory) })
	t.Run("ScheduledPosts", func(t *testing.T) { testScheduledPosts(t, factory) })
	t.Run("PostsForDay", func(t *testing.T) { testPostsForDay(t, factory) })
	t.Run("TeamMembers", func(t *testing.T) { testTeamMembers(t, factory) })
	t.Run("SocialPlatforms", func(t *testing.T) { testSocialPlatforms(t, factory) })
	t.Run("Templates", func(t *testing.T) { testTemplates(t, factory) })
	t.Run("ActivityLimit", func(t *testing.T) { testActivityLimit(t, factory) })
	t.Run("Analytics", func(t *testing.T) { testAnalytics(t, factory) })
	t.Run("MissingRecords", func(t *testing.T) { testMissingRecords(t, factory) })
}

func testUsers(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	require.Equal(t, domain.RoleAdmin, f.user.Role)
	require.NotNil(t, f.user.Timezone)
	require.Equal(t, "UTC", *f.user.Timezone)
	require.True(t, f.user.CreatedAt.Equal(epoch))

	byName, err := f.store.GetUserByUsername(f.ctx, "sarah")
	require.NoError(t, err)
	require.Equal(t, f.user.ID, byName.ID)
	byEmail, err := f.store.GetUserByEmail(f.ctx, "sarah@example.com")
	require.NoError(t, err)
	require.Equal(t, f.user.ID, byEmail.ID)

	_, err = f.store.CreateUser(f.ctx, domain.NewUser{
		Username: "sarah", PasswordHash: "x", Email: "other@example.com", Name: "Other",
	})
	require.ErrorIsf(t, err, domain.ErrConflict, "duplicate username should conflict, got %v", err)
	_, err = f.store.CreateUser(f.ctx, domain.NewUser{
		Username: "other", PasswordHash: "x", Email: "sarah@example.com", Name: "Other",
	})
	require.ErrorIsf(t, err, domain.ErrConflict, "duplicate email should conflict, got %v", err)

	mike, err := f.store.CreateUser(f.ctx, domain.NewUser{
		Username: "mike", PasswordHash: "x", Email: "mike@example.com", Name: "Mike Chen",
	})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, mike.Role)
	require.Greater(t, mike.ID, f.user.ID)

	name := "Michael Chen"
	updated, err := f.store.UpdateUser(f.ctx, mike.ID, domain.UserPatch{Name: &name})
	require.NoError(t, err)
	require.Equal(t, name, updated.Name)
	require.Equal(t, "mike@example.com", updated.Email)

	users, err := f.store.ListUsers(f.ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, f.user.ID, users[0].ID)
	require.Equal(t, mike.ID, users[1].ID)
}

func testPostDefaultsAndIDs(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	first := f.newPost(t, nil)
	second := f.newPost(t, nil)
	require.Greater(t, first.ID, int64(0))
	require.Greater(t, second.ID, first.ID)

	require.Equal(t, domain.PostStatusDraft, first.Status)
	require.Equal(t, domain.ApprovalPending, first.ApprovalStatus)
	require.Nil(t, first.PublishedAt)
	require.Nil(t, first.ApprovedAt)
	require.True(t, first.CreatedAt.Equal(epoch))
	require.True(t, first.UpdatedAt.Equal(epoch))

	got, err := f.store.GetPost(f.ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"en": "hello"}, got.Content)
	require.Equal(t, []string{"twitter"}, got.Platforms)
}

func testPostRejectsEmptyContent(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	_, err := f.store.CreatePost(f.ctx, domain.NewPost{
		Content:   map[string]string{},
		Platforms: []string{"twitter"},
		AuthorID:  f.user.ID,
		TeamID:    f.team.ID,
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.store.CreatePost(f.ctx, domain.NewPost{
		Content:   map[string]string{"en": "hi"},
		Platforms: []string{"twitter"},
		AuthorID:  f.user.ID,
		TeamID:    f.team.ID,
		Status:    domain.PostStatusScheduled,
	})
	require.ErrorIsf(t, err, domain.ErrInvalidInput, "scheduled without a time must be rejected")

	posts, err := f.store.ListPostsByTeam(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func testPostLifecycleTimestamps(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	p := f.newPost(t, func(in *domain.NewPost) {
		in.Media = json.RawMessage(`[ {"url": "a.png"} ]`)
	})
	require.JSONEq(t, `[{"url":"a.png"}]`, string(p.Media))

	f.clock.Advance(time.Minute)
	published := domain.PostStatusPublished
	approved := domain.ApprovalApproved
	updated, err := f.store.UpdatePost(f.ctx, p.ID, domain.PostPatch{
		Status:         &published,
		ApprovalStatus: &approved,
		ApproverID:     &f.user.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.PublishedAt)
	require.True(t, updated.PublishedAt.Equal(epoch.Add(time.Minute)))
	require.NotNil(t, updated.ApprovedAt)
	require.NotNil(t, updated.ApproverID)
	require.Equal(t, f.user.ID, *updated.ApproverID)
	require.True(t, updated.CreatedAt.Equal(epoch))
	require.True(t, updated.UpdatedAt.Equal(epoch.Add(time.Minute)))

	f.clock.Advance(time.Minute)
	rejected := domain.ApprovalRejected
	updated, err = f.store.UpdatePost(f.ctx, p.ID, domain.PostPatch{ApprovalStatus: &rejected})
	require.NoError(t, err)
	require.Nil(t, updated.ApproverID)
	require.Nil(t, updated.ApprovedAt)
	require.NotNil(t, updated.PublishedAt, "publishedAt stays while the post is published")
	require.True(t, updated.PublishedAt.Equal(epoch.Add(time.Minute)))

	got, err := f.store.GetPost(f.ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)
}

func testDeletedPostStaysReadable(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	p := f.newPost(t, nil)
	deleted := domain.PostStatusDeleted
	_, err := f.store.UpdatePost(f.ctx, p.ID, domain.PostPatch{Status: &deleted})
	require.NoError(t, err)

	got, err := f.store.GetPost(f.ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, domain.PostStatusDeleted, got.Status)
	require.Equal(t, p.Content, got.Content)

	posts, err := f.store.ListPostsByTeam(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func testPostListingOrder(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	a := f.newPost(t, nil)
	b := f.newPost(t, nil)
	f.clock.Advance(time.Second)
	c := f.newPost(t, nil)

	posts, err := f.store.ListPostsByTeam(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{c.ID, b.ID, a.ID}, postIDs(posts))

	posts, err = f.store.ListPostsByUser(f.ctx, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, []int64{c.ID, b.ID, a.ID}, postIDs(posts))

	posts, err = f.store.ListPostsByUser(f.ctx, f.user.ID+1000)
	require.NoError(t, err)
	require.Empty(t, posts)
}

func testScheduledPosts(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	later := epoch.Add(48 * time.Hour)
	sooner := epoch.Add(2 * time.Hour)
	late := f.newPost(t, func(in *domain.NewPost) {
		in.Status = domain.PostStatusScheduled
		in.ScheduledAt = &later
	})
	soon := f.newPost(t, func(in *domain.NewPost) {
		in.Status = domain.PostStatusScheduled
		in.ScheduledAt = &sooner
	})
	f.newPost(t, func(in *domain.NewPost) { in.ScheduledAt = &sooner })

	posts, err := f.store.ListScheduledPosts(f.ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{soon.ID, late.ID}, postIDs(posts))
}

func testPostsForDay(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	loc := time.FixedZone("UTC+2", 2*60*60)
	midnight := time.Date(2024, 3, 15, 0, 0, 0, 0, loc)
	lastMoment := midnight.Add(24*time.Hour - time.Microsecond)
	nextMidnight := midnight.Add(24 * time.Hour)
	before := midnight.Add(-time.Microsecond)

	var want []int64
	for _, at := range []time.Time{lastMoment, nextMidnight, midnight, before} {
		at := at
		p := f.newPost(t, func(in *domain.NewPost) { in.ScheduledAt = &at })
		if !at.Before(midnight) && at.Before(nextMidnight) {
			want = append(want, p.ID)
		}
	}
	// soonest first: midnight, then the last moment of the day
	want[0], want[1] = want[1], want[0]

	posts, err := f.store.ListPostsForDay(f.ctx, midnight.Add(15*time.Hour))
	require.NoError(t, err)
	require.Equal(t, want, postIDs(posts))
}

func testTeamMembers(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	mike, err := f.store.CreateUser(f.ctx, domain.NewUser{
		Username: "mike", PasswordHash: "x", Email: "mike@example.com", Name: "Mike Chen",
	})
	require.NoError(t, err)

	owner, err := f.store.AddTeamMember(f.ctx, domain.NewTeamMember{TeamID: f.team.ID, UserID: f.user.ID, Role: domain.RoleAdmin})
	require.NoError(t, err)
	member, err := f.store.AddTeamMember(f.ctx, domain.NewTeamMember{TeamID: f.team.ID, UserID: mike.ID})
	require.NoError(t, err)
	require.Equal(t, domain.RoleMember, member.Role)
	require.True(t, member.JoinedAt.Equal(epoch))

	_, err = f.store.AddTeamMember(f.ctx, domain.NewTeamMember{TeamID: f.team.ID, UserID: mike.ID, Role: domain.RoleManager})
	require.ErrorIsf(t, err, domain.ErrConflict, "second membership of the same user must conflict, got %v", err)

	members, err := f.store.ListTeamMembers(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	require.Equal(t, owner.ID, members[0].ID)
	require.Equal(t, "sarah", members[0].User.Username)
	require.Equal(t, "mike", members[1].User.Username)

	teams, err := f.store.ListTeamsByUser(f.ctx, mike.ID)
	require.NoError(t, err)
	require.Len(t, teams, 1)
	require.Equal(t, f.team.ID, teams[0].ID)
}

func testSocialPlatforms(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	tw, err := f.store.CreateSocialPlatform(f.ctx, domain.NewSocialPlatform{
		Name: "twitter", DisplayName: "Twitter", Icon: "fab fa-twitter", IsConnected: true, UserID: f.user.ID,
		Credentials: map[string]any{"handle": "@sarah", "followers": 1200},
	})
	require.NoError(t, err)
	require.Equal(t, float64(1200), tw.Credentials["followers"])

	li, err := f.store.CreateSocialPlatform(f.ctx, domain.NewSocialPlatform{
		Name: "linkedin", DisplayName: "LinkedIn", Icon: "fab fa-linkedin", UserID: f.user.ID,
	})
	require.NoError(t, err)
	require.False(t, li.IsConnected)
	require.Nil(t, li.Credentials)

	connected := true
	li, err = f.store.UpdateSocialPlatform(f.ctx, li.ID, domain.SocialPlatformPatch{
		IsConnected: &connected,
		Credentials: map[string]any{"token": "t"},
	})
	require.NoError(t, err)
	require.True(t, li.IsConnected)
	require.Equal(t, map[string]any{"token": "t"}, li.Credentials)

	list, err := f.store.ListSocialPlatforms(f.ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, tw.ID, list[0].ID)
	require.Equal(t, li, list[1])

	_, err = f.store.UpdateSocialPlatform(f.ctx, li.ID+100, domain.SocialPlatformPatch{IsConnected: &connected})
	require.ErrorIs(t, err, domain.ErrNotFound)

	blank := "  "
	_, err = f.store.UpdateSocialPlatform(f.ctx, li.ID, domain.SocialPlatformPatch{DisplayName: &blank, Icon: &blank})
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.Len(t, ve.Errors, 2)
	require.Equal(t, "displayName", ve.Errors[0].Field)
	require.Equal(t, "icon", ve.Errors[1].Field)

	got, err := f.store.ListSocialPlatforms(f.ctx, f.user.ID)
	require.NoError(t, err)
	require.Equal(t, "LinkedIn", got[1].DisplayName)
	require.Equal(t, "fab fa-linkedin", got[1].Icon)
}

func testTemplates(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	other, err := f.store.CreateTeam(f.ctx, domain.NewTeam{Name: "Sales"})
	require.NoError(t, err)

	private, err := f.store.CreateTemplate(f.ctx, domain.NewTemplate{
		Name: "Launch", Content: map[string]string{"en": "We launched"}, AuthorID: f.user.ID, TeamID: f.team.ID,
	})
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	public, err := f.store.CreateTemplate(f.ctx, domain.NewTemplate{
		Name: "Weekly tip", Content: map[string]string{"en": "Tip"}, AuthorID: f.user.ID, TeamID: other.ID, IsPublic: true,
	})
	require.NoError(t, err)

	byTeam, err := f.store.ListTemplatesByTeam(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, byTeam, 1)
	require.Equal(t, private.ID, byTeam[0].ID)

	shared, err := f.store.ListPublicTemplates(f.ctx)
	require.NoError(t, err)
	require.Len(t, shared, 1)
	require.Equal(t, public.ID, shared[0].ID)

	got, err := f.store.GetTemplate(f.ctx, private.ID)
	require.NoError(t, err)
	require.Equal(t, private, got)

	_, err = f.store.CreateTemplate(f.ctx, domain.NewTemplate{Name: "", Content: map[string]string{"en": "x"}, AuthorID: f.user.ID, TeamID: f.team.ID})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func testActivityLimit(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	var ids []int64
	for i := 0; i < 12; i++ {
		a, err := f.store.CreateActivity(f.ctx, domain.NewActivity{
			UserID: f.user.ID, TeamID: f.team.ID, Type: "post_created", Description: "created a post",
			Metadata: map[string]any{"postId": i},
		})
		require.NoError(t, err)
		ids = append(ids, a.ID)
		f.clock.Advance(time.Second)
	}

	recent, err := f.store.ListActivitiesByTeam(f.ctx, f.team.ID, 0)
	require.NoError(t, err)
	require.Len(t, recent, ports.DefaultActivityLimit)
	require.Equal(t, ids[11], recent[0].ID)
	require.Equal(t, ids[2], recent[9].ID)
	require.Equal(t, float64(11), recent[0].Metadata["postId"])

	three, err := f.store.ListActivitiesByTeam(f.ctx, f.team.ID, 3)
	require.NoError(t, err)
	require.Len(t, three, 3)

	none, err := f.store.ListActivitiesByTeam(f.ctx, f.team.ID+1000, 5)
	require.NoError(t, err)
	require.Empty(t, none)
}

func testAnalytics(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	p := f.newPost(t, nil)
	day := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
	first, err := f.store.CreateAnalytics(f.ctx, domain.NewAnalytics{
		PostID: p.ID, Platform: "twitter", Metrics: map[string]any{"likes": 10, "shares": 2}, Date: day,
	})
	require.NoError(t, err)
	second, err := f.store.CreateAnalytics(f.ctx, domain.NewAnalytics{
		PostID: p.ID, Platform: "twitter", Metrics: map[string]any{"likes": 14}, Date: day.Add(24 * time.Hour),
	})
	require.NoError(t, err)

	byPost, err := f.store.ListAnalyticsByPost(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, byPost, 2)
	require.Equal(t, first, byPost[0])
	require.Equal(t, second.ID, byPost[1].ID)

	byTeam, err := f.store.ListAnalyticsByTeam(f.ctx, f.team.ID)
	require.NoError(t, err)
	require.Len(t, byTeam, 2)

	_, err = f.store.CreateAnalytics(f.ctx, domain.NewAnalytics{PostID: p.ID, Platform: "twitter", Date: day})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func testMissingRecords(t *testing.T, factory Factory) {
	f := newFixture(t, factory)

	_, err := f.store.GetUser(f.ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.GetUserByUsername(f.ctx, "nobody")
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.GetTeam(f.ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.GetPost(f.ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.GetTemplate(f.ctx, 9999)
	require.ErrorIs(t, err, domain.ErrNotFound)

	title := "x"
	_, err = f.store.UpdatePost(f.ctx, 9999, domain.PostPatch{Title: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.store.UpdateUser(f.ctx, 9999, domain.UserPatch{Name: &title})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func postIDs(posts []domain.Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}
