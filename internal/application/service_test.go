package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	cacheadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/events"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/memory"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/security"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var testNow = time.Date(2025, 3, 14, 15, 0, 0, 0, time.UTC)

type recordingTarget struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (r *recordingTarget) Publish(_ context.Context, post domain.Post, platform string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, platform)
	return r.err
}

func (r *recordingTarget) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type testEnv struct {
	svc    *Service
	store  *memory.Store
	target *recordingTarget
	events *eventadapter.MemoryPublisher
	now    time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{now: testNow, target: &recordingTarget{}, events: eventadapter.NewMemoryPublisher()}
	clock := func() time.Time { return env.now }
	env.store = memory.NewStore(clock)
	tokens, err := security.NewJWTIssuer("test-secret-0123456789", time.Hour, "test")
	if err != nil {
		t.Fatalf("NewJWTIssuer error: %v", err)
	}
	env.svc = NewService(Dependencies{
		Config:    Config{DefaultUserID: 1, DefaultTeamID: 1, Location: time.UTC},
		Store:     env.store,
		Verifier:  security.PlaintextVerifier{},
		Tokens:    tokens,
		Publisher: env.target,
		Events:    env.events,
		Cache:     cacheadapter.NewMemoryCache(clock),
	})
	env.svc.nowFn = clock
	return env
}

func actor() Actor {
	return Actor{UserID: 1, TeamID: 1, RequestID: "req-1"}
}

func boolPtr(b bool) *bool { return &b }
func int64Ptr(n int64) *int64 { return &n }
func strPtr(s string) *string { return &s }
func timePtr(t time.Time) *time.Time { return &t }

func scheduledInput() CreatePostInput {
	return CreatePostInput{
		Content:         map[string]string{"en": "hi"},
		Platforms:       []string{"twitter"},
		ScheduleType:    ScheduleTypeSchedule,
		ScheduledAt:     timePtr(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)),
		RequireApproval: boolPtr(true),
		ApproverID:      int64Ptr(2),
	}
}

func latestActivityType(t *testing.T, env *testEnv) string {
	t.Helper()
	acts, err := env.svc.ListActivities(context.Background(), actor(), 1)
	if err != nil {
		t.Fatalf("ListActivities error: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("expected one activity, got %d", len(acts))
	}
	return acts[0].Type
}

func TestCreatePostApprovalGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	pending, err := env.svc.CreatePost(ctx, actor(), scheduledInput())
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if pending.Status != domain.PostStatusScheduled || pending.ApprovalStatus != domain.ApprovalPending || pending.ApproverID != nil {
		t.Fatalf("unexpected gated post: %+v", pending)
	}
	if got := latestActivityType(t, env); got != "post_scheduled" {
		t.Fatalf("expected post_scheduled activity, got %s", got)
	}

	in := scheduledInput()
	in.RequireApproval = boolPtr(false)
	approved, err := env.svc.CreatePost(ctx, actor(), in)
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if approved.ApprovalStatus != domain.ApprovalApproved || approved.ApproverID == nil || *approved.ApproverID != 2 {
		t.Fatalf("expected approval by user 2, got %+v", approved)
	}

	in.ApproverID = nil
	noApprover, err := env.svc.CreatePost(ctx, actor(), in)
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if noApprover.ApprovalStatus != domain.ApprovalApproved || noApprover.ApproverID != nil {
		t.Fatalf("expected approved post without approver, got %+v", noApprover)
	}
}

func TestCreatePostRejectsUnknownScheduleType(t *testing.T) {
	env := newTestEnv(t)
	in := scheduledInput()
	in.ScheduleType = "later"
	_, err := env.svc.CreatePost(context.Background(), actor(), in)
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Field != "scheduleType" {
		t.Fatalf("expected scheduleType validation error, got %v", err)
	}
}

func TestApprovePostCreditsActorAndRecordsActivity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	post, err := env.svc.CreatePost(ctx, actor(), scheduledInput())
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}

	approved := domain.ApprovalApproved
	updated, err := env.svc.UpdatePost(ctx, Actor{UserID: 3, TeamID: 1}, post.ID, domain.PostPatch{ApprovalStatus: &approved})
	if err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}
	if updated.ApprovalStatus != domain.ApprovalApproved || updated.ApproverID == nil || *updated.ApproverID != 3 || updated.ApprovedAt == nil {
		t.Fatalf("unexpected approval fields: %+v", updated)
	}
	if got := latestActivityType(t, env); got != "post_approved" {
		t.Fatalf("expected post_approved activity, got %s", got)
	}
	reloaded, err := env.svc.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost error: %v", err)
	}
	if reloaded.ApprovalStatus != domain.ApprovalApproved {
		t.Fatalf("approval not persisted: %+v", reloaded)
	}

	// Unchanged approval writes nothing.
	before, _ := env.store.ListActivitiesByTeam(ctx, 1, 100)
	if _, err := env.svc.UpdatePost(ctx, actor(), post.ID, domain.PostPatch{ApprovalStatus: &approved}); err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}
	after, _ := env.store.ListActivitiesByTeam(ctx, 1, 100)
	if len(after) != len(before) {
		t.Fatalf("expected no activity for unchanged approval, got %d -> %d", len(before), len(after))
	}
}

func TestStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	in := scheduledInput()
	in.ScheduleType = ScheduleTypeNow
	in.RequireApproval = boolPtr(true)
	post, err := env.svc.CreatePost(ctx, actor(), in)
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if post.Status != domain.PostStatusPublished || post.PublishedAt == nil || post.ScheduledAt != nil {
		t.Fatalf("expected published post, got %+v", post)
	}

	draft := domain.PostStatusDraft
	_, err = env.svc.UpdatePost(ctx, actor(), post.ID, domain.PostPatch{Status: &draft})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Field != "status" {
		t.Fatalf("expected status validation error, got %v", err)
	}

	if err := env.svc.DeletePost(ctx, actor(), post.ID); err != nil {
		t.Fatalf("DeletePost error: %v", err)
	}
	deleted, err := env.svc.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost after delete error: %v", err)
	}
	if deleted.Status != domain.PostStatusDeleted || deleted.PublishedAt != nil {
		t.Fatalf("unexpected deleted post: %+v", deleted)
	}
	if got := latestActivityType(t, env); got != "post_deleted" {
		t.Fatalf("expected post_deleted activity, got %s", got)
	}

	count, _ := env.store.ListActivitiesByTeam(ctx, 1, 100)
	if err := env.svc.DeletePost(ctx, actor(), post.ID); err != nil {
		t.Fatalf("second DeletePost error: %v", err)
	}
	again, _ := env.store.ListActivitiesByTeam(ctx, 1, 100)
	if len(again) != len(count) {
		t.Fatalf("second delete wrote an activity")
	}
	if _, err := env.svc.UpdatePost(ctx, actor(), post.ID, domain.PostPatch{Title: strPtr("x")}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected deleted post to be immutable, got %v", err)
	}

	listed, err := env.svc.ListTeamPosts(ctx, actor())
	if err != nil {
		t.Fatalf("ListTeamPosts error: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("deleted post still listed: %+v", listed)
	}
	if err := env.svc.DeletePost(ctx, actor(), 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPublishWaitsForApproval(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	in := scheduledInput()
	in.ScheduleType = ScheduleTypeNow
	in.Platforms = []string{"twitter", "linkedin"}
	post, err := env.svc.CreatePost(ctx, actor(), in)
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if calls := env.target.Calls(); len(calls) != 0 {
		t.Fatalf("unapproved post was published: %v", calls)
	}

	approved := domain.ApprovalApproved
	updated, err := env.svc.UpdatePost(ctx, actor(), post.ID, domain.PostPatch{ApprovalStatus: &approved})
	if err != nil {
		t.Fatalf("UpdatePost error: %v", err)
	}
	if updated.Status != domain.PostStatusPublished {
		t.Fatalf("expected published post, got %s", updated.Status)
	}
	if calls := env.target.Calls(); len(calls) != 2 || calls[0] != "twitter" || calls[1] != "linkedin" {
		t.Fatalf("unexpected publish calls: %v", calls)
	}
}

func TestPublishFailureMarksPostFailed(t *testing.T) {
	env := newTestEnv(t)
	env.target.err = domain.ErrPublishFailed
	in := scheduledInput()
	in.ScheduleType = ScheduleTypeNow
	in.RequireApproval = boolPtr(false)

	post, err := env.svc.CreatePost(context.Background(), actor(), in)
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if post.Status != domain.PostStatusFailed || post.PublishedAt != nil {
		t.Fatalf("expected failed post, got %+v", post)
	}
	if got := latestActivityType(t, env); got != "post_failed" {
		t.Fatalf("expected post_failed activity, got %s", got)
	}
}

func TestBulkScheduleStopsAtFirstInvalidItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	at := timePtr(testNow.Add(time.Hour))
	valid := CreatePostInput{Content: map[string]string{"en": "a"}, Platforms: []string{"twitter"}, ScheduledAt: at}
	invalid := CreatePostInput{Content: map[string]string{}, Platforms: []string{"twitter"}, ScheduledAt: at}

	_, err := env.svc.BulkSchedule(ctx, actor(), []CreatePostInput{valid, invalid, valid})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || ve.Errors[0].Field != "posts[1].content" {
		t.Fatalf("expected posts[1].content validation error, got %v", err)
	}
	posts, _ := env.svc.ListTeamPosts(ctx, actor())
	if len(posts) != 1 {
		t.Fatalf("expected the first item to be kept, got %d posts", len(posts))
	}
	acts, _ := env.store.ListActivitiesByTeam(ctx, 1, 100)
	for _, a := range acts {
		if a.Type == "bulk_schedule" {
			t.Fatalf("aggregate activity written for a failed batch")
		}
	}
}

func TestBulkScheduleForcesScheduledStatus(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	at := timePtr(testNow.Add(time.Hour))
	items := []CreatePostInput{
		{Content: map[string]string{"en": "a"}, Platforms: []string{"twitter"}, ScheduledAt: at, Status: domain.PostStatusDraft},
		{Content: map[string]string{"fr": "b"}, Platforms: []string{"facebook"}, ScheduledAt: at, ScheduleType: ScheduleTypeNow},
	}
	created, err := env.svc.BulkSchedule(ctx, actor(), items)
	if err != nil {
		t.Fatalf("BulkSchedule error: %v", err)
	}
	for _, p := range created {
		if p.Status != domain.PostStatusScheduled {
			t.Fatalf("expected scheduled, got %s", p.Status)
		}
	}
	acts, _ := env.svc.ListActivities(ctx, actor(), 1)
	if acts[0].Type != "bulk_schedule" || acts[0].Description != "bulk scheduled 2 posts" {
		t.Fatalf("unexpected aggregate activity: %+v", acts[0].Activity)
	}
	if _, err := env.svc.BulkSchedule(ctx, actor(), nil); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected empty batch to be rejected, got %v", err)
	}
}

func TestCompletion(t *testing.T) {
	cases := []struct{ published, total, want int }{
		{0, 0, 0},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
	}
	for _, tc := range cases {
		if got := Completion(tc.published, tc.total); got != tc.want {
			t.Fatalf("Completion(%d, %d) = %d, want %d", tc.published, tc.total, got, tc.want)
		}
	}
}

func seedTeam(t *testing.T, env *testEnv) (domain.User, domain.User) {
	t.Helper()
	ctx := context.Background()
	a, err := env.store.CreateUser(ctx, domain.NewUser{Username: "ana", PasswordHash: "pw", Email: "ana@example.com", Name: "Ana"})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	b, err := env.store.CreateUser(ctx, domain.NewUser{Username: "ben", PasswordHash: "pw", Email: "ben@example.com", Name: "Ben"})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	team, err := env.store.CreateTeam(ctx, domain.NewTeam{Name: "Team", OwnerID: &a.ID})
	if err != nil {
		t.Fatalf("CreateTeam error: %v", err)
	}
	for _, u := range []domain.User{a, b} {
		if _, err := env.store.AddTeamMember(ctx, domain.NewTeamMember{TeamID: team.ID, UserID: u.ID}); err != nil {
			t.Fatalf("AddTeamMember error: %v", err)
		}
	}
	return a, b
}

func TestTeamPerformanceAndOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b := seedTeam(t, env)

	statuses := []domain.PostStatus{domain.PostStatusPublished, domain.PostStatusPublished, domain.PostStatusPublished, domain.PostStatusScheduled}
	for _, st := range statuses {
		_, err := env.store.CreatePost(ctx, domain.NewPost{
			Content:     map[string]string{"en": "x"},
			Platforms:   []string{"twitter"},
			AuthorID:    a.ID,
			TeamID:      1,
			Status:      st,
			ScheduledAt: timePtr(testNow.Add(time.Hour)),
		})
		if err != nil {
			t.Fatalf("CreatePost error: %v", err)
		}
	}

	rows, err := env.svc.TeamPerformance(ctx, actor())
	if err != nil {
		t.Fatalf("TeamPerformance error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected two members, got %d", len(rows))
	}
	if rows[0].User.ID != a.ID || rows[0].Posts != 4 || rows[0].Published != 3 || rows[0].Completion != 75 {
		t.Fatalf("unexpected row for %s: %+v", a.Name, rows[0])
	}
	if rows[1].User.ID != b.ID || rows[1].Posts != 0 || rows[1].Completion != 0 {
		t.Fatalf("unexpected row for %s: %+v", b.Name, rows[1])
	}

	overview, err := env.svc.Overview(ctx, actor())
	if err != nil {
		t.Fatalf("Overview error: %v", err)
	}
	want := Overview{ScheduledPosts: 1, PublishedToday: 3, TotalReach: TotalReachPlaceholder, TeamMembers: 2}
	if overview != want {
		t.Fatalf("unexpected overview: %+v", overview)
	}

	env.now = testNow.Add(24 * time.Hour)
	overview, _ = env.svc.Overview(ctx, actor())
	if overview.PublishedToday != 0 {
		t.Fatalf("yesterday's posts counted as today: %+v", overview)
	}
}

func TestTodayPostsUsesConfiguredLocation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	zone := time.FixedZone("UTC+2", 2*60*60)
	env.svc.cfg.Location = zone

	midnight := time.Date(2025, 3, 14, 0, 0, 0, 0, zone)
	for _, at := range []time.Time{midnight, midnight.AddDate(0, 0, 1)} {
		_, err := env.svc.CreatePost(ctx, actor(), CreatePostInput{
			Content:     map[string]string{"en": "x"},
			Platforms:   []string{"twitter"},
			Status:      domain.PostStatusScheduled,
			ScheduledAt: timePtr(at),
		})
		if err != nil {
			t.Fatalf("CreatePost error: %v", err)
		}
	}
	today, err := env.svc.ListTodayPosts(ctx)
	if err != nil {
		t.Fatalf("ListTodayPosts error: %v", err)
	}
	if len(today) != 1 || !today[0].ScheduledAt.Equal(midnight) {
		t.Fatalf("expected only the post at local midnight, got %+v", today)
	}
}

type failingActivityStore struct {
	ports.Storage
}

func (failingActivityStore) CreateActivity(context.Context, domain.NewActivity) (domain.Activity, error) {
	return domain.Activity{}, domain.ErrStorageUnavailable
}

func TestActivityFailuresDoNotFailOperations(t *testing.T) {
	env := newTestEnv(t)
	env.events.FailWith(errors.New("broker down"))
	if _, err := env.svc.CreatePost(context.Background(), actor(), scheduledInput()); err != nil {
		t.Fatalf("CreatePost failed on event error: %v", err)
	}

	env.svc.store = failingActivityStore{Storage: env.store}
	if _, err := env.svc.CreatePost(context.Background(), actor(), scheduledInput()); err != nil {
		t.Fatalf("CreatePost failed on activity error: %v", err)
	}
}

func TestActivityIsMirroredAsEvent(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.svc.CreatePost(context.Background(), actor(), scheduledInput()); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	msgs := env.events.Messages()
	if len(msgs) != 1 || msgs[0].EventType != EventActivityRecorded || msgs[0].PartitionKey != "1" {
		t.Fatalf("unexpected events: %+v", msgs)
	}
}

func TestListActivitiesLeavesUnknownUserEmpty(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, _ := seedTeam(t, env)
	env.svc.recordActivity(ctx, Actor{UserID: a.ID, TeamID: 1}, "note", "known", nil)
	env.svc.recordActivity(ctx, Actor{UserID: 42, TeamID: 1}, "note", "unknown", nil)

	acts, err := env.svc.ListActivities(ctx, actor(), 0)
	if err != nil {
		t.Fatalf("ListActivities error: %v", err)
	}
	if len(acts) != 2 || acts[0].User != nil || acts[1].User == nil || acts[1].User.ID != a.ID {
		t.Fatalf("unexpected enrichment: %+v", acts)
	}
}

func TestIdempotentCreatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	keyed := actor()
	keyed.IdempotencyKey = "idem-1"

	first, err := env.svc.CreatePost(ctx, keyed, scheduledInput())
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	replay, err := env.svc.CreatePost(ctx, keyed, scheduledInput())
	if err != nil {
		t.Fatalf("replay error: %v", err)
	}
	if replay.ID != first.ID {
		t.Fatalf("replay created a new post: %d vs %d", replay.ID, first.ID)
	}
	changed := scheduledInput()
	changed.Content = map[string]string{"en": "different"}
	if _, err := env.svc.CreatePost(ctx, keyed, changed); !errors.Is(err, domain.ErrIdempotencyConflict) {
		t.Fatalf("expected idempotency conflict, got %v", err)
	}
	posts, _ := env.svc.ListTeamPosts(ctx, actor())
	if len(posts) != 1 {
		t.Fatalf("expected one stored post, got %d", len(posts))
	}
}

func TestLoginAndResolveActor(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	user, err := env.svc.RegisterUser(ctx, RegisterUserInput{Username: "dana", Password: "s3cret!", Email: "dana@example.com", Name: "Dana"})
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}

	if _, err := env.svc.Login(ctx, "dana", "wrong"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for wrong password, got %v", err)
	}
	if _, err := env.svc.Login(ctx, "nobody", "s3cret!"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for unknown user, got %v", err)
	}
	session, err := env.svc.Login(ctx, "dana", "s3cret!")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if session.User.ID != user.ID || session.Token == "" {
		t.Fatalf("unexpected session: %+v", session)
	}
	resolved, err := env.svc.ResolveActor(ctx, session.Token)
	if err != nil {
		t.Fatalf("ResolveActor error: %v", err)
	}
	if resolved.UserID != user.ID || resolved.TeamID != 1 {
		t.Fatalf("unexpected actor: %+v", resolved)
	}
	if _, err := env.svc.ResolveActor(ctx, "garbage"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected unauthorized for bad token, got %v", err)
	}
}

func TestRegisterUserValidation(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.RegisterUser(context.Background(), RegisterUserInput{Username: "x1y", Password: "123", Email: "x@example.com", Name: "X", Timezone: strPtr("Mars/Olympus")})
	var ve *domain.ValidationError
	if !errors.As(err, &ve) || len(ve.Errors) != 2 {
		t.Fatalf("expected password and timezone errors, got %v", err)
	}
}

func TestTemplatesListedOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	if _, err := env.svc.CreateTemplate(ctx, actor(), CreateTemplateInput{Name: "Mine", Content: map[string]string{"en": "a"}, IsPublic: true}); err != nil {
		t.Fatalf("CreateTemplate error: %v", err)
	}
	if _, err := env.store.CreateTemplate(ctx, domain.NewTemplate{Name: "Other team", Content: map[string]string{"en": "b"}, AuthorID: 5, TeamID: 2, IsPublic: true}); err != nil {
		t.Fatalf("CreateTemplate error: %v", err)
	}
	if _, err := env.store.CreateTemplate(ctx, domain.NewTemplate{Name: "Private", Content: map[string]string{"en": "c"}, AuthorID: 5, TeamID: 2}); err != nil {
		t.Fatalf("CreateTemplate error: %v", err)
	}
	list, err := env.svc.ListTemplates(ctx, actor())
	if err != nil {
		t.Fatalf("ListTemplates error: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Mine" || list[1].Name != "Other team" {
		t.Fatalf("unexpected templates: %+v", list)
	}
}

func TestAddTeamMemberChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, _ := seedTeam(t, env)
	if _, err := env.svc.AddTeamMember(ctx, actor(), 1, 99, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown user, got %v", err)
	}
	if _, err := env.svc.AddTeamMember(ctx, actor(), 7, a.ID, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found for unknown team, got %v", err)
	}
	if _, err := env.svc.AddTeamMember(ctx, actor(), 1, a.ID, ""); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict for existing member, got %v", err)
	}
}

func TestSeedDemoDataRunsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	res, err := env.svc.SeedDemoData(ctx, "demo-password")
	if err != nil {
		t.Fatalf("SeedDemoData error: %v", err)
	}
	if !res.Seeded || res.Users != 3 || res.Posts != 2 {
		t.Fatalf("unexpected seed result: %+v", res)
	}
	again, err := env.svc.SeedDemoData(ctx, "demo-password")
	if err != nil || again.Seeded {
		t.Fatalf("expected second seed to be skipped, got %+v, %v", again, err)
	}
	if _, err := env.svc.Login(ctx, "sarah.chen", "demo-password"); err != nil {
		t.Fatalf("demo login error: %v", err)
	}
	platforms, _ := env.svc.ListSocialPlatforms(ctx, actor())
	if len(platforms) != 6 {
		t.Fatalf("expected six demo platforms, got %d", len(platforms))
	}
	acts, _ := env.svc.ListActivities(ctx, actor(), 0)
	if len(acts) != 3 || acts[0].User == nil {
		t.Fatalf("unexpected demo activities: %+v", acts)
	}
}
