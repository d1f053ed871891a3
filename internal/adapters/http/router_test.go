package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	cacheadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/cache"
	eventadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/events"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/memory"
	publishadapter "github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/publish"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/adapters/security"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/application"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
)

const demoPassword = "demo-password"

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	tokens, err := security.NewJWTIssuer("router-test-secret-0123", time.Hour, "test")
	if err != nil {
		t.Fatalf("NewJWTIssuer error: %v", err)
	}
	svc := application.NewService(application.Dependencies{
		Config:    application.Config{DefaultUserID: 1, DefaultTeamID: 1, Location: time.UTC},
		Store:     memory.NewStore(nil),
		Verifier:  security.NewBcryptVerifier(4),
		Tokens:    tokens,
		Publisher: publishadapter.NewLoggingTarget(nil),
		Events:    eventadapter.NewMemoryPublisher(),
		Cache:     cacheadapter.NewMemoryCache(nil),
	})
	if _, err := svc.SeedDemoData(context.Background(), demoPassword); err != nil {
		t.Fatalf("SeedDemoData error: %v", err)
	}
	return NewRouter(NewHandler(svc), RouterOptions{})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func scheduledPostBody() map[string]any {
	return map[string]any{
		"content":         map[string]string{"en": "hi"},
		"platforms":       []string{"twitter"},
		"scheduleType":    "schedule",
		"scheduledAt":     "2025-01-01T09:00:00Z",
		"requireApproval": true,
		"approverId":      2,
	}
}

func TestCreateScheduledPostAwaitingApproval(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	post := decode[map[string]any](t, rec)
	if post["status"] != "scheduled" || post["approvalStatus"] != "pending" || post["approverId"] != nil {
		t.Fatalf("unexpected post: %v", post)
	}
	if post["scheduledAt"] != "2025-01-01T09:00:00Z" {
		t.Fatalf("unexpected scheduledAt: %v", post["scheduledAt"])
	}

	rec = doJSON(t, h, http.MethodGet, "/api/activities?limit=1", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	acts := decode[[]contracts.ActivityDTO](t, rec)
	if len(acts) != 1 || acts[0].Type != "post_scheduled" || acts[0].User == nil {
		t.Fatalf("unexpected activities: %+v", acts)
	}
}

func TestApprovePendingPost(t *testing.T) {
	h := newTestRouter(t)
	created := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), nil))
	path := "/api/posts/" + strconv.FormatInt(created.ID, 10)

	rec := doJSON(t, h, http.MethodPatch, path, map[string]any{"approvalStatus": "approved"}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[contracts.PostDTO](t, rec)
	if updated.ApprovalStatus != "approved" || updated.ApproverID == nil || *updated.ApproverID != 1 {
		t.Fatalf("unexpected approval: %+v", updated)
	}

	acts := decode[[]contracts.ActivityDTO](t, doJSON(t, h, http.MethodGet, "/api/activities", nil, nil))
	if len(acts) == 0 || acts[0].Type != "post_approved" {
		t.Fatalf("expected post_approved activity first, got %+v", acts)
	}

	fetched := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodGet, path, nil, nil))
	if fetched.ApprovalStatus != "approved" {
		t.Fatalf("approval not visible on read: %+v", fetched)
	}
}

func TestClearScheduleWithExplicitNull(t *testing.T) {
	h := newTestRouter(t)
	created := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), nil))
	path := "/api/posts/" + strconv.FormatInt(created.ID, 10)

	rec := doJSON(t, h, http.MethodPatch, path, `{"status":"draft","scheduledAt":null}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[contracts.PostDTO](t, rec)
	if updated.Status != "draft" || updated.ScheduledAt != nil {
		t.Fatalf("expected unscheduled draft, got %+v", updated)
	}
}

func TestValidationErrorsAreItemized(t *testing.T) {
	h := newTestRouter(t)
	rec := doJSON(t, h, http.MethodPost, "/api/posts", map[string]any{"content": map[string]string{}, "platforms": []string{}}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decode[contracts.ErrorResponse](t, rec)
	fields := map[string]bool{}
	for _, fe := range body.Errors {
		fields[fe.Field] = true
	}
	if body.Message == "" || !fields["content"] || !fields["platforms"] {
		t.Fatalf("unexpected error body: %+v", body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/posts", `{"content": 5}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for mistyped JSON, got %d", rec.Code)
	}
}

func TestMistypedFieldsAreItemized(t *testing.T) {
	h := newTestRouter(t)
	cases := []struct {
		name  string
		path  string
		body  string
		field string
		msg   string
	}{
		{"content as string", "/api/posts", `{"content":"hi","platforms":["twitter"]}`, "content", "must be an object"},
		{"platforms as string", "/api/posts", `{"content":{"en":"hi"},"platforms":"twitter"}`, "platforms", "must be an array"},
		{"bulk platforms as string", "/api/posts/bulk-schedule", `{"posts":[{"content":{"en":"hi"},"platforms":"twitter"}]}`, "posts.platforms", "must be an array"},
		{"truncated body", "/api/posts", `{"content":`, "body", "must be valid JSON"},
		{"bad syntax", "/api/posts/bulk-schedule", `{"posts":[}`, "body", "must be valid JSON"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, tc.path, tc.body, nil)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			body := decode[contracts.ErrorResponse](t, rec)
			if len(body.Errors) != 1 || body.Errors[0].Field != tc.field || body.Errors[0].Message != tc.msg {
				t.Fatalf("unexpected field errors: %+v", body.Errors)
			}
			if strings.Contains(rec.Body.String(), "Go struct") || strings.Contains(rec.Body.String(), "map[string]string") {
				t.Fatalf("error body leaks decoder internals: %s", rec.Body.String())
			}
		})
	}
}

func TestDeleteKeepsPostReadable(t *testing.T) {
	h := newTestRouter(t)
	created := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), nil))
	path := "/api/posts/" + strconv.FormatInt(created.ID, 10)

	rec := doJSON(t, h, http.MethodDelete, path, nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decode[contracts.MessageResponse](t, rec); msg.Message != "Post deleted successfully" {
		t.Fatalf("unexpected message: %q", msg.Message)
	}
	fetched := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodGet, path, nil, nil))
	if fetched.Status != "deleted" {
		t.Fatalf("expected deleted status, got %s", fetched.Status)
	}
	for _, p := range decode[[]contracts.PostDTO](t, doJSON(t, h, http.MethodGet, "/api/posts", nil, nil)) {
		if p.ID == created.ID {
			t.Fatalf("deleted post still listed")
		}
	}
	if rec := doJSON(t, h, http.MethodPatch, "/api/posts/999", map[string]any{"title": "x"}, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLoginAndBearerIdentity(t *testing.T) {
	h := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", contracts.LoginRequest{Username: "mike.rodriguez", Password: "nope"}, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decode[contracts.ErrorResponse](t, rec); body.Message != "Invalid credentials" {
		t.Fatalf("unexpected message: %q", body.Message)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", contracts.LoginRequest{Username: "mike.rodriguez", Password: demoPassword}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if bytes.Contains(rec.Body.Bytes(), []byte("password")) {
		t.Fatalf("login response leaks the credential: %s", rec.Body.String())
	}
	login := decode[contracts.LoginResponse](t, rec)

	me := decode[contracts.UserDTO](t, doJSON(t, h, http.MethodGet, "/api/users/me", nil, map[string]string{"Authorization": "Bearer " + login.Token}))
	if me.Username != "mike.rodriguez" {
		t.Fatalf("expected bearer identity, got %+v", me)
	}
	anonymous := decode[contracts.UserDTO](t, doJSON(t, h, http.MethodGet, "/api/users/me", nil, nil))
	if anonymous.ID != 1 {
		t.Fatalf("expected default user, got %+v", anonymous)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/users/me", nil, map[string]string{"Authorization": "Bearer broken"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a bad token, got %d", rec.Code)
	}
}

func TestIdempotencyKeyReplaysCreate(t *testing.T) {
	h := newTestRouter(t)
	headers := map[string]string{"Idempotency-Key": "abc"}
	first := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), headers))
	second := decode[contracts.PostDTO](t, doJSON(t, h, http.MethodPost, "/api/posts", scheduledPostBody(), headers))
	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("expected replayed post, got %d and %d", first.ID, second.ID)
	}
	changed := scheduledPostBody()
	changed["content"] = map[string]string{"en": "changed"}
	if rec := doJSON(t, h, http.MethodPost, "/api/posts", changed, headers); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAnalyticsEndpoints(t *testing.T) {
	h := newTestRouter(t)
	overview := decode[contracts.OverviewResponse](t, doJSON(t, h, http.MethodGet, "/api/analytics/overview", nil, nil))
	if overview.TotalReach != "45.2K" || overview.TeamMembers != 3 || overview.ScheduledPosts != 2 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
	rows := decode[[]contracts.MemberPerformanceDTO](t, doJSON(t, h, http.MethodGet, "/api/analytics/team-performance", nil, nil))
	if len(rows) != 3 || rows[0].Completion != 0 {
		t.Fatalf("unexpected performance rows: %+v", rows)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/posts/1/analytics", map[string]any{"platform": "twitter", "metrics": map[string]any{"likes": 12}}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	snapshots := decode[[]contracts.AnalyticsDTO](t, doJSON(t, h, http.MethodGet, "/api/posts/1/analytics", nil, nil))
	if len(snapshots) != 1 || snapshots[0].Metrics["likes"] != float64(12) {
		t.Fatalf("unexpected snapshots: %+v", snapshots)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/posts/999/analytics", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestPlatformsAndTemplates(t *testing.T) {
	h := newTestRouter(t)
	platforms := decode[[]map[string]any](t, doJSON(t, h, http.MethodGet, "/api/social-platforms", nil, nil))
	if len(platforms) != 6 {
		t.Fatalf("expected six platforms, got %d", len(platforms))
	}
	if _, ok := platforms[0]["credentials"]; ok {
		t.Fatalf("platform response exposes credentials")
	}
	rec := doJSON(t, h, http.MethodPatch, "/api/social-platforms/1", map[string]any{"isConnected": false}, nil)
	if rec.Code != http.StatusOK || decode[contracts.SocialPlatformDTO](t, rec).IsConnected {
		t.Fatalf("unexpected platform update: %d %s", rec.Code, rec.Body.String())
	}
	if rec := doJSON(t, h, http.MethodPatch, "/api/social-platforms/77", map[string]any{"isConnected": false}, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	templates := decode[[]contracts.TemplateDTO](t, doJSON(t, h, http.MethodGet, "/api/templates", nil, nil))
	if len(templates) != 2 {
		t.Fatalf("expected the two demo templates once each, got %d", len(templates))
	}
	rec = doJSON(t, h, http.MethodPost, "/api/templates", map[string]any{"name": "New", "content": map[string]string{"en": "x"}}, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthProbes(t *testing.T) {
	h := newTestRouter(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		if rec := doJSON(t, h, http.MethodGet, path, nil, nil); rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
