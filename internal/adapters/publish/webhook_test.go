package publish

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func TestWebhookTargetPostsPost(t *testing.T) {
	var got contracts.PublishRequest
	var platformHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		platformHeader = r.Header.Get("X-Platform")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	target := NewWebhookTarget(srv.URL, time.Second, "test")
	post := domain.Post{ID: 9, TeamID: 1, Content: map[string]string{"en": "hi"}, Platforms: []string{"twitter"}}
	if err := target.Publish(context.Background(), post, "twitter"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got.PostID != 9 || got.Platform != "twitter" || got.Content["en"] != "hi" {
		t.Fatalf("unexpected webhook body %+v", got)
	}
	if platformHeader != "twitter" {
		t.Fatalf("expected X-Platform header, got %q", platformHeader)
	}
}

func TestWebhookTargetReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	target := NewWebhookTarget(srv.URL, time.Second, "test")
	err := target.Publish(context.Background(), domain.Post{ID: 1}, "facebook")
	if !errors.Is(err, domain.ErrPublishFailed) {
		t.Fatalf("expected ErrPublishFailed, got %v", err)
	}
}
