package publish

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var _ ports.PublishTarget = (*WebhookTarget)(nil)

// WebhookTarget POSTs each post/platform pair to a single endpoint. Any
// non-2xx answer is a publish failure; there are no retries.
type WebhookTarget struct {
	client *resty.Client
	url    string
}

func NewWebhookTarget(url string, timeout time.Duration, serviceName string) *WebhookTarget {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", serviceName)
	return &WebhookTarget{client: client, url: url}
}

func (t *WebhookTarget) Publish(ctx context.Context, post domain.Post, platform string) error {
	body := contracts.PublishRequest{
		PostID:      post.ID,
		TeamID:      post.TeamID,
		Platform:    platform,
		Title:       post.Title,
		Content:     post.Content,
		Media:       post.Media,
		ScheduledAt: post.ScheduledAt,
	}
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeader("X-Platform", platform).
		SetBody(body).
		Post(t.url)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrPublishFailed, platform, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s: webhook answered %d: %s", domain.ErrPublishFailed, platform, resp.StatusCode(), truncate(resp.String(), 200))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
