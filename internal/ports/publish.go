package ports

import (
	"context"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

// PublishTarget delivers a post to one social platform. The lifecycle calls it
// once per target platform when a post becomes published and approved.
type PublishTarget interface {
	Publish(ctx context.Context, post domain.Post, platform string) error
}
