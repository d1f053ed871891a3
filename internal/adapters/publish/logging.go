package publish

import (
	"context"
	"log/slog"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

var _ ports.PublishTarget = (*LoggingTarget)(nil)

// LoggingTarget records the hand-off and reports success. It is the default
// when no webhook is configured.
type LoggingTarget struct {
	logger *slog.Logger
}

func NewLoggingTarget(logger *slog.Logger) *LoggingTarget {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingTarget{logger: logger}
}

func (t *LoggingTarget) Publish(ctx context.Context, post domain.Post, platform string) error {
	t.logger.InfoContext(ctx, "post handed to platform",
		"module", "publish.logging",
		"layer", "adapter",
		"operation", "publish",
		"outcome", "success",
		"post_id", post.ID,
		"team_id", post.TeamID,
		"platform", platform,
		"languages", len(post.Content),
	)
	return nil
}
