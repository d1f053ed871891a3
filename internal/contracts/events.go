package contracts

import (
	"encoding/json"
	"time"
)

type EventEnvelope struct {
	EventID          string          `json:"event_id"`
	EventType        string          `json:"event_type"`
	OccurredAt       time.Time       `json:"occurred_at"`
	PartitionKeyPath string          `json:"partition_key_path"`
	PartitionKey     string          `json:"partition_key"`
	SourceService    string          `json:"source_service"`
	TraceID          string          `json:"trace_id"`
	SchemaVersion    string          `json:"schema_version"`
	Data             json.RawMessage `json:"data"`
}

type ActivityRecordedPayload struct {
	ActivityID  int64          `json:"activity_id"`
	TeamID      string         `json:"team_id"`
	UserID      int64          `json:"user_id"`
	Type        string         `json:"type"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// PublishRequest is the body a webhook publish target receives.
type PublishRequest struct {
	PostID      int64             `json:"postId"`
	TeamID      int64             `json:"teamId"`
	Platform    string            `json:"platform"`
	Title       *string           `json:"title,omitempty"`
	Content     map[string]string `json:"content"`
	Media       json.RawMessage   `json:"media,omitempty"`
	ScheduledAt *time.Time        `json:"scheduledAt,omitempty"`
}
