package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

const EventActivityRecorded = "content.activity_recorded"

// recordActivity appends to the audit log and mirrors the record as an event.
// Neither step can fail the operation that triggered it.
func (s *Service) recordActivity(ctx context.Context, actor Actor, activityType, description string, metadata map[string]any) {
	activity, err := s.store.CreateActivity(ctx, domain.NewActivity{
		UserID:      actor.UserID,
		TeamID:      actor.TeamID,
		Type:        activityType,
		Description: description,
		Metadata:    metadata,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "activity write failed",
			"module", "application",
			"layer", "service",
			"operation", "record_activity",
			"outcome", "failure",
			"request_id", actor.RequestID,
			"activity_type", activityType,
			"error", err.Error(),
		)
		return
	}
	s.emitActivityRecorded(ctx, actor, activity)
}

func (s *Service) emitActivityRecorded(ctx context.Context, actor Actor, activity domain.Activity) {
	if s.events == nil {
		return
	}
	teamKey := strconv.FormatInt(activity.TeamID, 10)
	data, err := json.Marshal(contracts.ActivityRecordedPayload{
		ActivityID:  activity.ID,
		TeamID:      teamKey,
		UserID:      activity.UserID,
		Type:        activity.Type,
		Description: activity.Description,
		Metadata:    activity.Metadata,
		CreatedAt:   activity.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return
	}
	traceID := actor.RequestID
	if traceID == "" {
		traceID = uuid.NewString()
	}
	envelope := contracts.EventEnvelope{
		EventID:          uuid.NewString(),
		EventType:        EventActivityRecorded,
		OccurredAt:       s.nowFn(),
		PartitionKeyPath: "data.team_id",
		PartitionKey:     teamKey,
		SourceService:    s.cfg.ServiceName,
		TraceID:          traceID,
		SchemaVersion:    "v1",
		Data:             data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	if err := s.events.Publish(ctx, EventActivityRecorded, payload, teamKey); err != nil {
		s.logger.WarnContext(ctx, "activity event publish failed",
			"module", "application",
			"layer", "service",
			"operation", "emit_activity_recorded",
			"outcome", "failure",
			"request_id", actor.RequestID,
			"activity_id", activity.ID,
			"error", err.Error(),
		)
	}
}

// ListActivities returns the team's newest activities, each joined with its
// author when the author still resolves.
func (s *Service) ListActivities(ctx context.Context, actor Actor, limit int) ([]ActivityWithUser, error) {
	activities, err := s.store.ListActivitiesByTeam(ctx, actor.TeamID, limit)
	if err != nil {
		return nil, err
	}
	users := map[int64]*domain.User{}
	out := make([]ActivityWithUser, 0, len(activities))
	for _, a := range activities {
		user, seen := users[a.UserID]
		if !seen {
			u, err := s.store.GetUser(ctx, a.UserID)
			switch {
			case err == nil:
				user = &u
			case errors.Is(err, domain.ErrNotFound):
				user = nil
			default:
				return nil, err
			}
			users[a.UserID] = user
		}
		out = append(out, ActivityWithUser{Activity: a, User: user})
	}
	return out, nil
}
