package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

type idempotencyRecord struct {
	RequestHash  string          `json:"request_hash"`
	ResponseBody json.RawMessage `json:"response_body"`
}

func hashPayload(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func idempotencyCacheKey(op string, actor Actor) string {
	return "idem:" + op + ":" + strconv.FormatInt(actor.UserID, 10) + ":" + strings.TrimSpace(actor.IdempotencyKey)
}

// withIdempotency runs fn once per (operation, actor, key). A replay with the
// same payload returns the stored result; a different payload under the same
// key is ErrIdempotencyConflict. Without a key or a cache fn always runs.
func withIdempotency[T any](ctx context.Context, s *Service, actor Actor, op string, payload any, fn func() (T, error)) (T, error) {
	var zero T
	if s.cache == nil || strings.TrimSpace(actor.IdempotencyKey) == "" {
		return fn()
	}
	key := idempotencyCacheKey(op, actor)
	requestHash := hashPayload(map[string]any{"op": op, "payload": payload})

	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "idempotency lookup failed",
			"module", "application",
			"layer", "service",
			"operation", op,
			"outcome", "degraded",
			"request_id", actor.RequestID,
			"error", err.Error(),
		)
		return fn()
	}
	if found {
		var rec idempotencyRecord
		if err := json.Unmarshal([]byte(raw), &rec); err == nil {
			if rec.RequestHash != requestHash {
				return zero, fmt.Errorf("%w: key %q was used with a different payload", domain.ErrIdempotencyConflict, actor.IdempotencyKey)
			}
			var cached T
			if json.Unmarshal(rec.ResponseBody, &cached) == nil {
				return cached, nil
			}
		}
	}

	out, err := fn()
	if err != nil {
		return zero, err
	}
	body, err := json.Marshal(out)
	if err != nil {
		return out, nil
	}
	rec, _ := json.Marshal(idempotencyRecord{RequestHash: requestHash, ResponseBody: body})
	if err := s.cache.Set(ctx, key, string(rec), s.cfg.IdempotencyTTL); err != nil {
		s.logger.WarnContext(ctx, "idempotency store failed",
			"module", "application",
			"layer", "service",
			"operation", op,
			"outcome", "degraded",
			"request_id", actor.RequestID,
			"error", err.Error(),
		)
	}
	return out, nil
}
