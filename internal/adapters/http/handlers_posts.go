package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/application"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func toCreatePostInput(req contracts.CreatePostRequest) application.CreatePostInput {
	return application.CreatePostInput{
		Title:           req.Title,
		Content:         req.Content,
		Media:           req.Media,
		Platforms:       req.Platforms,
		Status:          domain.PostStatus(req.Status),
		ScheduledAt:     req.ScheduledAt,
		ApprovalStatus:  domain.ApprovalStatus(req.ApprovalStatus),
		ApproverID:      req.ApproverID,
		ScheduleType:    req.ScheduleType,
		RequireApproval: req.RequireApproval,
	}
}

func toPostPatch(req contracts.UpdatePostRequest) (domain.PostPatch, error) {
	patch := domain.PostPatch{
		Title:      req.Title,
		Content:    req.Content,
		Media:      req.Media,
		Platforms:  req.Platforms,
		ApproverID: req.ApproverID,
	}
	if req.Status != nil {
		status := domain.PostStatus(*req.Status)
		patch.Status = &status
	}
	if req.ApprovalStatus != nil {
		approval := domain.ApprovalStatus(*req.ApprovalStatus)
		patch.ApprovalStatus = &approval
	}
	switch raw := bytes.TrimSpace(req.ScheduledAt); {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte("null")):
		patch.ClearScheduledAt = true
	default:
		var at time.Time
		if err := json.Unmarshal(raw, &at); err != nil {
			ve := &domain.ValidationError{}
			ve.Add("scheduledAt", "must be an RFC 3339 timestamp or null")
			return domain.PostPatch{}, ve
		}
		patch.ScheduledAt = &at
	}
	return patch, nil
}

func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListTeamPosts(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "list_posts", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTOs(posts))
}

func (h *Handler) listScheduledPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListScheduledPosts(r.Context())
	if err != nil {
		writeDomainError(w, r, "list_scheduled_posts", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTOs(posts))
}

func (h *Handler) listTodayPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListTodayPosts(r.Context())
	if err != nil {
		writeDomainError(w, r, "list_today_posts", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTOs(posts))
}

func (h *Handler) listMyPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListUserPosts(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "list_user_posts", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTOs(posts))
}

func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "get_post", err)
		return
	}
	post, err := h.service.GetPost(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get_post", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTO(post))
}

func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "create_post", err)
		return
	}
	post, err := h.service.CreatePost(r.Context(), actorFromContext(r.Context()), toCreatePostInput(req))
	if err != nil {
		writeDomainError(w, r, "create_post", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewPostDTO(post))
}

func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "update_post", err)
		return
	}
	var req contracts.UpdatePostRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "update_post", err)
		return
	}
	patch, err := toPostPatch(req)
	if err != nil {
		writeDomainError(w, r, "update_post", err)
		return
	}
	post, err := h.service.UpdatePost(r.Context(), actorFromContext(r.Context()), id, patch)
	if err != nil {
		writeDomainError(w, r, "update_post", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewPostDTO(post))
}

func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "delete_post", err)
		return
	}
	if err := h.service.DeletePost(r.Context(), actorFromContext(r.Context()), id); err != nil {
		writeDomainError(w, r, "delete_post", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.MessageResponse{Message: "Post deleted successfully"})
}

func (h *Handler) bulkSchedule(w http.ResponseWriter, r *http.Request) {
	var req contracts.BulkScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "bulk_schedule", err)
		return
	}
	inputs := make([]application.CreatePostInput, 0, len(req.Posts))
	for _, item := range req.Posts {
		inputs = append(inputs, toCreatePostInput(item))
	}
	posts, err := h.service.BulkSchedule(r.Context(), actorFromContext(r.Context()), inputs)
	if err != nil {
		writeDomainError(w, r, "bulk_schedule", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewPostDTOs(posts))
}

func (h *Handler) listPostAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "list_post_analytics", err)
		return
	}
	rows, err := h.service.ListPostAnalytics(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "list_post_analytics", err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsDTOs(rows))
}

func (h *Handler) createPostAnalytics(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "create_post_analytics", err)
		return
	}
	var req contracts.CreateAnalyticsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "create_post_analytics", err)
		return
	}
	var date *time.Time
	if !req.Date.IsZero() {
		date = &req.Date
	}
	row, err := h.service.RecordPostAnalytics(r.Context(), id, req.Platform, req.Metrics, date)
	if err != nil {
		writeDomainError(w, r, "create_post_analytics", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewAnalyticsDTO(row))
}

func analyticsDTOs(rows []domain.Analytics) []contracts.AnalyticsDTO {
	out := make([]contracts.AnalyticsDTO, 0, len(rows))
	for _, a := range rows {
		out = append(out, contracts.NewAnalyticsDTO(a))
	}
	return out
}
