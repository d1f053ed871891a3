package http

import (
	"net/http"
	"strconv"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/ports"
)

const maxActivityLimit = 100

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	limit := ports.DefaultActivityLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxActivityLimit)
		}
	}
	activities, err := h.service.ListActivities(r.Context(), actorFromContext(r.Context()), limit)
	if err != nil {
		writeDomainError(w, r, "list_activities", err)
		return
	}
	out := make([]contracts.ActivityDTO, 0, len(activities))
	for _, a := range activities {
		dto := contracts.ActivityDTO{
			ID:          a.ID,
			UserID:      a.UserID,
			TeamID:      a.TeamID,
			Type:        a.Type,
			Description: a.Description,
			Metadata:    a.Metadata,
			CreatedAt:   a.CreatedAt,
		}
		if a.User != nil {
			user := contracts.NewUserDTO(*a.User)
			dto.User = &user
		}
		out = append(out, dto)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) overview(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.Overview(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "analytics_overview", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.OverviewResponse{
		ScheduledPosts: o.ScheduledPosts,
		PublishedToday: o.PublishedToday,
		TotalReach:     o.TotalReach,
		TeamMembers:    o.TeamMembers,
	})
}

func (h *Handler) teamPerformance(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.TeamPerformance(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "analytics_team_performance", err)
		return
	}
	out := make([]contracts.MemberPerformanceDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, contracts.MemberPerformanceDTO{
			User:       contracts.NewUserDTO(row.User),
			Posts:      row.Posts,
			Published:  row.Published,
			Completion: row.Completion,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) teamAnalytics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.ListTeamAnalytics(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "analytics_snapshots", err)
		return
	}
	writeJSON(w, http.StatusOK, analyticsDTOs(rows))
}
