package http

import (
	"errors"
	"net/http"

	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/application"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/contracts"
	"github.com/viralforge/mesh/services/integrations/M31-content-scheduling-service/internal/domain"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req contracts.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "login", err)
		return
	}
	session, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			logHTTPOperationError(r.Context(), "login", http.StatusUnauthorized, "invalid credentials", nil)
			writeError(w, r, http.StatusUnauthorized, "Invalid credentials", nil)
			return
		}
		writeDomainError(w, r, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.LoginResponse{
		User:      contracts.NewUserDTO(session.User),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	})
}

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.CurrentUser(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "get_current_user", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewUserDTO(user))
}

func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	var req contracts.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "update_current_user", err)
		return
	}
	user, err := h.service.UpdateProfile(r.Context(), actorFromContext(r.Context()), application.UpdateProfileInput{
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Avatar:   req.Avatar,
		Timezone: req.Timezone,
	})
	if err != nil {
		writeDomainError(w, r, "update_current_user", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewUserDTO(user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeDomainError(w, r, "list_users", err)
		return
	}
	out := make([]contracts.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, contracts.NewUserDTO(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "create_user", err)
		return
	}
	user, err := h.service.RegisterUser(r.Context(), application.RegisterUserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Role:     req.Role,
		Avatar:   req.Avatar,
		Timezone: req.Timezone,
	})
	if err != nil {
		writeDomainError(w, r, "create_user", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewUserDTO(user))
}

func (h *Handler) listMyTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.ListMyTeams(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "list_teams", err)
		return
	}
	out := make([]contracts.TeamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, contracts.NewTeamDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getTeam(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "teamId")
	if err != nil {
		writeDomainError(w, r, "get_team", err)
		return
	}
	team, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "get_team", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewTeamDTO(team))
}

func (h *Handler) listTeamMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "teamId")
	if err != nil {
		writeDomainError(w, r, "list_team_members", err)
		return
	}
	members, err := h.service.ListTeamMembers(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, "list_team_members", err)
		return
	}
	out := make([]contracts.TeamMemberDTO, 0, len(members))
	for _, m := range members {
		out = append(out, contracts.NewTeamMemberWithUserDTO(m))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) addTeamMember(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "teamId")
	if err != nil {
		writeDomainError(w, r, "add_team_member", err)
		return
	}
	var req contracts.AddTeamMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "add_team_member", err)
		return
	}
	member, err := h.service.AddTeamMember(r.Context(), actorFromContext(r.Context()), id, req.UserID, req.Role)
	if err != nil {
		writeDomainError(w, r, "add_team_member", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewTeamMemberDTO(member))
}

func (h *Handler) listSocialPlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := h.service.ListSocialPlatforms(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "list_social_platforms", err)
		return
	}
	out := make([]contracts.SocialPlatformDTO, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, contracts.NewSocialPlatformDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createSocialPlatform(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateSocialPlatformRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "create_social_platform", err)
		return
	}
	platform, err := h.service.ConnectSocialPlatform(r.Context(), actorFromContext(r.Context()), domain.NewSocialPlatform{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Icon:        req.Icon,
		IsConnected: req.IsConnected,
		Credentials: req.Credentials,
	})
	if err != nil {
		writeDomainError(w, r, "create_social_platform", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewSocialPlatformDTO(platform))
}

func (h *Handler) updateSocialPlatform(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeDomainError(w, r, "update_social_platform", err)
		return
	}
	var req contracts.UpdateSocialPlatformRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "update_social_platform", err)
		return
	}
	platform, err := h.service.UpdateSocialPlatform(r.Context(), id, domain.SocialPlatformPatch{
		DisplayName: req.DisplayName,
		Icon:        req.Icon,
		IsConnected: req.IsConnected,
		Credentials: req.Credentials,
	})
	if err != nil {
		writeDomainError(w, r, "update_social_platform", err)
		return
	}
	writeJSON(w, http.StatusOK, contracts.NewSocialPlatformDTO(platform))
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.ListTemplates(r.Context(), actorFromContext(r.Context()))
	if err != nil {
		writeDomainError(w, r, "list_templates", err)
		return
	}
	out := make([]contracts.TemplateDTO, 0, len(templates))
	for _, t := range templates {
		out = append(out, contracts.NewTemplateDTO(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req contracts.CreateTemplateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDomainError(w, r, "create_template", err)
		return
	}
	tpl, err := h.service.CreateTemplate(r.Context(), actorFromContext(r.Context()), application.CreateTemplateInput{
		Name:        req.Name,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		writeDomainError(w, r, "create_template", err)
		return
	}
	writeJSON(w, http.StatusCreated, contracts.NewTemplateDTO(tpl))
}
