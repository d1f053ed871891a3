package domain

import (
	"encoding/json"
	"net/mail"
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,50}$`)
	languagePattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})*$`)
)

func IsValidPlatform(name string) bool {
	switch name {
	case "twitter", "facebook", "linkedin", "instagram", "tiktok", "pinterest":
		return true
	default:
		return false
	}
}

func IsValidRole(role string) bool {
	switch role {
	case RoleMember, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}

func ValidateNewUser(in NewUser) error {
	ve := &ValidationError{}
	if !usernamePattern.MatchString(in.Username) {
		ve.Add("username", "must be 3-50 letters, digits, dots, hyphens or underscores")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || !strings.Contains(in.Email, "@") {
		ve.Add("email", "must be a valid email address")
	}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "required")
	}
	if in.PasswordHash == "" {
		ve.Add("password", "required")
	}
	if in.Role != "" && !IsValidRole(in.Role) {
		ve.Add("role", "must be one of member, manager, admin")
	}
	return ve.Err()
}

func ValidateUserPatch(p UserPatch) error {
	ve := &ValidationError{}
	if p.Email != nil {
		if _, err := mail.ParseAddress(*p.Email); err != nil {
			ve.Add("email", "must be a valid email address")
		}
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		ve.Add("name", "must not be empty")
	}
	if p.Role != nil && !IsValidRole(*p.Role) {
		ve.Add("role", "must be one of member, manager, admin")
	}
	return ve.Err()
}

func ValidateNewTeam(in NewTeam) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "required")
	}
	return ve.Err()
}

func ValidateNewTeamMember(in NewTeamMember) error {
	ve := &ValidationError{}
	if in.TeamID <= 0 {
		ve.Add("teamId", "required")
	}
	if in.UserID <= 0 {
		ve.Add("userId", "required")
	}
	if in.Role != "" && !IsValidRole(in.Role) {
		ve.Add("role", "must be one of member, manager, admin")
	}
	return ve.Err()
}

func ValidateNewSocialPlatform(in NewSocialPlatform) error {
	ve := &ValidationError{}
	if !IsValidPlatform(in.Name) {
		ve.Add("name", "must be one of twitter, facebook, linkedin, instagram, tiktok, pinterest")
	}
	if strings.TrimSpace(in.DisplayName) == "" {
		ve.Add("displayName", "required")
	}
	if strings.TrimSpace(in.Icon) == "" {
		ve.Add("icon", "required")
	}
	if in.UserID <= 0 {
		ve.Add("userId", "required")
	}
	return ve.Err()
}

func ValidateSocialPlatformPatch(p SocialPlatformPatch) error {
	ve := &ValidationError{}
	if p.DisplayName != nil && strings.TrimSpace(*p.DisplayName) == "" {
		ve.Add("displayName", "must not be empty")
	}
	if p.Icon != nil && strings.TrimSpace(*p.Icon) == "" {
		ve.Add("icon", "must not be empty")
	}
	return ve.Err()
}

func ValidateNewPost(in NewPost) error {
	ve := &ValidationError{}
	validateContent(ve, "content", in.Content)
	validatePlatforms(ve, in.Platforms)
	validateMedia(ve, in.Media)
	if in.AuthorID <= 0 {
		ve.Add("authorId", "required")
	}
	if in.TeamID <= 0 {
		ve.Add("teamId", "required")
	}
	if !IsValidPostStatus(in.Status) {
		ve.Add("status", "must be one of draft, scheduled, published, failed")
	} else if in.Status == PostStatusDeleted {
		ve.Add("status", "a post cannot be created deleted")
	}
	if in.Status == PostStatusScheduled && in.ScheduledAt == nil {
		ve.Add("scheduledAt", "required when status is scheduled")
	}
	if !IsValidApprovalStatus(in.ApprovalStatus) {
		ve.Add("approvalStatus", "must be one of pending, approved, rejected")
	}
	return ve.Err()
}

func ValidatePostPatch(p PostPatch) error {
	ve := &ValidationError{}
	if p.Content != nil {
		validateContent(ve, "content", p.Content)
	}
	if p.Platforms != nil {
		validatePlatforms(ve, p.Platforms)
	}
	if p.Media != nil {
		validateMedia(ve, p.Media)
	}
	if p.Status != nil && !IsValidPostStatus(*p.Status) {
		ve.Add("status", "must be one of draft, scheduled, published, failed, deleted")
	}
	if p.ApprovalStatus != nil && !IsValidApprovalStatus(*p.ApprovalStatus) {
		ve.Add("approvalStatus", "must be one of pending, approved, rejected")
	}
	return ve.Err()
}

func ValidateNewTemplate(in NewTemplate) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Name) == "" {
		ve.Add("name", "required")
	}
	validateContent(ve, "content", in.Content)
	if in.AuthorID <= 0 {
		ve.Add("authorId", "required")
	}
	if in.TeamID <= 0 {
		ve.Add("teamId", "required")
	}
	return ve.Err()
}

func ValidateNewActivity(in NewActivity) error {
	ve := &ValidationError{}
	if strings.TrimSpace(in.Type) == "" {
		ve.Add("type", "required")
	}
	if strings.TrimSpace(in.Description) == "" {
		ve.Add("description", "required")
	}
	return ve.Err()
}

func ValidateNewAnalytics(in NewAnalytics) error {
	ve := &ValidationError{}
	if in.PostID <= 0 {
		ve.Add("postId", "required")
	}
	if !IsValidPlatform(in.Platform) {
		ve.Add("platform", "must be a supported platform")
	}
	if len(in.Metrics) == 0 {
		ve.Add("metrics", "at least one metric is required")
	}
	if in.Date.IsZero() {
		ve.Add("date", "required")
	}
	return ve.Err()
}

func validateContent(ve *ValidationError, field string, content map[string]string) {
	if len(content) == 0 {
		ve.Add(field, "at least one language entry is required")
		return
	}
	for lang := range content {
		if !languagePattern.MatchString(lang) {
			ve.Add(field+"."+lang, "language code is not valid")
		}
	}
}

func validatePlatforms(ve *ValidationError, platforms []string) {
	if len(platforms) == 0 {
		ve.Add("platforms", "at least one platform is required")
		return
	}
	seen := make(map[string]struct{}, len(platforms))
	for _, name := range platforms {
		if !IsValidPlatform(name) {
			ve.Add("platforms", "unsupported platform "+name)
			continue
		}
		if _, dup := seen[name]; dup {
			ve.Add("platforms", "duplicate platform "+name)
		}
		seen[name] = struct{}{}
	}
}

func validateMedia(ve *ValidationError, media json.RawMessage) {
	if len(media) > 0 && !json.Valid(media) {
		ve.Add("media", "must be valid JSON")
	}
}
