package domain

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusFailed    PostStatus = "failed"
	// PostStatusDeleted marks a soft-deleted post. The row is kept and stays
	// readable by id.
	PostStatusDeleted PostStatus = "deleted"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

func IsValidPostStatus(s PostStatus) bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed, PostStatusDeleted:
		return true
	default:
		return false
	}
}

func IsValidApprovalStatus(s ApprovalStatus) bool {
	switch s {
	case ApprovalPending, ApprovalApproved, ApprovalRejected:
		return true
	default:
		return false
	}
}

var postTransitions = map[PostStatus][]PostStatus{
	PostStatusDraft:     {PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed, PostStatusDeleted},
	PostStatusScheduled: {PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusFailed, PostStatusDeleted},
	PostStatusFailed:    {PostStatusDraft, PostStatusScheduled, PostStatusFailed, PostStatusDeleted},
	PostStatusPublished: {PostStatusPublished, PostStatusDeleted},
}

// publishTransitions are the moves the service makes on its own after handing
// a post to a publish target. A rejected hand-off takes a published post to
// failed, which callers cannot do through an update.
var publishTransitions = map[PostStatus][]PostStatus{
	PostStatusPublished: {PostStatusFailed},
}

// CanTransition reports whether a caller may move a post from one status to
// another. Deleted is terminal. Publish outcomes follow CanRecordPublishOutcome.
func CanTransition(from, to PostStatus) bool {
	return allowed(postTransitions, from, to)
}

// CanRecordPublishOutcome reports whether a publish hand-off may move a post
// from one status to another.
func CanRecordPublishOutcome(from, to PostStatus) bool {
	return allowed(publishTransitions, from, to)
}

func allowed(table map[PostStatus][]PostStatus, from, to PostStatus) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsLive reports whether the post should appear in listings and rollups.
func (p Post) IsLive() bool {
	return p.Status != PostStatusDeleted
}

// BuildPost validates an insert shape and turns it into a stored record
// without an id. Lifecycle fields are derived here so every backend fills
// them the same way.
func BuildPost(in NewPost, now time.Time) (Post, error) {
	now = NormalizeTime(now)
	if in.Status == "" {
		in.Status = PostStatusDraft
	}
	if in.ApprovalStatus == "" {
		in.ApprovalStatus = ApprovalPending
	}
	if err := ValidateNewPost(in); err != nil {
		return Post{}, err
	}
	p := Post{
		Title:          cloneStringPtr(in.Title),
		Content:        cloneContent(in.Content),
		Media:          normalizeMedia(in.Media),
		Platforms:      cloneStrings(in.Platforms),
		AuthorID:       in.AuthorID,
		TeamID:         in.TeamID,
		Status:         in.Status,
		ScheduledAt:    normalizeTimePtr(in.ScheduledAt),
		ApprovalStatus: in.ApprovalStatus,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if p.Status == PostStatusPublished {
		p.PublishedAt = &now
	}
	if p.ApprovalStatus == ApprovalApproved {
		p.ApproverID = cloneInt64Ptr(in.ApproverID)
		p.ApprovedAt = &now
	}
	return p, nil
}

// Apply merges a patch into a copy of p. ID and CreatedAt never change;
// UpdatedAt is refreshed. The published and approval timestamps follow the
// resulting status values.
func (p Post) Apply(patch PostPatch, now time.Time) (Post, error) {
	now = NormalizeTime(now)
	if err := ValidatePostPatch(patch); err != nil {
		return Post{}, err
	}
	out := p.Clone()
	if patch.Title != nil {
		out.Title = cloneStringPtr(patch.Title)
	}
	if patch.Content != nil {
		out.Content = cloneContent(patch.Content)
	}
	if patch.Media != nil {
		out.Media = normalizeMedia(patch.Media)
	}
	if patch.Platforms != nil {
		out.Platforms = cloneStrings(patch.Platforms)
	}
	if patch.ClearScheduledAt {
		out.ScheduledAt = nil
	} else if patch.ScheduledAt != nil {
		out.ScheduledAt = normalizeTimePtr(patch.ScheduledAt)
	}
	if patch.Status != nil {
		out.Status = *patch.Status
	}
	if out.Status == PostStatusScheduled && out.ScheduledAt == nil {
		ve := &ValidationError{}
		ve.Add("scheduledAt", "required when status is scheduled")
		return Post{}, ve
	}

	switch {
	case out.Status != PostStatusPublished:
		out.PublishedAt = nil
	case p.Status != PostStatusPublished || out.PublishedAt == nil:
		out.PublishedAt = &now
	}

	if patch.ApprovalStatus != nil {
		out.ApprovalStatus = *patch.ApprovalStatus
	}
	if out.ApprovalStatus != ApprovalApproved {
		out.ApproverID = nil
		out.ApprovedAt = nil
	} else {
		if p.ApprovalStatus != ApprovalApproved || out.ApprovedAt == nil {
			out.ApprovedAt = &now
		}
		if patch.ApproverID != nil {
			out.ApproverID = cloneInt64Ptr(patch.ApproverID)
		}
	}

	out.ID = p.ID
	out.CreatedAt = p.CreatedAt
	out.UpdatedAt = now
	return out, nil
}

// Clone returns a deep copy.
func (p Post) Clone() Post {
	out := p
	out.Title = cloneStringPtr(p.Title)
	out.Content = cloneContent(p.Content)
	out.Media = cloneRaw(p.Media)
	out.Platforms = cloneStrings(p.Platforms)
	out.ScheduledAt = cloneTimePtr(p.ScheduledAt)
	out.PublishedAt = cloneTimePtr(p.PublishedAt)
	out.ApproverID = cloneInt64Ptr(p.ApproverID)
	out.ApprovedAt = cloneTimePtr(p.ApprovedAt)
	return out
}

// BuildTemplate validates a template insert shape.
func BuildTemplate(in NewTemplate, now time.Time) (Template, error) {
	if err := ValidateNewTemplate(in); err != nil {
		return Template{}, err
	}
	return Template{
		Name:        in.Name,
		Description: cloneStringPtr(in.Description),
		Content:     cloneContent(in.Content),
		Category:    cloneStringPtr(in.Category),
		AuthorID:    in.AuthorID,
		TeamID:      in.TeamID,
		IsPublic:    in.IsPublic,
		CreatedAt:   NormalizeTime(now),
	}, nil
}
