package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportState tracks the moderation lifecycle of a reported comment.
type ReportState string

const (
	ReportNone      ReportState = "none"
	ReportPending   ReportState = "pending"
	ReportReviewed  ReportState = "reviewed"
	ReportDismissed ReportState = "dismissed"
)

// Comment is a comment on a project or post. The author is either a
// registered user (UserID set) or a guest identified only by GuestName.
type Comment struct {
	ID          uuid.UUID   `json:"id"`
	ProjectID   *uuid.UUID  `json:"project_id,omitempty"`
	PostID      *uuid.UUID  `json:"post_id,omitempty"`
	UserID      *uuid.UUID  `json:"user_id,omitempty"`
	GuestName   *string     `json:"guest_name,omitempty"`
	Content     string      `json:"content"`
	ReportState ReportState `json:"report_state"`
	ReportNote  *string     `json:"report_note,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// AuthorName returns the display identity for a comment: the guest name
// when present, otherwise empty (callers join the user row for members).
func (c *Comment) AuthorName() string {
	if c.GuestName != nil {
		return *c.GuestName
	}
	return ""
}
