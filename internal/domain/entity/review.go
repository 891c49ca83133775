package entity

import "time"

// VisitType describes who the reviewer visited the place with.
type VisitType string

const (
	VisitSolo     VisitType = "solo"
	VisitFriends  VisitType = "friends"
	VisitFamily   VisitType = "family"
	VisitDate     VisitType = "date"
	VisitBusiness VisitType = "business"
)

// Review is one user's evaluation of one place. Only reviews with
// IsHidden == false count toward the place aggregates; IsFlagged and IsVisible
// are moderation annotations.
type Review struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	PlaceID        string     `bson:"place_id" json:"place_id"`
	UserID         string     `bson:"user_id" json:"user_id"`
	Rating         float64    `bson:"rating" json:"rating"`
	Title          string     `bson:"title,omitempty" json:"title,omitempty"`
	Content        string     `bson:"content" json:"content"`
	VisitDate      *time.Time `bson:"visit_date,omitempty" json:"visit_date,omitempty"`
	VisitType      VisitType  `bson:"visit_type,omitempty" json:"visit_type,omitempty"`
	IsHidden       bool       `bson:"is_hidden" json:"is_hidden"`
	IsFlagged      bool       `bson:"is_flagged" json:"is_flagged"`
	IsVisible      bool       `bson:"is_visible" json:"is_visible"`
	FlagReason     string     `bson:"flag_reason,omitempty" json:"flag_reason,omitempty"`
	ModerationNote string     `bson:"moderation_note,omitempty" json:"moderation_note,omitempty"`
	ModeratedBy    string     `bson:"moderated_by,omitempty" json:"moderated_by,omitempty"`
	CreatedAt      time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `bson:"updated_at" json:"updated_at"`
}

// ModerationAction is an admin action on a review.
type ModerationAction string

const (
	ModerationApprove ModerationAction = "approve"
	ModerationHide    ModerationAction = "hide"
	ModerationDelete  ModerationAction = "delete"
)

func (a ModerationAction) Valid() bool {
	return a == ModerationApprove || a == ModerationHide || a == ModerationDelete
}

// Moderate applies approve or hide to the review and reports whether the
// hidden flag changed. Delete is handled by the caller.
func (r *Review) Moderate(action ModerationAction, note, adminID string, now time.Time) (hiddenChanged bool, err error) {
	wasHidden := r.IsHidden
	switch action {
	case ModerationApprove:
		r.IsHidden = false
		r.IsFlagged = false
		r.IsVisible = true
		r.FlagReason = ""
	case ModerationHide:
		r.IsHidden = true
		r.IsVisible = false
	default:
		return false, Validationf("unsupported moderation action %q", action)
	}
	r.ModerationNote = note
	r.ModeratedBy = adminID
	r.UpdatedAt = now
	return wasHidden != r.IsHidden, nil
}
