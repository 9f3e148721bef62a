package entity

import "time"

// Status is the lifecycle state of a suggestion.
type Status string

const (
	StatusSuggestion Status = "suggestion"
	StatusPlanned    Status = "planned"
	StatusInProgress Status = "in-progress"
	StatusLive       Status = "live"
)

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	switch s {
	case StatusSuggestion, StatusPlanned, StatusInProgress, StatusLive:
		return true
	}
	return false
}

// RoadmapStatuses are the statuses shown on the roadmap, in display order.
var RoadmapStatuses = []Status{StatusPlanned, StatusInProgress, StatusLive}

// Category classifies a suggestion.
type Category string

const (
	CategoryFeature     Category = "feature"
	CategoryUI          Category = "ui"
	CategoryUX          Category = "ux"
	CategoryEnhancement Category = "enhancement"
	CategoryBug         Category = "bug"
)

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFeature, CategoryUI, CategoryUX, CategoryEnhancement, CategoryBug:
		return true
	}
	return false
}

// Author is a copy of a user's display fields taken when a comment or reply
// is written. Later profile edits do not touch it.
type Author struct {
	UserID    string `json:"userId,omitempty"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Image     string `json:"image"`
}

// Reply is embedded in a Comment.
type Reply struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	RepliedOn  time.Time `json:"repliedOn"`
	ReplyingTo string    `json:"replyingTo"`
	User       Author    `json:"user"`
}

// Comment is embedded in a Suggestion, newest first.
type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	User      Author    `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Reply   `json:"replies"`
}

// Suggestion is the aggregate root of the suggestion store. Comments and
// replies have no lifecycle outside of it.
type Suggestion struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Upvotes     int       `json:"upvotes"`
	Status      Status    `json:"status"`
	Category    Category  `json:"category"`
	UpvotedBy   []string  `json:"upvotedBy"`
	CreatedBy   string    `json:"createdBy"`
	Comments    []Comment `json:"comments"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SuggestionPatch lists the fields a caller may change on an existing suggestion.
// Nil fields are left untouched.
type SuggestionPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Category    *Category
}

// Empty reports whether the patch changes nothing.
func (p SuggestionPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Category == nil
}

// StatusCount is one row of the whole-collection status breakdown.
type StatusCount struct {
	Status Status `json:"_id"`
	Count  int    `json:"count"`
}

// Breakdown summarises the whole collection for the filter UI.
type Breakdown struct {
	Statuses   []StatusCount
	Categories []Category
}
