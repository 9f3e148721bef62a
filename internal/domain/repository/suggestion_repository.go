package repository

import (
	"context"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
)

// SuggestionQuery is a resolved listing request: filter, sort and window.
type SuggestionQuery struct {
	Categories []string
	SortField  string // stored field name, or SortByComments
	Descending bool
	Skip       int64
	Limit      int64
}

// SortByComments sorts by the number of embedded comments instead of a stored field.
const SortByComments = "comments"

// SuggestionRepository is the document store for suggestions and their
// embedded comments and replies. Every mutation is a single-document
// conditional update.
type SuggestionRepository interface {
	Find(ctx context.Context, q SuggestionQuery) ([]entity.Suggestion, error)
	Count(ctx context.Context, categories []string) (int64, error)
	Breakdown(ctx context.Context) (*entity.Breakdown, error)
	FindByStatus(ctx context.Context, statuses []entity.Status) ([]entity.Suggestion, error)
	CountByStatus(ctx context.Context, statuses []entity.Status) (map[entity.Status]int, error)

	GetByID(ctx context.Context, id string) (*entity.Suggestion, error)
	Create(ctx context.Context, s *entity.Suggestion) error
	// Update applies patch when the document matches id and, if ownerID is
	// non-empty, createdBy == ownerID. ErrNotFound means no document matched.
	Update(ctx context.Context, id, ownerID string, patch entity.SuggestionPatch) (*entity.Suggestion, error)
	// Delete removes the document under the same matching rule as Update.
	Delete(ctx context.Context, id, ownerID string) error
	DeleteAll(ctx context.Context) (int64, error)

	ToggleUpvote(ctx context.Context, id, userID string) (*entity.Suggestion, error)

	AddComment(ctx context.Context, suggestionID string, c *entity.Comment) (*entity.Suggestion, error)
	// RemoveComment pulls the comment (restricted to authorID when non-empty)
	// and returns the updated suggestion, or nil when nothing matched.
	RemoveComment(ctx context.Context, commentID, authorID string) (*entity.Suggestion, error)
	CommentExists(ctx context.Context, commentID string) (bool, error)
	AddReply(ctx context.Context, commentID string, r *entity.Reply) (*entity.Suggestion, error)
}

// SuggestionIndex is the optional full-text index over suggestions.
type SuggestionIndex interface {
	Index(ctx context.Context, s *entity.Suggestion) error
	Remove(ctx context.Context, id string) error
	RemoveAll(ctx context.Context) error
	Search(ctx context.Context, q string, size int) ([]SearchHit, error)
}

// SearchHit is a single full-text match.
type SearchHit struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Category entity.Category `json:"category"`
	Status   entity.Status   `json:"status"`
	Upvotes  int             `json:"upvotes"`
	Score    float64         `json:"score"`
}
