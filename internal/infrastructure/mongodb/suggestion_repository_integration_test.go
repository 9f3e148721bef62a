package mongodb

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
)

// newLiveRepository connects to MONGO_URI and returns a repository over a
// throwaway database. Tests using it are skipped when MONGO_URI is unset.
func newLiveRepository(t *testing.T) *SuggestionRepository {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := Connect(ctx, uri)
	require.NoError(t, err)
	db := client.Database("feedback_it_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	col := db.Collection("suggestions")
	require.NoError(t, EnsureSuggestionIndexes(ctx, col))
	return NewSuggestionRepository(col)
}

func seedSuggestion(t *testing.T, r *SuggestionRepository) *entity.Suggestion {
	t.Helper()
	now := time.Now().UTC()
	s := &entity.Suggestion{
		Title:       "Dark mode",
		Description: "Please",
		Category:    entity.CategoryUI,
		Status:      entity.StatusSuggestion,
		CreatedBy:   "owner",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, r.Create(context.Background(), s))
	require.NotEmpty(t, s.ID)
	return s
}

func TestSuggestionRepository_ToggleUpvoteRoundTrip(t *testing.T) {
	r := newLiveRepository(t)
	ctx := context.Background()
	s := seedSuggestion(t, r)

	steps := []struct {
		user string
		want []string
	}{
		{"u1", []string{"u1"}},
		{"u2", []string{"u1", "u2"}},
		{"u1", []string{"u2"}},
		{"u2", []string{}},
	}
	for _, step := range steps {
		got, err := r.ToggleUpvote(ctx, s.ID, step.user)
		require.NoError(t, err)
		assert.Equal(t, step.want, got.UpvotedBy)
		assert.Equal(t, len(got.UpvotedBy), got.Upvotes)
	}
}

func TestSuggestionRepository_CommentsNewestFirst(t *testing.T) {
	r := newLiveRepository(t)
	ctx := context.Background()
	s := seedSuggestion(t, r)

	first := &entity.Comment{Content: "first", User: entity.Author{UserID: "u1", Username: "jd"}, CreatedAt: time.Now().UTC()}
	_, err := r.AddComment(ctx, s.ID, first)
	require.NoError(t, err)
	second := &entity.Comment{Content: "second", User: entity.Author{UserID: "u2", Username: "ann"}, CreatedAt: time.Now().UTC()}
	got, err := r.AddComment(ctx, s.ID, second)
	require.NoError(t, err)

	require.Len(t, got.Comments, 2)
	assert.Equal(t, "second", got.Comments[0].Content)
	assert.Equal(t, second.ID, got.Comments[0].ID)
	assert.Equal(t, "first", got.Comments[1].Content)

	reply := &entity.Reply{Content: "agreed", ReplyingTo: "jd", User: entity.Author{UserID: "u2"}, RepliedOn: time.Now().UTC()}
	got, err = r.AddReply(ctx, first.ID, reply)
	require.NoError(t, err)
	assert.Empty(t, got.Comments[0].Replies)
	require.Len(t, got.Comments[1].Replies, 1)
	assert.Equal(t, "agreed", got.Comments[1].Replies[0].Content)

	// Someone else's comment stays put.
	none, err := r.RemoveComment(ctx, first.ID, "u2")
	require.NoError(t, err)
	assert.Nil(t, none)
	exists, err := r.CommentExists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	got, err = r.RemoveComment(ctx, first.ID, "u1")
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, "second", got.Comments[0].Content)
}
