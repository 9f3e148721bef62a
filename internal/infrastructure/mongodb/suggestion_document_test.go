package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

func TestNewSuggestionDoc_ArraysNeverNull(t *testing.T) {
	doc := newSuggestionDoc(&entity.Suggestion{Title: "Dark mode", Status: entity.StatusSuggestion, Category: entity.CategoryUI})

	assert.NotNil(t, doc.UpvotedBy)
	assert.NotNil(t, doc.Comments)
	assert.Equal(t, 0, doc.Upvotes)
}

func TestNewSuggestionDoc_UpvotesFollowVoters(t *testing.T) {
	doc := newSuggestionDoc(&entity.Suggestion{UpvotedBy: []string{"a", "b"}, Upvotes: 7})
	assert.Equal(t, 2, doc.Upvotes)
}

func TestCommentFromEntity_AssignsFreshID(t *testing.T) {
	c := &entity.Comment{Content: "nice", User: entity.Author{Username: "jd"}}
	a := commentFromEntity(c)
	b := commentFromEntity(c)

	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.ID.IsZero())
	assert.NotNil(t, a.Replies)
	assert.Equal(t, "jd", a.User.Username)
}

func TestSuggestionDoc_ToEntity(t *testing.T) {
	sid := bson.NewObjectID()
	cid := bson.NewObjectID()
	rid := bson.NewObjectID()
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	doc := suggestionDoc{
		ID:          sid,
		Title:       "Dark mode",
		Description: "Please",
		Upvotes:     1,
		Status:      "planned",
		Category:    "ui",
		UpvotedBy:   []string{"u2"},
		CreatedBy:   "u1",
		Comments: []commentDoc{{
			ID:      cid,
			Content: "yes",
			User:    authorDoc{UserID: "u2", Username: "jane"},
			Replies: []replyDoc{{ID: rid, Content: "agreed", RepliedOn: now, ReplyingTo: "jane", User: authorDoc{Username: "bob"}}},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s := doc.toEntity()

	assert.Equal(t, sid.Hex(), s.ID)
	assert.Equal(t, entity.StatusPlanned, s.Status)
	assert.Equal(t, entity.CategoryUI, s.Category)
	require.Len(t, s.Comments, 1)
	assert.Equal(t, cid.Hex(), s.Comments[0].ID)
	assert.Equal(t, "u2", s.Comments[0].User.UserID)
	require.Len(t, s.Comments[0].Replies, 1)
	assert.Equal(t, rid.Hex(), s.Comments[0].Replies[0].ID)
	assert.Equal(t, "jane", s.Comments[0].Replies[0].ReplyingTo)
}

func TestSuggestionDoc_ToEntity_NilArrays(t *testing.T) {
	doc := suggestionDoc{ID: bson.NewObjectID()}
	s := doc.toEntity()
	assert.NotNil(t, s.UpvotedBy)
	assert.NotNil(t, s.Comments)
}

func TestParseID(t *testing.T) {
	_, err := parseID("not-an-object-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	oid := bson.NewObjectID()
	got, err := parseID(oid.Hex())
	require.NoError(t, err)
	assert.Equal(t, oid, got)
}
