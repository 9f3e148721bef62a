package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
)

type authorDoc struct {
	UserID    string `bson:"userId,omitempty"`
	Username  string `bson:"username"`
	Firstname string `bson:"firstname"`
	Lastname  string `bson:"lastname"`
	Image     string `bson:"image"`
}

type replyDoc struct {
	ID         bson.ObjectID `bson:"_id"`
	Content    string        `bson:"content"`
	RepliedOn  time.Time     `bson:"repliedOn"`
	ReplyingTo string        `bson:"replyingTo"`
	User       authorDoc     `bson:"user"`
}

type commentDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Content   string        `bson:"content"`
	User      authorDoc     `bson:"user"`
	CreatedAt time.Time     `bson:"createdAt"`
	Replies   []replyDoc    `bson:"replies"`
}

type suggestionDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Upvotes     int           `bson:"upvotes"`
	Status      string        `bson:"status"`
	Category    string        `bson:"category"`
	UpvotedBy   []string      `bson:"upvotedBy"`
	CreatedBy   string        `bson:"createdBy"`
	Comments    []commentDoc  `bson:"comments"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func authorFromEntity(a entity.Author) authorDoc {
	return authorDoc{UserID: a.UserID, Username: a.Username, Firstname: a.Firstname, Lastname: a.Lastname, Image: a.Image}
}

func (a authorDoc) toEntity() entity.Author {
	return entity.Author{UserID: a.UserID, Username: a.Username, Firstname: a.Firstname, Lastname: a.Lastname, Image: a.Image}
}

func replyFromEntity(r *entity.Reply) replyDoc {
	return replyDoc{
		ID:         bson.NewObjectID(),
		Content:    r.Content,
		RepliedOn:  r.RepliedOn,
		ReplyingTo: r.ReplyingTo,
		User:       authorFromEntity(r.User),
	}
}

func commentFromEntity(c *entity.Comment) commentDoc {
	return commentDoc{
		ID:        bson.NewObjectID(),
		Content:   c.Content,
		User:      authorFromEntity(c.User),
		CreatedAt: c.CreatedAt,
		Replies:   []replyDoc{},
	}
}

// newSuggestionDoc builds the document inserted for s. Array fields are
// written as empty arrays, never null, so array operators apply to them.
func newSuggestionDoc(s *entity.Suggestion) suggestionDoc {
	upvotedBy := s.UpvotedBy
	if upvotedBy == nil {
		upvotedBy = []string{}
	}
	return suggestionDoc{
		Title:       s.Title,
		Description: s.Description,
		Upvotes:     len(upvotedBy),
		Status:      string(s.Status),
		Category:    string(s.Category),
		UpvotedBy:   upvotedBy,
		CreatedBy:   s.CreatedBy,
		Comments:    []commentDoc{},
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (d *suggestionDoc) toEntity() entity.Suggestion {
	s := entity.Suggestion{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Upvotes:     d.Upvotes,
		Status:      entity.Status(d.Status),
		Category:    entity.Category(d.Category),
		UpvotedBy:   d.UpvotedBy,
		CreatedBy:   d.CreatedBy,
		Comments:    make([]entity.Comment, 0, len(d.Comments)),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
	if s.UpvotedBy == nil {
		s.UpvotedBy = []string{}
	}
	for _, c := range d.Comments {
		comment := entity.Comment{
			ID:        c.ID.Hex(),
			Content:   c.Content,
			User:      c.User.toEntity(),
			CreatedAt: c.CreatedAt,
			Replies:   make([]entity.Reply, 0, len(c.Replies)),
		}
		for _, r := range c.Replies {
			comment.Replies = append(comment.Replies, entity.Reply{
				ID:         r.ID.Hex(),
				Content:    r.Content,
				RepliedOn:  r.RepliedOn,
				ReplyingTo: r.ReplyingTo,
				User:       r.User.toEntity(),
			})
		}
		s.Comments = append(s.Comments, comment)
	}
	return s
}

func toEntities(docs []suggestionDoc) []entity.Suggestion {
	out := make([]entity.Suggestion, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out
}
