package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

const commentsCountField = "comments_count"

func categoryFilter(categories []string) bson.D {
	if len(categories) == 0 {
		return bson.D{}
	}
	return bson.D{{Key: "category", Value: bson.D{{Key: "$in", Value: categories}}}}
}

func statusFilter(statuses []entity.Status) bson.D {
	values := make(bson.A, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	return bson.D{{Key: "status", Value: bson.D{{Key: "$in", Value: values}}}}
}

// arrayOrEmpty guards array expressions against documents missing the field.
func arrayOrEmpty(path string) bson.D {
	return bson.D{{Key: "$ifNull", Value: bson.A{path, bson.A{}}}}
}

// listPipeline builds filter, sort and window stages for a listing query.
func listPipeline(q repository.SuggestionQuery) mongo.Pipeline {
	pipe := mongo.Pipeline{}
	if len(q.Categories) > 0 {
		pipe = append(pipe, bson.D{{Key: "$match", Value: categoryFilter(q.Categories)}})
	}

	order := 1
	if q.Descending {
		order = -1
	}
	field := q.SortField
	if field == "" {
		field = "createdAt"
	}
	if field == repository.SortByComments {
		pipe = append(pipe, bson.D{{Key: "$addFields", Value: bson.D{
			{Key: commentsCountField, Value: bson.D{{Key: "$size", Value: arrayOrEmpty("$comments")}}},
		}}})
		field = commentsCountField
	}
	pipe = append(pipe, bson.D{{Key: "$sort", Value: bson.D{{Key: field, Value: order}, {Key: "_id", Value: order}}}})

	if q.Skip > 0 {
		pipe = append(pipe, bson.D{{Key: "$skip", Value: q.Skip}})
	}
	if q.Limit > 0 {
		pipe = append(pipe, bson.D{{Key: "$limit", Value: q.Limit}})
	}
	return pipe
}

// breakdownPipeline counts statuses and collects distinct categories over
// the whole collection in one pass.
func breakdownPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$facet", Value: bson.D{
			{Key: "status", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
			{Key: "categories", Value: bson.A{
				bson.D{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$category"}}}},
				bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
			}},
		}}},
	}
}

func countByStatusPipeline(statuses []entity.Status) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: statusFilter(statuses)}},
		{{Key: "$group", Value: bson.D{{Key: "_id", Value: "$status"}, {Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}}}}},
	}
}

// toggleUpvoteUpdate flips userID's membership in upvotedBy and recomputes
// upvotes from the set size, all inside one update.
func toggleUpvoteUpdate(userID string) mongo.Pipeline {
	voters := arrayOrEmpty("$upvotedBy")
	uid := bson.D{{Key: "$literal", Value: userID}}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "upvotedBy", Value: bson.D{{Key: "$cond", Value: bson.A{
				bson.D{{Key: "$in", Value: bson.A{uid, voters}}},
				bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: voters},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", uid}}}},
				}}},
				bson.D{{Key: "$concatArrays", Value: bson.A{voters, bson.A{uid}}}},
			}}}},
		}}},
		{{Key: "$set", Value: bson.D{
			{Key: "upvotes", Value: bson.D{{Key: "$size", Value: "$upvotedBy"}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
}

func patchUpdate(p entity.SuggestionPatch, now time.Time) bson.D {
	set := bson.D{}
	if p.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *p.Title})
	}
	if p.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *p.Description})
	}
	if p.Status != nil {
		set = append(set, bson.E{Key: "status", Value: string(*p.Status)})
	}
	if p.Category != nil {
		set = append(set, bson.E{Key: "category", Value: string(*p.Category)})
	}
	set = append(set, bson.E{Key: "updatedAt", Value: now})
	return bson.D{{Key: "$set", Value: set}}
}

func ownedFilter(id bson.ObjectID, ownerID string) bson.D {
	filter := bson.D{{Key: "_id", Value: id}}
	if ownerID != "" {
		filter = append(filter, bson.E{Key: "createdBy", Value: ownerID})
	}
	return filter
}

func commentFilter(commentID bson.ObjectID, authorID string) bson.D {
	if authorID == "" {
		return bson.D{{Key: "comments._id", Value: commentID}}
	}
	return bson.D{{Key: "comments", Value: bson.D{{Key: "$elemMatch", Value: bson.D{
		{Key: "_id", Value: commentID},
		{Key: "user.userId", Value: authorID},
	}}}}}
}

// pushCommentUpdate prepends c so comments stay newest first.
func pushCommentUpdate(c commentDoc, now time.Time) bson.D {
	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "comments", Value: bson.D{
			{Key: "$each", Value: bson.A{c}},
			{Key: "$position", Value: 0},
		}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

func pullCommentUpdate(commentID bson.ObjectID, now time.Time) bson.D {
	return bson.D{
		{Key: "$pull", Value: bson.D{{Key: "comments", Value: bson.D{{Key: "_id", Value: commentID}}}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

// pushReplyUpdate appends r to the replies of the comment matched by the
// "t" array filter from replyArrayFilters.
func pushReplyUpdate(r replyDoc, now time.Time) bson.D {
	return bson.D{
		{Key: "$push", Value: bson.D{{Key: "comments.$[t].replies", Value: r}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
}

func replyArrayFilters(commentID bson.ObjectID) []any {
	return []any{bson.D{{Key: "t._id", Value: commentID}}}
}
