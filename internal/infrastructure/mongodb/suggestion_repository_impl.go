package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

type SuggestionRepository struct {
	col *mongo.Collection
}

func NewSuggestionRepository(col *mongo.Collection) *SuggestionRepository {
	return &SuggestionRepository{col: col}
}

// parseID treats malformed ids as absent documents.
func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, repository.ErrNotFound
	}
	return oid, nil
}

func afterUpdate() *options.FindOneAndUpdateOptionsBuilder {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// decodeOne maps a single result to an entity; no match becomes ErrNotFound.
func decodeOne(res *mongo.SingleResult) (*entity.Suggestion, error) {
	var doc suggestionDoc
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	s := doc.toEntity()
	return &s, nil
}

func (r *SuggestionRepository) Find(ctx context.Context, q repository.SuggestionQuery) ([]entity.Suggestion, error) {
	cur, err := r.col.Aggregate(ctx, listPipeline(q))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []suggestionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toEntities(docs), nil
}

func (r *SuggestionRepository) Count(ctx context.Context, categories []string) (int64, error) {
	return r.col.CountDocuments(ctx, categoryFilter(categories))
}

func (r *SuggestionRepository) Breakdown(ctx context.Context) (*entity.Breakdown, error) {
	cur, err := r.col.Aggregate(ctx, breakdownPipeline())
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var facets []struct {
		Status []struct {
			ID    string `bson:"_id"`
			Count int    `bson:"count"`
		} `bson:"status"`
		Categories []struct {
			ID string `bson:"_id"`
		} `bson:"categories"`
	}
	if err := cur.All(ctx, &facets); err != nil {
		return nil, err
	}

	out := &entity.Breakdown{Statuses: []entity.StatusCount{}, Categories: []entity.Category{}}
	if len(facets) == 0 {
		return out, nil
	}
	for _, s := range facets[0].Status {
		out.Statuses = append(out.Statuses, entity.StatusCount{Status: entity.Status(s.ID), Count: s.Count})
	}
	for _, c := range facets[0].Categories {
		out.Categories = append(out.Categories, entity.Category(c.ID))
	}
	return out, nil
}

func (r *SuggestionRepository) FindByStatus(ctx context.Context, statuses []entity.Status) ([]entity.Suggestion, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, statusFilter(statuses), opts)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var docs []suggestionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return toEntities(docs), nil
}

func (r *SuggestionRepository) CountByStatus(ctx context.Context, statuses []entity.Status) (map[entity.Status]int, error) {
	cur, err := r.col.Aggregate(ctx, countByStatusPipeline(statuses))
	if err != nil {
		return nil, err
	}
	defer func() { _ = cur.Close(ctx) }()

	var rows []struct {
		ID    string `bson:"_id"`
		Count int    `bson:"count"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	counts := make(map[entity.Status]int, len(rows))
	for _, row := range rows {
		counts[entity.Status(row.ID)] = row.Count
	}
	return counts, nil
}

func (r *SuggestionRepository) GetByID(ctx context.Context, id string) (*entity.Suggestion, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.col.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}))
}

func (r *SuggestionRepository) Create(ctx context.Context, s *entity.Suggestion) error {
	doc := newSuggestionDoc(s)
	doc.ID = bson.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return err
	}
	*s = doc.toEntity()
	return nil
}

func (r *SuggestionRepository) Update(ctx context.Context, id, ownerID string, patch entity.SuggestionPatch) (*entity.Suggestion, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.col.FindOneAndUpdate(ctx, ownedFilter(oid, ownerID), patchUpdate(patch, time.Now().UTC()), afterUpdate()))
}

func (r *SuggestionRepository) Delete(ctx context.Context, id, ownerID string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := r.col.DeleteOne(ctx, ownedFilter(oid, ownerID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *SuggestionRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *SuggestionRepository) ToggleUpvote(ctx context.Context, id, userID string) (*entity.Suggestion, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, toggleUpvoteUpdate(userID), afterUpdate()))
}

func (r *SuggestionRepository) AddComment(ctx context.Context, suggestionID string, c *entity.Comment) (*entity.Suggestion, error) {
	oid, err := parseID(suggestionID)
	if err != nil {
		return nil, err
	}
	doc := commentFromEntity(c)
	update := pushCommentUpdate(doc, time.Now().UTC())
	s, err := decodeOne(r.col.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, update, afterUpdate()))
	if err != nil {
		return nil, err
	}
	c.ID = doc.ID.Hex()
	return s, nil
}

func (r *SuggestionRepository) RemoveComment(ctx context.Context, commentID, authorID string) (*entity.Suggestion, error) {
	oid, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return nil, nil
	}
	update := pullCommentUpdate(oid, time.Now().UTC())
	s, err := decodeOne(r.col.FindOneAndUpdate(ctx, commentFilter(oid, authorID), update, afterUpdate()))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

func (r *SuggestionRepository) CommentExists(ctx context.Context, commentID string) (bool, error) {
	oid, err := bson.ObjectIDFromHex(commentID)
	if err != nil {
		return false, nil
	}
	n, err := r.col.CountDocuments(ctx, commentFilter(oid, ""), options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *SuggestionRepository) AddReply(ctx context.Context, commentID string, reply *entity.Reply) (*entity.Suggestion, error) {
	oid, err := parseID(commentID)
	if err != nil {
		return nil, err
	}
	doc := replyFromEntity(reply)
	update := pushReplyUpdate(doc, time.Now().UTC())
	opts := afterUpdate().SetArrayFilters(replyArrayFilters(oid))
	s, err := decodeOne(r.col.FindOneAndUpdate(ctx, commentFilter(oid, ""), update, opts))
	if err != nil {
		return nil, err
	}
	reply.ID = doc.ID.Hex()
	return s, nil
}

var _ repository.SuggestionRepository = (*SuggestionRepository)(nil)
