package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	"github.com/oksasatya/feedback-board/pkg/apperror"
	"github.com/oksasatya/feedback-board/pkg/helpers"
)

// SuggestionService owns the suggestion board: listing, CRUD, upvotes and
// the comment thread. Index is optional.
type SuggestionService struct {
	Repo   repo.SuggestionRepository
	Index  repo.SuggestionIndex
	Logger *logrus.Logger
}

func NewSuggestionService(r repo.SuggestionRepository, index repo.SuggestionIndex, logger *logrus.Logger) *SuggestionService {
	return &SuggestionService{Repo: r, Index: index, Logger: logger}
}

// ListParams are the raw listing query values.
type ListParams struct {
	Category string
	Sort     string
	Page     string
}

// SuggestionPage is one page of the listing plus whole-collection facets.
type SuggestionPage struct {
	Suggestions []entity.Suggestion  `json:"suggestions"`
	Count       int64                `json:"count"`
	NumOfPages  int                  `json:"numOfPages"`
	CurrentPage int                  `json:"currentPage"`
	Roadmap     []entity.StatusCount `json:"roadmap"`
	Categories  []entity.Category    `json:"categories"`
}

type CreateSuggestionInput struct {
	Title       string
	Description string
	Status      string
	Category    string
}

type SuggestionPatchInput struct {
	Title       *string
	Description *string
	Status      *string
	Category    *string
}

func (s *SuggestionService) List(ctx context.Context, p ListParams) (*SuggestionPage, error) {
	field, desc := resolveSort(p.Sort)
	q := repo.SuggestionQuery{
		Categories: parseCategories(p.Category),
		SortField:  field,
		Descending: desc,
	}

	count, err := s.Repo.Count(ctx, q.Categories)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	pages := totalPages(count)
	page := clampPage(parsePage(p.Page), pages)

	out := &SuggestionPage{
		Suggestions: []entity.Suggestion{},
		Count:       count,
		NumOfPages:  pages,
		CurrentPage: page,
	}
	if page > 0 {
		q.Skip = pageSkip(page)
		q.Limit = PageSize
		items, err := s.Repo.Find(ctx, q)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		out.Suggestions = items
	}

	breakdown, err := s.Repo.Breakdown(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	out.Roadmap = breakdown.Statuses
	out.Categories = breakdown.Categories
	return out, nil
}

func (s *SuggestionService) Get(ctx context.Context, id string) (*entity.Suggestion, error) {
	sug, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "No suggestion with id %s", id)
	}
	return sug, nil
}

func (s *SuggestionService) Create(ctx context.Context, in CreateSuggestionInput, actor entity.TokenUser) (*entity.Suggestion, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" {
		return nil, apperror.BadRequest("Please provide all values")
	}
	status := entity.StatusSuggestion
	if in.Status != "" {
		status = entity.Status(in.Status)
	}
	category := entity.CategoryFeature
	if in.Category != "" {
		category = entity.Category(in.Category)
	}
	if !status.Valid() {
		return nil, apperror.BadRequest("%s is not a valid status", in.Status)
	}
	if !category.Valid() {
		return nil, apperror.BadRequest("%s is not a valid category", in.Category)
	}

	now := time.Now().UTC()
	sug := &entity.Suggestion{
		Title:       title,
		Description: description,
		Status:      status,
		Category:    category,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, sug); err != nil {
		return nil, apperror.Internal(err)
	}
	suggestionStats.Add("created", 1)
	s.reindex(ctx, sug)
	return sug, nil
}

// Update applies the whitelisted patch. Non-admins can only change their own
// suggestions; the ownership rule is part of the write itself.
func (s *SuggestionService) Update(ctx context.Context, id string, in SuggestionPatchInput, actor entity.TokenUser) (*entity.Suggestion, error) {
	patch, err := toPatch(in)
	if err != nil {
		return nil, err
	}
	sug, err := s.Repo.Update(ctx, id, ownerScope(actor), patch)
	if err != nil {
		return nil, s.classifyMiss(ctx, id, err, "Unauthorized to update suggestion")
	}
	s.reindex(ctx, sug)
	return sug, nil
}

func (s *SuggestionService) Delete(ctx context.Context, id string, actor entity.TokenUser) error {
	if err := s.Repo.Delete(ctx, id, ownerScope(actor)); err != nil {
		return s.classifyMiss(ctx, id, err, "Unauthorized to delete suggestion")
	}
	suggestionStats.Add("deleted", 1)
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "search index remove failed", err, logrus.Fields{"suggestion_id": id})
		}
	}
	return nil
}

func (s *SuggestionService) DeleteAll(ctx context.Context) (int64, error) {
	n, err := s.Repo.DeleteAll(ctx)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	suggestionStats.Add("deleted", n)
	if s.Index != nil {
		if err := s.Index.RemoveAll(ctx); err != nil {
			helpers.LogWarn(s.Logger, "search index clear failed", err, nil)
		}
	}
	return n, nil
}

func (s *SuggestionService) ToggleUpvote(ctx context.Context, id string, actor entity.TokenUser) (*entity.Suggestion, error) {
	sug, err := s.Repo.ToggleUpvote(ctx, id, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "No suggestion with id %s", id)
	}
	suggestionStats.Add("upvote_toggles", 1)
	s.reindex(ctx, sug)
	return sug, nil
}

func (s *SuggestionService) CreateComment(ctx context.Context, suggestionID, content string, actor entity.TokenUser) (*entity.Suggestion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Please provide comment content")
	}
	c := &entity.Comment{
		Content:   content,
		User:      actor.Author(),
		CreatedAt: time.Now().UTC(),
	}
	sug, err := s.Repo.AddComment(ctx, suggestionID, c)
	if err != nil {
		return nil, notFoundOr(err, "No suggestion with id %s", suggestionID)
	}
	suggestionStats.Add("comments", 1)
	return sug, nil
}

// DeleteComment returns the updated suggestion, or nil when no suggestion
// holds the comment.
func (s *SuggestionService) DeleteComment(ctx context.Context, commentID string, actor entity.TokenUser) (*entity.Suggestion, error) {
	authorID := ownerScope(actor)
	sug, err := s.Repo.RemoveComment(ctx, commentID, authorID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if sug == nil && authorID != "" {
		exists, err := s.Repo.CommentExists(ctx, commentID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if exists {
			return nil, apperror.Unauthorized("Unauthorized to delete comment")
		}
	}
	return sug, nil
}

func (s *SuggestionService) CreateReply(ctx context.Context, commentID, content, replyingTo string, actor entity.TokenUser) (*entity.Suggestion, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperror.BadRequest("Please provide reply content")
	}
	r := &entity.Reply{
		Content:    content,
		RepliedOn:  time.Now().UTC(),
		ReplyingTo: strings.TrimSpace(replyingTo),
		User:       actor.Author(),
	}
	sug, err := s.Repo.AddReply(ctx, commentID, r)
	if err != nil {
		return nil, notFoundOr(err, "No suggestion with commentId %s found", commentID)
	}
	suggestionStats.Add("replies", 1)
	return sug, nil
}

// Search queries the full-text index. Without an index it finds nothing.
func (s *SuggestionService) Search(ctx context.Context, q string, size int) ([]repo.SearchHit, error) {
	q = strings.TrimSpace(q)
	if s.Index == nil || q == "" {
		return []repo.SearchHit{}, nil
	}
	hits, err := s.Index.Search(ctx, q, size)
	if err != nil {
		helpers.LogWarn(s.Logger, "search failed", err, logrus.Fields{"query": q})
		return nil, apperror.Unavailable("Search is temporarily unavailable")
	}
	return hits, nil
}

// reindex refreshes the search copy. Failures never fail the request.
func (s *SuggestionService) reindex(ctx context.Context, sug *entity.Suggestion) {
	if s.Index == nil || sug == nil {
		return
	}
	if err := s.Index.Index(ctx, sug); err != nil {
		helpers.LogWarn(s.Logger, "search index failed", err, logrus.Fields{"suggestion_id": sug.ID})
	}
}

// classifyMiss tells an absent suggestion apart from one owned by someone else.
func (s *SuggestionService) classifyMiss(ctx context.Context, id string, err error, forbidden string) error {
	if !errors.Is(err, repo.ErrNotFound) {
		return apperror.Internal(err)
	}
	if _, getErr := s.Repo.GetByID(ctx, id); getErr != nil {
		return notFoundOr(getErr, "No suggestion with id %s", id)
	}
	return apperror.Unauthorized("%s", forbidden)
}

// ownerScope is the user id a write is restricted to; admins are unrestricted.
func ownerScope(actor entity.TokenUser) string {
	if actor.IsAdmin() {
		return ""
	}
	return actor.UserID
}

func toPatch(in SuggestionPatchInput) (entity.SuggestionPatch, error) {
	var p entity.SuggestionPatch
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return p, apperror.BadRequest("Title cannot be empty")
		}
		p.Title = &t
	}
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			return p, apperror.BadRequest("Description cannot be empty")
		}
		p.Description = &d
	}
	if in.Status != nil {
		st := entity.Status(*in.Status)
		if !st.Valid() {
			return p, apperror.BadRequest("%s is not a valid status", *in.Status)
		}
		p.Status = &st
	}
	if in.Category != nil {
		c := entity.Category(*in.Category)
		if !c.Valid() {
			return p, apperror.BadRequest("%s is not a valid category", *in.Category)
		}
		p.Category = &c
	}
	return p, nil
}

// notFoundOr converts ErrNotFound into a 404 with the given message and
// anything else into an internal error.
func notFoundOr(err error, format string, args ...any) error {
	if errors.Is(err, repo.ErrNotFound) {
		return apperror.NotFound(format, args...)
	}
	return apperror.Internal(err)
}
