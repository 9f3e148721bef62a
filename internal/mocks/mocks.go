// Package mocks holds testify mocks of the repository ports shared by
// service and handler tests.
package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSuggestionRepository is a mock implementation of SuggestionRepository.
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) suggestion(args mock.Arguments) (*entity.Suggestion, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Find(ctx context.Context, q repo.SuggestionQuery) ([]entity.Suggestion, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) Count(ctx context.Context, categories []string) (int64, error) {
	args := m.Called(ctx, categories)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) Breakdown(ctx context.Context) (*entity.Breakdown, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Breakdown), args.Error(1)
}

func (m *MockSuggestionRepository) FindByStatus(ctx context.Context, statuses []entity.Status) ([]entity.Suggestion, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Suggestion), args.Error(1)
}

func (m *MockSuggestionRepository) CountByStatus(ctx context.Context, statuses []entity.Status) (map[entity.Status]int, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[entity.Status]int), args.Error(1)
}

func (m *MockSuggestionRepository) GetByID(ctx context.Context, id string) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, id))
}

func (m *MockSuggestionRepository) Create(ctx context.Context, s *entity.Suggestion) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSuggestionRepository) Update(ctx context.Context, id, ownerID string, patch entity.SuggestionPatch) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, id, ownerID, patch))
}

func (m *MockSuggestionRepository) Delete(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockSuggestionRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSuggestionRepository) ToggleUpvote(ctx context.Context, id, userID string) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, id, userID))
}

func (m *MockSuggestionRepository) AddComment(ctx context.Context, suggestionID string, c *entity.Comment) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, suggestionID, c))
}

func (m *MockSuggestionRepository) RemoveComment(ctx context.Context, commentID, authorID string) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, commentID, authorID))
}

func (m *MockSuggestionRepository) CommentExists(ctx context.Context, commentID string) (bool, error) {
	args := m.Called(ctx, commentID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSuggestionRepository) AddReply(ctx context.Context, commentID string, r *entity.Reply) (*entity.Suggestion, error) {
	return m.suggestion(m.Called(ctx, commentID, r))
}

// MockSuggestionIndex is a mock implementation of SuggestionIndex.
type MockSuggestionIndex struct {
	mock.Mock
}

func (m *MockSuggestionIndex) Index(ctx context.Context, s *entity.Suggestion) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSuggestionIndex) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockSuggestionIndex) RemoveAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSuggestionIndex) Search(ctx context.Context, q string, size int) ([]repo.SearchHit, error) {
	args := m.Called(ctx, q, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.SearchHit), args.Error(1)
}

// MockAvatarStore is a mock implementation of application.AvatarStore.
type MockAvatarStore struct {
	mock.Mock
}

func (m *MockAvatarStore) Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	args := m.Called(ctx, objectPath, contentType, r)
	return args.String(0), args.Error(1)
}
