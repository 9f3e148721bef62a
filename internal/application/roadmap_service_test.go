package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/mocks"
	"github.com/oksasatya/feedback-board/pkg/apperror"
)

func TestRoadmapService_Counts(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("CountByStatus", mock.Anything, entity.RoadmapStatuses).
		Return(map[entity.Status]int{entity.StatusPlanned: 2, entity.StatusLive: 1}, nil)

	got, err := NewRoadmapService(r).Counts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, RoadmapCounts{Planned: 2, InProgress: 0, Live: 1}, got)
	r.AssertExpectations(t)
}

func TestRoadmapService_Full(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("FindByStatus", mock.Anything, entity.RoadmapStatuses).Return([]entity.Suggestion{
		{ID: "3", Status: entity.StatusLive},
		{ID: "2", Status: entity.StatusPlanned},
		{ID: "1", Status: entity.StatusPlanned},
		{ID: "0", Status: entity.StatusSuggestion},
	}, nil)

	board, err := NewRoadmapService(r).Full(context.Background())

	require.NoError(t, err)
	require.Len(t, board.Planned, 2)
	assert.Equal(t, "2", board.Planned[0].ID)
	assert.Equal(t, "1", board.Planned[1].ID)
	assert.Empty(t, board.InProgress)
	assert.NotNil(t, board.InProgress)
	require.Len(t, board.Live, 1)
}

func TestRoadmapService_StoreFailure(t *testing.T) {
	r := new(mocks.MockSuggestionRepository)
	r.On("CountByStatus", mock.Anything, mock.Anything).Return(nil, errors.New("down"))

	_, err := NewRoadmapService(r).Counts(context.Background())
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
}
