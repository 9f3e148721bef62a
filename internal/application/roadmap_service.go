package application

import (
	"context"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	repo "github.com/oksasatya/feedback-board/internal/domain/repository"
	"github.com/oksasatya/feedback-board/pkg/apperror"
)

type RoadmapService struct {
	Repo repo.SuggestionRepository
}

func NewRoadmapService(r repo.SuggestionRepository) *RoadmapService {
	return &RoadmapService{Repo: r}
}

type RoadmapCounts struct {
	Planned    int `json:"planned"`
	InProgress int `json:"inProgress"`
	Live       int `json:"live"`
}

type RoadmapBoard struct {
	Planned    []entity.Suggestion `json:"planned"`
	InProgress []entity.Suggestion `json:"inProgress"`
	Live       []entity.Suggestion `json:"live"`
}

// Counts returns the number of suggestions in each roadmap column.
func (s *RoadmapService) Counts(ctx context.Context) (RoadmapCounts, error) {
	counts, err := s.Repo.CountByStatus(ctx, entity.RoadmapStatuses)
	if err != nil {
		return RoadmapCounts{}, apperror.Internal(err)
	}
	return RoadmapCounts{
		Planned:    counts[entity.StatusPlanned],
		InProgress: counts[entity.StatusInProgress],
		Live:       counts[entity.StatusLive],
	}, nil
}

// Full returns the roadmap columns, newest first within each.
func (s *RoadmapService) Full(ctx context.Context) (RoadmapBoard, error) {
	items, err := s.Repo.FindByStatus(ctx, entity.RoadmapStatuses)
	if err != nil {
		return RoadmapBoard{}, apperror.Internal(err)
	}
	board := RoadmapBoard{
		Planned:    []entity.Suggestion{},
		InProgress: []entity.Suggestion{},
		Live:       []entity.Suggestion{},
	}
	for _, it := range items {
		switch it.Status {
		case entity.StatusPlanned:
			board.Planned = append(board.Planned, it)
		case entity.StatusInProgress:
			board.InProgress = append(board.InProgress, it)
		case entity.StatusLive:
			board.Live = append(board.Live, it)
		}
	}
	return board, nil
}
