package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	es "github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/feedback-board/internal/domain/entity"
	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

const (
	requestTimeout = 3 * time.Second
	defaultSize    = 10
	maxSize        = 50
)

// SuggestionIndex keeps a searchable copy of suggestion titles and descriptions.
type SuggestionIndex struct {
	client *es.Client
	index  string
}

func NewSuggestionIndex(client *es.Client, index string) *SuggestionIndex {
	return &SuggestionIndex{client: client, index: index}
}

type suggestionSource struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	Upvotes     int    `json:"upvotes"`
	CreatedAt   string `json:"created_at"`
}

func sourceOf(s *entity.Suggestion) suggestionSource {
	return suggestionSource{
		Title:       s.Title,
		Description: s.Description,
		Category:    string(s.Category),
		Status:      string(s.Status),
		Upvotes:     s.Upvotes,
		CreatedAt:   s.CreatedAt.Format(time.RFC3339Nano),
	}
}

func (i *SuggestionIndex) Index(ctx context.Context, s *entity.Suggestion) error {
	b, err := json.Marshal(sourceOf(s))
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: i.index, DocumentID: s.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return responseErr(res, false)
}

// Remove deletes a single document. A missing document is not an error.
func (i *SuggestionIndex) Remove(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.DeleteRequest{Index: i.index, DocumentID: id}
	res, err := req.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return responseErr(res, true)
}

func (i *SuggestionIndex) RemoveAll(ctx context.Context) error {
	b, _ := json.Marshal(map[string]any{"query": map[string]any{"match_all": map[string]any{}}})

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.DeleteByQueryRequest{Index: []string{i.index}, Body: bytes.NewReader(b)}
	res, err := req.Do(c, i.client)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	return responseErr(res, true)
}

// Search runs a multi_match query over title, description and category.
func (i *SuggestionIndex) Search(ctx context.Context, q string, size int) ([]repository.SearchHit, error) {
	b, err := json.Marshal(searchBody(q, size))
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.client.Search(
		i.client.Search.WithContext(c),
		i.client.Search.WithIndex(i.index),
		i.client.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode == http.StatusNotFound {
		return []repository.SearchHit{}, nil
	}
	if err := responseErr(res, false); err != nil {
		return nil, err
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	return parsed.hits(), nil
}

func searchBody(q string, size int) map[string]any {
	if size <= 0 || size > maxSize {
		size = defaultSize
	}
	return map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string           `json:"_id"`
			Score  float64          `json:"_score"`
			Source suggestionSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (r searchResponse) hits() []repository.SearchHit {
	out := make([]repository.SearchHit, 0, len(r.Hits.Hits))
	for _, h := range r.Hits.Hits {
		out = append(out, repository.SearchHit{
			ID:       h.ID,
			Title:    h.Source.Title,
			Category: entity.Category(h.Source.Category),
			Status:   entity.Status(h.Source.Status),
			Upvotes:  h.Source.Upvotes,
			Score:    h.Score,
		})
	}
	return out
}

func responseErr(res *esapi.Response, allowNotFound bool) error {
	if !res.IsError() {
		return nil
	}
	if allowNotFound && res.StatusCode == http.StatusNotFound {
		return nil
	}
	return fmt.Errorf("elasticsearch: %s", res.Status())
}

var _ repository.SuggestionIndex = (*SuggestionIndex)(nil)
