package application

import (
	"strconv"
	"strings"

	"github.com/oksasatya/feedback-board/internal/domain/repository"
)

// PageSize is the fixed number of suggestions per listing page.
const PageSize = 5

var sortableFields = map[string]bool{
	"createdAt": true,
	"updatedAt": true,
	"upvotes":   true,
	"title":     true,
	"status":    true,
	"category":  true,
	repository.SortByComments: true,
}

// parseCategories splits the c query value, dropping blanks.
func parseCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// resolveSort maps the s query value to a field and direction. A leading
// "-" means descending; unknown fields fall back to newest first.
func resolveSort(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	desc := strings.HasPrefix(raw, "-")
	field := strings.TrimPrefix(raw, "-")
	if !sortableFields[field] {
		return "createdAt", true
	}
	return field, desc
}

// parsePage reads the p query value; anything that is not a positive integer is page 1.
func parsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func totalPages(count int64) int {
	return int((count + PageSize - 1) / PageSize)
}

// clampPage keeps page inside [1, pages]. With no pages the result is 0.
func clampPage(page, pages int) int {
	if pages == 0 {
		return 0
	}
	if page > pages {
		return pages
	}
	if page < 1 {
		return 1
	}
	return page
}

func pageSkip(page int) int64 {
	if page <= 1 {
		return 0
	}
	return int64(page-1) * PageSize
}
