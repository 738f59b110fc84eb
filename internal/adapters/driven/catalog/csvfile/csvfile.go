// Package csvfile loads the assessment catalog and evaluation data from
// CSV files.
//
// Header matching is case-insensitive and tolerates the column name
// variants that appear in catalog exports (title vs name, url vs link,
// and so on). Rows missing an ID get a generated one so they can still
// be addressed by the index.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/rudryyy/SHL/internal/core/domain"
	"github.com/rudryyy/SHL/internal/core/ports/driven"
)

var _ driven.CatalogSource = (*Source)(nil)

// Column name variants accepted for each assessment field.
var columnAliases = map[string][]string{
	"id":           {"id", "assessment_id", "slug"},
	"title":        {"title", "name", "assessment_name"},
	"url":          {"url", "link", "assessment_url"},
	"description":  {"description", "desc", "details"},
	"category":     {"category"},
	"test_type":    {"test_type", "type", "test_types"},
	"level":        {"level", "job_level", "job_levels"},
	"duration_min": {"duration_min", "duration", "assessment_length", "length"},
	"language":     {"language", "languages"},
	"tags":         {"tags", "keywords"},
}

// Columns accepted as the query text in a test query file, in preference order.
var queryColumns = []string{"query", "queries", "jd", "job_description", "text"}

// Source loads assessments from a catalog CSV file.
type Source struct {
	path string
}

// NewSource creates a catalog source reading from the given CSV path.
func NewSource(path string) *Source {
	return &Source{path: path}
}

// Load reads and parses the full catalog. Row order is preserved.
func (s *Source) Load(ctx context.Context) ([]domain.Assessment, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	cols := mapColumns(header)

	if _, ok := cols["title"]; !ok {
		return nil, fmt.Errorf("catalog %s: %w: no title column", s.path, domain.ErrInvalidInput)
	}
	if _, ok := cols["url"]; !ok {
		return nil, fmt.Errorf("catalog %s: %w: no url column", s.path, domain.ErrInvalidInput)
	}

	var assessments []domain.Assessment
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		a := domain.Assessment{
			ID:          field(record, cols, "id"),
			Title:       field(record, cols, "title"),
			URL:         field(record, cols, "url"),
			Description: field(record, cols, "description"),
			Category:    field(record, cols, "category"),
			TestType:    field(record, cols, "test_type"),
			Level:       field(record, cols, "level"),
			DurationMin: field(record, cols, "duration_min"),
			Language:    field(record, cols, "language"),
		}
		if tags := field(record, cols, "tags"); tags != "" {
			a.Tags = strings.Join(splitTags(tags), ",")
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		assessments = append(assessments, a)
	}

	return assessments, nil
}

// LoadLabeledQueries reads an evaluation file with query and relevant_url
// columns. Rows sharing the same query text are grouped into one labeled
// query, preserving first-seen order.
func LoadLabeledQueries(path string) ([]domain.LabeledQuery, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open labeled queries: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read labeled queries header: %w", err)
	}

	queryCol, urlCol := -1, -1
	for i, h := range header {
		switch normalizeHeader(h) {
		case "query", "queries", "jd", "job_description":
			if queryCol < 0 {
				queryCol = i
			}
		case "relevant_url", "url", "relevant_urls", "link":
			if urlCol < 0 {
				urlCol = i
			}
		}
	}
	if queryCol < 0 || urlCol < 0 {
		return nil, fmt.Errorf("labeled queries %s: %w: need query and relevant_url columns", path, domain.ErrInvalidInput)
	}

	var order []string
	grouped := make(map[string][]string)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read labeled query row: %w", err)
		}
		if queryCol >= len(record) || urlCol >= len(record) {
			continue
		}
		query := strings.TrimSpace(record[queryCol])
		url := strings.TrimSpace(record[urlCol])
		if query == "" {
			continue
		}
		if _, seen := grouped[query]; !seen {
			order = append(order, query)
		}
		if url != "" {
			grouped[query] = append(grouped[query], url)
		} else if _, seen := grouped[query]; !seen {
			grouped[query] = nil
		}
	}

	labeled := make([]domain.LabeledQuery, 0, len(order))
	for _, q := range order {
		labeled = append(labeled, domain.LabeledQuery{Query: q, RelevantURLs: grouped[q]})
	}
	return labeled, nil
}

// LoadTestQueries reads a query file and returns the query texts in file
// order. The query column is auto-detected from common header names; a
// single-column file without a recognized header is treated as headerless.
func LoadTestQueries(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open queries: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read queries header: %w", err)
	}

	queryCol := -1
	for _, want := range queryColumns {
		for i, h := range header {
			if normalizeHeader(h) == want {
				queryCol = i
				break
			}
		}
		if queryCol >= 0 {
			break
		}
	}

	var queries []string
	if queryCol < 0 {
		if len(header) != 1 {
			return nil, fmt.Errorf("queries %s: %w: no query column found", path, domain.ErrInvalidInput)
		}
		// Headerless single-column file: the first row is already a query.
		queryCol = 0
		if q := strings.TrimSpace(header[0]); q != "" {
			queries = append(queries, q)
		}
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read query row: %w", err)
		}
		if queryCol >= len(record) {
			continue
		}
		if q := strings.TrimSpace(record[queryCol]); q != "" {
			queries = append(queries, q)
		}
	}

	return queries, nil
}

// mapColumns resolves the header into field -> column index.
func mapColumns(header []string) map[string]int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	cols := make(map[string]int)
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			for i, h := range normalized {
				if h == alias {
					cols[field] = i
					break
				}
			}
			if _, ok := cols[field]; ok {
				break
			}
		}
	}
	return cols
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToLower(h))
	h = strings.TrimPrefix(h, "\uFEFF")
	return strings.ReplaceAll(h, " ", "_")
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func splitTags(raw string) []string {
	sep := ","
	if strings.Contains(raw, "|") {
		sep = "|"
	} else if strings.Contains(raw, ";") {
		sep = ";"
	}
	parts := strings.Split(raw, sep)
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
