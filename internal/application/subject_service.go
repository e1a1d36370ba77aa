package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"
)

// SubjectService suggests subjects from the classes search index.
type SubjectService struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewSubjectService(es *elasticsearch.Client, index string, logger *logrus.Logger) *SubjectService {
	return &SubjectService{ES: es, Index: index, Logger: logger}
}

// Suggest returns up to size distinct subjects starting with prefix, most
// offered first. An empty prefix lists the most offered subjects.
func (s *SubjectService) Suggest(ctx context.Context, prefix string, size int) ([]string, error) {
	if s.ES == nil || s.Index == "" {
		return []string{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}

	query := map[string]any{"match_all": map[string]any{}}
	if p := strings.TrimSpace(prefix); p != "" {
		query = map[string]any{
			"match_phrase_prefix": map[string]any{
				"subject": map[string]any{"query": p},
			},
		}
	}
	body := map[string]any{
		"size":  0,
		"query": query,
		"aggs": map[string]any{
			"subjects": map[string]any{
				"terms": map[string]any{"field": "subject.keyword", "size": size},
			},
		},
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		s.Logger.WithError(err).WithField("prefix", prefix).Warn("subject search failed")
		return nil, fmt.Errorf("%w: %w", ErrStoreFailure, err)
	}
	defer func() { _ = res.Body.Close() }()

	// A missing index only means nothing was indexed yet.
	if res.StatusCode == 404 {
		return []string{}, nil
	}
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).Warn("subject search response error")
		return nil, fmt.Errorf("%w: elasticsearch %s", ErrStoreFailure, res.Status())
	}

	var parsed struct {
		Aggregations struct {
			Subjects struct {
				Buckets []struct {
					Key string `json:"key"`
				} `json:"buckets"`
			} `json:"subjects"`
		} `json:"aggregations"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrStoreFailure, err)
	}

	out := make([]string, 0, len(parsed.Aggregations.Subjects.Buckets))
	for _, bkt := range parsed.Aggregations.Subjects.Buckets {
		out = append(out, bkt.Key)
	}
	return out, nil
}
