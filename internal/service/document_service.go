package service

import (
	"context"
	"fmt"
	"strings"

	"golf-search-go/pkg/search"
)

// defaultMaxResults caps a document listing when the caller gives no limit.
const defaultMaxResults = 1000

// DocumentService reads documents back out of an index.
type DocumentService interface {
	ListDocuments(ctx context.Context, indexName string, maxResults int) ([]map[string]interface{}, error)
}

type documentService struct {
	engine SearchEngine
}

// NewDocumentService creates a DocumentService.
func NewDocumentService(engine SearchEngine) DocumentService {
	return &documentService{engine: engine}
}

// ListDocuments returns up to maxResults documents with every non-vector
// field. Vector fields are excluded from the projection: they are large and
// meaningless to a human reader.
func (s *documentService) ListDocuments(ctx context.Context, indexName string, maxResults int) ([]map[string]interface{}, error) {
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	index, err := s.engine.GetIndex(ctx, indexName)
	if err != nil {
		return nil, err
	}

	selectFields := make([]string, 0, len(index.Fields))
	for _, f := range index.Fields {
		if f.Type == search.TypeSingleCollection {
			continue
		}
		selectFields = append(selectFields, f.Name)
	}
	if len(selectFields) == 0 {
		return nil, fmt.Errorf("index %q has no non-vector fields", indexName)
	}

	all := "*"
	hits, err := s.engine.QueryIndex(ctx, indexName, search.Query{
		Search: &all,
		Select: strings.Join(selectFields, ","),
		Top:    maxResults,
		Count:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	docs := make([]map[string]interface{}, 0, len(hits))
	for _, hit := range hits {
		doc := make(map[string]interface{}, len(hit.Document))
		for k, v := range hit.Document {
			if strings.HasPrefix(k, "@search.") {
				continue
			}
			doc[k] = v
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
