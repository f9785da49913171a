package service

import (
	"context"
	"fmt"
	"strings"

	"golf-search-go/internal/model"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"
)

// textSelectFields is the trimmed projection returned by text searches.
var textSelectFields = []string{"id", "manufacturer", "pole_marking", "colour", "seam_marking"}

// imageSelectFields is the full scalar projection returned by image searches.
var imageSelectFields = []string{
	"id", "manufacturer", "usga_lot_num", "pole_marking", "colour", "constCode",
	"ballSpecs", "dimples", "spin", "pole_2", "seam_marking", "imageUrl",
}

// minTextScore is the relevance floor applied to lexical-only results.
const minTextScore = 0.03

// ImageVectorizer turns raw image bytes into an embedding.
type ImageVectorizer interface {
	EmbedImage(ctx context.Context, imageBytes []byte) ([]float32, error)
}

// SearchService runs queries against the golf ball indexes.
type SearchService interface {
	SearchText(ctx context.Context, indexName string, req model.SearchTextRequest) ([]model.GolfBallSummary, error)
	SearchByImage(ctx context.Context, indexName string, imageBytes []byte, req model.ImageSearchRequest) ([]model.ImageSearchResult, error)
}

type searchService struct {
	engine SearchEngine
	vision ImageVectorizer
}

// NewSearchService creates a SearchService.
func NewSearchService(engine SearchEngine, vision ImageVectorizer) SearchService {
	return &searchService{engine: engine, vision: vision}
}

// SearchText composes a query from the request flags, runs it and trims the
// hits to summaries. Results keep the engine's ranking order.
func (s *searchService) SearchText(ctx context.Context, indexName string, req model.SearchTextRequest) ([]model.GolfBallSummary, error) {
	query := search.Query{
		Select: strings.Join(textSelectFields, ","),
		Filter: req.Filter,
		Top:    req.Top,
		Count:  true,
	}

	// A pure vector query omits the lexical clause; textOnly omits the
	// vector clause. Hybrid carries both, and a semantic pass always needs
	// the query text.
	if req.TextOnly || req.Hybrid || req.Semantic {
		q := req.Query
		query.Search = &q
	}
	if !req.TextOnly {
		query.VectorQueries = []search.VectorQuery{
			{Kind: "text", Text: req.Query, Fields: "vectorContent", K: req.K},
		}
	}
	if req.Hybrid || req.Semantic {
		query.QueryType = "semantic"
		query.SemanticConfiguration = semanticConfigName
		query.Captions = "extractive"
		query.Answers = "extractive|count-3"
	}

	hits, err := s.engine.QueryIndex(ctx, indexName, query)
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}

	results := make([]model.GolfBallSummary, 0, len(hits))
	for _, hit := range hits {
		if !passesThreshold(hit, req) {
			continue
		}
		results = append(results, model.GolfBallSummary{
			ID:           stringField(hit.Document, "id"),
			Manufacturer: stringField(hit.Document, "manufacturer"),
			PoleMarking:  stringField(hit.Document, "pole_marking"),
			Colour:       stringField(hit.Document, "colour"),
			SeamMarking:  stringField(hit.Document, "seam_marking"),
			Score:        hit.Score,
		})
	}
	log.Infof("[SearchService] text search on %q returned %d of %d hits", indexName, len(results), len(hits))
	return results, nil
}

// passesThreshold applies the relevance floor: the plain score for lexical
// queries; otherwise the reranker score, falling back to the base score for
// hits the semantic pass did not rescore.
func passesThreshold(hit search.Hit, req model.SearchTextRequest) bool {
	if req.TextOnly {
		return hit.Score >= minTextScore
	}
	effective := hit.Score
	if hit.RerankerScore != nil {
		effective = *hit.RerankerScore
	}
	return effective >= req.MinRerankerScore
}

// SearchByImage embeds the image, runs a vector query against the imageVector
// field and maps the hits to full records. A hit that fails to map is dropped
// without affecting the rest.
func (s *searchService) SearchByImage(ctx context.Context, indexName string, imageBytes []byte, req model.ImageSearchRequest) ([]model.ImageSearchResult, error) {
	vector, err := s.vision.EmbedImage(ctx, imageBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize query image: %w", err)
	}

	query := search.Query{
		Select: strings.Join(imageSelectFields, ","),
		Filter: req.Filter,
		Top:    req.Top,
		Count:  true,
		VectorQueries: []search.VectorQuery{
			{Kind: "vector", Vector: vector, Fields: "imageVector", K: req.K},
		},
	}
	if req.SemanticRanking {
		query.QueryType = "semantic"
		query.SemanticConfiguration = semanticConfigName
	}

	hits, err := s.engine.QueryIndex(ctx, indexName, query)
	if err != nil {
		return nil, fmt.Errorf("image search failed: %w", err)
	}

	results := make([]model.ImageSearchResult, 0, len(hits))
	for _, hit := range hits {
		result, err := mapImageHit(hit)
		if err != nil {
			log.Warnf("[SearchService] dropping malformed hit: %v", err)
			continue
		}
		results = append(results, result)
	}
	return results, nil
}

// mapImageHit converts a raw hit into a typed record. Missing string fields
// degrade to empty values; a dimples value that is present but not numeric
// fails this hit only.
func mapImageHit(hit search.Hit) (model.ImageSearchResult, error) {
	dimples := 0
	if raw, ok := hit.Document["dimples"]; ok && raw != nil {
		f, ok := raw.(float64)
		if !ok {
			return model.ImageSearchResult{}, fmt.Errorf("document %q has non-numeric dimples value %v",
				stringField(hit.Document, "id"), raw)
		}
		dimples = int(f)
	}

	return model.ImageSearchResult{
		GolfBallData: model.GolfBallData{
			ID:           stringField(hit.Document, "id"),
			Manufacturer: stringField(hit.Document, "manufacturer"),
			USGALotNum:   stringField(hit.Document, "usga_lot_num"),
			PoleMarking:  stringField(hit.Document, "pole_marking"),
			Colour:       stringField(hit.Document, "colour"),
			ConstCode:    stringField(hit.Document, "constCode"),
			BallSpecs:    stringField(hit.Document, "ballSpecs"),
			Dimples:      dimples,
			Spin:         stringField(hit.Document, "spin"),
			Pole2:        stringField(hit.Document, "pole_2"),
			SeamMarking:  stringField(hit.Document, "seam_marking"),
			ImageURL:     stringField(hit.Document, "imageUrl"),
		},
		Score:         hit.Score,
		RerankerScore: hit.RerankerScore,
	}, nil
}

// stringField reads a string value from a raw document, degrading to "" when
// the field is absent or not a string.
func stringField(doc map[string]interface{}, name string) string {
	if v, ok := doc[name].(string); ok {
		return v
	}
	return ""
}
