package model

// SearchTextRequest is the body of a text index search.
// DefaultSearchTextRequest applies the defaults before binding.
type SearchTextRequest struct {
	Query            string  `json:"query"`
	K                int     `json:"k"`
	Top              int     `json:"top"`
	Filter           string  `json:"filter"`
	TextOnly         bool    `json:"textOnly"`
	Hybrid           bool    `json:"hybrid"`
	Semantic         bool    `json:"semantic"`
	MinRerankerScore float64 `json:"minRerankerScore"`
}

// DefaultSearchTextRequest returns a request pre-filled with the defaults
// used when the caller omits a field.
func DefaultSearchTextRequest() SearchTextRequest {
	return SearchTextRequest{
		Query:            "Pinetree, white, TQX with S in gold",
		K:                3,
		Top:              10,
		Hybrid:           true,
		MinRerankerScore: 2.0,
	}
}

// ImageSearchRequest is the parameter set of an image-driven search against
// a multi-modal index. The vector is produced by the vision endpoint before
// the query is composed.
type ImageSearchRequest struct {
	K               int
	Top             int
	Filter          string
	SemanticRanking bool
}

// ImageSearchResult is one hit of an image-driven search. Unlike text hits
// it carries every scalar field of the document.
type ImageSearchResult struct {
	GolfBallData
	Score         float64  `json:"score"`
	RerankerScore *float64 `json:"rerankerScore,omitempty"`
}

// IndexStatistics reports index size as returned by the engine.
type IndexStatistics struct {
	DocumentCount      int64 `json:"documentCount"`
	VectorIndexSize    int64 `json:"vectorIndexSize"`
	StorageSizeInBytes int64 `json:"storageSizeInBytes"`
}

// FieldInfo describes one schema field in an index-details response.
type FieldInfo struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsSearchable bool   `json:"isSearchable"`
	IsFilterable bool   `json:"isFilterable"`
	IsSortable   bool   `json:"isSortable"`
	IsFacetable  bool   `json:"isFacetable"`
	IsKey        bool   `json:"isKey"`
}

// IndexDetails summarizes an index schema for callers.
type IndexDetails struct {
	Name                   string      `json:"name"`
	Fields                 []FieldInfo `json:"fields"`
	HasVectorSearch        bool        `json:"hasVectorSearch"`
	HasSemanticSearch      bool        `json:"hasSemanticSearch"`
	Vectorizers            []string    `json:"vectorizers"`
	SemanticConfigurations []string    `json:"semanticConfigurations"`
}
