package search

// Field is one index field definition.
type Field struct {
	Name                string `json:"name"`
	Type                string `json:"type"`
	Key                 bool   `json:"key,omitempty"`
	Searchable          bool   `json:"searchable"`
	Filterable          bool   `json:"filterable"`
	Sortable            bool   `json:"sortable"`
	Facetable           bool   `json:"facetable"`
	Dimensions          int    `json:"dimensions,omitempty"`
	VectorSearchProfile string `json:"vectorSearchProfile,omitempty"`
}

// Field type names used by the index schemas.
const (
	TypeString           = "Edm.String"
	TypeInt32            = "Edm.Int32"
	TypeSingleCollection = "Collection(Edm.Single)"
)

// HnswParameters tunes the approximate nearest-neighbor graph.
type HnswParameters struct {
	M              int    `json:"m"`
	EfConstruction int    `json:"efConstruction"`
	EfSearch       int    `json:"efSearch"`
	Metric         string `json:"metric"`
}

// Algorithm names one vector-search algorithm configuration.
type Algorithm struct {
	Name           string          `json:"name"`
	Kind           string          `json:"kind"`
	HnswParameters *HnswParameters `json:"hnswParameters,omitempty"`
}

// Profile binds a vector field to an algorithm and, optionally, a vectorizer.
// An empty Vectorizer means the field's vectors are supplied by the caller.
type Profile struct {
	Name       string `json:"name"`
	Algorithm  string `json:"algorithm"`
	Vectorizer string `json:"vectorizer,omitempty"`
}

// OpenAIParameters configures a text vectorizer backed by an Azure OpenAI
// embedding deployment.
type OpenAIParameters struct {
	ResourceURI  string `json:"resourceUri"`
	DeploymentID string `json:"deploymentId"`
	ModelName    string `json:"modelName"`
	APIKey       string `json:"apiKey,omitempty"`
}

// Vectorizer registers an embedding service the engine may call itself.
type Vectorizer struct {
	Name             string            `json:"name"`
	Kind             string            `json:"kind"`
	OpenAIParameters *OpenAIParameters `json:"azureOpenAIParameters,omitempty"`
}

// VectorSearch is the vector configuration block of an index.
type VectorSearch struct {
	Algorithms  []Algorithm  `json:"algorithms"`
	Profiles    []Profile    `json:"profiles"`
	Vectorizers []Vectorizer `json:"vectorizers,omitempty"`
}

// SemanticField names a field used by the semantic reranker.
type SemanticField struct {
	FieldName string `json:"fieldName"`
}

// PrioritizedFields orders the fields fed to the semantic reranker.
type PrioritizedFields struct {
	TitleField    SemanticField   `json:"titleField"`
	ContentFields []SemanticField `json:"prioritizedContentFields"`
}

// SemanticConfiguration is one named semantic setup.
type SemanticConfiguration struct {
	Name              string            `json:"name"`
	PrioritizedFields PrioritizedFields `json:"prioritizedFields"`
}

// SemanticSearch is the semantic configuration block of an index.
type SemanticSearch struct {
	Configurations []SemanticConfiguration `json:"configurations"`
}

// Index is a full declarative index schema.
type Index struct {
	Name         string          `json:"name"`
	Fields       []Field         `json:"fields"`
	VectorSearch *VectorSearch   `json:"vectorSearch,omitempty"`
	Semantic     *SemanticSearch `json:"semantic,omitempty"`
}

// Statistics reports index size.
type Statistics struct {
	DocumentCount   int64 `json:"documentCount"`
	VectorIndexSize int64 `json:"vectorIndexSize"`
	StorageSize     int64 `json:"storageSize"`
}

// VectorQuery is one vector clause of a query. Kind "text" lets the engine
// embed Text with the index's own vectorizer; kind "vector" carries a
// precomputed embedding.
type VectorQuery struct {
	Kind   string    `json:"kind"`
	Text   string    `json:"text,omitempty"`
	Vector []float32 `json:"vector,omitempty"`
	Fields string    `json:"fields"`
	K      int       `json:"k"`
}

// Query is the request body of a document search. Search is a pointer so a
// pure vector query can omit the lexical clause entirely.
type Query struct {
	Search                *string       `json:"search,omitempty"`
	Filter                string        `json:"filter,omitempty"`
	Select                string        `json:"select,omitempty"`
	Top                   int           `json:"top,omitempty"`
	Count                 bool          `json:"count,omitempty"`
	VectorQueries         []VectorQuery `json:"vectorQueries,omitempty"`
	QueryType             string        `json:"queryType,omitempty"`
	SemanticConfiguration string        `json:"semanticConfiguration,omitempty"`
	Captions              string        `json:"captions,omitempty"`
	Answers               string        `json:"answers,omitempty"`
}

// Hit is one raw search result. RerankerScore is nil when the engine did not
// run a semantic pass for this query.
type Hit struct {
	Score         float64
	RerankerScore *float64
	Document      map[string]interface{}
}
