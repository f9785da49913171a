// Package service implements the business logic behind the handlers.
package service

import (
	"context"

	"golf-search-go/internal/config"
	"golf-search-go/internal/model"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"
)

// Names baked into the index schemas. Uploaded documents and stored queries
// reference these, so they are fixed identifiers, not suggestions.
const (
	hnswAlgorithmName      = "golfHnsw"
	vectorProfileName      = "golf-vector-profile"
	textVectorProfileName  = "text-vector-profile"
	imageVectorProfileName = "image-vector-profile"
	openAIVectorizerName   = "golfOpenAIVectorizer"
	textVectorizerName     = "golfOpenAITextVectorizer"
	semanticConfigName     = "golf-semantic-config"
)

// Vector dimensions of the multi-modal index. The text side matches the
// ada-002 embedding space, the image side the vision retrieval model.
const (
	textVectorDimensions  = 1536
	imageVectorDimensions = 1024
)

// SearchEngine is the engine surface the services depend on. *search.Client
// satisfies it.
type SearchEngine interface {
	CreateOrUpdateIndex(ctx context.Context, index search.Index) error
	DeleteIndex(ctx context.Context, indexName string) error
	ListIndexNames(ctx context.Context) ([]string, error)
	GetIndex(ctx context.Context, indexName string) (*search.Index, error)
	GetStatistics(ctx context.Context, indexName string) (*search.Statistics, error)
	UploadBatch(ctx context.Context, indexName string, docs []interface{}) error
	QueryIndex(ctx context.Context, indexName string, query search.Query) ([]search.Hit, error)
}

// IndexService manages index schemas on the engine.
type IndexService interface {
	CreateIndex(ctx context.Context, name string, mode model.IndexMode) error
	DeleteIndex(ctx context.Context, name string) error
	ListIndexNames(ctx context.Context) ([]string, error)
	GetIndexDetails(ctx context.Context, name string) (*model.IndexDetails, error)
	GetStatistics(ctx context.Context, name string) (*model.IndexStatistics, error)
}

type indexService struct {
	engine SearchEngine
	openai config.OpenAIConfig
}

// NewIndexService creates an IndexService.
func NewIndexService(engine SearchEngine, openai config.OpenAIConfig) IndexService {
	return &indexService{engine: engine, openai: openai}
}

func (s *indexService) CreateIndex(ctx context.Context, name string, mode model.IndexMode) error {
	var (
		index search.Index
		err   error
	)
	switch mode {
	case model.ModeTextImage:
		index = BuildTextImageSchema(name, s.openai)
	default:
		index, err = BuildTextSchema(name, s.openai)
		if err != nil {
			return err
		}
	}

	if err := s.engine.CreateOrUpdateIndex(ctx, index); err != nil {
		return err
	}
	log.Infof("[IndexService] index %q ready, mode: %s", name, mode)
	return nil
}

func (s *indexService) DeleteIndex(ctx context.Context, name string) error {
	return s.engine.DeleteIndex(ctx, name)
}

func (s *indexService) ListIndexNames(ctx context.Context) ([]string, error) {
	return s.engine.ListIndexNames(ctx)
}

func (s *indexService) GetIndexDetails(ctx context.Context, name string) (*model.IndexDetails, error) {
	index, err := s.engine.GetIndex(ctx, name)
	if err != nil {
		return nil, err
	}

	details := &model.IndexDetails{
		Name:                   index.Name,
		Fields:                 make([]model.FieldInfo, 0, len(index.Fields)),
		Vectorizers:            []string{},
		SemanticConfigurations: []string{},
	}
	for _, f := range index.Fields {
		details.Fields = append(details.Fields, model.FieldInfo{
			Name:         f.Name,
			Type:         f.Type,
			IsSearchable: f.Searchable,
			IsFilterable: f.Filterable,
			IsSortable:   f.Sortable,
			IsFacetable:  f.Facetable,
			IsKey:        f.Key,
		})
	}
	if index.VectorSearch != nil {
		details.HasVectorSearch = true
		for _, v := range index.VectorSearch.Vectorizers {
			details.Vectorizers = append(details.Vectorizers, v.Name)
		}
	}
	if index.Semantic != nil && len(index.Semantic.Configurations) > 0 {
		details.HasSemanticSearch = true
		for _, c := range index.Semantic.Configurations {
			details.SemanticConfigurations = append(details.SemanticConfigurations, c.Name)
		}
	}
	return details, nil
}

func (s *indexService) GetStatistics(ctx context.Context, name string) (*model.IndexStatistics, error) {
	stats, err := s.engine.GetStatistics(ctx, name)
	if err != nil {
		return nil, err
	}
	return &model.IndexStatistics{
		DocumentCount:      stats.DocumentCount,
		VectorIndexSize:    stats.VectorIndexSize,
		StorageSizeInBytes: stats.StorageSize,
	}, nil
}

// scalarFields returns the field definitions shared by both index shapes.
func scalarFields() []search.Field {
	return []search.Field{
		{Name: "id", Type: search.TypeString, Key: true, Filterable: true, Sortable: true},
		{Name: "manufacturer", Type: search.TypeString, Searchable: true, Filterable: true, Sortable: true},
		{Name: "usga_lot_num", Type: search.TypeString, Searchable: true, Filterable: true},
		{Name: "pole_marking", Type: search.TypeString, Searchable: true},
		{Name: "colour", Type: search.TypeString, Searchable: true, Filterable: true, Facetable: true},
		{Name: "constCode", Type: search.TypeString, Filterable: true},
		{Name: "ballSpecs", Type: search.TypeString, Searchable: true},
		{Name: "dimples", Type: search.TypeInt32, Filterable: true, Sortable: true, Facetable: true},
		{Name: "spin", Type: search.TypeString, Filterable: true},
		{Name: "pole_2", Type: search.TypeString, Searchable: true},
		{Name: "seam_marking", Type: search.TypeString, Searchable: true},
		{Name: "imageUrl", Type: search.TypeString},
	}
}

// hnswAlgorithm is the shared approximate-nearest-neighbor configuration.
func hnswAlgorithm() search.Algorithm {
	return search.Algorithm{
		Name: hnswAlgorithmName,
		Kind: "hnsw",
		HnswParameters: &search.HnswParameters{
			M:              4,
			EfConstruction: 400,
			EfSearch:       500,
			Metric:         "cosine",
		},
	}
}

func openAIVectorizer(name string, cfg config.OpenAIConfig) search.Vectorizer {
	return search.Vectorizer{
		Name: name,
		Kind: "azureOpenAI",
		OpenAIParameters: &search.OpenAIParameters{
			ResourceURI:  cfg.Endpoint,
			DeploymentID: cfg.EmbeddingDeployment,
			ModelName:    cfg.EmbeddingModel,
			APIKey:       cfg.APIKey,
		},
	}
}

// BuildTextSchema assembles the single-modality index: the scalar fields plus
// one vectorContent field whose dimension comes from configuration. A
// non-numeric dimension fails here, before anything reaches the engine.
func BuildTextSchema(name string, cfg config.OpenAIConfig) (search.Index, error) {
	dims, err := cfg.Dimensions()
	if err != nil {
		return search.Index{}, err
	}

	fields := append(scalarFields(), search.Field{
		Name:                "vectorContent",
		Type:                search.TypeSingleCollection,
		Searchable:          true,
		Dimensions:          dims,
		VectorSearchProfile: vectorProfileName,
	})

	return search.Index{
		Name:   name,
		Fields: fields,
		VectorSearch: &search.VectorSearch{
			Algorithms: []search.Algorithm{hnswAlgorithm()},
			Profiles: []search.Profile{
				{Name: vectorProfileName, Algorithm: hnswAlgorithmName, Vectorizer: openAIVectorizerName},
			},
			Vectorizers: []search.Vectorizer{openAIVectorizer(openAIVectorizerName, cfg)},
		},
		Semantic: &search.SemanticSearch{
			Configurations: []search.SemanticConfiguration{
				{
					Name: semanticConfigName,
					PrioritizedFields: search.PrioritizedFields{
						TitleField: search.SemanticField{FieldName: "manufacturer"},
						ContentFields: []search.SemanticField{
							{FieldName: "pole_marking"},
							{FieldName: "seam_marking"},
						},
					},
				},
			},
		},
	}, nil
}

// BuildTextImageSchema assembles the multi-modal index: the scalar fields
// plus a textVector field served by an engine-side vectorizer and an
// imageVector field filled only by the ingestion pipeline, which is why the
// image profile carries no vectorizer.
func BuildTextImageSchema(name string, cfg config.OpenAIConfig) search.Index {
	fields := append(scalarFields(),
		search.Field{
			Name:                "textVector",
			Type:                search.TypeSingleCollection,
			Searchable:          true,
			Dimensions:          textVectorDimensions,
			VectorSearchProfile: textVectorProfileName,
		},
		search.Field{
			Name:                "imageVector",
			Type:                search.TypeSingleCollection,
			Searchable:          true,
			Dimensions:          imageVectorDimensions,
			VectorSearchProfile: imageVectorProfileName,
		},
	)

	return search.Index{
		Name:   name,
		Fields: fields,
		VectorSearch: &search.VectorSearch{
			Algorithms: []search.Algorithm{hnswAlgorithm()},
			Profiles: []search.Profile{
				{Name: textVectorProfileName, Algorithm: hnswAlgorithmName, Vectorizer: textVectorizerName},
				{Name: imageVectorProfileName, Algorithm: hnswAlgorithmName},
			},
			Vectorizers: []search.Vectorizer{openAIVectorizer(textVectorizerName, cfg)},
		},
		Semantic: &search.SemanticSearch{
			Configurations: []search.SemanticConfiguration{
				{
					Name: semanticConfigName,
					PrioritizedFields: search.PrioritizedFields{
						TitleField: search.SemanticField{FieldName: "manufacturer"},
						ContentFields: []search.SemanticField{
							{FieldName: "pole_marking"},
							{FieldName: "pole_2"},
							{FieldName: "colour"},
							{FieldName: "seam_marking"},
						},
					},
				},
			},
		},
	}
}
