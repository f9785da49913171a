package service

import (
	"context"
	"os"
	"testing"

	"golf-search-go/internal/config"
	"golf-search-go/internal/model"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	log.Init("error", "json", "")
	os.Exit(m.Run())
}

// fakeEngine is a scripted SearchEngine shared by the service tests.
type fakeEngine struct {
	createdIndex *search.Index
	deletedName  string
	queriedName  string
	lastQuery    search.Query

	indexNames []string
	index      *search.Index
	stats      *search.Statistics
	hits       []search.Hit
	err        error
}

func (f *fakeEngine) CreateOrUpdateIndex(_ context.Context, index search.Index) error {
	f.createdIndex = &index
	return f.err
}

func (f *fakeEngine) DeleteIndex(_ context.Context, indexName string) error {
	f.deletedName = indexName
	return f.err
}

func (f *fakeEngine) ListIndexNames(context.Context) ([]string, error) {
	return f.indexNames, f.err
}

func (f *fakeEngine) GetIndex(_ context.Context, indexName string) (*search.Index, error) {
	f.queriedName = indexName
	return f.index, f.err
}

func (f *fakeEngine) GetStatistics(context.Context, string) (*search.Statistics, error) {
	return f.stats, f.err
}

func (f *fakeEngine) UploadBatch(_ context.Context, indexName string, docs []interface{}) error {
	return f.err
}

func (f *fakeEngine) QueryIndex(_ context.Context, indexName string, query search.Query) ([]search.Hit, error) {
	f.queriedName = indexName
	f.lastQuery = query
	return f.hits, f.err
}

func testOpenAIConfig() config.OpenAIConfig {
	return config.OpenAIConfig{
		Endpoint:            "https://openai.example.com",
		APIKey:              "key",
		EmbeddingModel:      "text-embedding-ada-002",
		EmbeddingDeployment: "ada-deploy",
		EmbeddingDimensions: "1536",
	}
}

func fieldByName(t *testing.T, fields []search.Field, name string) search.Field {
	t.Helper()
	for _, f := range fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("field %q not found", name)
	return search.Field{}
}

func TestBuildTextSchema(t *testing.T) {
	index, err := BuildTextSchema("golfballs", testOpenAIConfig())
	require.NoError(t, err)

	assert.Equal(t, "golfballs", index.Name)
	assert.Len(t, index.Fields, 13)

	key := fieldByName(t, index.Fields, "id")
	assert.True(t, key.Key)

	vec := fieldByName(t, index.Fields, "vectorContent")
	assert.Equal(t, search.TypeSingleCollection, vec.Type)
	assert.Equal(t, 1536, vec.Dimensions)
	assert.Equal(t, "golf-vector-profile", vec.VectorSearchProfile)

	require.NotNil(t, index.VectorSearch)
	require.Len(t, index.VectorSearch.Algorithms, 1)
	algo := index.VectorSearch.Algorithms[0]
	assert.Equal(t, "golfHnsw", algo.Name)
	assert.Equal(t, "hnsw", algo.Kind)
	require.NotNil(t, algo.HnswParameters)
	assert.Equal(t, 4, algo.HnswParameters.M)
	assert.Equal(t, 400, algo.HnswParameters.EfConstruction)
	assert.Equal(t, 500, algo.HnswParameters.EfSearch)
	assert.Equal(t, "cosine", algo.HnswParameters.Metric)

	require.Len(t, index.VectorSearch.Profiles, 1)
	profile := index.VectorSearch.Profiles[0]
	assert.Equal(t, "golf-vector-profile", profile.Name)
	assert.Equal(t, "golfHnsw", profile.Algorithm)
	assert.Equal(t, "golfOpenAIVectorizer", profile.Vectorizer)

	require.Len(t, index.VectorSearch.Vectorizers, 1)
	vectorizer := index.VectorSearch.Vectorizers[0]
	assert.Equal(t, "golfOpenAIVectorizer", vectorizer.Name)
	assert.Equal(t, "azureOpenAI", vectorizer.Kind)
	require.NotNil(t, vectorizer.OpenAIParameters)
	assert.Equal(t, "https://openai.example.com", vectorizer.OpenAIParameters.ResourceURI)
	assert.Equal(t, "ada-deploy", vectorizer.OpenAIParameters.DeploymentID)

	require.NotNil(t, index.Semantic)
	require.Len(t, index.Semantic.Configurations, 1)
	semantic := index.Semantic.Configurations[0]
	assert.Equal(t, "golf-semantic-config", semantic.Name)
	assert.Equal(t, "manufacturer", semantic.PrioritizedFields.TitleField.FieldName)
	require.Len(t, semantic.PrioritizedFields.ContentFields, 2)
	assert.Equal(t, "pole_marking", semantic.PrioritizedFields.ContentFields[0].FieldName)
	assert.Equal(t, "seam_marking", semantic.PrioritizedFields.ContentFields[1].FieldName)
}

func TestBuildTextSchemaRejectsBadDimensions(t *testing.T) {
	cfg := testOpenAIConfig()
	cfg.EmbeddingDimensions = "not-a-number"

	_, err := BuildTextSchema("golfballs", cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid embedding dimensions")
}

func TestBuildTextImageSchema(t *testing.T) {
	index := BuildTextImageSchema("golfballs-mm", testOpenAIConfig())

	assert.Equal(t, "golfballs-mm", index.Name)
	assert.Len(t, index.Fields, 14)

	textVec := fieldByName(t, index.Fields, "textVector")
	assert.Equal(t, 1536, textVec.Dimensions)
	assert.Equal(t, "text-vector-profile", textVec.VectorSearchProfile)

	imageVec := fieldByName(t, index.Fields, "imageVector")
	assert.Equal(t, 1024, imageVec.Dimensions)
	assert.Equal(t, "image-vector-profile", imageVec.VectorSearchProfile)

	require.NotNil(t, index.VectorSearch)
	require.Len(t, index.VectorSearch.Profiles, 2)
	textProfile := index.VectorSearch.Profiles[0]
	assert.Equal(t, "text-vector-profile", textProfile.Name)
	assert.Equal(t, "golfOpenAITextVectorizer", textProfile.Vectorizer)

	// The image profile has no vectorizer: only the ingestion pipeline
	// writes image vectors.
	imageProfile := index.VectorSearch.Profiles[1]
	assert.Equal(t, "image-vector-profile", imageProfile.Name)
	assert.Empty(t, imageProfile.Vectorizer)

	require.NotNil(t, index.Semantic)
	content := index.Semantic.Configurations[0].PrioritizedFields.ContentFields
	require.Len(t, content, 4)
	assert.Equal(t, "pole_marking", content[0].FieldName)
	assert.Equal(t, "pole_2", content[1].FieldName)
	assert.Equal(t, "colour", content[2].FieldName)
	assert.Equal(t, "seam_marking", content[3].FieldName)
}

func TestCreateIndexSubmitsSchema(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewIndexService(engine, testOpenAIConfig())

	err := svc.CreateIndex(context.Background(), "golfballs-mm", model.ModeTextImage)
	require.NoError(t, err)
	require.NotNil(t, engine.createdIndex)
	assert.Equal(t, "golfballs-mm", engine.createdIndex.Name)
	assert.Len(t, engine.createdIndex.Fields, 14)
}

func TestCreateIndexFailsFastOnBadDimensions(t *testing.T) {
	cfg := testOpenAIConfig()
	cfg.EmbeddingDimensions = ""
	engine := &fakeEngine{}
	svc := NewIndexService(engine, cfg)

	err := svc.CreateIndex(context.Background(), "golfballs", model.ModeText)
	require.Error(t, err)
	assert.Nil(t, engine.createdIndex)
}

func TestGetIndexDetailsMapsSchema(t *testing.T) {
	schema, err := BuildTextSchema("golfballs", testOpenAIConfig())
	require.NoError(t, err)
	engine := &fakeEngine{index: &schema}
	svc := NewIndexService(engine, testOpenAIConfig())

	details, err := svc.GetIndexDetails(context.Background(), "golfballs")
	require.NoError(t, err)
	assert.Equal(t, "golfballs", details.Name)
	assert.Len(t, details.Fields, 13)
	assert.True(t, details.HasVectorSearch)
	assert.True(t, details.HasSemanticSearch)
	assert.Equal(t, []string{"golfOpenAIVectorizer"}, details.Vectorizers)
	assert.Equal(t, []string{"golf-semantic-config"}, details.SemanticConfigurations)
}

func TestGetStatisticsMapsEngineValues(t *testing.T) {
	engine := &fakeEngine{stats: &search.Statistics{DocumentCount: 42, VectorIndexSize: 1024, StorageSize: 4096}}
	svc := NewIndexService(engine, testOpenAIConfig())

	stats, err := svc.GetStatistics(context.Background(), "golfballs")
	require.NoError(t, err)
	assert.Equal(t, int64(42), stats.DocumentCount)
	assert.Equal(t, int64(1024), stats.VectorIndexSize)
	assert.Equal(t, int64(4096), stats.StorageSizeInBytes)
}
