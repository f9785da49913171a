package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golf-search-go/internal/config"
	"golf-search-go/internal/handler"
	"golf-search-go/internal/middleware"
	"golf-search-go/internal/pipeline"
	"golf-search-go/internal/repository"
	"golf-search-go/internal/service"
	"golf-search-go/internal/source"
	"golf-search-go/pkg/database"
	"golf-search-go/pkg/embedding"
	"golf-search-go/pkg/kafka"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/search"
	"golf-search-go/pkg/storage"
	"golf-search-go/pkg/vision"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to the config file")
	flag.Parse()

	config.Init(*configPath)
	cfg := config.Conf

	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	engine := search.NewClient(cfg.Search)
	embedder, err := embedding.NewClient(cfg.OpenAI)
	if err != nil {
		log.Fatal("failed to create embedding client", err)
	}
	visionClient := vision.NewClient(cfg.Vision)

	database.InitRedis(cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	jobStatusRepo := repository.NewJobStatusRepository(database.RDB)

	loader, sink := buildSource(cfg)

	processor := pipeline.NewProcessor(loader, embedder, visionClient, engine, sink, jobStatusRepo, cfg.Ingest.Workers)

	kafka.InitProducer(cfg.Kafka)
	go kafka.StartConsumer(cfg.Kafka, processor)

	indexService := service.NewIndexService(engine, cfg.OpenAI)
	searchService := service.NewSearchService(engine, visionClient)
	documentService := service.NewDocumentService(engine)
	embeddingService := service.NewEmbeddingService(jobStatusRepo)

	indexHandler := handler.NewIndexHandler(indexService)
	searchHandler := handler.NewSearchHandler(searchService)
	documentHandler := handler.NewDocumentHandler(documentService)
	embeddingHandler := handler.NewEmbeddingHandler(embeddingService)

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger())

	api := router.Group("/api/v1")
	{
		api.GET("/indexes", indexHandler.ListIndexes)
		api.GET("/indexes/:name", indexHandler.GetIndex)
		api.GET("/indexes/:name/stats", indexHandler.GetStatistics)
		api.GET("/indexes/:name/documents", documentHandler.ListDocuments)
		api.POST("/indexes/:name/search", searchHandler.SearchText)
		api.POST("/indexes/:name/search/image", searchHandler.SearchByImage)
		api.GET("/jobs/:id", embeddingHandler.GetJobStatus)

		admin := api.Group("", middleware.AdminAuth(cfg.Admin.APIKey))
		{
			admin.POST("/indexes", indexHandler.CreateIndex)
			admin.DELETE("/indexes/:name", indexHandler.DeleteIndex)
			admin.POST("/indexes/:name/embed", embeddingHandler.StartJob)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Infof("server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", err)
	}
	log.Info("server exited")
}

// buildSource selects the record loader and the matching failure log sink
// from configuration.
func buildSource(cfg config.Config) (source.Loader, pipeline.FailureSink) {
	switch cfg.Source.Kind {
	case "minio":
		storage.InitMinIO(cfg.MinIO)
		return source.NewObjectLoader(cfg.Source.Bucket, cfg.Source.ObjectName),
			pipeline.ObjectSink{Bucket: cfg.Source.Bucket}
	case "mysql":
		database.InitMySQL(cfg.Database.MySQL.DSN)
		return source.NewDBLoader(repository.NewGolfBallRepository(database.DB)),
			pipeline.FileSink{}
	default:
		return source.NewFileLoader(cfg.Source.CSVFile), pipeline.FileSink{}
	}
}
