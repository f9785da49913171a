// Package pipeline implements the bulk embedding load.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golf-search-go/internal/model"
	"golf-search-go/internal/repository"
	"golf-search-go/internal/source"
	"golf-search-go/pkg/embedding"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/tasks"

	"golang.org/x/sync/errgroup"
)

// defaultWorkers bounds concurrent in-flight embedding calls so the
// upstream endpoints are not flooded.
const defaultWorkers = 8

// Indexer is the index upload boundary.
type Indexer interface {
	UploadBatch(ctx context.Context, indexName string, docs []interface{}) error
}

// ImageEmbedder resolves an image reference to its embedding.
type ImageEmbedder interface {
	EmbedImageURL(ctx context.Context, url string) ([]float32, error)
}

// FailureSink persists the failure log. Writes are advisory: a sink error
// never fails the job.
type FailureSink interface {
	WriteLog(ctx context.Context, location string, content []byte) error
}

// FailedBall is one row that dropped out of the success path.
type FailedBall struct {
	Ball model.GolfBallData
	Err  string
}

// Result summarizes one embedding job.
type Result struct {
	Succeeded int
	Failed    []FailedBall
}

// Processor runs embedding jobs: load, embed with per-row failure
// isolation, upload survivors in one batch, log the rest.
type Processor struct {
	loader        source.Loader
	embedder      embedding.Client
	vision        ImageEmbedder
	indexer       Indexer
	sink          FailureSink
	jobStatusRepo repository.JobStatusRepository
	workers       int
}

// NewProcessor creates a Processor. workers <= 0 selects the default bound.
func NewProcessor(
	loader source.Loader,
	embedder embedding.Client,
	vision ImageEmbedder,
	indexer Indexer,
	sink FailureSink,
	jobStatusRepo repository.JobStatusRepository,
	workers int,
) *Processor {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &Processor{
		loader:        loader,
		embedder:      embedder,
		vision:        vision,
		indexer:       indexer,
		sink:          sink,
		jobStatusRepo: jobStatusRepo,
		workers:       workers,
	}
}

// Process consumes a queued embedding job and records its status.
func (p *Processor) Process(ctx context.Context, task tasks.EmbeddingJobTask) error {
	status := model.JobStatus{
		JobID:     task.JobID,
		IndexName: task.IndexName,
		Mode:      task.Mode,
		Status:    model.JobStatusRunning,
	}
	if err := p.jobStatusRepo.Save(ctx, status); err != nil {
		log.Warnf("[Processor] failed to record job status: %v", err)
	}

	result, err := p.Run(ctx, task.IndexName, model.IndexMode(task.Mode))
	status.Succeeded = result.Succeeded
	status.Failed = len(result.Failed)
	if err != nil {
		status.Status = model.JobStatusFailed
		status.Error = err.Error()
	} else {
		status.Status = model.JobStatusCompleted
	}
	if saveErr := p.jobStatusRepo.Save(context.Background(), status); saveErr != nil {
		log.Warnf("[Processor] failed to record job status: %v", saveErr)
	}
	return err
}

// Run executes one bulk load into indexName. One failing row never aborts
// the batch; a source that yields no rows at all does, before any embedding
// call is made.
func (p *Processor) Run(ctx context.Context, indexName string, mode model.IndexMode) (Result, error) {
	log.Infof("[Processor] starting embedding job, index: %s, mode: %s", indexName, mode)

	balls, loaderFailed, err := p.loader.Load(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(balls) == 0 && len(loaderFailed) == 0 {
		return Result{}, fmt.Errorf("no golf ball data found in source")
	}

	var mu sync.Mutex
	failed := make([]FailedBall, 0, len(loaderFailed))
	for _, fr := range loaderFailed {
		failed = append(failed, FailedBall{Ball: fr.Ball, Err: fr.Err})
	}
	succeeded := make([]interface{}, 0, len(balls))

	g := new(errgroup.Group)
	g.SetLimit(p.workers)
	for _, ball := range balls {
		ball := ball
		g.Go(func() error {
			// Cancellation stops new embedding calls; rows already
			// collected keep their outcome.
			if ctx.Err() != nil {
				return nil
			}
			doc, err := p.embedBall(ctx, ball, mode)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Errorf("[Processor] row failed (manufacturer: %s): %v", ball.Manufacturer, err)
				failed = append(failed, FailedBall{Ball: ball, Err: err.Error()})
				return nil
			}
			succeeded = append(succeeded, doc)
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Succeeded: len(succeeded), Failed: failed}

	if ctx.Err() != nil {
		p.writeFailureLog(failed)
		return result, ctx.Err()
	}

	if len(succeeded) > 0 {
		if err := p.indexer.UploadBatch(ctx, indexName, succeeded); err != nil {
			p.writeFailureLog(failed)
			return result, fmt.Errorf("failed to upload batch: %w", err)
		}
		log.Infof("[Processor] indexed %d golf ball records", len(succeeded))
	}

	p.writeFailureLog(failed)
	log.Infof("[Processor] embedding job finished, succeeded: %d, failed: %d", len(succeeded), len(failed))
	return result, nil
}

// embedBall produces the document for one row in the given mode.
func (p *Processor) embedBall(ctx context.Context, ball model.GolfBallData, mode model.IndexMode) (interface{}, error) {
	switch mode {
	case model.ModeText:
		vector, err := p.embedder.CreateEmbedding(ctx, embeddingTextV1(ball))
		if err != nil {
			return nil, err
		}
		return model.GolfBallText{GolfBallData: ball, VectorContent: vector}, nil

	case model.ModeTextImage:
		textVector, err := p.embedder.CreateEmbedding(ctx, embeddingTextV2(ball))
		if err != nil {
			return nil, err
		}
		doc := model.GolfBallTextImage{
			GolfBallData: ball,
			TextVector:   textVector,
			// Empty, not nil: "no source image" is a terminal state the
			// index stores as a zero-length vector.
			ImageVector: []float32{},
		}
		if ball.ImageURL != "" {
			imageVector, err := p.vision.EmbedImageURL(ctx, ball.ImageURL)
			if err != nil {
				return nil, err
			}
			doc.ImageVector = imageVector
		}
		return doc, nil

	default:
		return nil, fmt.Errorf("unknown index mode %q", mode)
	}
}

// The textual templates below determine embedding semantics and are part of
// the contract; the Color/Colour spelling difference between the two modes
// is inherited and deliberate.

func embeddingTextV1(ball model.GolfBallData) string {
	return fmt.Sprintf("Manufacturer: %s, Pole Marking: %s, Color: %s, Seam Marking: %s",
		ball.Manufacturer, ball.PoleMarking, ball.Colour, ball.SeamMarking)
}

func embeddingTextV2(ball model.GolfBallData) string {
	return fmt.Sprintf("Manufacturer: %s, Pole Marking: %s, Colour: %s, Seam Marking: %s",
		ball.Manufacturer, ball.PoleMarking, ball.Colour, ball.SeamMarking)
}

// writeFailureLog persists failed rows for operator inspection. Best effort
// only; it runs on a fresh context so it still works while unwinding from
// cancellation.
func (p *Processor) writeFailureLog(failed []FailedBall) {
	if len(failed) == 0 {
		return
	}

	var b strings.Builder
	for _, f := range failed {
		fmt.Fprintf(&b, "Time: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC"))
		b.WriteString("Golf Ball Details:\n")
		fmt.Fprintf(&b, "  Manufacturer: %s\n", f.Ball.Manufacturer)
		fmt.Fprintf(&b, "  Pole Marking: %s\n", f.Ball.PoleMarking)
		fmt.Fprintf(&b, "  Color: %s\n", f.Ball.Colour)
		fmt.Fprintf(&b, "  Seam Marking: %s\n", f.Ball.SeamMarking)
		fmt.Fprintf(&b, "Error: %s\n", f.Err)
		b.WriteString("----------------------------------------\n")
	}

	location := p.loader.FailureLogLocation()
	if err := p.sink.WriteLog(context.Background(), location, []byte(b.String())); err != nil {
		log.Warnf("[Processor] failed to write failure log to %s: %v", location, err)
		return
	}
	log.Infof("[Processor] wrote %d failed rows to %s", len(failed), location)
}
