// Package kafka provides the embedding job queue.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golf-search-go/internal/config"
	"golf-search-go/pkg/database"
	"golf-search-go/pkg/log"
	"golf-search-go/pkg/tasks"

	"github.com/segmentio/kafka-go"
)

// TaskProcessor is implemented by whatever runs an embedding job. It
// decouples the consumer loop from the concrete pipeline.
type TaskProcessor interface {
	Process(ctx context.Context, task tasks.EmbeddingJobTask) error
}

var producer *kafka.Writer

// InitProducer initializes the Kafka producer.
func InitProducer(cfg config.KafkaConfig) {
	producer = &kafka.Writer{
		Addr:     kafka.TCP(cfg.Brokers),
		Topic:    cfg.Topic,
		Balancer: &kafka.LeastBytes{},
	}
	log.Info("Kafka producer initialized")
}

// ProduceEmbeddingJob enqueues an embedding job.
func ProduceEmbeddingJob(task tasks.EmbeddingJobTask) error {
	taskBytes, err := json.Marshal(task)
	if err != nil {
		return err
	}

	return producer.WriteMessages(context.Background(),
		kafka.Message{
			Value: taskBytes,
		},
	)
}

// StartConsumer runs the consumer loop. A job that keeps failing is retried
// up to three times (counted in Redis) before its offset is committed and
// the job abandoned.
func StartConsumer(cfg config.KafkaConfig, processor TaskProcessor) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  []string{cfg.Brokers},
		Topic:    cfg.Topic,
		GroupID:  "golf-search-consumer",
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})

	log.Infof("Kafka consumer started, listening on topic %q", cfg.Topic)

	for {
		m, err := r.FetchMessage(context.Background())
		if err != nil {
			log.Error("failed to fetch message from Kafka", err)
			break
		}

		var task tasks.EmbeddingJobTask
		if err := json.Unmarshal(m.Value, &task); err != nil {
			log.Errorf("cannot decode Kafka message: %v, value: %s", err, string(m.Value))
			// Malformed message, commit so it does not block the queue.
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("failed to commit malformed message: %v", err)
			}
			continue
		}

		log.Infof("processing embedding job: jobId=%s index=%s mode=%s", task.JobID, task.IndexName, task.Mode)
		if err := processor.Process(context.Background(), task); err != nil {
			log.Errorf("embedding job failed: jobId=%s, error: %v", task.JobID, err)
			attemptsKey := fmt.Sprintf("kafka:attempts:%s", task.JobID)
			attempts, incErr := database.RDB.Incr(context.Background(), attemptsKey).Result()
			if incErr != nil {
				// Redis unavailable: leave the offset alone and let Kafka retry.
				continue
			}
			_ = database.RDB.Expire(context.Background(), attemptsKey, 24*time.Hour).Err()
			if attempts >= 3 {
				log.Errorf("embedding job failed %d times, giving up: jobId=%s", attempts, task.JobID)
				if err := r.CommitMessages(context.Background(), m); err != nil {
					log.Errorf("failed to commit Kafka offset: %v", err)
				}
			}
		} else {
			log.Infof("embedding job completed: jobId=%s", task.JobID)
			_ = database.RDB.Del(context.Background(), fmt.Sprintf("kafka:attempts:%s", task.JobID)).Err()
			if err := r.CommitMessages(context.Background(), m); err != nil {
				log.Errorf("failed to commit Kafka offset: %v", err)
			}
		}
	}

	if err := r.Close(); err != nil {
		log.Fatalf("failed to close Kafka consumer: %v", err)
	}
}
