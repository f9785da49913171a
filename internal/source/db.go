package source

import (
	"context"
	"fmt"

	"golf-search-go/internal/model"
	"golf-search-go/internal/repository"

	"github.com/google/uuid"
)

// DBLoader reads golf ball records from the MySQL staging table.
type DBLoader struct {
	repo repository.GolfBallRepository
}

// NewDBLoader creates a loader backed by the staging repository.
func NewDBLoader(repo repository.GolfBallRepository) *DBLoader {
	return &DBLoader{repo: repo}
}

// Load reads the whole staging table. Staged rows are already typed, so
// there are no per-row parse failures on this path.
func (l *DBLoader) Load(_ context.Context) ([]model.GolfBallData, []FailedRow, error) {
	records, err := l.repo.FindAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load records from staging table: %w", err)
	}

	balls := make([]model.GolfBallData, 0, len(records))
	for _, r := range records {
		balls = append(balls, model.GolfBallData{
			ID:           uuid.NewString(),
			Manufacturer: r.Manufacturer,
			USGALotNum:   r.USGALotNum,
			PoleMarking:  r.PoleMarking,
			Colour:       r.Colour,
			ConstCode:    r.ConstCode,
			BallSpecs:    r.BallSpecs,
			Dimples:      r.Dimples,
			Spin:         r.Spin,
			Pole2:        r.Pole2,
			SeamMarking:  r.SeamMarking,
			ImageURL:     r.ImageURL,
		})
	}
	return balls, nil, nil
}

// FailureLogLocation falls back to the working directory for the database
// source.
func (l *DBLoader) FailureLogLocation() string {
	return "failed_rows.log"
}
