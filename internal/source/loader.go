// Package source loads golf ball records from their various origins.
package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golf-search-go/internal/model"

	"github.com/google/uuid"
)

// FailedRow is a source row that could not be parsed. It is carried into
// the pipeline's failure set instead of aborting the load.
type FailedRow struct {
	Ball model.GolfBallData
	Err  string
}

// Loader yields the raw records of one bulk load. Implementations are pure
// reads: calling Load twice re-reads the source.
type Loader interface {
	Load(ctx context.Context) ([]model.GolfBallData, []FailedRow, error)
	// FailureLogLocation is where the pipeline's failure log for this
	// source belongs (a path or object key next to the source).
	FailureLogLocation() string
}

// csvColumns is the fixed positional layout of the tabular source. Column 0
// is unused; the header row is skipped without validating its names.
const csvColumns = 12

// parseRows turns raw delimited text into records. The format is split-by-
// comma with positional columns; a short or malformed row fails that row
// only.
func parseRows(data string) ([]model.GolfBallData, []FailedRow) {
	var balls []model.GolfBallData
	var failed []FailedRow

	lines := strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")
		if len(values) < csvColumns {
			failed = append(failed, FailedRow{
				Ball: model.GolfBallData{Manufacturer: firstField(values)},
				Err:  fmt.Sprintf("row %d has %d columns, expected %d", i+1, len(values), csvColumns),
			})
			continue
		}

		ball := model.GolfBallData{
			ID:           uuid.NewString(),
			Manufacturer: values[1],
			USGALotNum:   values[2],
			PoleMarking:  values[3],
			Colour:       values[4],
			ConstCode:    values[5],
			BallSpecs:    values[6],
			Spin:         values[8],
			Pole2:        values[9],
			SeamMarking:  values[10],
			ImageURL:     strings.TrimSpace(values[11]),
		}

		dimples, err := strconv.Atoi(strings.TrimSpace(values[7]))
		if err != nil {
			failed = append(failed, FailedRow{
				Ball: ball,
				Err:  fmt.Sprintf("row %d: invalid dimples value %q", i+1, values[7]),
			})
			continue
		}
		ball.Dimples = dimples

		balls = append(balls, ball)
	}
	return balls, failed
}

func firstField(values []string) string {
	if len(values) > 1 {
		return values[1]
	}
	return ""
}
