package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleHeader = "idx,manufacturer,usga_lot_num,pole_marking,colour,constCode,ballSpecs,dimples,spin,pole_2,seam_marking,imageUrl"

func TestParseRowsSkipsHeader(t *testing.T) {
	data := sampleHeader + "\n" +
		"1,Pinetree,L-100,TQX,white,3PC,spec,332,high,P2,S in gold,http://example.com/a.jpg\n"

	balls, failed := parseRows(data)

	require.Len(t, balls, 1)
	assert.Empty(t, failed)

	ball := balls[0]
	assert.NotEmpty(t, ball.ID)
	assert.Equal(t, "Pinetree", ball.Manufacturer)
	assert.Equal(t, "L-100", ball.USGALotNum)
	assert.Equal(t, "TQX", ball.PoleMarking)
	assert.Equal(t, "white", ball.Colour)
	assert.Equal(t, 332, ball.Dimples)
	assert.Equal(t, "S in gold", ball.SeamMarking)
	assert.Equal(t, "http://example.com/a.jpg", ball.ImageURL)
}

func TestParseRowsShortRowFailsThatRowOnly(t *testing.T) {
	data := sampleHeader + "\n" +
		"1,Pinetree,L-100,TQX\n" +
		"2,Titleist,L-200,ProV1,white,3PC,spec,352,low,P2,arrow,\n"

	balls, failed := parseRows(data)

	require.Len(t, balls, 1)
	assert.Equal(t, "Titleist", balls[0].Manufacturer)

	require.Len(t, failed, 1)
	assert.Equal(t, "Pinetree", failed[0].Ball.Manufacturer)
	assert.Contains(t, failed[0].Err, "columns")
}

func TestParseRowsBadDimplesFailsThatRowOnly(t *testing.T) {
	data := sampleHeader + "\n" +
		"1,Pinetree,L-100,TQX,white,3PC,spec,not-a-number,high,P2,S,\n" +
		"2,Titleist,L-200,ProV1,white,3PC,spec,352,low,P2,arrow,\n"

	balls, failed := parseRows(data)

	require.Len(t, balls, 1)
	assert.Equal(t, "Titleist", balls[0].Manufacturer)

	require.Len(t, failed, 1)
	assert.Equal(t, "Pinetree", failed[0].Ball.Manufacturer)
	assert.Contains(t, failed[0].Err, "dimples")
}

func TestParseRowsHandlesCRLFAndBlankLines(t *testing.T) {
	data := sampleHeader + "\r\n" +
		"1,Pinetree,L-100,TQX,white,3PC,spec,332,high,P2,S,\r\n" +
		"\r\n"

	balls, failed := parseRows(data)

	assert.Len(t, balls, 1)
	assert.Empty(t, failed)
}

func TestFileLoaderFailureLogLocation(t *testing.T) {
	l := NewFileLoader("/data/source/golfballs.csv")
	assert.Equal(t, "/data/source/failed_rows.log", l.FailureLogLocation())
}

func TestObjectLoaderFailureLogLocation(t *testing.T) {
	l := NewObjectLoader("golf-data", "imports/golfballs.csv")
	assert.Equal(t, "imports/failed_rows.log", l.FailureLogLocation())
}
