// Package model defines the record structs and request/response DTOs.
package model

// IndexMode selects the schema shape an index was created with.
type IndexMode string

const (
	// ModeText is the single-modality shape: scalar fields plus one
	// vectorContent field.
	ModeText IndexMode = "text"
	// ModeTextImage is the multi-modal shape: scalar fields plus a
	// textVector and an imageVector field.
	ModeTextImage IndexMode = "textimage"
)

// GolfBallData carries the scalar fields shared by both index shapes.
// Field names match the index schema exactly.
type GolfBallData struct {
	ID           string `json:"id"`
	Manufacturer string `json:"manufacturer"`
	USGALotNum   string `json:"usga_lot_num"`
	PoleMarking  string `json:"pole_marking"`
	Colour       string `json:"colour"`
	ConstCode    string `json:"constCode"`
	BallSpecs    string `json:"ballSpecs"`
	Dimples      int    `json:"dimples"`
	Spin         string `json:"spin"`
	Pole2        string `json:"pole_2"`
	SeamMarking  string `json:"seam_marking"`
	ImageURL     string `json:"imageUrl"`
}

// GolfBallText is the document shape uploaded to a text-only index.
type GolfBallText struct {
	GolfBallData
	VectorContent []float32 `json:"vectorContent,omitempty"`
}

// GolfBallTextImage is the document shape uploaded to a multi-modal index.
// ImageVector is serialized even when empty: an empty vector is the valid
// "no source image" state, not an absent field.
type GolfBallTextImage struct {
	GolfBallData
	TextVector  []float32 `json:"textVector,omitempty"`
	ImageVector []float32 `json:"imageVector"`
}

// GolfBallSummary is the trimmed hit shape returned by text searches.
type GolfBallSummary struct {
	ID           string  `json:"id"`
	Manufacturer string  `json:"manufacturer"`
	PoleMarking  string  `json:"pole_marking"`
	Colour       string  `json:"colour"`
	SeamMarking  string  `json:"seam_marking"`
	Score        float64 `json:"score"`
}
