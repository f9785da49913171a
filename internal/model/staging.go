package model

// GolfBallRecord maps the golf_balls staging table. It is an alternative
// record source for the pipeline when records are maintained in MySQL
// instead of a CSV drop.
type GolfBallRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	Manufacturer string `gorm:"type:varchar(100);not null"`
	USGALotNum   string `gorm:"type:varchar(50);column:usga_lot_num"`
	PoleMarking  string `gorm:"type:varchar(255);column:pole_marking"`
	Colour       string `gorm:"type:varchar(50)"`
	ConstCode    string `gorm:"type:varchar(50);column:const_code"`
	BallSpecs    string `gorm:"type:varchar(255);column:ball_specs"`
	Dimples      int    `gorm:"not null;default:0"`
	Spin         string `gorm:"type:varchar(50)"`
	Pole2        string `gorm:"type:varchar(255);column:pole_2"`
	SeamMarking  string `gorm:"type:varchar(255);column:seam_marking"`
	ImageURL     string `gorm:"type:varchar(512);column:image_url"`
}

// TableName sets the table this model maps to.
func (GolfBallRecord) TableName() string {
	return "golf_balls"
}
