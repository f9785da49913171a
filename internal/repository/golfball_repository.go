// Package repository contains the data access layers.
package repository

import (
	"golf-search-go/internal/model"

	"gorm.io/gorm"
)

// GolfBallRepository reads the golf_balls staging table.
type GolfBallRepository interface {
	FindAll() ([]model.GolfBallRecord, error)
}

type golfBallRepository struct {
	db *gorm.DB
}

// NewGolfBallRepository creates a GolfBallRepository.
func NewGolfBallRepository(db *gorm.DB) GolfBallRepository {
	return &golfBallRepository{db: db}
}

func (r *golfBallRepository) FindAll() ([]model.GolfBallRecord, error) {
	var records []model.GolfBallRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
