package repository

import (
	"errors"

	"storeroom/internal/model"

	"gorm.io/gorm"
)

type CapabilityRepository interface {
	FindAll() ([]model.Capability, error)
	FindByCodes(codes []string) ([]model.Capability, error)
	SeedDefaults() error
}

type capabilityRepo struct {
	db *gorm.DB
}

func NewCapabilityRepo(db *gorm.DB) CapabilityRepository {
	return &capabilityRepo{db}
}

func (r *capabilityRepo) FindAll() ([]model.Capability, error) {
	var capabilities []model.Capability
	if err := r.db.Find(&capabilities).Error; err != nil {
		return nil, err
	}
	return capabilities, nil
}

func (r *capabilityRepo) FindByCodes(codes []string) ([]model.Capability, error) {
	var capabilities []model.Capability
	if err := r.db.Where("code IN ?", codes).Find(&capabilities).Error; err != nil {
		return nil, err
	}
	return capabilities, nil
}

func (r *capabilityRepo) SeedDefaults() error {
	for _, c := range model.DefaultCapabilities {
		var existing model.Capability
		err := r.db.Where("code = ?", c.Code).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := r.db.Create(&c).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
