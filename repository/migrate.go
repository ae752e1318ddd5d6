package repository

import (
	"context"

	"gorm.io/gorm"

	"roomrent/models"
)

// DefaultAreas seeds an empty areas table.
var DefaultAreas = []string{"Dong Cheng", "Xi Cheng", "Chao Yang", "Hai Dian", "Feng Tai", "Shi Jing Shan"}

// DefaultFacilities seeds an empty facilities table.
var DefaultFacilities = []string{"wifi", "hot water", "air conditioning", "heating", "kitchen", "washer", "parking", "elevator"}

func AutoMigrate(ctx context.Context, db *gorm.DB) error {
	db = db.WithContext(ctx)
	if err := db.AutoMigrate(
		&models.User{},
		&models.Area{},
		&models.Facility{},
		&models.House{},
		&models.HouseImage{},
		&models.Order{},
	); err != nil {
		return err
	}
	return seed(db)
}

func seed(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Area{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		areas := make([]models.Area, len(DefaultAreas))
		for i, name := range DefaultAreas {
			areas[i] = models.Area{Name: name}
		}
		if err := db.Create(&areas).Error; err != nil {
			return err
		}
	}

	if err := db.Model(&models.Facility{}).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		facilities := make([]models.Facility, len(DefaultFacilities))
		for i, name := range DefaultFacilities {
			facilities[i] = models.Facility{Name: name}
		}
		return db.Create(&facilities).Error
	}
	return nil
}
