package models

import "time"

type House struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	UserID        uint         `json:"userId" gorm:"index;not null"` // landlord
	AreaID        uint         `json:"areaId" gorm:"index;not null"`
	Title         string       `json:"title" gorm:"size:64;not null"`
	Price         int64        `json:"price" gorm:"default:0"` // minor units per night
	Address       string       `json:"address" gorm:"size:512;default:''"`
	RoomCount     int          `json:"roomCount" gorm:"default:1"`
	Acreage       int          `json:"acreage" gorm:"default:0"`
	Unit          string       `json:"unit" gorm:"size:32;default:''"`
	Capacity      int          `json:"capacity" gorm:"default:1"`
	Beds          string       `json:"beds" gorm:"size:64;default:''"`
	Deposit       int64        `json:"deposit" gorm:"default:0"`
	MinDays       int          `json:"minDays" gorm:"default:1"`
	MaxDays       int          `json:"maxDays" gorm:"default:0"` // 0 means unlimited
	OrderCount    int          `json:"orderCount" gorm:"default:0"`
	IndexImageURL string       `json:"indexImageUrl" gorm:"size:256;default:''"`
	CreatedAt     time.Time    `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time    `json:"updatedAt" gorm:"autoUpdateTime"`
	Area          Area         `json:"area" gorm:"foreignKey:AreaID"`
	User          User         `json:"user" gorm:"foreignKey:UserID"`
	Facilities    []Facility   `json:"facilities" gorm:"many2many:house_facilities;"`
	Images        []HouseImage `json:"images" gorm:"foreignKey:HouseID"`
}

type HouseImage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	HouseID   uint      `json:"houseId" gorm:"index;not null"`
	URL       string    `json:"url" gorm:"size:256;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type Area struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:32;not null"`
}
