package models

import (
	"time"
)

type OrderStatus string

// Order status constants
const (
	OrderStatusWaitAccept  OrderStatus = "WAIT_ACCEPT"
	OrderStatusWaitComment OrderStatus = "WAIT_COMMENT"
	OrderStatusRejected    OrderStatus = "REJECTED"
	OrderStatusComplete    OrderStatus = "COMPLETE"
)

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRejected || s == OrderStatusComplete
}

type Order struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	UserID     uint        `json:"userId" gorm:"index;not null"` // renter
	HouseID    uint        `json:"houseId" gorm:"index;not null"`
	BeginDate  time.Time   `json:"beginDate" gorm:"type:date;not null"`
	EndDate    time.Time   `json:"endDate" gorm:"type:date;not null"`
	Days       int         `json:"days" gorm:"not null"`
	HousePrice int64       `json:"housePrice" gorm:"not null"` // snapshot at booking time
	Amount     int64       `json:"amount" gorm:"not null"`
	Status     OrderStatus `json:"status" gorm:"type:varchar(16);index;default:WAIT_ACCEPT"`
	Comment    string      `json:"comment" gorm:"type:text"` // reject reason or review
	CreatedAt  time.Time   `gorm:"autoCreateTime;index" json:"createdAt"`
	UpdatedAt  time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
	House      House       `json:"house" gorm:"foreignKey:HouseID"`
	User       User        `json:"user" gorm:"foreignKey:UserID"`
}

// Occupies reports whether the order blocks any day of r. Status is not
// consulted: rejected orders still hold their dates.
func (o *Order) Occupies(r DateRange) bool {
	return r.Overlaps(o.BeginDate, o.EndDate)
}
