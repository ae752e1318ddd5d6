package dto

import (
	"roomrent/constants"
	"roomrent/models"
)

type CreateOrderRequest struct {
	HouseID   uint   `json:"houseId" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

type CreateOrderResponse struct {
	OrderID uint `json:"orderId"`
}

// TransitionOrderRequest carries the landlord decision; reason is required for reject.
type TransitionOrderRequest struct {
	Action string `json:"action" binding:"required"`
	Reason string `json:"reason"`
}

type CommentOrderRequest struct {
	Comment string `json:"comment"`
}

type OrderResponse struct {
	OrderID   uint   `json:"orderId"`
	HouseID   uint   `json:"houseId"`
	Title     string `json:"title"`
	ImgURL    string `json:"imgUrl"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedAt string `json:"createdAt"`
	Days      int    `json:"days"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Comment   string `json:"comment"`
}

// NewOrderResponse expects House to be loaded.
func NewOrderResponse(o models.Order, imagePrefix string) OrderResponse {
	return OrderResponse{
		OrderID:   o.ID,
		HouseID:   o.HouseID,
		Title:     o.House.Title,
		ImgURL:    ImageURL(imagePrefix, o.House.IndexImageURL),
		StartDate: o.BeginDate.Format(constants.DateLayout),
		EndDate:   o.EndDate.Format(constants.DateLayout),
		CreatedAt: o.CreatedAt.Format("2006-01-02 15:04:05"),
		Days:      o.Days,
		Amount:    o.Amount,
		Status:    string(o.Status),
		Comment:   o.Comment,
	}
}

func NewOrderResponses(orders []models.Order, imagePrefix string) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrderResponse(o, imagePrefix))
	}
	return out
}
