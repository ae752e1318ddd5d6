package dto

// OrdersResponse wraps a user's order list.
type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// HousesResponse wraps a plain house list.
type HousesResponse struct {
	Houses []HouseSummary `json:"houses"`
}
