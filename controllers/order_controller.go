package controllers

import (
	"github.com/gin-gonic/gin"

	"roomrent/dto"
	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services"
	"roomrent/validator"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// CreateOrder handles POST /orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	start, end, err := validator.ParseStay(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	orderID, err := oc.orders.CreateOrder(c.Request.Context(), services.CreateOrderInput{
		RenterID:  userID,
		HouseID:   req.HouseID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreateOrderResponse{OrderID: orderID})
}

// GetOrders handles GET /user/orders?role=landlord|renter
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	orders, err := oc.orders.ListOrders(c.Request.Context(), userID, c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.OrdersResponse{Orders: orders})
}

// UpdateOrderStatus handles PUT /orders/:id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	orderID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.TransitionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err = oc.orders.Transition(c.Request.Context(), services.TransitionInput{
		OrderID: orderID,
		ActorID: userID,
		Action:  req.Action,
		Reason:  req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// CommentOrder handles PUT /orders/:id/comment
func (oc *OrderController) CommentOrder(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	orderID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CommentOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err = oc.orders.Comment(c.Request.Context(), services.CommentInput{
		OrderID:  orderID,
		RenterID: userID,
		Comment:  req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
