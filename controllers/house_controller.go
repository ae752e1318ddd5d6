package controllers

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"

	"roomrent/constants"
	"roomrent/dto"
	"roomrent/middleware"
	"roomrent/response"
	"roomrent/services"
	"roomrent/validator"
)

type HouseController struct {
	listings *services.ListingService
	houses   *services.HouseService
}

func NewHouseController(listings *services.ListingService, houses *services.HouseService) *HouseController {
	return &HouseController{listings: listings, houses: houses}
}

// GetAreas handles GET /areas
func (hc *HouseController) GetAreas(c *gin.Context) {
	data, err := hc.listings.Areas(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, json.RawMessage(data))
}

// GetHomePage handles GET /houses/index
func (hc *HouseController) GetHomePage(c *gin.Context) {
	data, err := hc.listings.HomePage(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, json.RawMessage(data))
}

// GetHouseDetail handles GET /houses/:id
func (hc *HouseController) GetHouseDetail(c *gin.Context) {
	houseID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	detail, err := hc.listings.HouseDetail(c.Request.Context(), houseID, middleware.ViewerID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, detail)
}

// SearchHouses handles GET /houses?aid=&sd=&ed=&sk=&p=
func (hc *HouseController) SearchHouses(c *gin.Context) {
	filter, err := validator.ParseSearch(validator.SearchParams{
		AreaID:    c.Query("aid"),
		StartDate: c.Query("sd"),
		EndDate:   c.Query("ed"),
		Sort:      c.Query("sk"),
		Page:      c.Query("p"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := hc.listings.SearchHouses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, json.RawMessage(data))
}

// PublishHouse handles POST /houses
func (hc *HouseController) PublishHouse(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var req dto.PublishHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	houseID, err := hc.houses.PublishHouse(c.Request.Context(), userID, services.PublishHouseInput{
		Title:      req.Title,
		Price:      *req.Price,
		AreaID:     req.AreaID,
		Address:    req.Address,
		RoomCount:  *req.RoomCount,
		Acreage:    *req.Acreage,
		Unit:       req.Unit,
		Capacity:   *req.Capacity,
		Beds:       req.Beds,
		Deposit:    *req.Deposit,
		MinDays:    *req.MinDays,
		MaxDays:    *req.MaxDays,
		Facilities: req.Facilities,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.PublishHouseResponse{HouseID: houseID})
}

// UploadHouseImage handles POST /houses/:id/images (multipart field house_image)
func (hc *HouseController) UploadHouseImage(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	houseID, err := validator.ParseID(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := c.FormFile("house_image")
	if err != nil {
		response.BadRequest(c, "house_image is required")
		return
	}
	if file.Size > constants.MaxHouseImageUploadBytes {
		response.BadRequest(c, "image is too large")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.BadRequest(c, "cannot open image")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, constants.MaxHouseImageUploadBytes+1))
	if err != nil {
		response.BadRequest(c, "cannot read image")
		return
	}

	url, err := hc.houses.SaveHouseImage(c.Request.Context(), userID, houseID, data)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.HouseImageResponse{URL: url})
}

// MyHouses handles GET /user/houses
func (hc *HouseController) MyHouses(c *gin.Context) {
	userID, _ := middleware.UserID(c)
	houses, err := hc.houses.MyHouses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.HousesResponse{Houses: houses})
}
