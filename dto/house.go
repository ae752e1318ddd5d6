package dto

import (
	"github.com/goccy/go-json"

	"roomrent/constants"
	"roomrent/models"
)

type AreaResponse struct {
	ID   uint   `json:"aid"`
	Name string `json:"aname"`
}

// HouseSummary is the card shown on lists and the home page.
type HouseSummary struct {
	HouseID    uint   `json:"houseId"`
	Title      string `json:"title"`
	Price      int64  `json:"price"`
	AreaName   string `json:"areaName"`
	ImgURL     string `json:"imgUrl"`
	RoomCount  int    `json:"roomCount"`
	OrderCount int    `json:"orderCount"`
	Address    string `json:"address"`
	UserAvatar string `json:"userAvatar"`
	CreatedAt  string `json:"createdAt"`
}

type ReviewResponse struct {
	Comment   string `json:"comment"`
	UserName  string `json:"userName"`
	CreatedAt string `json:"createdAt"`
}

// HouseDetail is the cached detail payload. It never contains the viewer.
type HouseDetail struct {
	HouseID    uint             `json:"houseId"`
	UserID     uint             `json:"userId"`
	UserName   string           `json:"userName"`
	UserAvatar string           `json:"userAvatar"`
	AreaName   string           `json:"areaName"`
	Title      string           `json:"title"`
	Price      int64            `json:"price"`
	Address    string           `json:"address"`
	RoomCount  int              `json:"roomCount"`
	Acreage    int              `json:"acreage"`
	Unit       string           `json:"unit"`
	Capacity   int              `json:"capacity"`
	Beds       string           `json:"beds"`
	Deposit    int64            `json:"deposit"`
	MinDays    int              `json:"minDays"`
	MaxDays    int              `json:"maxDays"`
	OrderCount int              `json:"orderCount"`
	ImgURLs    []string         `json:"imgUrls"`
	Facilities []uint           `json:"facilities"`
	Comments   []ReviewResponse `json:"comments"`
}

// HouseDetailResponse pairs the cached payload with the viewer id (-1 when anonymous).
type HouseDetailResponse struct {
	UserID int64           `json:"userId"`
	House  json.RawMessage `json:"house"`
}

type HouseListPage struct {
	Houses      []HouseSummary `json:"houses"`
	TotalPage   int            `json:"totalPage"`
	CurrentPage int            `json:"currentPage"`
}

type PublishHouseRequest struct {
	Title      string   `json:"title" binding:"required,max=64"`
	Price      *float64 `json:"price" binding:"required,gte=0"`
	AreaID     uint     `json:"areaId" binding:"required"`
	Address    string   `json:"address" binding:"required,max=512"`
	RoomCount  *int     `json:"roomCount" binding:"required,gte=1"`
	Acreage    *int     `json:"acreage" binding:"required,gte=0"`
	Unit       string   `json:"unit" binding:"required,max=32"`
	Capacity   *int     `json:"capacity" binding:"required,gte=1"`
	Beds       string   `json:"beds" binding:"required,max=64"`
	Deposit    *float64 `json:"deposit" binding:"required,gte=0"`
	MinDays    *int     `json:"minDays" binding:"required,gte=1"`
	MaxDays    *int     `json:"maxDays" binding:"required,gte=0"`
	Facilities []uint   `json:"facilities"`
}

type PublishHouseResponse struct {
	HouseID uint `json:"houseId"`
}

type HouseImageResponse struct {
	URL string `json:"url"`
}

// ImageURL resolves a stored image name. Empty names stay empty.
func ImageURL(prefix, name string) string {
	if name == "" {
		return ""
	}
	return prefix + name
}

func NewAreaResponse(a models.Area) AreaResponse {
	return AreaResponse{ID: a.ID, Name: a.Name}
}

// NewHouseSummary expects Area and User to be loaded.
func NewHouseSummary(h models.House, imagePrefix string) HouseSummary {
	return HouseSummary{
		HouseID:    h.ID,
		Title:      h.Title,
		Price:      h.Price,
		AreaName:   h.Area.Name,
		ImgURL:     ImageURL(imagePrefix, h.IndexImageURL),
		RoomCount:  h.RoomCount,
		OrderCount: h.OrderCount,
		Address:    h.Address,
		UserAvatar: ImageURL(imagePrefix, h.User.AvatarURL),
		CreatedAt:  h.CreatedAt.Format(constants.DateLayout),
	}
}

func NewHouseSummaries(houses []models.House, imagePrefix string) []HouseSummary {
	out := make([]HouseSummary, 0, len(houses))
	for _, h := range houses {
		out = append(out, NewHouseSummary(h, imagePrefix))
	}
	return out
}

// NewHouseDetail expects the detail relations and the reviews' renters to be loaded.
func NewHouseDetail(h models.House, reviews []models.Order, imagePrefix string) HouseDetail {
	d := HouseDetail{
		HouseID:    h.ID,
		UserID:     h.UserID,
		UserName:   h.User.Name,
		UserAvatar: ImageURL(imagePrefix, h.User.AvatarURL),
		AreaName:   h.Area.Name,
		Title:      h.Title,
		Price:      h.Price,
		Address:    h.Address,
		RoomCount:  h.RoomCount,
		Acreage:    h.Acreage,
		Unit:       h.Unit,
		Capacity:   h.Capacity,
		Beds:       h.Beds,
		Deposit:    h.Deposit,
		MinDays:    h.MinDays,
		MaxDays:    h.MaxDays,
		OrderCount: h.OrderCount,
		ImgURLs:    make([]string, 0, len(h.Images)),
		Facilities: make([]uint, 0, len(h.Facilities)),
		Comments:   make([]ReviewResponse, 0, len(reviews)),
	}
	for _, img := range h.Images {
		d.ImgURLs = append(d.ImgURLs, ImageURL(imagePrefix, img.URL))
	}
	for _, f := range h.Facilities {
		d.Facilities = append(d.Facilities, f.ID)
	}
	for _, o := range reviews {
		name := o.User.Name
		if name == o.User.Mobile || name == "" {
			name = "anonymous"
		}
		d.Comments = append(d.Comments, ReviewResponse{
			Comment:   o.Comment,
			UserName:  name,
			CreatedAt: o.UpdatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return d
}
