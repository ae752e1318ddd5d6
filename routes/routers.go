package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"roomrent/controllers"
	_ "roomrent/docs"
	"roomrent/middleware"
	"roomrent/services"
	"roomrent/services/logger"
)

type Options struct {
	Facade         *services.BookingFacade
	Melody         *melody.Melody
	Logger         logger.Logger
	RequestTimeout time.Duration
}

func SetupRoutes(router *gin.Engine, opts Options) {
	houseController := controllers.NewHouseController(opts.Facade.Listings, opts.Facade.Houses)
	orderController := controllers.NewOrderController(opts.Facade.Orders)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1.0")

	if opts.Melody != nil {
		notificationController := controllers.NewNotificationController(opts.Logger, opts.Melody)
		v1.GET("/ws", middleware.AuthMiddleware(), notificationController.Connect)
	}

	api := v1.Group("", middleware.Timeout(opts.RequestTimeout))
	api.GET("/areas", houseController.GetAreas)
	api.GET("/houses/index", houseController.GetHomePage)
	api.GET("/houses", houseController.SearchHouses)
	api.GET("/houses/:id", middleware.OptionalAuth(), houseController.GetHouseDetail)

	auth := api.Group("", middleware.AuthMiddleware())
	auth.POST("/houses", houseController.PublishHouse)
	auth.POST("/houses/:id/images", houseController.UploadHouseImage)
	auth.GET("/user/houses", houseController.MyHouses)

	auth.POST("/orders", orderController.CreateOrder)
	auth.GET("/user/orders", orderController.GetOrders)
	auth.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
	auth.PUT("/orders/:id/comment", orderController.CommentOrder)
}
