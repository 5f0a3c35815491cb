package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/estatekit/messenger/internal/api/handlers/messaging"
	"github.com/estatekit/messenger/internal/api/handlers/residence"
	"github.com/estatekit/messenger/internal/middlewares"
)

func New(jobs *messaging.Handler, residences *residence.Handler) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORSMiddleware())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	api := e.Group("/api/messaging")
	{
		api.POST("/", jobs.Create)
		api.GET("/", jobs.GetAll)
		api.GET("/:id", jobs.Get)
		api.GET("/:id/status", jobs.GetStatus)
		api.GET("/:id/email-recipients", jobs.EmailRecipients)
		api.GET("/:id/sms-recipients", jobs.SMSRecipients)
		api.POST("/:id/retry", jobs.Retry)
		api.POST("/:id/resume", jobs.Resume)
	}

	contacts := e.Group("/api/residences")
	{
		contacts.POST("/", residences.Create)
		contacts.GET("/", residences.GetAll)
		contacts.GET("/:id", residences.Get)
		contacts.PUT("/:id", residences.Update)
		contacts.DELETE("/:id", residences.Delete)
	}

	return e
}
