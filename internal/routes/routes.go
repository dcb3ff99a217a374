package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	handler "invoice-bookkeeping-backend/internal/handlers"
	"invoice-bookkeeping-backend/internal/services/invoicing"
)

// NewRouter builds the gin engine with logging, recovery and CORS for the
// browser front end, and registers every route.
func NewRouter(allowedOrigins []string, svc *invoicing.InvoiceService, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r, svc, log)
	return r
}

func RegisterRoutes(r *gin.Engine, svc *invoicing.InvoiceService, log zerolog.Logger) {
	invoiceHandler := handler.NewInvoiceHandler(svc, log)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	invoices := api.Group("/invoices")
	{
		invoices.GET("", invoiceHandler.ListInvoices)
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("/next-number", invoiceHandler.NextNumber)
		invoices.POST("/upload", invoiceHandler.UploadInvoices)
		invoices.GET("/:id", invoiceHandler.GetInvoice)
		invoices.PUT("/:id", invoiceHandler.UpdateInvoice)
		invoices.DELETE("/:id", invoiceHandler.DeleteInvoice)
	}
}
