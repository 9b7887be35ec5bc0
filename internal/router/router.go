package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"khata/internal/domain"
	"khata/internal/handler"
	"khata/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Document *handler.DocumentHandler
	Calc     *handler.CalcHandler
	Catalog  *handler.CatalogHandler
	Health   *handler.HealthHandler
}

// documentRouteOrder fixes registration order so route tables are stable.
var documentRouteOrder = []domain.DocumentType{
	domain.DocumentTypePurchaseOrder,
	domain.DocumentTypeSalesReturn,
	domain.DocumentTypePayment,
	domain.DocumentTypeInvoice,
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API docs
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Stateless computation
	calc := v1.Group("/calc")
	calc.POST("/gst", h.Calc.GST)
	calc.GET("/gst-labels", h.Calc.Labels)
	calc.POST("/line", h.Calc.Line)
	calc.POST("/totals", h.Calc.Totals)
	calc.POST("/document", h.Calc.Document)
	calc.POST("/bind", h.Calc.Bind)
	v1.GET("/documents/new", h.Calc.NewDocument)

	// Item catalog
	items := v1.Group("/items")
	items.GET("", h.Catalog.List)
	items.GET("/:id", h.Catalog.GetByID)

	// One collection per document type, all served by the same handler
	for _, docType := range documentRouteOrder {
		g := v1.Group("/" + domain.DocumentTypePaths[docType])
		g.Use(middleware.DocumentType(docType))
		g.GET("", h.Document.List)
		g.POST("", h.Document.Submit)
		g.GET("/new", h.Document.New)
		g.POST("/preview", h.Document.Preview)
		g.GET("/export", h.Document.Export)
		g.POST("/export", h.Document.UploadExport)
		g.GET("/:id", h.Document.GetByID)
		g.GET("/:id/edit", h.Document.Edit)
		g.PUT("/:id", h.Document.Update)
		g.DELETE("/:id", h.Document.Delete)
	}

	return r
}
