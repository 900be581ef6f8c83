// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/scanplan/backend/internal/api/handlers"
	"github.com/scanplan/backend/internal/api/middleware"
	"github.com/scanplan/backend/internal/catalog"
	"github.com/scanplan/backend/internal/service"
)

type Services struct {
	Planner *service.PlannerService
	Export  *service.ExportService
	Catalog *catalog.Catalog
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Planner-Role"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Catalog != nil {
			catalogHandler := handlers.NewCatalogHandler(services.Catalog)
			catalogGroup := apiGroup.Group("/catalog")
			{
				catalogGroup.GET("/products", catalogHandler.GetProducts)
				catalogGroup.GET("/markets", catalogHandler.GetMarkets)
				catalogGroup.GET("/accounts", catalogHandler.GetAccounts)
				catalogGroup.GET("/weeks", catalogHandler.GetWeeks)
			}
		}

		if services.Planner != nil {
			plannerHandler := handlers.NewPlannerHandler(services.Planner)
			plannerGroup := apiGroup.Group("/planner")
			{
				plannerGroup.GET("/clusters", plannerHandler.ListClusters)
				plannerGroup.POST("/clusters", plannerHandler.CreateCluster)
				plannerGroup.GET("/clusters/:id", plannerHandler.GetCluster)
				plannerGroup.PUT("/clusters/:id", plannerHandler.ReplaceCluster)
				plannerGroup.DELETE("/clusters/:id", plannerHandler.DeleteCluster)
				plannerGroup.POST("/clusters/:id/scans", plannerHandler.AddScan)
				plannerGroup.POST("/clusters/:id/publish", plannerHandler.PublishCluster)
				plannerGroup.POST("/clusters/:id/reject", plannerHandler.RejectCluster)
				plannerGroup.GET("/rows", plannerHandler.GetRows)
				plannerGroup.GET("/summary", plannerHandler.GetSummary)
				plannerGroup.GET("/permissions", plannerHandler.GetPermissions)
			}

			sessionGroup := apiGroup.Group("/session")
			{
				sessionGroup.GET("/mode", plannerHandler.GetMode)
				sessionGroup.PUT("/mode", plannerHandler.SetMode)
			}
		}

		if services.Export != nil {
			exportHandler := handlers.NewExportHandler(services.Export)
			exportGroup := apiGroup.Group("/export")
			{
				exportGroup.POST("/scan-plan", exportHandler.StartScanPlanExport)
				exportGroup.GET("/jobs", exportHandler.ListJobs)
				exportGroup.GET("/jobs/:id", exportHandler.GetJob)
				exportGroup.GET("/jobs/:id/file", exportHandler.DownloadJobFile)
				exportGroup.GET("/files", exportHandler.ListExportFiles)
				exportGroup.POST("/rows.csv", exportHandler.DownloadRowsCSV)
				exportGroup.POST("/summary.csv", exportHandler.DownloadSummaryCSV)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
