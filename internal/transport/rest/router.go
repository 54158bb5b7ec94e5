package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/asset-lifecycle/internal/allocation"
	"github.com/frahmantamala/asset-lifecycle/internal/asset"
	"github.com/frahmantamala/asset-lifecycle/internal/churn"
	"github.com/frahmantamala/asset-lifecycle/internal/employee"
	assetHealth "github.com/frahmantamala/asset-lifecycle/internal/health"
	"github.com/frahmantamala/asset-lifecycle/internal/procurement"
	"github.com/frahmantamala/asset-lifecycle/internal/recovery"
	"github.com/frahmantamala/asset-lifecycle/internal/transport/middleware"
	"github.com/frahmantamala/asset-lifecycle/internal/transport/swagger"
	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"
)

// Handlers bundles every domain handler the router mounts.
type Handlers struct {
	Employee    *employee.Handler
	Asset       *asset.Handler
	Allocation  *allocation.Handler
	Recovery    *recovery.Handler
	AssetHealth *assetHealth.Handler
	Churn       *churn.Handler
	Procurement *procurement.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// OpenAPI document and swagger UI live outside the API prefix
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if handlers.Employee != nil {
			r.Route("/employees", func(er chi.Router) {
				er.Post("/", handlers.Employee.CreateEmployee)
				er.Get("/", handlers.Employee.ListEmployees)
				er.Get("/{id}", handlers.Employee.GetEmployee)
				er.Patch("/{id}", handlers.Employee.UpdateEmployee)
				er.Delete("/{id}", handlers.Employee.DeleteEmployee)
				er.Post("/{id}/resign", handlers.Employee.ResignEmployee)

				if handlers.Allocation != nil {
					er.Get("/{id}/requirements", handlers.Allocation.GetRequirements)
					er.Post("/{id}/allocate", handlers.Allocation.Allocate)
					er.Post("/{id}/assign", handlers.Allocation.Assign)
					er.Get("/{id}/assignments", handlers.Allocation.GetSummary)
				}

				if handlers.Recovery != nil {
					er.Post("/{id}/schedule-returns", handlers.Recovery.ScheduleReturns)
					er.Post("/{id}/process-resignation", handlers.Recovery.ProcessResignation)
					er.Get("/{id}/resignation-summary", handlers.Recovery.GetSummary)
				}

				if handlers.Churn != nil {
					er.Get("/{id}/churn", handlers.Churn.PredictEmployee)
				}
			})
		}

		if handlers.Asset != nil {
			r.Route("/assets", func(ar chi.Router) {
				ar.Post("/", handlers.Asset.CreateAsset)
				ar.Get("/", handlers.Asset.ListAssets)
				ar.Get("/available", handlers.Asset.FindAvailable)
				ar.Get("/tag/{tag}", handlers.Asset.GetAssetByTag)
				ar.Get("/serial/{serial}", handlers.Asset.GetAssetBySerial)

				if handlers.AssetHealth != nil {
					ar.Route("/health", func(hr chi.Router) {
						hr.Get("/summary", handlers.AssetHealth.GetHealthSummary)
						hr.Get("/refresh", handlers.AssetHealth.GetRefreshReport)
						hr.Get("/age-range", handlers.AssetHealth.GetAssetsByAgeRange)
					})
				}

				ar.Get("/{id}", handlers.Asset.GetAsset)
				ar.Patch("/{id}", handlers.Asset.UpdateAsset)
				ar.Delete("/{id}", handlers.Asset.DeleteAsset)
			})
		}

		if handlers.Churn != nil {
			r.Route("/churn", func(cr chi.Router) {
				cr.Get("/high-risk", handlers.Churn.GetHighRisk)
				cr.Post("/batch-predict", handlers.Churn.BatchPredict)
				cr.Get("/model-info", handlers.Churn.GetModelInfo)
				cr.Get("/department/{department}", handlers.Churn.GetDepartmentChurn)
			})
		}

		if handlers.Procurement != nil {
			r.Route("/procurement", func(pr chi.Router) {
				pr.Get("/demand", handlers.Procurement.GetDemand)
				pr.Get("/recommendations", handlers.Procurement.GetRecommendations)
				pr.Get("/report", handlers.Procurement.GetReport)
				pr.Get("/summary", handlers.Procurement.GetSummary)
			})
		}
	})
}
