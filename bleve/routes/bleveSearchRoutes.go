package routes

import (
	"dvsubmit-backend/bleve/controllers"
	"dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func BleveSearchRouterInit(
	app *fiber.App,
	appCtx *middleware.AppContext,
	bleveRepo *repositories.BleveRepository,
) {
	searchController := &controllers.BleveSearchController{
		BleveRepo: bleveRepo,
	}

	search := app.Group("/api/v1/search",
		middleware.ProtectedRoute(appCtx),
		middleware.RequireAdmin(appCtx),
	)
	search.Get("/applications", searchController.SearchApplicationsController)
	search.Get("/users", searchController.SearchUsersController)
}
