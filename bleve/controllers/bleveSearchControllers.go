package controllers

import (
	searchmodels "dvsubmit-backend/bleve/models"
	"dvsubmit-backend/bleve/repositories"
	"dvsubmit-backend/config"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BleveSearchController struct {
	BleveRepo *repositories.BleveRepository
}

// SearchApplicationsController fuzzy-searches the applications index, the
// quick lookup box on the admin dashboard.
func (bc *BleveSearchController) SearchApplicationsController(c *fiber.Ctx) error {
	queryString := c.Query("q")
	if queryString == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "A search query is required",
		})
	}

	result, err := bc.BleveRepo.SearchApplications(queryString)
	if err != nil {
		config.Logger.Error("Application search failed", zap.String("query", queryString), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    searchmodels.FromBleveResult(result),
	})
}

func (bc *BleveSearchController) SearchUsersController(c *fiber.Ctx) error {
	queryString := c.Query("q")
	if queryString == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"code":    "INVALID_REQUEST",
			"message": "A search query is required",
		})
	}

	result, err := bc.BleveRepo.SearchUsers(queryString)
	if err != nil {
		config.Logger.Error("User search failed", zap.String("query", queryString), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"code":    "INTERNAL_ERROR",
			"message": "Search failed",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    searchmodels.FromBleveResult(result),
	})
}
