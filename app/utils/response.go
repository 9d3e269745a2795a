package utils

import (
	"errors"
	"log"

	"github.com/SafidyRakotonirina/blessing/app/config"
	"github.com/SafidyRakotonirina/blessing/app/database"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Pagination is the block attached to every paginated list response.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
}

// Success writes the standard envelope with success true.
func Success(c *fiber.Ctx, status int, data interface{}, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// Error writes the standard envelope with success false.
func Error(c *fiber.Ctx, status int, message string, errs interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": message,
		"errors":  errs,
	})
}

// Paginated writes a list response with the pagination block.
func Paginated(c *fiber.Ctx, data interface{}, page, limit, total int, message string) error {
	totalPages := (total + limit - 1) / limit
	return c.JSON(fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
		"pagination": Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages,
			TotalItems:   total,
			ItemsPerPage: limit,
			HasNextPage:  page < totalPages,
			HasPrevPage:  page > 1,
		},
	})
}

// HandleError maps domain errors to their HTTP status and writes the
// envelope. Unknown errors become a 500 with the detail hidden in
// production.
func HandleError(c *fiber.Ctx, err error) error {
	var validationErr *database.ValidationError
	if errors.As(err, &validationErr) {
		return Error(c, fiber.StatusBadRequest, validationErr.Message, nil)
	}

	var notFoundErr *database.NotFoundError
	if errors.As(err, &notFoundErr) {
		return Error(c, fiber.StatusNotFound, notFoundErr.Message, nil)
	}

	var conflictErr *database.ConflictError
	if errors.As(err, &conflictErr) {
		return Error(c, fiber.StatusConflict, conflictErr.Message, nil)
	}

	var invalidErrs validator.ValidationErrors
	if errors.As(err, &invalidErrs) {
		fields := make([]string, 0, len(invalidErrs))
		for _, fe := range invalidErrs {
			fields = append(fields, fe.Field()+": "+fe.Tag())
		}
		return Error(c, fiber.StatusBadRequest, "Requête invalide", fields)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return Error(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	if config.IsProduction() {
		return Error(c, fiber.StatusInternalServerError, "Erreur interne du serveur", nil)
	}
	return Error(c, fiber.StatusInternalServerError, "Erreur interne du serveur", err.Error())
}
