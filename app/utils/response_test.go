package utils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SafidyRakotonirina/blessing/app/database"
)

func performRequest(t *testing.T, handler fiber.Handler) (int, map[string]interface{}) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestSuccessEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return Success(c, fiber.StatusCreated, fiber.Map{"id": "x"}, "créé")
	})
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "créé", body["message"])
	assert.NotNil(t, body["data"])
}

func TestPaginatedEnvelope(t *testing.T) {
	status, body := performRequest(t, func(c *fiber.Ctx) error {
		return Paginated(c, []string{"a", "b"}, 2, 10, 35, "ok")
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["success"])

	pagination, ok := body["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), pagination["currentPage"])
	assert.Equal(t, float64(4), pagination["totalPages"])
	assert.Equal(t, float64(35), pagination["totalItems"])
	assert.Equal(t, float64(10), pagination["itemsPerPage"])
	assert.Equal(t, true, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPrevPage"])
}

func TestPaginatedLastPage(t *testing.T) {
	_, body := performRequest(t, func(c *fiber.Ctx) error {
		return Paginated(c, []string{"a"}, 4, 10, 35, "ok")
	})
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, false, pagination["hasNextPage"])
	assert.Equal(t, true, pagination["hasPrevPage"])
}

func TestHandleErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", database.Validationf("montant invalide"), fiber.StatusBadRequest},
		{"not found", database.NotFoundf("vague introuvable"), fiber.StatusNotFound},
		{"conflict", database.Conflictf("salle occupée"), fiber.StatusConflict},
		{"fiber error", fiber.NewError(fiber.StatusTeapot, "théière"), fiber.StatusTeapot},
		{"unknown", errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := performRequest(t, func(c *fiber.Ctx) error {
				return HandleError(c, tt.err)
			})
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, false, body["success"])
		})
	}
}
