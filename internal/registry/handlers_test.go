package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"bluecarbon-backend/internal/credits"
	"bluecarbon-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRegistryHandlers(t *testing.T) (*Handlers, *Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Project{}))
	svc := &Service{DB: db, Policy: credits.Policy{CreditsPerHectare: 5}}
	return &Handlers{Service: svc}, svc
}

func TestCreateProject_Created(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Post("/create-project", h.CreateProject)

	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Mangrove A",
		"location":      "21.9497 N, 89.1833 E",
		"area_hectares": 10,
	})
	req := httptest.NewRequest("POST", "/create-project", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, "success", result["status"])
	data, _ := result["data"].(map[string]interface{})
	project, _ := data["project"].(map[string]interface{})
	assert.Equal(t, "pending", project["status"])
	assert.Equal(t, 50.0, project["credit_quantity"])
	assert.Nil(t, project["tx_hash"])
}

func TestCreateProject_MissingFields(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Post("/create-project", h.CreateProject)

	body, _ := json.Marshal(map[string]interface{}{"location": "X", "area_hectares": 10})
	req := httptest.NewRequest("POST", "/create-project", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCreateProject_NegativeArea(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Post("/create-project", h.CreateProject)

	body, _ := json.Marshal(map[string]interface{}{
		"name": "A", "location": "X", "area_hectares": -1,
	})
	req := httptest.NewRequest("POST", "/create-project", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProject_InvalidUUID(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Get("/get-project/:project_id", h.GetProject)

	req := httptest.NewRequest("GET", "/get-project/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetProject_NotFound(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Get("/get-project/:project_id", h.GetProject)

	req := httptest.NewRequest("GET", "/get-project/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestGetAllProjects_InvalidStatusFilter(t *testing.T) {
	h, _ := setupRegistryHandlers(t)
	app := fiber.New()
	app.Get("/get-all-projects", h.GetAllProjects)

	req := httptest.NewRequest("GET", "/get-all-projects?status=revoked", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestGetAllProjects_ReturnsTotal(t *testing.T) {
	h, svc := setupRegistryHandlers(t)
	app := fiber.New()
	app.Get("/get-all-projects", h.GetAllProjects)

	for _, name := range []string{"A", "B", "C"} {
		_, err := svc.Create(context.Background(), CreateInput{
			Name: name, Location: "X", AreaHectares: 1,
		})
		require.NoError(t, err)
	}

	req := httptest.NewRequest("GET", "/get-all-projects", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	data, _ := result["data"].(map[string]interface{})
	assert.Equal(t, 3.0, data["total"])
}
