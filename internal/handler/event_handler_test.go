package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tkaraca/menubook-backend/internal/middleware"
	"github.com/tkaraca/menubook-backend/internal/models"
	"github.com/tkaraca/menubook-backend/internal/repository"
	"github.com/tkaraca/menubook-backend/internal/service"
	"github.com/tkaraca/menubook-backend/pkg/utils"
)

type nullStorage struct{}

func (nullStorage) Upload(key string, src io.Reader, size int64, contentType string) error {
	_, err := io.Copy(io.Discard, src)
	return err
}

func (nullStorage) Delete(key string) error { return nil }

func (nullStorage) PublicURL(key string) string { return "/uploads/" + key }

func setupEventApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.Photo{}))

	menuService := service.NewMenuService(repository.NewEventRepository(db), nullStorage{})
	h := NewEventHandler(menuService, utils.NewValidator())

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(zap.NewNop(), false),
	})
	api := app.Group("/api/v1")
	api.Get("/events", h.ListEvents)
	api.Get("/events/year/:year", h.GetEventsByYear)
	api.Get("/events/:id", h.GetEvent)
	api.Get("/stats", h.GetStats)
	api.Post("/events", h.CreateEvent)
	api.Put("/events/:id", h.UpdateEvent)
	api.Delete("/events/:id", h.DeleteEvent)

	return app, db
}

func seedEvent(t *testing.T, db *gorm.DB, name string, date time.Time) *models.Event {
	t.Helper()
	event := &models.Event{Name: name, Type: "dinner", Date: date}
	require.NoError(t, db.Create(event).Error)
	return event
}

func decodeResponse(t *testing.T, resp *http.Response) models.Response {
	t.Helper()
	var body models.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestListEventsEnvelope(t *testing.T) {
	app, db := setupEventApp(t)
	seedEvent(t, db, "Dinner 2020", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))
	seedEvent(t, db, "Dinner 2021", time.Date(2021, 11, 25, 0, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.True(t, body.Success)
	items, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestListEventsRejectsBadSort(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events?sort=sideways", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Fields, "sort")
}

func TestListEventsRejectsOversizeLimit(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events?limit=500", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEventNotFound(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetEventRejectsNonNumericID(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEventsByYearBounds(t *testing.T) {
	app, db := setupEventApp(t)
	seedEvent(t, db, "Dinner 2020", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	for _, year := range []string{"1899", "2101", "abc"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events/year/"+year, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "year %s", year)
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/events/year/2020", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeResponse(t, resp)
	items, ok := body.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, items, 1)
}

func TestCreateEvent(t *testing.T) {
	app, db := setupEventApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events",
		`{"name":"Annual Dinner","type":"dinner","date":"2024-11-28","menu_title":"Thanksgiving"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateEventValidation(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events", `{"type":"dinner"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeResponse(t, resp)
	assert.False(t, body.Success)
	assert.Contains(t, body.Fields, "name")
	assert.Contains(t, body.Fields, "date")
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events",
		`{"name":"Annual Dinner","date":"26/11/2020"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateEventPartial(t *testing.T) {
	app, db := setupEventApp(t)
	event := seedEvent(t, db, "Dinner 2020", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	resp, err := app.Test(jsonRequest(http.MethodPut, fmt.Sprintf("/api/v1/events/%d", event.ID),
		`{"location":"Main Hall"}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got models.Event
	require.NoError(t, db.First(&got, event.ID).Error)
	assert.Equal(t, "Main Hall", got.Location)
	assert.Equal(t, "Dinner 2020", got.Name)
}

func TestDeleteEvent(t *testing.T) {
	app, db := setupEventApp(t)
	event := seedEvent(t, db, "Dinner 2020", time.Date(2020, 11, 26, 0, 0, 0, 0, time.UTC))

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", event.ID), nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, db.Model(&models.Event{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestDeleteMissingEventIs404(t *testing.T) {
	app, _ := setupEventApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/v1/events/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
