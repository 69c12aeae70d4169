package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medstock/medstock-pro/internal/application/usecase"
	apphttp "github.com/medstock/medstock-pro/internal/interfaces/http"
)

type stubBrandRegistry struct{}

func (stubBrandRegistry) List() ([]string, error) { return nil, nil }
func (stubBrandRegistry) Add(string) error        { return nil }

func buildProductApp() *fiber.App {
	uc := usecase.NewProductUseCase(&stubProductRepo{}, stubBrandRegistry{})
	handler := apphttp.NewProductHandler(uc)
	app := fiber.New()
	app.Post("/api/products", handler.Create)
	return app
}

func postProduct(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreateProduct_Valido201(t *testing.T) {
	app := buildProductApp()

	resp := postProduct(t, app, `{"code":"MED-001","description":"Luva M","brand":"Supermax","unit":"CX","selling_price":"34.90","stock":100}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestCreateProduct_EstoqueInicialNegativoRetorna400(t *testing.T) {
	app := buildProductApp()

	resp := postProduct(t, app, `{"code":"MED-001","description":"Luva M","brand":"Supermax","unit":"CX","selling_price":"34.90","stock":-5}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
		"estoque inicial negativo é erro de validação do cliente")
	assert.Equal(t, "VALIDATION", decodeError(t, resp)["code"])
}

func TestCreateProduct_UnidadeInvalidaRetorna400(t *testing.T) {
	app := buildProductApp()

	resp := postProduct(t, app, `{"code":"MED-001","description":"Luva M","brand":"Supermax","unit":"TON","selling_price":"1.00","stock":1}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
