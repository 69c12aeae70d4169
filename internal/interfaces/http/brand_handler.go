package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/medstock/medstock-pro/internal/application/dto"
	"github.com/medstock/medstock-pro/internal/application/usecase"
	"github.com/medstock/medstock-pro/internal/domain"
)

// BrandHandler trata as requisições HTTP do cadastro de marcas (protegido).
type BrandHandler struct {
	uc *usecase.BrandUseCase
}

// NewBrandHandler constrói o handler.
func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// List godoc
// @Summary      Listar marcas disponíveis
// @Tags         brands
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/brands [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	brands, err := h.uc.List()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(brands)
}

// Add godoc
// @Summary      Cadastrar marca personalizada
// @Tags         brands
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  object{name=string}  true  "Nome da marca"
// @Success      201  "criada"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/brands [post]
func (h *BrandHandler) Add(c *fiber.Ctx) error {
	var in struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	if err := h.uc.Add(in.Name); err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name é obrigatório"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusCreated)
}
