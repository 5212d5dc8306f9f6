package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/radiator-inventory/internal/application/dto"
	"github.com/jhoicas/radiator-inventory/internal/application/usecase"
)

// RadiatorHandler catálogo de radiadores.
type RadiatorHandler struct {
	uc *usecase.RadiatorUseCase
}

// NewRadiatorHandler construye el handler.
func NewRadiatorHandler(uc *usecase.RadiatorUseCase) *RadiatorHandler {
	return &RadiatorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear radiador
// @Tags         radiators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRadiatorRequest  true  "Datos del radiador"
// @Success      201   {object}  dto.RadiatorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/radiators [post]
func (h *RadiatorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRadiatorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener radiador con stock total
// @Tags         radiators
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del radiador"
// @Success      200  {object}  dto.RadiatorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/radiators/{id} [get]
func (h *RadiatorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar radiador / precio sobrescrito
// @Tags         radiators
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del radiador"
// @Param        body  body  dto.UpdateRadiatorRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.RadiatorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/radiators/{id} [put]
func (h *RadiatorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRadiatorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar radiadores
// @Tags         radiators
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Marca, código, nombre o modelo"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.RadiatorListResponse
// @Router       /api/radiators [get]
func (h *RadiatorHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), c.Query("search"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar radiador
// @Tags         radiators
// @Security     Bearer
// @Param        id   path  string  true  "ID del radiador"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/radiators/{id} [delete]
func (h *RadiatorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
