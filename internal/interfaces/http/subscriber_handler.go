package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
	v1 "github.com/jhoicas/mobile-subscribers-api/internal/application/dto/v1"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// SubscriberHandler maneja las peticiones HTTP de líneas móviles (API legacy y v1).
type SubscriberHandler struct {
	uc *subscriber.UseCase
}

// NewSubscriberHandler construye el handler.
func NewSubscriberHandler(uc *subscriber.UseCase) *SubscriberHandler {
	return &SubscriberHandler{uc: uc}
}

// FindByID GET /mobile/subscribers/:id
// @Summary      Consultar línea por id
// @Tags         subscribers
// @Produce      json
// @Param        id   path      int  true  "ID de la línea"
// @Success      200  {object}  dto.MobileSubscriberDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mobile/subscribers/{id} [get]
func (h *SubscriberHandler) FindByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	s, err := h.uc.FindByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	if IsV1(c) {
		return c.JSON(v1.NewFindAllResource(resourceURL(c), s))
	}
	return c.JSON(dto.SubscriberToDTO(s))
}

// FindByCriteria GET /mobile/subscribers?msisdn=&ownerId=&userId=&serviceType=&serviceStartDate=
// @Summary      Buscar líneas por criterios
// @Description  Sin criterios devuelve todas las líneas. En v1 una búsqueda sin resultados responde 404.
// @Tags         subscribers
// @Produce      json
// @Param        msisdn            query  string  false  "MSISDN E.164"
// @Param        ownerId           query  int     false  "ID del cliente dueño"
// @Param        userId            query  int     false  "ID del cliente usuario"
// @Param        serviceType       query  string  false  "MOBILE_PREPAID | MOBILE_POSTPAID"
// @Param        serviceStartDate  query  int     false  "Fecha de inicio (epoch millis)"
// @Success      200  {object}  dto.MobileSubscribersDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /mobile/subscribers [get]
func (h *SubscriberHandler) FindByCriteria(c *fiber.Ctx) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}
	list, err := h.uc.FindByCriteria(c.UserContext(), criteria)
	if err != nil {
		return writeError(c, err)
	}
	if IsV1(c) {
		if len(list) == 0 {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: "no hay líneas para los criterios indicados"})
		}
		return c.JSON(v1.NewSubscribersResource(list))
	}
	return c.JSON(dto.SubscribersToDTO(list))
}

// Create POST /mobile/subscribers
// @Summary      Registrar línea
// @Description  La fecha de inicio del servicio la asigna el servidor; enviarla es un error.
// @Tags         subscribers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.MobileSubscriberDTO  true  "msisdn, ownerId, userId y serviceType"
// @Success      201   {object}  dto.MobileSubscriberDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /mobile/subscribers [post]
func (h *SubscriberHandler) Create(c *fiber.Ctx) error {
	var in dto.MobileSubscriberDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	changes, err := in.ToChanges()
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.Create(c.UserContext(), changes)
	if err != nil {
		return writeError(c, err)
	}
	return h.writeResource(c.Status(fiber.StatusCreated), s)
}

// Update PUT /mobile/subscribers/:id
// @Summary      Reemplazar línea
// @Description  msisdn y fecha de inicio son inmutables. Sin cambios no se escribe.
// @Tags         subscribers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID de la línea"
// @Param        body  body      dto.MobileSubscriberDTO  true  "Línea completa"
// @Success      200   {object}  dto.MobileSubscriberDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /mobile/subscribers/{id} [put]
func (h *SubscriberHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.MobileSubscriberDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.Validate(); err != nil {
		return writeError(c, err)
	}
	changes, err := in.ToChanges()
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.Update(c.UserContext(), id, changes)
	if err != nil {
		return writeError(c, err)
	}
	return h.writeResource(c, s)
}

// Patch PATCH /mobile/subscribers/:id
// @Summary      Modificar línea parcialmente
// @Tags         subscribers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path      int                      true  "ID de la línea"
// @Param        body  body      dto.MobileSubscriberDTO  true  "Campos a cambiar"
// @Success      200   {object}  dto.MobileSubscriberDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /mobile/subscribers/{id} [patch]
func (h *SubscriberHandler) Patch(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	var in dto.MobileSubscriberDTO
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := in.ValidateFormat(); err != nil {
		return writeError(c, err)
	}
	changes, err := in.ToChanges()
	if err != nil {
		return writeError(c, err)
	}
	s, err := h.uc.Patch(c.UserContext(), id, changes)
	if err != nil {
		return writeError(c, err)
	}
	return h.writeResource(c, s)
}

// Delete DELETE /mobile/subscribers/:id
// @Summary      Eliminar línea
// @Description  Un id inexistente no es un error.
// @Tags         subscribers
// @Security     Bearer
// @Param        id   path  int  true  "ID de la línea"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /mobile/subscribers/{id} [delete]
func (h *SubscriberHandler) Delete(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return invalidID(c)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusOK).Send(nil)
}

func (h *SubscriberHandler) writeResource(c *fiber.Ctx, s *entity.MobileSubscriber) error {
	if IsV1(c) {
		return c.JSON(v1.NewFindByIDResource(resourceURL(c), s))
	}
	return c.JSON(dto.SubscriberToDTO(s))
}

// criteriaFromQuery arma los criterios de búsqueda; los parámetros vacíos se ignoran.
func criteriaFromQuery(c *fiber.Ctx) (entity.SubscriberChanges, error) {
	var in dto.MobileSubscriberDTO
	if v := c.Query("msisdn"); v != "" {
		in.MSISDN = &v
	}
	if v := c.Query("serviceType"); v != "" {
		in.ServiceType = &v
	}
	var err error
	if in.OwnerID, err = queryInt(c, "ownerId"); err != nil {
		return entity.SubscriberChanges{}, err
	}
	if in.UserID, err = queryInt(c, "userId"); err != nil {
		return entity.SubscriberChanges{}, err
	}
	if in.ServiceStartDate, err = queryInt(c, "serviceStartDate"); err != nil {
		return entity.SubscriberChanges{}, err
	}
	return in.ToChanges()
}

func queryInt(c *fiber.Ctx, key string) (*int64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s debe ser numérico", domain.ErrValidation, key)
	}
	return &n, nil
}
