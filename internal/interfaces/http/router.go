package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SubscriberUC *subscriber.UseCase
	CustomerUC   *customer.UseCase
	// JWTSecret vacío deja las escrituras abiertas; si no, exigen rol admin u operator.
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	guard := writeGuard(deps.JWTSecret)

	subscriberHandler := NewSubscriberHandler(deps.SubscriberUC)
	registerSubscribers(app.Group(LegacyBasePath, APIVersion(false)), subscriberHandler, guard)
	registerSubscribers(app.Group(V1BasePath, APIVersion(true)), subscriberHandler, guard)

	customers := app.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", with(guard, customerHandler.Create)...)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Get("/:id/subscribers", customerHandler.Numbers)
}

func registerSubscribers(g fiber.Router, h *SubscriberHandler, guard []fiber.Handler) {
	g.Get("/", h.FindByCriteria)
	g.Get("/:id", h.FindByID)
	g.Post("/", with(guard, h.Create)...)
	g.Put("/:id", with(guard, h.Update)...)
	g.Patch("/:id", with(guard, h.Patch)...)
	g.Delete("/:id", with(guard, h.Delete)...)
}

// writeGuard middlewares de las rutas de escritura.
func writeGuard(secret string) []fiber.Handler {
	if secret == "" {
		return nil
	}
	return []fiber.Handler{AuthMiddleware(secret), RequireRole(entity.WriteRoles...)}
}

func with(guard []fiber.Handler, h fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(guard)+1)
	out = append(out, guard...)
	return append(out, h)
}
