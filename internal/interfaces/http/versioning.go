package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Locals keys de versionado.
const (
	LocalAPIVersion = "api_version"
	LocalBasePath   = "base_path"
)

// Versiones de la API de líneas móviles.
const (
	VersionLegacy = "legacy"
	VersionV1     = "v1"
)

// Rutas base de cada versión.
const (
	LegacyBasePath = "/mobile/subscribers"
	V1BasePath     = "/v1/mobile/subscribers"
)

// APIVersion fija la versión de la petición. forceV1 se usa en el grupo /v1;
// en la ruta sin prefijo la versión 1 se negocia con "Accept: application/json;v=1".
func APIVersion(forceV1 bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		version, base := VersionLegacy, LegacyBasePath
		if forceV1 {
			version, base = VersionV1, V1BasePath
		} else if acceptsV1(c.Get(fiber.HeaderAccept)) {
			version = VersionV1
		}
		c.Locals(LocalAPIVersion, version)
		c.Locals(LocalBasePath, base)
		return c.Next()
	}
}

// acceptsV1 busca el parámetro v=1 en alguno de los media types del header Accept.
func acceptsV1(accept string) bool {
	for _, mediaType := range strings.Split(accept, ",") {
		params := strings.Split(mediaType, ";")
		for _, p := range params[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if ok && strings.EqualFold(strings.TrimSpace(k), "v") && strings.Trim(strings.TrimSpace(v), `"`) == "1" {
				return true
			}
		}
	}
	return false
}

// IsV1 indica si la petición se atiende con la versión 1.
func IsV1(c *fiber.Ctx) bool {
	v, _ := c.Locals(LocalAPIVersion).(string)
	return v == VersionV1
}

// resourceURL URL absoluta de la colección de la versión atendida.
func resourceURL(c *fiber.Ctx) string {
	base, _ := c.Locals(LocalBasePath).(string)
	if base == "" {
		base = LegacyBasePath
	}
	return c.BaseURL() + base
}
