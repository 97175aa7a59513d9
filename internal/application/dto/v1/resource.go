// Package v1 objetos de transferencia de la versión 1 de la API:
// los recursos individuales incluyen enlaces de navegación (_links).
package v1

import (
	"strconv"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// Relaciones de enlace expuestas por la API v1.
const (
	RelFindByID = "find-by-id"
	RelFindAll  = "find-all"
)

// Link enlace hipermedia.
type Link struct {
	Href string `json:"href"`
}

// SubscriberResource línea móvil con enlaces.
type SubscriberResource struct {
	dto.MobileSubscriberDTO
	Links map[string]Link `json:"_links"`
}

// SubscribersResource lista de líneas de la API v1 (sin enlaces por elemento).
type SubscribersResource struct {
	Subscribers []dto.MobileSubscriberDTO `json:"subscribers"`
}

// NewFindByIDResource recurso devuelto por create/update/patch: enlaza a la consulta por id.
func NewFindByIDResource(basePath string, s *entity.MobileSubscriber) SubscriberResource {
	return SubscriberResource{
		MobileSubscriberDTO: dto.SubscriberToDTO(s),
		Links: map[string]Link{
			RelFindByID: {Href: basePath + "/" + strconv.FormatInt(s.ID, 10)},
		},
	}
}

// NewFindAllResource recurso devuelto por la consulta por id: enlaza al listado completo.
func NewFindAllResource(basePath string, s *entity.MobileSubscriber) SubscriberResource {
	return SubscriberResource{
		MobileSubscriberDTO: dto.SubscriberToDTO(s),
		Links: map[string]Link{
			RelFindAll: {Href: basePath},
		},
	}
}

// NewSubscribersResource lista de la API v1.
func NewSubscribersResource(list []*entity.MobileSubscriber) SubscribersResource {
	return SubscribersResource{Subscribers: dto.SubscribersToDTO(list).Subscribers}
}
