package entity

import (
	"fmt"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
)

// ServiceType plan de la línea móvil (deben coincidir con el CHECK de mobile_subscribers.service_type).
type ServiceType string

const (
	ServicePrepaid  ServiceType = "MOBILE_PREPAID"
	ServicePostpaid ServiceType = "MOBILE_POSTPAID"
)

// ParseServiceType convierte el nombre del enum. Cualquier otro valor es un error de validación.
func ParseServiceType(s string) (ServiceType, error) {
	switch ServiceType(s) {
	case ServicePrepaid, ServicePostpaid:
		return ServiceType(s), nil
	}
	return "", fmt.Errorf("%w: no se puede interpretar %q; se permiten %s y %s",
		domain.ErrValidation, s, ServicePrepaid, ServicePostpaid)
}

func (t ServiceType) String() string { return string(t) }
