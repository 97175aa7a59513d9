package subscriber

import (
	"fmt"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// Diff compara la línea almacenada con el conjunto de cambios recibido.
//
// Solo dueño, usuario y tipo de servicio pueden cambiar. Un msisdn distinto al almacenado
// o cualquier fecha de inicio informada es un error de validación. Devuelve true si algún
// campo permitido difiere; con apply=true esos cambios se escriben sobre stored.
func Diff(stored *entity.MobileSubscriber, changes entity.SubscriberChanges, apply bool) (bool, error) {
	if changes.MSISDN != nil && *changes.MSISDN != stored.MSISDN {
		return false, fmt.Errorf("%w: no se permite modificar el msisdn", domain.ErrValidation)
	}
	if changes.ServiceStartDate != nil {
		return false, fmt.Errorf("%w: no se permite modificar la fecha de inicio del servicio", domain.ErrValidation)
	}

	changed := false
	if changes.UserID != nil && *changes.UserID != stored.UserID {
		if apply {
			stored.AssignUser(*changes.UserID)
		}
		changed = true
	}
	if changes.OwnerID != nil && *changes.OwnerID != stored.OwnerID {
		if apply {
			stored.AssignOwner(*changes.OwnerID)
		}
		changed = true
	}
	if changes.ServiceType != nil && *changes.ServiceType != stored.ServiceType {
		if apply {
			stored.ServiceType = *changes.ServiceType
		}
		changed = true
	}
	return changed, nil
}
