package dto

import (
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// MSISDNPattern formato E.164 sin el signo '+'.
const MSISDNPattern = `^[1-9]\d{1,14}$`

// MobileSubscriberDTO objeto de transferencia de una línea móvil.
// Todos los campos son opcionales a nivel JSON: en PATCH y en búsquedas un campo nil no se toma en cuenta.
type MobileSubscriberDTO struct {
	MSISDN           *string `json:"msisdn"`
	UserID           *int64  `json:"userId"`
	OwnerID          *int64  `json:"ownerId"`
	ServiceType      *string `json:"serviceType"`
	ServiceStartDate *int64  `json:"serviceStartDate"`
}

// MobileSubscribersDTO lista de líneas.
type MobileSubscribersDTO struct {
	Subscribers []MobileSubscriberDTO `json:"subscribers"`
}

// IsEmpty indica que no se informó ningún campo (búsqueda sin criterios).
func (d MobileSubscriberDTO) IsEmpty() bool {
	return d.MSISDN == nil && d.UserID == nil && d.OwnerID == nil &&
		d.ServiceType == nil && d.ServiceStartDate == nil
}

// Validate reglas de formato para POST y PUT: msisdn, userId, ownerId y serviceType son obligatorios.
func (d MobileSubscriberDTO) Validate() error {
	if d.MSISDN == nil || d.UserID == nil || d.OwnerID == nil || d.ServiceType == nil {
		return fmt.Errorf("%w: msisdn, userId, ownerId y serviceType son requeridos", domain.ErrValidation)
	}
	return d.ValidateFormat()
}

// ValidateFormat valida solo los campos presentes (PATCH).
func (d MobileSubscriberDTO) ValidateFormat() error {
	if d.MSISDN != nil && !govalidator.StringMatches(*d.MSISDN, MSISDNPattern) {
		return fmt.Errorf("%w: msisdn debe seguir el formato E.164", domain.ErrValidation)
	}
	if d.ServiceType != nil && !govalidator.IsIn(*d.ServiceType, string(entity.ServicePrepaid), string(entity.ServicePostpaid)) {
		return fmt.Errorf("%w: serviceType solo puede ser %s o %s", domain.ErrValidation, entity.ServicePrepaid, entity.ServicePostpaid)
	}
	return nil
}

// ToChanges convierte el DTO al conjunto de cambios del dominio.
func (d MobileSubscriberDTO) ToChanges() (entity.SubscriberChanges, error) {
	ch := entity.SubscriberChanges{
		MSISDN:  d.MSISDN,
		OwnerID: d.OwnerID,
		UserID:  d.UserID,
	}
	if d.ServiceType != nil {
		st, err := entity.ParseServiceType(*d.ServiceType)
		if err != nil {
			return entity.SubscriberChanges{}, err
		}
		ch.ServiceType = &st
	}
	if d.ServiceStartDate != nil {
		t := entity.FromEpochMillis(*d.ServiceStartDate)
		ch.ServiceStartDate = &t
	}
	return ch, nil
}

// SubscriberToDTO convierte la entidad a su representación JSON.
func SubscriberToDTO(s *entity.MobileSubscriber) MobileSubscriberDTO {
	msisdn := s.MSISDN
	userID := s.UserID
	ownerID := s.OwnerID
	serviceType := s.ServiceType.String()
	start := entity.EpochMillis(s.ServiceStartDate)
	return MobileSubscriberDTO{
		MSISDN:           &msisdn,
		UserID:           &userID,
		OwnerID:          &ownerID,
		ServiceType:      &serviceType,
		ServiceStartDate: &start,
	}
}

// SubscribersToDTO convierte una lista; nunca devuelve nil para que el JSON sea [].
func SubscribersToDTO(list []*entity.MobileSubscriber) MobileSubscribersDTO {
	out := make([]MobileSubscriberDTO, 0, len(list))
	for _, s := range list {
		out = append(out, SubscriberToDTO(s))
	}
	return MobileSubscribersDTO{Subscribers: out}
}
