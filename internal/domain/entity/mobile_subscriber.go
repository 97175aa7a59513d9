package entity

import "time"

// MobileSubscriber representa una línea móvil (MSISDN) con su dueño y su usuario.
// MSISDN y ServiceStartDate no cambian después de la creación.
type MobileSubscriber struct {
	ID               int64
	MSISDN           string // E.164 sin '+'
	OwnerID          int64
	UserID           int64
	ServiceType      ServiceType
	ServiceStartDate time.Time
}

// SubscriberChanges conjunto de cambios (o criterios de búsqueda) con campos opcionales.
// Un campo nil significa "no informado".
type SubscriberChanges struct {
	MSISDN           *string
	OwnerID          *int64
	UserID           *int64
	ServiceType      *ServiceType
	ServiceStartDate *time.Time
}

// IsEmpty indica que no se informó ningún campo.
func (c SubscriberChanges) IsEmpty() bool {
	return c.MSISDN == nil && c.OwnerID == nil && c.UserID == nil &&
		c.ServiceType == nil && c.ServiceStartDate == nil
}

// AssignOwner cambia el dueño de la línea.
func (s *MobileSubscriber) AssignOwner(ownerID int64) { s.OwnerID = ownerID }

// AssignUser cambia el usuario de la línea.
func (s *MobileSubscriber) AssignUser(userID int64) { s.UserID = userID }

// EpochMillis convierte una fecha a milisegundos desde epoch (formato de la API).
func EpochMillis(t time.Time) int64 { return t.UnixMilli() }

// FromEpochMillis convierte milisegundos desde epoch a time.Time en UTC.
func FromEpochMillis(ms int64) time.Time { return time.UnixMilli(ms).UTC() }
