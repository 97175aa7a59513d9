package repository

import (
	"context"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// MobileSubscriberRepository define el puerto de persistencia para MobileSubscriber.
type MobileSubscriberRepository interface {
	// Create persiste la línea y asigna subscriber.ID.
	Create(ctx context.Context, subscriber *entity.MobileSubscriber) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.MobileSubscriber, error)
	// GetByMSISDN devuelve (nil, nil) si no existe.
	GetByMSISDN(ctx context.Context, msisdn string) (*entity.MobileSubscriber, error)
	FindAll(ctx context.Context) ([]*entity.MobileSubscriber, error)
	// FindByCriteria filtra por igualdad exacta en cada campo informado (AND).
	FindByCriteria(ctx context.Context, criteria entity.SubscriberChanges) ([]*entity.MobileSubscriber, error)
	// Update reescribe dueño, usuario y tipo de servicio. MSISDN y fecha de inicio no se tocan.
	Update(ctx context.Context, subscriber *entity.MobileSubscriber) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}
