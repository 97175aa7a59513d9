package repository

import (
	"context"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (persona o empresa).
type CustomerRepository interface {
	// Create persiste el cliente y asigna customer.ID.
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id int64) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)
}
