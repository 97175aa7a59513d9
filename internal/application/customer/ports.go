package customer

import (
	"context"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción. Crear un cliente escribe en customers y en la tabla de su variante.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		subs repository.MobileSubscriberRepository,
		customers repository.CustomerRepository,
	) error) error
}
