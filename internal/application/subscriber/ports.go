package subscriber

import (
	"context"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Cada operación de escritura sobre líneas corre en una sola transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		subs repository.MobileSubscriberRepository,
		customers repository.CustomerRepository,
	) error) error
}
