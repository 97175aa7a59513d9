package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/metrics"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

// Nombres de operación usados en logs y métricas.
const (
	opFindByID       = "find_by_id"
	opFindByCriteria = "find_by_criteria"
	opCreate         = "create"
	opUpdate         = "update"
	opPatch          = "patch"
	opDelete         = "delete"
)

// UseCase casos de uso sobre líneas móviles.
type UseCase struct {
	subs      repository.MobileSubscriberRepository
	customers repository.CustomerRepository
	tx        TxRunner
	log       *logger.Logger
	metrics   *metrics.Metrics
	now       func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*UseCase)

// WithLogger inyecta el logger de la aplicación.
func WithLogger(l *logger.Logger) Option { return func(uc *UseCase) { uc.log = l } }

// WithMetrics inyecta los instrumentos Prometheus.
func WithMetrics(m *metrics.Metrics) Option { return func(uc *UseCase) { uc.metrics = m } }

// WithClock reemplaza time.Now (tests).
func WithClock(now func() time.Time) Option { return func(uc *UseCase) { uc.now = now } }

// NewUseCase construye el caso de uso. subs y customers se usan para lecturas; tx para escrituras.
func NewUseCase(subs repository.MobileSubscriberRepository, customers repository.CustomerRepository, tx TxRunner, opts ...Option) *UseCase {
	uc := &UseCase{
		subs:      subs,
		customers: customers,
		tx:        tx,
		log:       logger.Nop(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// FindByID devuelve la línea o domain.ErrNotFound.
func (uc *UseCase) FindByID(ctx context.Context, id int64) (_ *entity.MobileSubscriber, err error) {
	defer uc.observe(opFindByID, time.Now(), &err, nil)

	s, err := uc.subs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		uc.log.Error().Int64("id", id).Msg("línea no encontrada")
		return nil, fmt.Errorf("%w: línea %d", domain.ErrNotFound, id)
	}
	return s, nil
}

// FindByCriteria busca líneas por igualdad exacta en cada criterio informado.
// Sin criterios devuelve todas las líneas.
func (uc *UseCase) FindByCriteria(ctx context.Context, criteria entity.SubscriberChanges) (_ []*entity.MobileSubscriber, err error) {
	defer uc.observe(opFindByCriteria, time.Now(), &err, nil)

	if criteria.IsEmpty() {
		return uc.subs.FindAll(ctx)
	}
	return uc.subs.FindByCriteria(ctx, criteria)
}

// Create registra una nueva línea. La fecha de inicio la asigna el servidor.
func (uc *UseCase) Create(ctx context.Context, in entity.SubscriberChanges) (_ *entity.MobileSubscriber, err error) {
	defer uc.observe(opCreate, time.Now(), &err, nil)

	if in.MSISDN == nil || in.OwnerID == nil || in.UserID == nil || in.ServiceType == nil {
		return nil, fmt.Errorf("%w: msisdn, ownerId, userId y serviceType son requeridos", domain.ErrValidation)
	}

	var created *entity.MobileSubscriber
	err = uc.tx.Run(ctx, func(subs repository.MobileSubscriberRepository, customers repository.CustomerRepository) error {
		existing, err := subs.GetByMSISDN(ctx, *in.MSISDN)
		if err != nil {
			return err
		}
		if existing != nil {
			uc.log.Error().Str("msisdn", *in.MSISDN).Msg("la línea ya existe")
			return fmt.Errorf("%w: el msisdn %s ya existe", domain.ErrValidation, *in.MSISDN)
		}
		if in.ServiceStartDate != nil {
			uc.log.Error().Str("msisdn", *in.MSISDN).Msg("fecha de inicio informada en la creación")
			return fmt.Errorf("%w: la fecha de inicio del servicio se calcula automáticamente y no debe enviarse", domain.ErrValidation)
		}
		if err := uc.requireCustomer(ctx, customers, *in.OwnerID); err != nil {
			return err
		}
		if err := uc.requireCustomer(ctx, customers, *in.UserID); err != nil {
			return err
		}

		s := &entity.MobileSubscriber{
			MSISDN:           *in.MSISDN,
			OwnerID:          *in.OwnerID,
			UserID:           *in.UserID,
			ServiceType:      *in.ServiceType,
			ServiceStartDate: uc.now().UTC().Truncate(time.Millisecond),
		}
		if err := subs.Create(ctx, s); err != nil {
			return err
		}
		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("id", created.ID).Str("msisdn", created.MSISDN).Msg("línea creada")
	return created, nil
}

// Update reemplaza la línea (PUT). Dueño y usuario deben existir aunque no cambien.
// Si ningún campo permitido cambia no se escribe y se devuelve la línea almacenada.
func (uc *UseCase) Update(ctx context.Context, id int64, in entity.SubscriberChanges) (_ *entity.MobileSubscriber, err error) {
	noop := false
	defer uc.observe(opUpdate, time.Now(), &err, &noop)

	if in.OwnerID == nil || in.UserID == nil || in.ServiceType == nil {
		return nil, fmt.Errorf("%w: ownerId, userId y serviceType son requeridos", domain.ErrValidation)
	}

	var result *entity.MobileSubscriber
	err = uc.tx.Run(ctx, func(subs repository.MobileSubscriberRepository, customers repository.CustomerRepository) error {
		stored, err := subs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			uc.log.Error().Int64("id", id).Msg("línea a actualizar no encontrada")
			return fmt.Errorf("%w: línea %d", domain.ErrNotFound, id)
		}
		if err := uc.requireCustomer(ctx, customers, *in.OwnerID); err != nil {
			return err
		}
		if err := uc.requireCustomer(ctx, customers, *in.UserID); err != nil {
			return err
		}

		changed, err := Diff(stored, in, false)
		if err != nil {
			uc.log.Error().Err(err).Int64("id", id).Msg("actualización rechazada")
			return err
		}
		if !changed {
			noop = true
			result = stored
			return nil
		}

		updated := &entity.MobileSubscriber{
			ID:               id,
			MSISDN:           stored.MSISDN,
			OwnerID:          *in.OwnerID,
			UserID:           *in.UserID,
			ServiceType:      *in.ServiceType,
			ServiceStartDate: stored.ServiceStartDate,
		}
		if err := subs.Update(ctx, updated); err != nil {
			return err
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	if noop {
		uc.log.Info().Int64("id", id).Msg("sin cambios para actualizar")
	} else {
		uc.log.Info().Int64("id", id).Msg("línea actualizada")
	}
	return result, nil
}

// Patch aplica cambios parciales. Dueño y usuario solo se verifican si vienen informados.
func (uc *UseCase) Patch(ctx context.Context, id int64, in entity.SubscriberChanges) (_ *entity.MobileSubscriber, err error) {
	noop := false
	defer uc.observe(opPatch, time.Now(), &err, &noop)

	var result *entity.MobileSubscriber
	err = uc.tx.Run(ctx, func(subs repository.MobileSubscriberRepository, customers repository.CustomerRepository) error {
		stored, err := subs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if stored == nil {
			uc.log.Error().Int64("id", id).Msg("línea a modificar no encontrada")
			return fmt.Errorf("%w: línea %d", domain.ErrNotFound, id)
		}
		if in.OwnerID != nil {
			if err := uc.requireCustomer(ctx, customers, *in.OwnerID); err != nil {
				return err
			}
		}
		if in.UserID != nil {
			if err := uc.requireCustomer(ctx, customers, *in.UserID); err != nil {
				return err
			}
		}

		changed, err := Diff(stored, in, true)
		if err != nil {
			uc.log.Error().Err(err).Int64("id", id).Msg("modificación rechazada")
			return err
		}
		result = stored
		if !changed {
			noop = true
			return nil
		}
		return subs.Update(ctx, stored)
	})
	if err != nil {
		return nil, err
	}
	if noop {
		uc.log.Info().Int64("id", id).Msg("sin cambios para aplicar")
	} else {
		uc.log.Info().Int64("id", id).Msg("línea modificada")
	}
	return result, nil
}

// Delete elimina la línea si existe. Un id inexistente no es un error.
func (uc *UseCase) Delete(ctx context.Context, id int64) (err error) {
	noop := false
	defer uc.observe(opDelete, time.Now(), &err, &noop)

	err = uc.tx.Run(ctx, func(subs repository.MobileSubscriberRepository, _ repository.CustomerRepository) error {
		exists, err := subs.ExistsByID(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			noop = true
			return nil
		}
		return subs.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Int64("id", id).Bool("existed", !noop).Msg("línea eliminada")
	return nil
}

func (uc *UseCase) requireCustomer(ctx context.Context, customers repository.CustomerRepository, id int64) error {
	c, err := customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		uc.log.Error().Int64("customer_id", id).Msg("cliente no encontrado")
		return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	return nil
}

func (uc *UseCase) observe(op string, start time.Time, errp *error, noop *bool) {
	result := metrics.ResultOK
	switch err := *errp; {
	case err == nil && noop != nil && *noop:
		result = metrics.ResultNoop
	case err == nil:
	case errors.Is(err, domain.ErrNotFound):
		result = metrics.ResultNotFound
	case errors.Is(err, domain.ErrValidation):
		result = metrics.ResultValidation
	default:
		result = metrics.ResultError
	}
	uc.metrics.Observe(op, result, start)
}
