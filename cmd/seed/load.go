package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

// loadResult totales de una carga.
type loadResult struct {
	Customers int
	Lines     int
	Skipped   int
}

// loader crea clientes y líneas con los casos de uso de la API.
type loader struct {
	customers *customer.UseCase
	subs      *subscriber.UseCase
	log       *logger.Logger
}

// load procesa las filas en orden. Una fila inválida se omite completa: la línea se valida
// antes de crear el cliente para no dejar clientes sueltos.
func (l *loader) load(ctx context.Context, rows []seedRow) (loadResult, error) {
	var res loadResult
	for i, row := range rows {
		fila := i + 2

		var line *entity.SubscriberChanges
		if row.MSISDN != "" {
			changes, err := l.checkLine(ctx, row)
			if err != nil {
				if !errors.Is(err, domain.ErrValidation) {
					return res, fmt.Errorf("fila %d: %w", fila, err)
				}
				l.log.Warn().Err(err).Int("fila", fila).Msg("fila omitida")
				res.Skipped++
				continue
			}
			line = &changes
		}

		created, err := l.customers.Create(ctx, row.Customer)
		if err != nil {
			if !errors.Is(err, domain.ErrValidation) {
				return res, fmt.Errorf("fila %d: %w", fila, err)
			}
			l.log.Warn().Err(err).Int("fila", fila).Msg("fila omitida")
			res.Skipped++
			continue
		}
		res.Customers++
		if line == nil {
			continue
		}

		line.OwnerID = &created.ID
		line.UserID = &created.ID
		if _, err := l.subs.Create(ctx, *line); err != nil {
			return res, fmt.Errorf("fila %d: crear línea %s: %w", fila, row.MSISDN, err)
		}
		res.Lines++
	}
	return res, nil
}

// checkLine valida formato y unicidad del msisdn de la fila. Dueño y usuario se asignan después.
func (l *loader) checkLine(ctx context.Context, row seedRow) (entity.SubscriberChanges, error) {
	var placeholder int64
	in := dto.MobileSubscriberDTO{
		MSISDN:      &row.MSISDN,
		OwnerID:     &placeholder,
		UserID:      &placeholder,
		ServiceType: &row.ServiceType,
	}
	if err := in.Validate(); err != nil {
		return entity.SubscriberChanges{}, err
	}
	changes, err := in.ToChanges()
	if err != nil {
		return entity.SubscriberChanges{}, err
	}
	existing, err := l.subs.FindByCriteria(ctx, entity.SubscriberChanges{MSISDN: changes.MSISDN})
	if err != nil {
		return entity.SubscriberChanges{}, err
	}
	if len(existing) > 0 {
		return entity.SubscriberChanges{}, fmt.Errorf("%w: el msisdn %s ya existe", domain.ErrValidation, row.MSISDN)
	}
	return changes, nil
}
