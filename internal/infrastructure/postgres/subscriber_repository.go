package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
)

var _ repository.MobileSubscriberRepository = (*SubscriberRepo)(nil)

var subscriberColumns = []string{
	"id", "msisdn", "customer_id_owner", "customer_id_user", "service_type", "service_start_date",
}

// SubscriberRepo implementación de MobileSubscriberRepository (usable con pool o tx).
type SubscriberRepo struct {
	q Querier
}

// NewSubscriberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriberRepository(q Querier) *SubscriberRepo {
	return &SubscriberRepo{q: q}
}

// Create persiste una nueva línea y asigna su ID.
func (r *SubscriberRepo) Create(ctx context.Context, s *entity.MobileSubscriber) error {
	query := `
		INSERT INTO mobile_subscribers (msisdn, customer_id_owner, customer_id_user, service_type, service_start_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.MSISDN, s.OwnerID, s.UserID, string(s.ServiceType), s.ServiceStartDate,
	).Scan(&s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el msisdn %s ya existe", domain.ErrValidation, s.MSISDN)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente dueño o usuario", domain.ErrNotFound)
		}
		return fmt.Errorf("insert mobile_subscriber: %w", err)
	}
	return nil
}

// GetByID obtiene una línea por ID.
func (r *SubscriberRepo) GetByID(ctx context.Context, id int64) (*entity.MobileSubscriber, error) {
	return r.getOne(ctx, psql.Select(subscriberColumns...).From("mobile_subscribers").Where(sq.Eq{"id": id}))
}

// GetByMSISDN obtiene una línea por número.
func (r *SubscriberRepo) GetByMSISDN(ctx context.Context, msisdn string) (*entity.MobileSubscriber, error) {
	return r.getOne(ctx, psql.Select(subscriberColumns...).From("mobile_subscribers").Where(sq.Eq{"msisdn": msisdn}))
}

// FindAll lista todas las líneas ordenadas por ID.
func (r *SubscriberRepo) FindAll(ctx context.Context) ([]*entity.MobileSubscriber, error) {
	return r.list(ctx, criteriaQuery(entity.SubscriberChanges{}))
}

// FindByCriteria filtra por igualdad exacta en cada criterio informado.
func (r *SubscriberRepo) FindByCriteria(ctx context.Context, criteria entity.SubscriberChanges) ([]*entity.MobileSubscriber, error) {
	return r.list(ctx, criteriaQuery(criteria))
}

// Update reescribe dueño, usuario y tipo de servicio.
func (r *SubscriberRepo) Update(ctx context.Context, s *entity.MobileSubscriber) error {
	query, args, err := psql.Update("mobile_subscribers").
		SetMap(sq.Eq{
			"customer_id_owner": s.OwnerID,
			"customer_id_user":  s.UserID,
			"service_type":      string(s.ServiceType),
		}).
		Where(sq.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update mobile_subscriber: %w", err)
	}
	tag, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: cliente dueño o usuario", domain.ErrNotFound)
		}
		return fmt.Errorf("update mobile_subscriber: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: línea %d", domain.ErrNotFound, s.ID)
	}
	return nil
}

// ExistsByID indica si existe una línea con ese ID.
func (r *SubscriberRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM mobile_subscribers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists mobile_subscriber: %w", err)
	}
	return exists, nil
}

// Delete elimina una línea por ID.
func (r *SubscriberRepo) Delete(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `DELETE FROM mobile_subscribers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete mobile_subscriber: %w", err)
	}
	return nil
}

// criteriaQuery arma el SELECT con un predicado de igualdad por cada criterio informado (AND).
func criteriaQuery(c entity.SubscriberChanges) sq.SelectBuilder {
	q := psql.Select(subscriberColumns...).From("mobile_subscribers").OrderBy("id")
	eq := sq.Eq{}
	if c.MSISDN != nil {
		eq["msisdn"] = *c.MSISDN
	}
	if c.OwnerID != nil {
		eq["customer_id_owner"] = *c.OwnerID
	}
	if c.UserID != nil {
		eq["customer_id_user"] = *c.UserID
	}
	if c.ServiceType != nil {
		eq["service_type"] = string(*c.ServiceType)
	}
	if c.ServiceStartDate != nil {
		eq["service_start_date"] = c.ServiceStartDate.UTC()
	}
	if len(eq) > 0 {
		q = q.Where(eq)
	}
	return q
}

func (r *SubscriberRepo) getOne(ctx context.Context, b sq.SelectBuilder) (*entity.MobileSubscriber, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select mobile_subscriber: %w", err)
	}
	s, err := scanSubscriber(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get mobile_subscriber: %w", err)
	}
	return s, nil
}

func (r *SubscriberRepo) list(ctx context.Context, b sq.SelectBuilder) ([]*entity.MobileSubscriber, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list mobile_subscribers: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mobile_subscribers: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.MobileSubscriber, 0)
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("scan mobile_subscriber: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSubscriber(row pgx.Row) (*entity.MobileSubscriber, error) {
	var (
		s           entity.MobileSubscriber
		serviceType string
		start       time.Time
	)
	if err := row.Scan(&s.ID, &s.MSISDN, &s.OwnerID, &s.UserID, &serviceType, &start); err != nil {
		return nil, err
	}
	s.ServiceType = entity.ServiceType(serviceType)
	s.ServiceStartDate = start.UTC()
	return &s, nil
}
