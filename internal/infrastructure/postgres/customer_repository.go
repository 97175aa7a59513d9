package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// Cada cliente ocupa una fila en customers y otra en persons o companies según su tipo.
const customerSelect = `
	SELECT c.id, c.kind, COALESCE(c.address, ''),
	       p.first_name, p.last_name, p.document_id,
	       co.company_name, co.tax_id
	FROM customers c
	LEFT JOIN persons p ON p.customer_id = c.id
	LEFT JOIN companies co ON co.customer_id = c.id`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
// Create escribe dos tablas: usarlo dentro de una transacción.
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente y su variante.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO customers (kind, address) VALUES ($1, $2) RETURNING id`,
		string(customer.Kind), customer.Address,
	).Scan(&customer.ID)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}

	switch {
	case customer.Person != nil:
		_, err = r.q.Exec(ctx, `
			INSERT INTO persons (customer_id, first_name, last_name, document_id)
			VALUES ($1, $2, $3, $4)`,
			customer.ID, customer.Person.FirstName, customer.Person.LastName, customer.Person.DocumentID,
		)
		if err != nil {
			return fmt.Errorf("insert person: %w", err)
		}
	case customer.Company != nil:
		_, err = r.q.Exec(ctx, `
			INSERT INTO companies (customer_id, company_name, tax_id)
			VALUES ($1, $2, $3)`,
			customer.ID, customer.Company.CompanyName, customer.Company.TaxID,
		)
		if err != nil {
			return fmt.Errorf("insert company: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, customerSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes con paginación, ordenados por ID.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, customerSelect+` ORDER BY c.id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var (
		c                               entity.Customer
		kind                            string
		firstName, lastName, documentID *string
		companyName, taxID              *string
	)
	if err := row.Scan(&c.ID, &kind, &c.Address, &firstName, &lastName, &documentID, &companyName, &taxID); err != nil {
		return nil, err
	}
	c.Kind = entity.CustomerKind(kind)
	switch c.Kind {
	case entity.CustomerPerson:
		c.Person = &entity.PersonDetails{
			FirstName:  deref(firstName),
			LastName:   deref(lastName),
			DocumentID: deref(documentID),
		}
	case entity.CustomerCompany:
		c.Company = &entity.CompanyDetails{
			CompanyName: deref(companyName),
			TaxID:       deref(taxID),
		}
	}
	return &c, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
