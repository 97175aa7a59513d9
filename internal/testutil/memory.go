// Package testutil repositorios en memoria para tests de casos de uso y handlers HTTP.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
)

var (
	_ repository.MobileSubscriberRepository = (*SubscriberRepo)(nil)
	_ repository.CustomerRepository         = (*CustomerRepo)(nil)
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu          sync.Mutex
	subscribers map[int64]entity.MobileSubscriber
	customers   map[int64]entity.Customer
	nextSubID   int64
	nextCustID  int64

	// Writes cuenta Create/Update/Delete sobre líneas.
	Writes int
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		subscribers: map[int64]entity.MobileSubscriber{},
		customers:   map[int64]entity.Customer{},
	}
}

// Subscribers repositorio de líneas sobre el store.
func (s *Store) Subscribers() *SubscriberRepo { return &SubscriberRepo{s: s} }

// Customers repositorio de clientes sobre el store.
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }

// TxRunner runner que restaura el estado si fn devuelve error.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// WriteCount devuelve el número de escrituras sobre líneas.
func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Writes
}

// SeedPerson inserta una persona y devuelve su id.
func (s *Store) SeedPerson(first, last string) int64 {
	c := entity.NewPerson("Calle 1", first, last, "DOC-"+first)
	_ = s.Customers().Create(context.Background(), c)
	return c.ID
}

// SeedCompany inserta una empresa y devuelve su id.
func (s *Store) SeedCompany(name string) int64 {
	c := entity.NewCompany("Av. Principal 100", name, "TAX-"+name)
	_ = s.Customers().Create(context.Background(), c)
	return c.ID
}

// SeedSubscriber inserta una línea sin pasar por el caso de uso y sin contar como escritura.
func (s *Store) SeedSubscriber(sub entity.MobileSubscriber) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	sub.ID = s.nextSubID
	s.subscribers[sub.ID] = sub
	return sub.ID
}

// TxRunner implementación en memoria de subscriber.TxRunner y customer.TxRunner.
type TxRunner struct {
	s *Store
}

// Run ejecuta fn; si devuelve error, el store vuelve al estado previo.
func (r *TxRunner) Run(ctx context.Context, fn func(
	subs repository.MobileSubscriberRepository,
	customers repository.CustomerRepository,
) error) error {
	r.s.mu.Lock()
	subsSnapshot := make(map[int64]entity.MobileSubscriber, len(r.s.subscribers))
	for k, v := range r.s.subscribers {
		subsSnapshot[k] = v
	}
	custSnapshot := make(map[int64]entity.Customer, len(r.s.customers))
	for k, v := range r.s.customers {
		custSnapshot[k] = v
	}
	r.s.mu.Unlock()

	if err := fn(r.s.Subscribers(), r.s.Customers()); err != nil {
		r.s.mu.Lock()
		r.s.subscribers = subsSnapshot
		r.s.customers = custSnapshot
		r.s.mu.Unlock()
		return err
	}
	return nil
}

// SubscriberRepo repositorio de líneas en memoria.
type SubscriberRepo struct {
	s *Store
}

func (r *SubscriberRepo) Create(_ context.Context, sub *entity.MobileSubscriber) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.subscribers {
		if existing.MSISDN == sub.MSISDN {
			return fmt.Errorf("%w: msisdn duplicado", domain.ErrValidation)
		}
	}
	r.s.nextSubID++
	sub.ID = r.s.nextSubID
	r.s.subscribers[sub.ID] = *sub
	r.s.Writes++
	return nil
}

func (r *SubscriberRepo) GetByID(_ context.Context, id int64) (*entity.MobileSubscriber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subscribers[id]
	if !ok {
		return nil, nil
	}
	return &sub, nil
}

func (r *SubscriberRepo) GetByMSISDN(_ context.Context, msisdn string) (*entity.MobileSubscriber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sub := range r.s.subscribers {
		if sub.MSISDN == msisdn {
			sub := sub
			return &sub, nil
		}
	}
	return nil, nil
}

func (r *SubscriberRepo) FindAll(ctx context.Context) ([]*entity.MobileSubscriber, error) {
	return r.FindByCriteria(ctx, entity.SubscriberChanges{})
}

func (r *SubscriberRepo) FindByCriteria(_ context.Context, c entity.SubscriberChanges) ([]*entity.MobileSubscriber, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.MobileSubscriber, 0)
	for _, sub := range r.s.subscribers {
		if c.MSISDN != nil && *c.MSISDN != sub.MSISDN ||
			c.OwnerID != nil && *c.OwnerID != sub.OwnerID ||
			c.UserID != nil && *c.UserID != sub.UserID ||
			c.ServiceType != nil && *c.ServiceType != sub.ServiceType ||
			c.ServiceStartDate != nil && !c.ServiceStartDate.Equal(sub.ServiceStartDate) {
			continue
		}
		sub := sub
		out = append(out, &sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *SubscriberRepo) Update(_ context.Context, sub *entity.MobileSubscriber) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.subscribers[sub.ID]
	if !ok {
		return fmt.Errorf("%w: línea %d", domain.ErrNotFound, sub.ID)
	}
	stored.OwnerID = sub.OwnerID
	stored.UserID = sub.UserID
	stored.ServiceType = sub.ServiceType
	r.s.subscribers[sub.ID] = stored
	r.s.Writes++
	return nil
}

func (r *SubscriberRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.subscribers[id]
	return ok, nil
}

func (r *SubscriberRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.subscribers, id)
	r.s.Writes++
	return nil
}

// CustomerRepo repositorio de clientes en memoria.
type CustomerRepo struct {
	s *Store
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextCustID++
	c.ID = r.s.nextCustID
	r.s.customers[c.ID] = *c
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, id int64) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CustomerRepo) List(_ context.Context, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := make([]int64, 0, len(r.s.customers))
	for id := range r.s.customers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*entity.Customer, 0)
	for i, id := range ids {
		if i < offset {
			continue
		}
		if len(out) == limit {
			break
		}
		c := r.s.customers[id]
		out = append(out, &c)
	}
	return out, nil
}
