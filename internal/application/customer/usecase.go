package customer

import (
	"context"
	"fmt"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/metrics"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/repository"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

// UseCase casos de uso para clientes (personas y empresas).
type UseCase struct {
	repo    repository.CustomerRepository
	subs    repository.MobileSubscriberRepository
	tx      TxRunner
	log     *logger.Logger
	metrics *metrics.Metrics
}

// NewUseCase construye el caso de uso. log y m pueden ser nil.
func NewUseCase(repo repository.CustomerRepository, subs repository.MobileSubscriberRepository, tx TxRunner, log *logger.Logger, m *metrics.Metrics) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, subs: subs, tx: tx, log: log, metrics: m}
}

// Create crea un nuevo cliente persona o empresa.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	kind, err := entity.ParseCustomerKind(in.Type)
	if err != nil {
		return nil, err
	}
	var customer *entity.Customer
	switch kind {
	case entity.CustomerPerson:
		customer = entity.NewPerson(in.Address, in.FirstName, in.LastName, in.DocumentID)
	case entity.CustomerCompany:
		customer = entity.NewCompany(in.Address, in.CompanyName, in.TaxID)
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(_ repository.MobileSubscriberRepository, customers repository.CustomerRepository) error {
		return customers.Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.IncrementCustomersCreated()
	uc.log.Info().Int64("id", customer.ID).Str("type", string(customer.Kind)).Msg("cliente creado")
	out := dto.CustomerToResponse(customer)
	return &out, nil
}

// GetByID obtiene un cliente por ID o domain.ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	c, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.CustomerToResponse(c)
	return &out, nil
}

// List lista clientes con paginación.
func (uc *UseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CustomerToResponse(c))
	}
	return &dto.CustomerListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Numbers devuelve las líneas de las que el cliente es dueño y las que usa.
func (uc *UseCase) Numbers(ctx context.Context, id int64) (*dto.CustomerNumbersResponse, error) {
	if _, err := uc.get(ctx, id); err != nil {
		return nil, err
	}
	owned, err := uc.subs.FindByCriteria(ctx, entity.SubscriberChanges{OwnerID: &id})
	if err != nil {
		return nil, err
	}
	used, err := uc.subs.FindByCriteria(ctx, entity.SubscriberChanges{UserID: &id})
	if err != nil {
		return nil, err
	}
	return &dto.CustomerNumbersResponse{
		CustomerID: id,
		Owned:      dto.SubscribersToDTO(owned).Subscribers,
		Used:       dto.SubscribersToDTO(used).Subscribers,
	}, nil
}

func (uc *UseCase) get(ctx context.Context, id int64) (*entity.Customer, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	return c, nil
}
