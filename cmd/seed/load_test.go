package main

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/testutil"
	"github.com/jhoicas/mobile-subscribers-api/pkg/logger"
)

func newLoader(store *testutil.Store) *loader {
	return &loader{
		customers: customer.NewUseCase(store.Customers(), store.Subscribers(), store.TxRunner(), nil, nil),
		subs:      subscriber.NewUseCase(store.Subscribers(), store.Customers(), store.TxRunner()),
		log:       logger.Nop(),
	}
}

func TestLoad_FilasValidas(t *testing.T) {
	store := testutil.NewStore()
	rows, err := parseRows(strings.NewReader(sampleCSV), "")
	require.NoError(t, err)

	res, err := newLoader(store).load(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, loadResult{Customers: 2, Lines: 1}, res)

	subs, err := store.Subscribers().FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "34600111222", subs[0].MSISDN)
	assert.Equal(t, subs[0].OwnerID, subs[0].UserID)
}

func TestLoad_LineaInvalidaNoCreaCliente(t *testing.T) {
	const csv = `type,address,first_name,last_name,document_id,company_name,tax_id,msisdn,service_type
PERSON,Calle Mayor 1,Ana,Pérez,12345678Z,,,abc,MOBILE_PREPAID
PERSON,Calle Mayor 3,Luis,Gómez,87654321X,,,34600111333,MOBILE_UNKNOWN
PERSON,Calle Mayor 5,Eva,Ruiz,11223344B,,,34600111444,
`
	store := testutil.NewStore()
	rows, err := parseRows(strings.NewReader(csv), "")
	require.NoError(t, err)

	res, err := newLoader(store).load(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, loadResult{Skipped: 3}, res)

	customers, err := store.Customers().List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Empty(t, customers)
	assert.Zero(t, store.WriteCount())
}

func TestLoad_MSISDNDuplicadoNoCreaCliente(t *testing.T) {
	store := testutil.NewStore()
	owner := store.SeedPerson("Ana", "Pérez")
	store.SeedSubscriber(entity.MobileSubscriber{
		MSISDN:      "34600111222",
		OwnerID:     owner,
		UserID:      owner,
		ServiceType: entity.ServicePrepaid,
	})
	before := store.WriteCount()

	rows, err := parseRows(strings.NewReader(sampleCSV), "")
	require.NoError(t, err)

	res, err := newLoader(store).load(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, loadResult{Customers: 1, Skipped: 1}, res)

	customers, err := store.Customers().List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
	assert.Equal(t, before, store.WriteCount())
}
