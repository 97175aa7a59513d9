package subscriber_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	"github.com/jhoicas/mobile-subscribers-api/internal/testutil"
)

var fixedNow = time.Date(2024, 3, 10, 12, 30, 45, 123456789, time.UTC)

type fixture struct {
	store   *testutil.Store
	uc      *subscriber.UseCase
	ownerID int64
	userID  int64
	otherID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore()
	f := &fixture{
		store:   store,
		ownerID: store.SeedCompany("Acme"),
		userID:  store.SeedPerson("Ana", "Pérez"),
		otherID: store.SeedPerson("Luis", "Gómez"),
	}
	f.uc = subscriber.NewUseCase(store.Subscribers(), store.Customers(), store.TxRunner(),
		subscriber.WithClock(func() time.Time { return fixedNow }))
	return f
}

func (f *fixture) seed(msisdn string, st entity.ServiceType) *entity.MobileSubscriber {
	sub := entity.MobileSubscriber{
		MSISDN:           msisdn,
		OwnerID:          f.ownerID,
		UserID:           f.userID,
		ServiceType:      st,
		ServiceStartDate: fixedNow.Add(-24 * time.Hour).Truncate(time.Millisecond),
	}
	sub.ID = f.store.SeedSubscriber(sub)
	return &sub
}

func ptr[T any](v T) *T { return &v }

func newSubscriber(f *fixture, msisdn string) entity.SubscriberChanges {
	return entity.SubscriberChanges{
		MSISDN:      ptr(msisdn),
		OwnerID:     ptr(f.ownerID),
		UserID:      ptr(f.userID),
		ServiceType: ptr(entity.ServicePrepaid),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_AsignaIDYFechaDeInicio(t *testing.T) {
	f := newFixture(t)

	got, err := f.uc.Create(context.Background(), newSubscriber(f, "34600111222"))
	require.NoError(t, err)

	assert.NotZero(t, got.ID)
	assert.Equal(t, "34600111222", got.MSISDN)
	assert.Equal(t, fixedNow.Truncate(time.Millisecond), got.ServiceStartDate)
	assert.Equal(t, 1, f.store.WriteCount())
}

func TestCreate_MSISDNDuplicadoEsValidacion(t *testing.T) {
	f := newFixture(t)
	f.seed("34600111222", entity.ServicePostpaid)

	_, err := f.uc.Create(context.Background(), newSubscriber(f, "34600111222"))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.store.WriteCount())
}

func TestCreate_ConFechaDeInicioEsValidacion(t *testing.T) {
	f := newFixture(t)
	in := newSubscriber(f, "34600111222")
	in.ServiceStartDate = ptr(fixedNow)

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.store.WriteCount())
}

func TestCreate_ClienteInexistenteEsNotFound(t *testing.T) {
	f := newFixture(t)

	in := newSubscriber(f, "34600111222")
	in.OwnerID = ptr(int64(999))
	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	in = newSubscriber(f, "34600111222")
	in.UserID = ptr(int64(999))
	_, err = f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_CamposObligatorios(t *testing.T) {
	f := newFixture(t)
	in := newSubscriber(f, "34600111222")
	in.ServiceType = nil

	_, err := f.uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Find
// ──────────────────────────────────────────────────────────────────────────────

func TestFindByID(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	got, err := f.uc.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, got)

	_, err = f.uc.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFindByCriteria_SinCriteriosDevuelveTodo(t *testing.T) {
	f := newFixture(t)
	f.seed("34600111222", entity.ServicePrepaid)
	f.seed("34600111333", entity.ServicePostpaid)
	f.seed("34600111444", entity.ServicePostpaid)

	got, err := f.uc.FindByCriteria(context.Background(), entity.SubscriberChanges{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFindByCriteria_FiltroConjuntivo(t *testing.T) {
	f := newFixture(t)
	f.seed("34600111222", entity.ServicePrepaid)
	want := f.seed("34600111333", entity.ServicePostpaid)

	got, err := f.uc.FindByCriteria(context.Background(), entity.SubscriberChanges{
		OwnerID:     ptr(f.ownerID),
		ServiceType: ptr(entity.ServicePostpaid),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)

	got, err = f.uc.FindByCriteria(context.Background(), entity.SubscriberChanges{
		MSISDN:      ptr("34600111222"),
		ServiceType: ptr(entity.ServicePostpaid),
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update (PUT)
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CambiaPlanYUsuario(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	in := newSubscriber(f, "34600111222")
	in.UserID = ptr(f.otherID)
	in.ServiceType = ptr(entity.ServicePostpaid)

	got, err := f.uc.Update(context.Background(), seeded.ID, in)
	require.NoError(t, err)
	assert.Equal(t, f.otherID, got.UserID)
	assert.Equal(t, entity.ServicePostpaid, got.ServiceType)
	assert.Equal(t, seeded.ServiceStartDate, got.ServiceStartDate)
	assert.Equal(t, 1, f.store.WriteCount())

	stored, err := f.uc.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestUpdate_SinCambiosNoEscribe(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	got, err := f.uc.Update(context.Background(), seeded.ID, newSubscriber(f, "34600111222"))
	require.NoError(t, err)
	assert.Equal(t, seeded, got)
	assert.Equal(t, 0, f.store.WriteCount())
}

func TestUpdate_MSISDNDistintoEsValidacion(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	_, err := f.uc.Update(context.Background(), seeded.ID, newSubscriber(f, "34600999999"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestUpdate_ResuelveClientesAntesDelDiff(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	// El msisdn también es inválido, pero el cliente inexistente se detecta primero.
	in := newSubscriber(f, "34600999999")
	in.OwnerID = ptr(int64(999))
	_, err := f.uc.Update(context.Background(), seeded.ID, in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdate_LineaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Update(context.Background(), 404, newSubscriber(f, "34600111222"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Patch
// ──────────────────────────────────────────────────────────────────────────────

func TestPatch_SoloTipoDeServicio(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	got, err := f.uc.Patch(context.Background(), seeded.ID, entity.SubscriberChanges{
		ServiceType: ptr(entity.ServicePostpaid),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ServicePostpaid, got.ServiceType)
	assert.Equal(t, seeded.ServiceStartDate, got.ServiceStartDate)
	assert.Equal(t, seeded.OwnerID, got.OwnerID)
	assert.Equal(t, 1, f.store.WriteCount())
}

func TestPatch_CambiaDueno(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	got, err := f.uc.Patch(context.Background(), seeded.ID, entity.SubscriberChanges{OwnerID: ptr(f.otherID)})
	require.NoError(t, err)
	assert.Equal(t, f.otherID, got.OwnerID)

	owned, err := f.uc.FindByCriteria(context.Background(), entity.SubscriberChanges{OwnerID: ptr(f.otherID)})
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestPatch_ValoresIdenticosNoEscribe(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	got, err := f.uc.Patch(context.Background(), seeded.ID, entity.SubscriberChanges{
		MSISDN:      ptr("34600111222"),
		UserID:      ptr(f.userID),
		ServiceType: ptr(entity.ServicePrepaid),
	})
	require.NoError(t, err)
	assert.Equal(t, seeded, got)
	assert.Equal(t, 0, f.store.WriteCount())
}

func TestPatch_CamposInmutablesSiempreFallan(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	cases := []struct {
		name string
		in   entity.SubscriberChanges
	}{
		{name: "msisdn", in: entity.SubscriberChanges{MSISDN: ptr("34600999999")}},
		{name: "fecha igual a la almacenada", in: entity.SubscriberChanges{ServiceStartDate: ptr(seeded.ServiceStartDate)}},
		{name: "fecha junto a un cambio permitido", in: entity.SubscriberChanges{
			ServiceType:      ptr(entity.ServicePostpaid),
			ServiceStartDate: ptr(fixedNow),
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Patch(context.Background(), seeded.ID, tc.in)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
	assert.Equal(t, 0, f.store.WriteCount())

	stored, err := f.uc.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded, stored)
}

func TestPatch_ClienteInexistenteSoloSiSeInforma(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	_, err := f.uc.Patch(context.Background(), seeded.ID, entity.SubscriberChanges{UserID: ptr(int64(999))})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Patch(context.Background(), seeded.ID, entity.SubscriberChanges{ServiceType: ptr(entity.ServicePostpaid)})
	assert.NoError(t, err)
}

func TestPatch_LineaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Patch(context.Background(), 404, entity.SubscriberChanges{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete(t *testing.T) {
	f := newFixture(t)
	seeded := f.seed("34600111222", entity.ServicePrepaid)

	require.NoError(t, f.uc.Delete(context.Background(), seeded.ID))
	_, err := f.uc.FindByID(context.Background(), seeded.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_IDInexistenteNoEsError(t *testing.T) {
	f := newFixture(t)
	assert.NoError(t, f.uc.Delete(context.Background(), 404))
	assert.Equal(t, 0, f.store.WriteCount())
}
