package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/customer"
	"github.com/jhoicas/mobile-subscribers-api/internal/application/subscriber"
	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
	apphttp "github.com/jhoicas/mobile-subscribers-api/internal/interfaces/http"
	"github.com/jhoicas/mobile-subscribers-api/internal/testutil"
)

var fixedNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

type testAPI struct {
	app     *fiber.App
	store   *testutil.Store
	ownerID int64
	userID  int64
}

func newTestAPI(t *testing.T, jwtSecret string) *testAPI {
	t.Helper()
	store := testutil.NewStore()
	api := &testAPI{
		store:   store,
		ownerID: store.SeedCompany("Acme"),
		userID:  store.SeedPerson("Ana", "Pérez"),
	}
	subUC := subscriber.NewUseCase(store.Subscribers(), store.Customers(), store.TxRunner(),
		subscriber.WithClock(func() time.Time { return fixedNow }))
	custUC := customer.NewUseCase(store.Customers(), store.Subscribers(), store.TxRunner(), nil, nil)

	api.app = fiber.New()
	apphttp.Router(api.app, apphttp.RouterDeps{
		SubscriberUC: subUC,
		CustomerUC:   custUC,
		JWTSecret:    jwtSecret,
	})
	return api
}

func (a *testAPI) seed(msisdn string) int64 {
	return a.store.SeedSubscriber(entity.MobileSubscriber{
		MSISDN:           msisdn,
		OwnerID:          a.ownerID,
		UserID:           a.userID,
		ServiceType:      entity.ServicePrepaid,
		ServiceStartDate: fixedNow.Add(-time.Hour),
	})
}

// do lanza la petición; body nil envía cuerpo vacío. headers en pares clave/valor.
func (a *testAPI) do(t *testing.T, method, path string, body interface{}, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
