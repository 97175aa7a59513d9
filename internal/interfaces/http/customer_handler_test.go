package http_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
)

func TestCustomers_CrearYConsultar(t *testing.T) {
	api := newTestAPI(t, "")

	resp := api.do(t, http.MethodPost, "/customers", dto.CreateCustomerRequest{
		Type: "company", Address: "Gran Vía 1", CompanyName: "Telco SA", TaxID: "B123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created dto.CustomerResponse
	decode(t, resp, &created)
	assert.Equal(t, "COMPANY", created.Type)
	assert.Equal(t, "Telco SA", created.DisplayName)

	resp = api.do(t, http.MethodGet, fmt.Sprintf("/customers/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got dto.CustomerResponse
	decode(t, resp, &got)
	assert.Equal(t, created, got)
}

func TestCustomers_CrearInvalido(t *testing.T) {
	api := newTestAPI(t, "")

	resp := api.do(t, http.MethodPost, "/customers", dto.CreateCustomerRequest{Type: "PERSON", FirstName: "Ana"})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCustomers_NoEncontrado(t *testing.T) {
	api := newTestAPI(t, "")

	resp := api.do(t, http.MethodGet, "/customers/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = api.do(t, http.MethodGet, "/customers/999/subscribers", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCustomers_Listar(t *testing.T) {
	api := newTestAPI(t, "")

	resp := api.do(t, http.MethodGet, "/customers?limit=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CustomerListResponse
	decode(t, resp, &out)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 1, out.Page.Limit)
}

func TestCustomers_Lineas(t *testing.T) {
	api := newTestAPI(t, "")
	api.seed("34600111222")

	resp := api.do(t, http.MethodGet, fmt.Sprintf("/customers/%d/subscribers", api.ownerID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.CustomerNumbersResponse
	decode(t, resp, &out)
	assert.Len(t, out.Owned, 1)
	assert.Empty(t, out.Used)
}
