package dto

import "github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"

// CreateCustomerRequest entrada para crear un cliente. Según type se usan los campos de persona o de empresa.
type CreateCustomerRequest struct {
	Type        string `json:"type"`
	Address     string `json:"address"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DocumentID  string `json:"documentId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Address     string `json:"address"`
	DisplayName string `json:"displayName"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	DocumentID  string `json:"documentId,omitempty"`
	CompanyName string `json:"companyName,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
}

// CustomerListResponse lista paginada de clientes.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CustomerNumbersResponse líneas de las que el cliente es dueño y las que usa.
type CustomerNumbersResponse struct {
	CustomerID int64                 `json:"customerId"`
	Owned      []MobileSubscriberDTO `json:"owned"`
	Used       []MobileSubscriberDTO `json:"used"`
}

// CustomerToResponse convierte la entidad a su representación JSON.
func CustomerToResponse(c *entity.Customer) CustomerResponse {
	out := CustomerResponse{
		ID:          c.ID,
		Type:        string(c.Kind),
		Address:     c.Address,
		DisplayName: c.DisplayName(),
	}
	if c.Person != nil {
		out.FirstName = c.Person.FirstName
		out.LastName = c.Person.LastName
		out.DocumentID = c.Person.DocumentID
	}
	if c.Company != nil {
		out.CompanyName = c.Company.CompanyName
		out.TaxID = c.Company.TaxID
	}
	return out
}
