package entity

import (
	"fmt"
	"strings"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain"
)

// CustomerKind identifica la variante concreta de un Customer.
type CustomerKind string

const (
	CustomerPerson  CustomerKind = "PERSON"
	CustomerCompany CustomerKind = "COMPANY"
)

// ParseCustomerKind normaliza el tipo recibido por la API.
func ParseCustomerKind(s string) (CustomerKind, error) {
	switch CustomerKind(strings.ToUpper(strings.TrimSpace(s))) {
	case CustomerPerson:
		return CustomerPerson, nil
	case CustomerCompany:
		return CustomerCompany, nil
	default:
		return "", fmt.Errorf("%w: tipo de cliente %q no soportado (PERSON o COMPANY)", domain.ErrValidation, s)
	}
}

// PersonDetails datos propios de un cliente persona natural.
type PersonDetails struct {
	FirstName  string
	LastName   string
	DocumentID string
}

// CompanyDetails datos propios de un cliente empresa.
type CompanyDetails struct {
	CompanyName string
	TaxID       string
}

// Customer representa una parte que puede ser dueña o usuaria de líneas móviles.
// Es una unión etiquetada: según Kind, exactamente uno de Person o Company está poblado.
// Las líneas asociadas no se guardan aquí; se consultan por clave foránea
// (ver MobileSubscriberRepository.FindByCriteria).
type Customer struct {
	ID      int64
	Address string
	Kind    CustomerKind
	Person  *PersonDetails
	Company *CompanyDetails
}

// NewPerson construye un cliente persona.
func NewPerson(address, firstName, lastName, documentID string) *Customer {
	return &Customer{
		Address: address,
		Kind:    CustomerPerson,
		Person:  &PersonDetails{FirstName: firstName, LastName: lastName, DocumentID: documentID},
	}
}

// NewCompany construye un cliente empresa.
func NewCompany(address, companyName, taxID string) *Customer {
	return &Customer{
		Address: address,
		Kind:    CustomerCompany,
		Company: &CompanyDetails{CompanyName: companyName, TaxID: taxID},
	}
}

// Validate verifica que la variante coincida con Kind y que tenga sus campos obligatorios.
func (c *Customer) Validate() error {
	switch c.Kind {
	case CustomerPerson:
		if c.Person == nil || c.Company != nil {
			return fmt.Errorf("%w: un cliente PERSON requiere solo datos de persona", domain.ErrValidation)
		}
		if c.Person.FirstName == "" || c.Person.LastName == "" || c.Person.DocumentID == "" {
			return fmt.Errorf("%w: firstName, lastName y documentId son requeridos", domain.ErrValidation)
		}
	case CustomerCompany:
		if c.Company == nil || c.Person != nil {
			return fmt.Errorf("%w: un cliente COMPANY requiere solo datos de empresa", domain.ErrValidation)
		}
		if c.Company.CompanyName == "" || c.Company.TaxID == "" {
			return fmt.Errorf("%w: companyName y taxId son requeridos", domain.ErrValidation)
		}
	default:
		return fmt.Errorf("%w: tipo de cliente %q no soportado", domain.ErrValidation, c.Kind)
	}
	if len(c.Address) > MaxAddressLength {
		return fmt.Errorf("%w: address supera %d caracteres", domain.ErrValidation, MaxAddressLength)
	}
	return nil
}

// DisplayName nombre legible del cliente.
func (c *Customer) DisplayName() string {
	switch {
	case c.Person != nil:
		return strings.TrimSpace(c.Person.FirstName + " " + c.Person.LastName)
	case c.Company != nil:
		return c.Company.CompanyName
	default:
		return ""
	}
}

// MaxAddressLength longitud máxima de la dirección (columna VARCHAR(4000)).
const MaxAddressLength = 4000
