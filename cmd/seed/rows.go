package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/mobile-subscribers-api/internal/application/dto"
)

// columnas esperadas en la cabecera del CSV.
var columns = []string{
	"type", "address", "first_name", "last_name", "document_id",
	"company_name", "tax_id", "msisdn", "service_type",
}

// seedRow un cliente y, opcionalmente, una línea de la que es dueño y usuario.
type seedRow struct {
	Customer    dto.CreateCustomerRequest
	MSISDN      string
	ServiceType string
}

// decoder devuelve un reader en UTF-8. Las exportaciones de sistemas legados suelen venir en ISO-8859-1.
func decoder(r io.Reader, charset string) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return r, nil
	case "latin1", "iso-8859-1", "iso8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
}

// parseRows lee el CSV completo. La primera fila es la cabecera y debe contener todas las columnas.
func parseRows(r io.Reader, charset string) ([]seedRow, error) {
	in, err := decoder(r, charset)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range columns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("falta la columna %q", c)
		}
	}

	var rows []seedRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			if i := idx[col]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		rows = append(rows, seedRow{
			Customer: dto.CreateCustomerRequest{
				Type:        get("type"),
				Address:     get("address"),
				FirstName:   get("first_name"),
				LastName:    get("last_name"),
				DocumentID:  get("document_id"),
				CompanyName: get("company_name"),
				TaxID:       get("tax_id"),
			},
			MSISDN:      get("msisdn"),
			ServiceType: get("service_type"),
		})
	}
	return rows, nil
}
