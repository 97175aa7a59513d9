package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sampleCSV = `type,address,first_name,last_name,document_id,company_name,tax_id,msisdn,service_type
PERSON,Calle Mayor 1,Ana,Pérez,12345678Z,,,34600111222,MOBILE_PREPAID
COMPANY,Gran Vía 2,,,,Acme SL,B87654321,,
`

func TestParseRows_UTF8(t *testing.T) {
	rows, err := parseRows(strings.NewReader(sampleCSV), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "PERSON", rows[0].Customer.Type)
	assert.Equal(t, "Pérez", rows[0].Customer.LastName)
	assert.Equal(t, "34600111222", rows[0].MSISDN)
	assert.Equal(t, "MOBILE_PREPAID", rows[0].ServiceType)

	assert.Equal(t, "Acme SL", rows[1].Customer.CompanyName)
	assert.Empty(t, rows[1].MSISDN)
}

func TestParseRows_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(sampleCSV)
	require.NoError(t, err)

	rows, err := parseRows(bytes.NewBufferString(encoded), "latin1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Pérez", rows[0].Customer.LastName)
	assert.Equal(t, "Gran Vía 2", rows[1].Customer.Address)
}

func TestParseRows_FaltaColumna(t *testing.T) {
	_, err := parseRows(strings.NewReader("type,address\nPERSON,x\n"), "")
	assert.ErrorContains(t, err, "first_name")
}

func TestParseRows_CharsetDesconocido(t *testing.T) {
	_, err := parseRows(strings.NewReader(sampleCSV), "ebcdic")
	assert.Error(t, err)
}
