package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mobile-subscribers-api/internal/domain/entity"
)

func TestCriteriaQuery_SinCriterios(t *testing.T) {
	query, args, err := criteriaQuery(entity.SubscriberChanges{}).ToSql()
	require.NoError(t, err)

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "FROM mobile_subscribers")
	assert.Contains(t, query, "ORDER BY id")
	assert.Empty(t, args)
}

func TestCriteriaQuery_UnPredicadoPorCriterio(t *testing.T) {
	msisdn := "34600111222"
	owner := int64(7)
	st := entity.ServicePostpaid
	start := time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.FixedZone("CET", 3600))

	query, args, err := criteriaQuery(entity.SubscriberChanges{
		MSISDN:           &msisdn,
		OwnerID:          &owner,
		ServiceType:      &st,
		ServiceStartDate: &start,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "msisdn = $")
	assert.Contains(t, query, "customer_id_owner = $")
	assert.Contains(t, query, "service_type = $")
	assert.Contains(t, query, "service_start_date = $")
	assert.NotContains(t, query, "customer_id_user = $")
	assert.Contains(t, query, " AND ")
	assert.ElementsMatch(t, []interface{}{msisdn, owner, "MOBILE_POSTPAID", start.UTC()}, args)
}

func TestScriptVersion(t *testing.T) {
	v, err := scriptVersion("0002_create_mobile_subscribers.sql")
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	_, err = scriptVersion("init.sql")
	assert.Error(t, err)
}

func TestMigrations_OrdenadasYVersionadas(t *testing.T) {
	names, err := migrationNames(Migrations())
	require.NoError(t, err)
	require.NotEmpty(t, names)

	prev := 0
	for _, name := range names {
		v, err := scriptVersion(name)
		require.NoError(t, err, name)
		assert.Greater(t, v, prev, "versiones crecientes y sin duplicados")
		prev = v
	}
}
