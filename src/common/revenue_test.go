package common

import (
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRevenueDB(t *testing.T) *gorm.DB {
	t.Helper()
	_db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, _db.AutoMigrate(&models.Merchant{}, &models.Order{}))
	db.NewDB(_db)
	return _db
}

func seedOrder(t *testing.T, d *gorm.DB, price float64, status string) {
	t.Helper()
	require.NoError(t, d.Create(&models.Order{
		Product:    types.ORDER_HOTEL,
		OrderData:  types.JSONB{"nights": 2},
		TotalPrice: price,
		Amount:     price,
		Status:     status,
	}).Error)
}

func TestAggregateRevenue(t *testing.T) {
	d := setupRevenueDB(t)
	seedOrder(t, d, 100000, "Pending")
	seedOrder(t, d, 30000, "Paid")

	summary, err := AggregateRevenue()
	require.NoError(t, err)
	assert.Equal(t, 130000.0, summary.TotalRevenue)
	assert.Equal(t, 50000.0, summary.TotalServiceFees)
	assert.InDelta(t, 4000.0, summary.TotalCommission, 1e-6)
	assert.InDelta(t, 76000.0, summary.MerchantPayouts, 1e-6)
	assert.Equal(t, int64(2), summary.OrderCount)
	assert.Equal(t, "₦130,000.00", summary.TotalRevenueFmt)
}

func TestAggregateRevenueExcludesCancelled(t *testing.T) {
	d := setupRevenueDB(t)
	seedOrder(t, d, 100000, "Paid")
	seedOrder(t, d, 500000, "Cancelled")

	summary, err := AggregateRevenue()
	require.NoError(t, err)
	assert.Equal(t, 100000.0, summary.TotalRevenue)
	assert.Equal(t, int64(1), summary.OrderCount)
}

func TestAggregateRevenueKeepsNegativeCommission(t *testing.T) {
	d := setupRevenueDB(t)
	seedOrder(t, d, 10000, "Paid")

	summary, err := AggregateRevenue()
	require.NoError(t, err)
	// 5% of (10000 - 25000): a below-fee order contributes negatively.
	assert.InDelta(t, -750.0, summary.TotalCommission, 1e-9)
	assert.InDelta(t, 10000-25000+750, summary.MerchantPayouts, 1e-9)
}

func TestAggregateRevenueEmpty(t *testing.T) {
	setupRevenueDB(t)
	summary, err := AggregateRevenue()
	require.NoError(t, err)
	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.OrderCount)
}
