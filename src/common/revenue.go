package common

import (
	"tbs/src/config"
	"tbs/src/db"
	"tbs/src/models"
	"tbs/src/types"
	"tbs/src/utils"
)

// AggregateRevenue derives platform figures from all non-cancelled
// orders. Commission is 5% of each order's total after the flat
// service fee; an order priced below the fee contributes a negative
// commission, which is kept as-is.
func AggregateRevenue() (*types.RevenueSummary, error) {
	d := db.GetDb()
	var orders []models.Order
	if err := d.
		Model(&models.Order{}).
		Where("status <> ?", "Cancelled").
		Find(&orders).
		Error; err != nil {
		return nil, err
	}

	var totalRevenue, totalCommission float64
	for _, order := range orders {
		totalRevenue += order.TotalPrice
		totalCommission += config.COMMISSION_RATE * (order.TotalPrice - config.SERVICE_FEE)
	}
	totalServiceFees := config.SERVICE_FEE * float64(len(orders))
	merchantPayouts := totalRevenue - totalServiceFees - totalCommission

	cur := config.DEFAULT_CURRENCY
	return &types.RevenueSummary{
		TotalRevenue:       totalRevenue,
		TotalServiceFees:   totalServiceFees,
		TotalCommission:    totalCommission,
		MerchantPayouts:    merchantPayouts,
		OrderCount:         int64(len(orders)),
		TotalRevenueFmt:    utils.FormatCurrency(totalRevenue, cur),
		TotalServiceFeeFmt: utils.FormatCurrency(totalServiceFees, cur),
		TotalCommissionFmt: utils.FormatCurrency(totalCommission, cur),
		MerchantPayoutsFmt: utils.FormatCurrency(merchantPayouts, cur),
	}, nil
}
