package commission

import (
	"backend/internal/model"

	"github.com/shopspring/decimal"
)

// defaultKitCosts holds the per-service-type material cost charged when a
// catalog entry does not override it. Maintained alongside the enum in
// model/catalog.go.
var defaultKitCosts = map[string]decimal.Decimal{
	model.ServiceTypeManicure:  decimal.NewFromInt(0),
	model.ServiceTypePedicure:  decimal.NewFromInt(0),
	model.ServiceTypeNailArt:   decimal.NewFromFloat(5),
	model.ServiceTypeGelPolish: decimal.NewFromFloat(8),
	model.ServiceTypeAcrylics:  decimal.NewFromFloat(12),
}

// ShouldHaveKitCost reports whether the service type consumes a material kit.
func ShouldHaveKitCost(serviceType string) bool {
	cost, ok := defaultKitCosts[serviceType]
	return ok && cost.IsPositive()
}

// DefaultKitCost returns the table cost for the service type, zero for
// unknown types.
func DefaultKitCost(serviceType string) decimal.Decimal {
	if cost, ok := defaultKitCosts[serviceType]; ok {
		return cost
	}
	return decimal.Zero
}
