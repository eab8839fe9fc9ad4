package commission

import (
	"testing"

	"backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDefaultKitCost(t *testing.T) {
	assert.True(t, DefaultKitCost(model.ServiceTypeManicure).IsZero())
	assert.True(t, DefaultKitCost(model.ServiceTypePedicure).IsZero())
	assert.True(t, DefaultKitCost(model.ServiceTypeNailArt).Equal(decimal.NewFromInt(5)))
	assert.True(t, DefaultKitCost(model.ServiceTypeGelPolish).Equal(decimal.NewFromInt(8)))
	assert.True(t, DefaultKitCost(model.ServiceTypeAcrylics).Equal(decimal.NewFromInt(12)))
	assert.True(t, DefaultKitCost("FOOT_MASSAGE").IsZero())
}

func TestShouldHaveKitCost(t *testing.T) {
	assert.False(t, ShouldHaveKitCost(model.ServiceTypeManicure))
	assert.True(t, ShouldHaveKitCost(model.ServiceTypeNailArt))
	assert.True(t, ShouldHaveKitCost(model.ServiceTypeGelPolish))
	assert.True(t, ShouldHaveKitCost(model.ServiceTypeAcrylics))
	assert.False(t, ShouldHaveKitCost("UNKNOWN"))
}
