package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"khata/internal/billing"
	"khata/internal/domain"
)

func testItem() *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:            uuid.New(),
		Name:          "Basmati Rice 5kg",
		HSN:           "10063010",
		Unit:          "BAG",
		MRP:           decimal.NewFromInt(650),
		PurchasePrice: decimal.NewFromInt(480),
		SellingPrice:  decimal.NewFromInt(600),
		GSTLabel:      "GST @ 5%",
	}
}

func TestBind_SellingPrice(t *testing.T) {
	line := billing.NewLineItem()
	line.Qty = decimal.NewFromInt(2)
	line.DiscountPercent = decimal.NewFromInt(10)
	item := testItem()

	bound := Bind(line, item, domain.DocumentTypeInvoice, nil)

	assert.Equal(t, line.ID, bound.ID)
	require.NotNil(t, bound.ItemRef)
	assert.Equal(t, item.ID, *bound.ItemRef)
	assert.Equal(t, "Basmati Rice 5kg", bound.Name)
	assert.Equal(t, "10063010", bound.HSN)
	assert.Equal(t, "BAG", bound.Unit)
	assert.True(t, bound.MRP.Equal(decimal.NewFromInt(650)))
	assert.True(t, bound.Rate.Equal(decimal.NewFromInt(600)))
	assert.True(t, bound.Qty.Equal(decimal.NewFromInt(2)))
	assert.True(t, bound.DiscountPercent.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "GST @ 5%", bound.GSTLabel)
	// 2*600 = 1200, -10% = 1080, +5% = 1134
	assert.True(t, bound.TaxAmount.Equal(decimal.NewFromInt(54)), bound.TaxAmount.String())
	assert.True(t, bound.Amount.Equal(decimal.NewFromInt(1134)), bound.Amount.String())
}

func TestBind_PurchaseOrderUsesPurchasePrice(t *testing.T) {
	line := billing.NewLineItem()
	line.Qty = decimal.NewFromInt(1)

	bound := Bind(line, testItem(), domain.DocumentTypePurchaseOrder, nil)

	assert.True(t, bound.Rate.Equal(decimal.NewFromInt(480)))
	assert.True(t, bound.Amount.Equal(decimal.NewFromInt(504)), bound.Amount.String())
}

func TestBind_ReturnsAndPaymentsUseSellingPrice(t *testing.T) {
	for _, dt := range []domain.DocumentType{domain.DocumentTypeSalesReturn, domain.DocumentTypePayment} {
		bound := Bind(billing.NewLineItem(), testItem(), dt, nil)
		assert.True(t, bound.Rate.Equal(decimal.NewFromInt(600)), dt)
	}
}

func TestBind_LabelFromHSNMaster(t *testing.T) {
	item := testItem()
	item.GSTLabel = ""

	bound := Bind(billing.NewLineItem(), item, domain.DocumentTypeInvoice, testLookup())
	assert.Equal(t, "GST @ 5%", bound.GSTLabel)
}

func TestBind_NoLabelAnywhere(t *testing.T) {
	item := testItem()
	item.GSTLabel = ""
	item.HSN = "6109"

	bound := Bind(billing.NewLineItem(), item, domain.DocumentTypeInvoice, testLookup())
	assert.Equal(t, billing.LabelNone, bound.GSTLabel)

	bound = Bind(billing.NewLineItem(), item, domain.DocumentTypeInvoice, nil)
	assert.Equal(t, billing.LabelNone, bound.GSTLabel)
}

func TestBind_ReplacesPreviousItem(t *testing.T) {
	first := Bind(billing.NewLineItem(), testItem(), domain.DocumentTypeInvoice, nil)

	other := testItem()
	other.Name = "Toor Dal 1kg"
	other.SellingPrice = decimal.NewFromInt(150)
	second := Bind(first, other, domain.DocumentTypeInvoice, nil)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, other.ID, *second.ItemRef)
	assert.Equal(t, "Toor Dal 1kg", second.Name)
	assert.True(t, second.Rate.Equal(decimal.NewFromInt(150)))
}
