package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		expected string
	}{
		{
			name:     "given plain token should return it unchanged",
			token:    "c1-abcdef0123456789",
			expected: "c1-abcdef0123456789",
		},
		{
			name:     "given token with key suffix should strip the query string",
			token:    "c1-abcdef0123456789?key=deadbeef",
			expected: "c1-abcdef0123456789",
		},
		{
			name:     "given token that is only a query string should return empty",
			token:    "?key=deadbeef",
			expected: "",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, normalizeToken(test.token))
		})
	}
}

func TestParseExternalID(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		expected    int64
		expectedErr bool
	}{
		{
			name:     "given plain numeric id should parse it",
			raw:      "42605690519829",
			expected: 42605690519829,
		},
		{
			name:     "given gid uri should parse the last segment",
			raw:      "gid://shopify/ProductVariant/42605690519829",
			expected: 42605690519829,
		},
		{
			name:     "given id above the float safe range should parse exactly",
			raw:      "9007199254740993",
			expected: 9007199254740993,
		},
		{
			name:        "given non numeric id should error",
			raw:         "not-an-id",
			expectedErr: true,
		},
		{
			name:        "given zero id should error",
			raw:         "0",
			expectedErr: true,
		},
		{
			name:        "given negative id should error",
			raw:         "-5",
			expectedErr: true,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			id, err := parseExternalID(test.raw)
			if test.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expected, id)
		})
	}
}

func TestNormalizePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    decimal.Decimal
		unit     string
		expected decimal.Decimal
	}{
		{
			name:     "given explicit cents unit should divide by hundred",
			price:    decimal.NewFromInt(500),
			unit:     "cents",
			expected: decimal.NewFromInt(5),
		},
		{
			name:     "given explicit decimal unit should keep low value as is",
			price:    decimal.NewFromInt(500),
			unit:     "decimal",
			expected: decimal.NewFromInt(500),
		},
		{
			name:     "given explicit decimal unit should keep high value as is",
			price:    decimal.NewFromInt(2500),
			unit:     "decimal",
			expected: decimal.NewFromInt(2500),
		},
		{
			name:     "given no unit and high magnitude should assume cents",
			price:    decimal.NewFromInt(2500),
			unit:     "",
			expected: decimal.NewFromInt(25),
		},
		{
			name:     "given no unit and low magnitude should assume decimal",
			price:    decimal.NewFromFloat(25.99),
			unit:     "",
			expected: decimal.NewFromFloat(25.99),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			actual := normalizePrice(test.price, test.unit)
			assert.True(
				t,
				test.expected.Equal(actual),
				"expected=%s actual=%s",
				test.expected.String(),
				actual.String(),
			)
		})
	}
}

func TestNormalizeItems(t *testing.T) {
	logger := zerolog.Nop()
	tests := []struct {
		name     string
		items    []request.SnapshotItem
		expected int
	}{
		{
			name: "given valid items should keep them all",
			items: []request.SnapshotItem{
				{ExternalVariantId: "100", ExternalProductId: "200", Quantity: 1, Price: decimal.NewFromInt(10)},
				{ExternalVariantId: "101", ExternalProductId: "201", Quantity: 2, Price: decimal.NewFromInt(20)},
			},
			expected: 2,
		},
		{
			name: "given item missing variant id should drop only that item",
			items: []request.SnapshotItem{
				{ExternalVariantId: "", ExternalProductId: "200", Quantity: 1},
				{ExternalVariantId: "101", ExternalProductId: "201", Quantity: 2},
			},
			expected: 1,
		},
		{
			name: "given item with unparseable variant id should drop only that item",
			items: []request.SnapshotItem{
				{ExternalVariantId: "garbage", ExternalProductId: "200", Quantity: 1},
				{ExternalVariantId: "101", ExternalProductId: "201", Quantity: 2},
			},
			expected: 1,
		},
		{
			name: "given item with zero quantity should drop only that item",
			items: []request.SnapshotItem{
				{ExternalVariantId: "100", ExternalProductId: "200", Quantity: 0},
				{ExternalVariantId: "101", ExternalProductId: "201", Quantity: 2},
			},
			expected: 1,
		},
		{
			name: "given all malformed items should return empty set",
			items: []request.SnapshotItem{
				{ExternalVariantId: "", ExternalProductId: "", Quantity: 1},
				{ExternalVariantId: "x", ExternalProductId: "y", Quantity: 1},
			},
			expected: 0,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			candidates := normalizeItems(logger, test.items)
			assert.Len(t, candidates, test.expected)
		})
	}
}

func TestNormalizeItemsPriceFields(t *testing.T) {
	logger := zerolog.Nop()
	candidates := normalizeItems(logger, []request.SnapshotItem{
		{
			ExternalVariantId: "gid://shopify/ProductVariant/100",
			ExternalProductId: "gid://shopify/Product/200",
			Sku:               "SKU-1",
			Quantity:          3,
			Price:             decimal.NewFromInt(2599),
			ListPrice:         decimal.NewFromInt(2999),
			DiscountAmount:    decimal.NewFromInt(400),
		},
	})
	assert.Len(t, candidates, 1)
	candidate := candidates[0]
	assert.Equal(t, int64(100), candidate.ExternalVariantID)
	assert.Equal(t, int64(200), candidate.ExternalProductID)
	assert.True(t, decimal.NewFromFloat(25.99).Equal(candidate.UnitPrice))
	assert.True(t, decimal.NewFromFloat(29.99).Equal(candidate.ListPrice))
	assert.True(t, decimal.NewFromInt(4).Equal(candidate.DiscountAmount))
}

func TestNormalizeItemsMergesDuplicateVariants(t *testing.T) {
	logger := zerolog.Nop()
	candidates := normalizeItems(logger, []request.SnapshotItem{
		{
			ExternalVariantId: "100",
			ExternalProductId: "200",
			Sku:               "SKU-1",
			Quantity:          1,
			Price:             decimal.NewFromInt(10),
			DiscountAmount:    decimal.NewFromInt(1),
		},
		{
			ExternalVariantId: "101",
			ExternalProductId: "201",
			Quantity:          1,
			Price:             decimal.NewFromInt(5),
		},
		{
			ExternalVariantId: "100",
			ExternalProductId: "200",
			Quantity:          2,
			Price:             decimal.NewFromInt(10),
			DiscountAmount:    decimal.NewFromInt(2),
		},
	})

	require.Len(t, candidates, 2)
	merged := candidates[0]
	assert.Equal(t, int64(100), merged.ExternalVariantID)
	assert.Equal(t, "SKU-1", merged.Sku)
	assert.Equal(t, int32(3), merged.Quantity)
	assert.True(t, decimal.NewFromInt(3).Equal(merged.DiscountAmount))
	assert.Equal(t, int64(101), candidates[1].ExternalVariantID)
}

func TestDiffItems(t *testing.T) {
	item := func(variantId int64, quantity int32) domain.CartItem {
		return domain.CartItem{ExternalVariantID: variantId, Quantity: quantity}
	}
	tests := []struct {
		name            string
		preImage        []domain.CartItem
		newImage        []domain.CartItem
		expectedAdded   int
		expectedRemoved int
		expectedUpdated int
	}{
		{
			name:          "given empty pre image should report all items added",
			preImage:      nil,
			newImage:      []domain.CartItem{item(1, 1), item(2, 2)},
			expectedAdded: 2,
		},
		{
			name:            "given empty new image should report all items removed",
			preImage:        []domain.CartItem{item(1, 1)},
			newImage:        nil,
			expectedRemoved: 1,
		},
		{
			name:     "given identical images should report no changes",
			preImage: []domain.CartItem{item(1, 1), item(2, 2)},
			newImage: []domain.CartItem{item(2, 2), item(1, 1)},
		},
		{
			name:            "given quantity change should report update with old quantity",
			preImage:        []domain.CartItem{item(1, 2)},
			newImage:        []domain.CartItem{item(1, 5)},
			expectedUpdated: 1,
		},
		{
			name:            "given mixed changes should report each category",
			preImage:        []domain.CartItem{item(1, 2), item(2, 1)},
			newImage:        []domain.CartItem{item(1, 3), item(3, 1)},
			expectedAdded:   1,
			expectedRemoved: 1,
			expectedUpdated: 1,
		},
		{
			name:     "given rows without external variant id should exclude them",
			preImage: []domain.CartItem{item(0, 1)},
			newImage: []domain.CartItem{item(0, 2)},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			diff := diffItems(test.preImage, test.newImage)
			assert.Len(t, diff.Added, test.expectedAdded)
			assert.Len(t, diff.Removed, test.expectedRemoved)
			assert.Len(t, diff.Updated, test.expectedUpdated)
			expectedEmpty := test.expectedAdded == 0 && test.expectedRemoved == 0 &&
				test.expectedUpdated == 0
			assert.Equal(t, expectedEmpty, diff.Empty())
		})
	}
}

func TestDiffItemsOldQuantity(t *testing.T) {
	preImage := []domain.CartItem{{ExternalVariantID: 7, Quantity: 2, Sku: "SKU-7"}}
	newImage := []domain.CartItem{{ExternalVariantID: 7, Quantity: 5, Sku: "SKU-7"}}

	diff := diffItems(preImage, newImage)

	assert.Len(t, diff.Updated, 1)
	updated := diff.Updated[0]
	assert.Equal(t, int32(5), updated.Quantity)
	if assert.NotNil(t, updated.OldQuantity) {
		assert.Equal(t, int32(2), *updated.OldQuantity)
	}
}
