package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jesuisfatih/eagledtfprint-sub004/cart/pkg/request"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"
	"github.com/jesuisfatih/eagledtfprint-sub004/internal/log"
)

// centsThreshold is the legacy cutoff for snapshots that do not declare a
// price unit: values above it are assumed to be minor units. Snapshots
// carrying an explicit priceUnit bypass the heuristic entirely.
var centsThreshold = decimal.NewFromInt(1000)

// normalizeToken strips any query-string suffix from a platform cart token.
// Tokens scraped from storefront URLs arrive with tracking parameters
// attached.
func normalizeToken(token string) string {
	if i := strings.IndexByte(token, '?'); i >= 0 {
		return token[:i]
	}
	return token
}

// parseExternalID parses a platform variant/product id. Ids arrive either as
// plain decimal strings or as gid:// URIs whose last path segment is the
// numeric id. Parsing goes through int64, never through a float path, since
// platform ids exceed the 53-bit float-safe range.
func parseExternalID(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "gid://") {
		if i := strings.LastIndexByte(s, '/'); i >= 0 {
			s = s[i+1:]
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed parsing external id=%q with error=%w", raw, err)
	}
	if id <= 0 {
		return 0, fmt.Errorf("external id=%q is not positive", raw)
	}
	return id, nil
}

// normalizePrice converts a raw snapshot price into a decimal amount. An
// explicit unit wins; without one the legacy magnitude heuristic applies.
func normalizePrice(price decimal.Decimal, unit string) decimal.Decimal {
	switch unit {
	case "cents":
		return price.Div(decimal.NewFromInt(100))
	case "decimal":
		return price
	}
	if price.GreaterThan(centsThreshold) {
		return price.Div(decimal.NewFromInt(100))
	}
	return price
}

// itemCandidate is a validated snapshot item ready for persistence.
type itemCandidate struct {
	ExternalVariantID int64
	ExternalProductID int64
	Sku               string
	Title             string
	Quantity          int32
	ListPrice         decimal.Decimal
	UnitPrice         decimal.Decimal
	DiscountAmount    decimal.Decimal
}

// normalizeItems validates and converts raw snapshot items. Entries missing
// a variant or product id, failing id parsing, or carrying a non-positive
// quantity are dropped with a warning; a bad item never aborts the snapshot.
// Lines sharing a variant id are merged into one candidate since the diff
// and the item rows are keyed by variant.
func normalizeItems(logger zerolog.Logger, items []request.SnapshotItem) []itemCandidate {
	candidates := make([]itemCandidate, 0, len(items))
	for _, item := range items {
		if item.ExternalVariantId == "" || item.ExternalProductId == "" {
			logger.Warn().
				Any(log.KeySkippedItem, item).
				Msg("skipping item missing variantId or productId")
			continue
		}
		variantId, err := parseExternalID(item.ExternalVariantId)
		if err != nil {
			logger.Warn().
				Err(err).
				Any(log.KeySkippedItem, item).
				Msg("skipping item with unparseable variantId")
			continue
		}
		productId, err := parseExternalID(item.ExternalProductId)
		if err != nil {
			logger.Warn().
				Err(err).
				Any(log.KeySkippedItem, item).
				Msg("skipping item with unparseable productId")
			continue
		}
		if item.Quantity < 1 {
			logger.Warn().
				Any(log.KeySkippedItem, item).
				Msg("skipping item with non-positive quantity")
			continue
		}
		unitPrice := normalizePrice(item.Price, item.PriceUnit)
		listPrice := unitPrice
		if !item.ListPrice.IsZero() {
			listPrice = normalizePrice(item.ListPrice, item.PriceUnit)
		}
		discount := decimal.Zero
		if !item.DiscountAmount.IsZero() {
			discount = normalizePrice(item.DiscountAmount, item.PriceUnit)
		}
		candidates = append(candidates, itemCandidate{
			ExternalVariantID: variantId,
			ExternalProductID: productId,
			Sku:               item.Sku,
			Title:             item.Title,
			Quantity:          item.Quantity,
			ListPrice:         listPrice,
			UnitPrice:         unitPrice,
			DiscountAmount:    discount,
		})
	}
	return mergeDuplicateVariants(candidates)
}

// mergeDuplicateVariants collapses candidates sharing an external variant id
// into a single line, summing quantity and discount. Prices, sku and title
// come from the first occurrence; order is preserved.
func mergeDuplicateVariants(candidates []itemCandidate) []itemCandidate {
	merged := make([]itemCandidate, 0, len(candidates))
	index := make(map[int64]int, len(candidates))
	for _, candidate := range candidates {
		if i, seen := index[candidate.ExternalVariantID]; seen {
			merged[i].Quantity += candidate.Quantity
			merged[i].DiscountAmount = merged[i].DiscountAmount.Add(candidate.DiscountAmount)
			continue
		}
		index[candidate.ExternalVariantID] = len(merged)
		merged = append(merged, candidate)
	}
	return merged
}

// itemDiff is the semantic delta between a cart's pre-image and new-image.
type itemDiff struct {
	Added   []domain.ItemChange
	Removed []domain.ItemChange
	Updated []domain.ItemChange
}

func (d itemDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Updated) == 0
}

// diffItems compares two item sets keyed by external variant id. Rows
// without that id are order-only noise and excluded from the comparison.
func diffItems(preImage, newImage []domain.CartItem) itemDiff {
	pre := make(map[int64]domain.CartItem, len(preImage))
	for _, item := range preImage {
		if item.ExternalVariantID == 0 {
			continue
		}
		pre[item.ExternalVariantID] = item
	}
	next := make(map[int64]domain.CartItem, len(newImage))
	for _, item := range newImage {
		if item.ExternalVariantID == 0 {
			continue
		}
		next[item.ExternalVariantID] = item
	}

	diff := itemDiff{}
	for _, item := range newImage {
		if item.ExternalVariantID == 0 {
			continue
		}
		old, exists := pre[item.ExternalVariantID]
		if !exists {
			diff.Added = append(diff.Added, itemChange(item, nil))
			continue
		}
		if old.Quantity != item.Quantity {
			oldQuantity := old.Quantity
			diff.Updated = append(diff.Updated, itemChange(item, &oldQuantity))
		}
	}
	for _, item := range preImage {
		if item.ExternalVariantID == 0 {
			continue
		}
		if _, exists := next[item.ExternalVariantID]; !exists {
			diff.Removed = append(diff.Removed, itemChange(item, nil))
		}
	}
	return diff
}

func itemChange(item domain.CartItem, oldQuantity *int32) domain.ItemChange {
	return domain.ItemChange{
		ExternalVariantID: item.ExternalVariantID,
		Sku:               item.Sku,
		Title:             item.Title,
		Quantity:          item.Quantity,
		OldQuantity:       oldQuantity,
	}
}
