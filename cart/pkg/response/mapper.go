package response

import "github.com/jesuisfatih/eagledtfprint-sub004/internal/domain"

func FromCart(cart domain.Cart) Cart {
	items := make([]CartItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartItem{
			ID:                item.ID,
			VariantID:         item.VariantID,
			ExternalVariantID: item.ExternalVariantID,
			ExternalProductID: item.ExternalProductID,
			Sku:               item.Sku,
			Title:             item.Title,
			Quantity:          item.Quantity,
			ListPrice:         item.ListPrice,
			UnitPrice:         item.UnitPrice,
			DiscountAmount:    item.DiscountAmount,
		})
	}
	return Cart{
		ID:         cart.ID,
		MerchantID: cart.MerchantID,
		CompanyID:  cart.CompanyID,
		CreatedBy:  cart.CreatedBy,
		CartToken:  cart.CartToken,
		Status:     string(cart.Status),
		Metadata:   cart.Metadata,
		Subtotal:   cart.Subtotal,
		Total:      cart.Total,
		Items:      items,
		CreatedAt:  cart.CreatedAt,
		UpdatedAt:  cart.UpdatedAt,
	}
}
