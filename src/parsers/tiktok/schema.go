package tiktok

import (
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
)

const (
	fieldOrderID        = "order_id"
	fieldStatus         = "order_status"
	fieldSubstatus      = "order_substatus"
	fieldCancelType     = "cancel_type"
	fieldProductCode    = "product_code"
	fieldProductName    = "product_name"
	fieldQuantity       = "quantity"
	fieldSubtotal       = "subtotal"
	fieldSellerDiscount = "seller_discount"
	fieldProvince       = "province"
	fieldOrderDate      = "order_date"
	fieldPaymentDate    = "payment_date"

	fieldTransactionFee   = "transaction_fee"
	fieldAffiliateFee     = "affiliate_commission"
	fieldShippingFee      = "shipping_fee"
	fieldCustomerShipping = "customer_shipping"
	fieldShippingDiscount = "platform_shipping_discount"
	fieldReturnShipping   = "return_shipping"
	fieldAdjustment       = "adjustment"
)

const (
	statusComplete   = "Complete"
	statusCompleted  = "Completed"
	cancelTypeReturn = "Return/Refund"
	cancelTypeCancel = "Cancel"
)

func newSchema() columns.Schema {
	return columns.Schema{
		Platform: models.PlatformTikTok,
		Fields: []columns.Field{
			{Name: fieldOrderID, Aliases: []string{"Order ID"}, Optional: true},
			{Name: fieldStatus, Aliases: []string{"Order Status"}},
			{Name: fieldSubstatus, Aliases: []string{"Order Substatus", "Order Sub Status"}},
			{Name: fieldCancelType, Aliases: []string{"Cancelation/Return Type", "Cancellation/Return Type", "Cancel/Return Type"}},
			{Name: fieldProductCode, Aliases: []string{"Seller SKU", "SKU ID"}},
			{Name: fieldProductName, Aliases: []string{"Product Name"}, Optional: true},
			{Name: fieldQuantity, Aliases: []string{"Quantity"}},
			// Renamed several times across export versions.
			{Name: fieldSubtotal, Aliases: []string{"SKU Subtotal Before Discount", "SKU Subtotal Before Discounts", "Subtotal Before Discount"}},
			{Name: fieldSellerDiscount, Aliases: []string{"SKU Seller Discount", "SKU Seller Discounts", "Seller Discount"}},
			{Name: fieldProvince, Aliases: []string{"Province", "State"}, Optional: true},
			{Name: fieldOrderDate, Aliases: []string{"Created Time", "Order Created Time"}, Optional: true},
			{Name: fieldPaymentDate, Aliases: []string{"Paid Time", "Order Settled Time", "Settlement Time"}, Optional: true},

			{Name: fieldTransactionFee, Aliases: []string{"Transaction Fee"}, Optional: true},
			{Name: fieldAffiliateFee, Aliases: []string{"Affiliate Commission"}, Optional: true},
			{Name: fieldShippingFee, Aliases: []string{"Shipping Fee After Discount", "Shipping Fee"}, Optional: true},
			{Name: fieldCustomerShipping, Aliases: []string{"Customer-paid Shipping Fee", "Original Shipping Fee"}, Optional: true},
			{Name: fieldShippingDiscount, Aliases: []string{"Shipping Fee Platform Discount", "Platform Shipping Fee Discount"}, Optional: true},
			{Name: fieldReturnShipping, Aliases: []string{"Return Shipping Fee"}, Optional: true},
			{Name: fieldAdjustment, Aliases: []string{"Adjustment Amount"}, Optional: true},
		},
	}
}

// Breakdown labels.
const (
	LabelSubtotal         = "SKU subtotal before discount"
	LabelSellerDiscount   = "Seller discount"
	LabelTransactionFee   = "Transaction fee"
	LabelAffiliateFee     = "Affiliate commission"
	LabelShippingFee      = "Shipping fee"
	LabelCustomerShipping = "Customer-paid shipping fee"
	LabelShippingDiscount = "Platform shipping fee discount"
	LabelReturnShipping   = "Return shipping fee"
	LabelAdjustment       = "Adjustment amount"
)

func newLabels() models.LabelRegistry {
	return models.LabelRegistry{
		Platform: models.PlatformTikTok,
		Groups: []models.LabelGroup{
			{Name: "Revenue", Kind: models.GroupRevenue, Labels: []string{LabelSubtotal, LabelSellerDiscount}},
			{Name: "Fees", Kind: models.GroupFees, Labels: []string{LabelTransactionFee, LabelAffiliateFee, LabelShippingFee}},
			{Name: "Adjustments", Kind: models.GroupAdjustments, Labels: []string{LabelAdjustment}},
		},
		Children: map[string][]string{
			LabelShippingFee: {LabelCustomerShipping, LabelShippingDiscount, LabelReturnShipping},
		},
		Bindings: []models.LabelBinding{
			{Label: LabelSubtotal, Field: fieldSubtotal, Sign: 1},
			{Label: LabelSellerDiscount, Field: fieldSellerDiscount, Sign: -1},
			{Label: LabelTransactionFee, Field: fieldTransactionFee, Sign: -1},
			{Label: LabelAffiliateFee, Field: fieldAffiliateFee, Sign: -1},
			{Label: LabelShippingFee, Field: fieldShippingFee, Sign: -1},
			{Label: LabelCustomerShipping, Field: fieldCustomerShipping, Sign: 1},
			{Label: LabelShippingDiscount, Field: fieldShippingDiscount, Sign: 1},
			{Label: LabelReturnShipping, Field: fieldReturnShipping, Sign: -1},
			{Label: LabelAdjustment, Field: fieldAdjustment, Sign: 0},
		},
	}
}
