package lazada

import (
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
)

const (
	fieldOrderItemID    = "order_item_id"
	fieldOrderNumber    = "order_number"
	fieldSellerSku      = "seller_sku"
	fieldItemName       = "item_name"
	fieldStatus         = "status"
	fieldUnitPrice      = "unit_price"
	fieldSellerDiscount = "seller_discount"
	fieldProvince       = "province"
	fieldOrderDate      = "order_date"
	fieldPaymentDate    = "payment_date"

	fieldPaymentFee       = "payment_fee"
	fieldCommission       = "commission"
	fieldShippingFee      = "shipping_fee"
	fieldCustomerShipping = "customer_shipping"
	fieldShippingDiscount = "shipping_discount"
	fieldAdjustment       = "adjustment"
)

const (
	statusConfirmed = "confirmed"
	statusReturned  = "returned"
	statusCanceled  = "canceled"
	statusCancelled = "cancelled"
)

func newSchema() columns.Schema {
	return columns.Schema{
		Platform: models.PlatformLazada,
		Fields: []columns.Field{
			{Name: fieldOrderItemID, Aliases: []string{"orderItemId", "Order Item Id", "Order Item ID"}},
			{Name: fieldOrderNumber, Aliases: []string{"orderNumber", "Order Number"}, Optional: true},
			{Name: fieldSellerSku, Aliases: []string{"sellerSku", "Seller SKU"}},
			{Name: fieldItemName, Aliases: []string{"itemName", "Item Name"}, Optional: true},
			{Name: fieldStatus, Aliases: []string{"status", "Order Status"}},
			{Name: fieldUnitPrice, Aliases: []string{"unitPrice", "Unit Price"}},
			{Name: fieldSellerDiscount, Aliases: []string{"sellerDiscountTotal", "Seller Discount Total"}, Optional: true},
			{Name: fieldProvince, Aliases: []string{"shippingAddress3", "Shipping Province", "shippingRegion"}, Optional: true},
			{Name: fieldOrderDate, Aliases: []string{"createTime", "Created at", "Order Date"}, Optional: true},
			{Name: fieldPaymentDate, Aliases: []string{"payoutDate", "Payout Date", "Release Date"}, Optional: true},

			{Name: fieldPaymentFee, Aliases: []string{"paymentFee", "Payment Fee"}, Optional: true},
			{Name: fieldCommission, Aliases: []string{"commission", "Commission"}, Optional: true},
			{Name: fieldShippingFee, Aliases: []string{"shippingFee", "Shipping Fee"}, Optional: true},
			{Name: fieldCustomerShipping, Aliases: []string{"shippingFeePaidByCustomer", "Shipping Fee Paid by Customer"}, Optional: true},
			{Name: fieldShippingDiscount, Aliases: []string{"shippingFeeDiscount", "Shipping Fee Discount"}, Optional: true},
			{Name: fieldAdjustment, Aliases: []string{"adjustment", "Adjustment"}, Optional: true},
		},
	}
}

// Breakdown labels.
const (
	LabelItemPrice        = "Item price"
	LabelSellerDiscount   = "Seller discount"
	LabelPaymentFee       = "Payment fee"
	LabelCommission       = "Commission"
	LabelShippingFee      = "Shipping fee"
	LabelCustomerShipping = "Shipping fee paid by customer"
	LabelShippingDiscount = "Shipping fee discount"
	LabelAdjustment       = "Adjustment"
)

func newLabels() models.LabelRegistry {
	return models.LabelRegistry{
		Platform: models.PlatformLazada,
		Groups: []models.LabelGroup{
			{Name: "Revenue", Kind: models.GroupRevenue, Labels: []string{LabelItemPrice, LabelSellerDiscount}},
			{Name: "Fees", Kind: models.GroupFees, Labels: []string{LabelPaymentFee, LabelCommission, LabelShippingFee}},
			{Name: "Adjustments", Kind: models.GroupAdjustments, Labels: []string{LabelAdjustment}},
		},
		Children: map[string][]string{
			LabelShippingFee: {LabelCustomerShipping, LabelShippingDiscount},
		},
		Bindings: []models.LabelBinding{
			{Label: LabelItemPrice, Field: fieldUnitPrice, Sign: 1},
			{Label: LabelSellerDiscount, Field: fieldSellerDiscount, Sign: -1},
			{Label: LabelPaymentFee, Field: fieldPaymentFee, Sign: -1},
			{Label: LabelCommission, Field: fieldCommission, Sign: -1},
			{Label: LabelShippingFee, Field: fieldShippingFee, Sign: -1},
			{Label: LabelCustomerShipping, Field: fieldCustomerShipping, Sign: 1},
			{Label: LabelShippingDiscount, Field: fieldShippingDiscount, Sign: 1},
			{Label: LabelAdjustment, Field: fieldAdjustment, Sign: 0},
		},
	}
}
