package shopee

import (
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
)

const (
	fieldOrderID        = "order_id"
	fieldOrderStatus    = "order_status"
	fieldRefundStatus   = "refund_status"
	fieldProductCode    = "product_code"
	fieldProductName    = "product_name"
	fieldQuantity       = "quantity"
	fieldSubtotal       = "subtotal"
	fieldSellerDiscount = "seller_discount"
	fieldProvince       = "province"
	fieldOrderDate      = "order_date"
	fieldPaymentDate    = "payment_date"

	fieldCommissionFee  = "commission_fee"
	fieldTransactionFee = "transaction_fee"
	fieldServiceFee     = "service_fee"
	fieldShippingFee    = "shipping_fee"
	fieldBuyerShipping  = "buyer_paid_shipping"
	fieldShippingRebate = "shipping_rebate"
	fieldReturnShipping = "return_shipping"
	fieldAdjustment     = "adjustment"
)

// Status vocabulary of the Thai seller centre export. English exports use
// the second spelling.
var (
	shippingMarkers  = []string{"กำลังจัดส่ง", "Shipping"}
	cancelledMarkers = []string{"ยกเลิกแล้ว", "Cancel"}
	acceptedReturn   = []string{"คำขอได้รับการยอมรับแล้ว", "Request Approved"}
)

func newSchema() columns.Schema {
	return columns.Schema{
		Platform: models.PlatformShopee,
		Fields: []columns.Field{
			{Name: fieldOrderID, Aliases: []string{"หมายเลขคำสั่งซื้อ", "Order ID"}, Optional: true},
			{Name: fieldOrderStatus, Aliases: []string{"สถานะการสั่งซื้อ", "Order Status"}},
			{Name: fieldRefundStatus, Aliases: []string{"สถานะการคืนเงินหรือคืนสินค้า", "Return / Refund Status", "Return/Refund Status"}},
			{Name: fieldProductCode, Aliases: []string{"เลขอ้างอิง SKU (SKU Reference No.)", "SKU Reference No.", "เลขอ้างอิง Parent SKU", "Parent SKU Reference No."}},
			{Name: fieldProductName, Aliases: []string{"ชื่อสินค้า", "Product Name"}, Optional: true},
			{Name: fieldQuantity, Aliases: []string{"จำนวน", "Quantity"}},
			{Name: fieldSubtotal, Aliases: []string{"ราคาขายสุทธิ", "Product Subtotal", "ราคาตั้งต้น", "Original Price"}},
			{Name: fieldSellerDiscount, Aliases: []string{"ส่วนลดจากผู้ขาย", "Seller Discount", "โค้ดส่วนลดชำระโดยผู้ขาย", "Seller Voucher"}, Optional: true},
			{Name: fieldProvince, Aliases: []string{"จังหวัด", "Province"}, Optional: true},
			{Name: fieldOrderDate, Aliases: []string{"วันที่ทำการสั่งซื้อ", "Order Creation Date"}, Optional: true},
			{Name: fieldPaymentDate, Aliases: []string{"เวลาการชำระสินค้า", "Order Paid Time", "วันที่โอนเงินสำเร็จ", "Payout Completed Date"}, Optional: true},

			{Name: fieldCommissionFee, Aliases: []string{"ค่าคอมมิชชั่น", "Commission Fee"}, Optional: true},
			{Name: fieldTransactionFee, Aliases: []string{"ค่าธุรกรรมการชำระเงิน", "Transaction Fee"}, Optional: true},
			{Name: fieldServiceFee, Aliases: []string{"ค่าบริการ", "Service Fee"}, Optional: true},
			{Name: fieldShippingFee, Aliases: []string{"ค่าจัดส่งโดยประมาณ", "Estimated Shipping Fee"}, Optional: true},
			{Name: fieldBuyerShipping, Aliases: []string{"ค่าจัดส่งที่ชำระโดยผู้ซื้อ", "Buyer Paid Shipping Fee"}, Optional: true},
			{Name: fieldShippingRebate, Aliases: []string{"ค่าจัดส่งที่ Shopee ออกให้โดยประมาณ", "Shipping Rebate Estimate"}, Optional: true},
			{Name: fieldReturnShipping, Aliases: []string{"ค่าจัดส่งสินค้าคืน", "Reverse Shipping Fee"}, Optional: true},
			{Name: fieldAdjustment, Aliases: []string{"การปรับปรุง", "Adjustment Amount"}, Optional: true},
		},
	}
}

// Breakdown labels.
const (
	LabelProductSubtotal = "Product subtotal"
	LabelSellerDiscount  = "Seller discount"
	LabelCommissionFee   = "Commission fee"
	LabelTransactionFee  = "Transaction fee"
	LabelServiceFee      = "Service fee"
	LabelShippingFee     = "Shipping fee"
	LabelBuyerShipping   = "Buyer-paid shipping"
	LabelShippingSubsidy = "Platform shipping subsidy"
	LabelReturnShipping  = "Return shipping"
	LabelAdjustment      = "Adjustment"
)

func newLabels() models.LabelRegistry {
	return models.LabelRegistry{
		Platform: models.PlatformShopee,
		Groups: []models.LabelGroup{
			{Name: "Revenue", Kind: models.GroupRevenue, Labels: []string{LabelProductSubtotal, LabelSellerDiscount}},
			{Name: "Fees", Kind: models.GroupFees, Labels: []string{LabelCommissionFee, LabelTransactionFee, LabelServiceFee, LabelShippingFee}},
			{Name: "Adjustments", Kind: models.GroupAdjustments, Labels: []string{LabelAdjustment}},
		},
		Children: map[string][]string{
			LabelShippingFee: {LabelBuyerShipping, LabelShippingSubsidy, LabelReturnShipping},
		},
		Bindings: []models.LabelBinding{
			{Label: LabelProductSubtotal, Field: fieldSubtotal, Sign: 1},
			{Label: LabelSellerDiscount, Field: fieldSellerDiscount, Sign: -1},
			{Label: LabelCommissionFee, Field: fieldCommissionFee, Sign: -1},
			{Label: LabelTransactionFee, Field: fieldTransactionFee, Sign: -1},
			{Label: LabelServiceFee, Field: fieldServiceFee, Sign: -1},
			{Label: LabelShippingFee, Field: fieldShippingFee, Sign: -1},
			{Label: LabelBuyerShipping, Field: fieldBuyerShipping, Sign: 1},
			{Label: LabelShippingSubsidy, Field: fieldShippingRebate, Sign: 1},
			{Label: LabelReturnShipping, Field: fieldReturnShipping, Sign: -1},
			{Label: LabelAdjustment, Field: fieldAdjustment, Sign: 0},
		},
	}
}
