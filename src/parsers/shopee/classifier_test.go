package shopee

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/salesfolio/backend/src/models"
	"github.com/username/salesfolio/backend/src/parsers/columns"
	"github.com/username/salesfolio/backend/src/spreadsheet"
	"github.com/username/salesfolio/backend/src/utils"
)

var headers = []string{
	"หมายเลขคำสั่งซื้อ", "สถานะการสั่งซื้อ", "สถานะการคืนเงินหรือคืนสินค้า",
	"เลขอ้างอิง SKU (SKU Reference No.)", "จำนวน", "ราคาขายสุทธิ", "ส่วนลดจากผู้ขาย",
	"จังหวัด", "วันที่ทำการสั่งซื้อ",
	"ค่าคอมมิชชั่น", "ค่าจัดส่งโดยประมาณ", "ค่าจัดส่งที่ชำระโดยผู้ซื้อ", "ค่าจัดส่งสินค้าคืน",
}

func classify(t *testing.T, records ...[]string) ([]models.ClassifiedRow, []string) {
	t.Helper()
	c := NewClassifier()
	sheet, err := spreadsheet.FromGrid(append([][]string{headers}, records...))
	require.NoError(t, err)
	cols, err := columns.Resolve(c.Schema(), sheet.Headers)
	require.NoError(t, err)
	return c.Classify(sheet.Rows, cols, utils.NewCellParser())
}

func record(orderStatus, refundStatus string) []string {
	return []string{
		"240101ABC", orderStatus, refundStatus,
		"KL0-4010", "3", "300", "30",
		"เชียงใหม่", "2024-01-01 12:00",
		"9", "40", "", "12",
	}
}

func TestClassify_CompletedOrderIsConfirmed(t *testing.T) {
	rows, warnings := classify(t, record("สำเร็จแล้ว", ""))
	require.Len(t, rows, 1)
	assert.Empty(t, warnings)

	row := rows[0]
	assert.Equal(t, models.DispositionConfirmed, row.Disposition)
	assert.Equal(t, "270", row.RevenueConfirmed.String())
	assert.Equal(t, 3, row.QuantityConfirmed)
	assert.Equal(t, "240101ABC", row.ExternalID)
	assert.Equal(t, "2024-01-01", row.OrderDate)
	// Shipping fee children carry values, so the parent column is ignored.
	assert.Equal(t, "-9", row.Components[LabelCommissionFee].String())
	assert.Equal(t, "-21", row.Fees.String())
}

func TestClassify_AcceptedReturn(t *testing.T) {
	rows, _ := classify(t, record("สำเร็จแล้ว", "คำขอได้รับการยอมรับแล้ว"))
	require.Len(t, rows, 1)

	assert.Equal(t, models.DispositionReturned, rows[0].Disposition)
	assert.True(t, rows[0].RevenueConfirmed.IsZero())
	assert.Equal(t, 3, rows[0].QuantityReturned)
	assert.Equal(t, 0, rows[0].QuantityConfirmed)
}

func TestClassify_StatusMarkersWinOverRefundStatus(t *testing.T) {
	tests := []struct {
		name        string
		orderStatus string
		want        models.Disposition
	}{
		{"in shipping", "กำลังจัดส่ง", models.DispositionIgnored},
		{"cancelled", "ยกเลิกแล้ว", models.DispositionCancelled},
		{"english shipping", "Shipping", models.DispositionIgnored},
		{"english cancelled", "Cancelled", models.DispositionCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, _ := classify(t, record(tt.orderStatus, "คำขอได้รับการยอมรับแล้ว"))
			require.Len(t, rows, 1)
			assert.Equal(t, tt.want, rows[0].Disposition)
			assert.True(t, rows[0].RevenueConfirmed.IsZero())
			assert.Equal(t, 0, rows[0].QuantityReturned)
		})
	}
}

func TestClassify_RefundStatusOtherThanAcceptedIsConfirmed(t *testing.T) {
	rows, _ := classify(t, record("สำเร็จแล้ว", "คำขอถูกปฏิเสธ"))
	require.Len(t, rows, 1)
	assert.Equal(t, models.DispositionConfirmed, rows[0].Disposition)
}

func TestClassify_MissingOrderIDFallsBackToLine(t *testing.T) {
	r := record("สำเร็จแล้ว", "")
	r[0] = ""
	rows, _ := classify(t, r)
	require.Len(t, rows, 1)
	assert.Equal(t, "line-2", rows[0].ExternalID)
}
