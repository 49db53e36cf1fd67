package model

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/salesfolio/backend/src/database"
	"github.com/username/salesfolio/backend/src/models"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleRecords(uploadID string) []models.SaleRecord {
	return []models.SaleRecord{
		{
			HashID:      "h1",
			Platform:    models.PlatformTikTok,
			ExternalID:  "O1",
			ProductCode: "SKU-A",
			RecordType:  "sale",
			OrderID:     "O1",
			ProductName: "Kettle",
			Quantity:    2,
			Revenue:     decimal.RequireFromString("90"),
			Fees:        decimal.RequireFromString("-23"),
			Adjustments: decimal.Zero,
			OrderDate:   "2024-01-15",
			PaymentDate: "2024-01-20",
			UploadID:    uploadID,
			Components: map[string]decimal.Decimal{
				"Transaction fee": decimal.RequireFromString("-3"),
				"Affiliate fee":   decimal.RequireFromString("-20"),
			},
		},
		{
			HashID:           "h2",
			Platform:         models.PlatformTikTok,
			ExternalID:       "O2",
			ProductCode:      "SKU-B",
			RecordType:       "return",
			OrderID:          "O2",
			ProductName:      "Pan",
			QuantityReturned: 1,
			Revenue:          decimal.Zero,
			Fees:             decimal.RequireFromString("-5"),
			Adjustments:      decimal.Zero,
			OrderDate:        "2024-01-16",
			UploadID:         uploadID,
		},
	}
}

func TestSalesStore_UpsertAndList(t *testing.T) {
	store := NewSalesStore(openTestDB(t))
	ctx := context.Background()

	written, err := store.UpsertSales(ctx, sampleRecords("u1"))
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	got, err := store.ListSales(ctx, models.PlatformTikTok)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "O1", got[0].ExternalID)
	assert.Equal(t, "sale", got[0].RecordType)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, "90", got[0].Revenue.String())
	assert.Equal(t, "-23", got[0].Fees.String())
	assert.Equal(t, "2024-01-20", got[0].PaymentDate)
	require.Len(t, got[0].Components, 2)
	assert.Equal(t, "-20", got[0].Components["Affiliate fee"].String())

	assert.Equal(t, "return", got[1].RecordType)
	assert.Equal(t, 1, got[1].QuantityReturned)
	assert.Empty(t, got[1].Components)
	assert.Equal(t, models.DispositionReturned, got[1].Row().Disposition)

	other, err := store.ListSales(ctx, models.PlatformShopee)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSalesStore_ReuploadIsNoOp(t *testing.T) {
	store := NewSalesStore(openTestDB(t))
	ctx := context.Background()

	_, err := store.UpsertSales(ctx, sampleRecords("u1"))
	require.NoError(t, err)

	written, err := store.UpsertSales(ctx, sampleRecords("u2"))
	require.NoError(t, err)
	assert.Equal(t, 0, written)

	got, err := store.ListSales(ctx, models.PlatformTikTok)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "u1", got[0].UploadID, "unchanged rows keep their original upload")
}

func TestSalesStore_ConflictOverwritesInsteadOfSumming(t *testing.T) {
	store := NewSalesStore(openTestDB(t))
	ctx := context.Background()

	_, err := store.UpsertSales(ctx, sampleRecords("u1"))
	require.NoError(t, err)

	updated := sampleRecords("u2")[:1]
	updated[0].Revenue = decimal.RequireFromString("120.5")
	updated[0].Quantity = 3

	written, err := store.UpsertSales(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, 1, written)

	got, err := store.ListSales(ctx, models.PlatformTikTok)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "120.5", got[0].Revenue.String())
	assert.Equal(t, 3, got[0].Quantity)
	assert.Equal(t, "u2", got[0].UploadID)
}

func TestSalesStore_DispositionIsPartOfKey(t *testing.T) {
	store := NewSalesStore(openTestDB(t))
	ctx := context.Background()

	records := sampleRecords("u1")[:1]
	ret := records[0]
	ret.RecordType = "return"
	ret.HashID = "h1r"
	records = append(records, ret)

	written, err := store.UpsertSales(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, 2, written)
}

func TestSalesStore_Metrics(t *testing.T) {
	store := NewSalesStore(openTestDB(t))
	ctx := context.Background()

	_, err := store.GetMetrics(ctx, models.PlatformLazada)
	assert.True(t, errors.Is(err, ErrNotFound))

	doc := models.MetricsDocument{
		Platform:   models.PlatformLazada,
		Revenue:    decimal.RequireFromString("95"),
		Fees:       decimal.RequireFromString("-1.5"),
		Settlement: decimal.RequireFromString("93.5"),
		UploadID:   "u1",
		UpdatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.UpsertMetrics(ctx, doc))

	doc.Revenue = decimal.RequireFromString("100")
	doc.UploadID = "u2"
	require.NoError(t, store.UpsertMetrics(ctx, doc))

	got, err := store.GetMetrics(ctx, models.PlatformLazada)
	require.NoError(t, err)
	assert.Equal(t, "100", got.Revenue.String())
	assert.Equal(t, "93.5", got.Settlement.String())
	assert.Equal(t, "u2", got.UploadID)
}

func TestSalesStore_UpsertRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO sales_records")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	store := NewSalesStore(db)
	_, err = store.UpsertSales(context.Background(), sampleRecords("u1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "external id O2")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesStore_UpsertCommitsOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO sales_records")
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WillReturnResult(sqlmock.NewResult(2, 0))
	mock.ExpectCommit()

	store := NewSalesStore(db)
	written, err := store.UpsertSales(context.Background(), sampleRecords("u1"))
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesStore_EmptyBatchSkipsDatabase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	written, err := NewSalesStore(db).UpsertSales(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, written)
	assert.NoError(t, mock.ExpectationsWereMet())
}
