package model

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/salesfolio/backend/src/models"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// SalesStore persists settled sale records and per-platform metrics.
type SalesStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSalesStore(db *sql.DB) *SalesStore {
	return &SalesStore{db: db, now: time.Now}
}

// A conflicting row is fully replaced, never summed. The WHERE clause skips
// rows whose values did not change, so re-uploading a file writes nothing.
const upsertSaleQuery = `
	INSERT INTO sales_records (hash_id, platform, external_id, product_code, disposition, order_id, product_name,
		quantity, quantity_returned, revenue, fees, adjustments, province, order_date, payment_date, components, upload_id, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(platform, external_id, product_code, disposition) DO UPDATE SET
		hash_id = excluded.hash_id,
		order_id = excluded.order_id,
		product_name = excluded.product_name,
		quantity = excluded.quantity,
		quantity_returned = excluded.quantity_returned,
		revenue = excluded.revenue,
		fees = excluded.fees,
		adjustments = excluded.adjustments,
		province = excluded.province,
		order_date = excluded.order_date,
		payment_date = excluded.payment_date,
		components = excluded.components,
		upload_id = excluded.upload_id,
		updated_at = excluded.updated_at
	WHERE sales_records.order_id IS NOT excluded.order_id
		OR sales_records.product_name IS NOT excluded.product_name
		OR sales_records.quantity IS NOT excluded.quantity
		OR sales_records.quantity_returned IS NOT excluded.quantity_returned
		OR sales_records.revenue IS NOT excluded.revenue
		OR sales_records.fees IS NOT excluded.fees
		OR sales_records.adjustments IS NOT excluded.adjustments
		OR sales_records.province IS NOT excluded.province
		OR sales_records.order_date IS NOT excluded.order_date
		OR sales_records.payment_date IS NOT excluded.payment_date
		OR sales_records.components IS NOT excluded.components`

// UpsertSales writes a reconciled batch in one transaction and returns how
// many rows were inserted or changed.
func (s *SalesStore) UpsertSales(ctx context.Context, records []models.SaleRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertSaleQuery)
	if err != nil {
		return 0, fmt.Errorf("error preparing upsert statement: %w", err)
	}
	defer stmt.Close()

	now := s.now().UTC()
	written := 0
	for _, r := range records {
		components, err := encodeComponents(r.Components)
		if err != nil {
			return 0, err
		}
		res, err := stmt.ExecContext(ctx,
			r.HashID, r.Platform, r.ExternalID, r.ProductCode, r.RecordType, r.OrderID, r.ProductName,
			r.Quantity, r.QuantityReturned, r.Revenue, r.Fees, r.Adjustments,
			r.ProvinceNormalized, r.OrderDate, r.PaymentDate, components, r.UploadID, now)
		if err != nil {
			return 0, fmt.Errorf("error upserting sale record (external id %s): %w", r.ExternalID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			written += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing sale records: %w", err)
	}
	return written, nil
}

// ListSales returns every stored record of a platform.
func (s *SalesStore) ListSales(ctx context.Context, platform models.Platform) ([]models.SaleRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hash_id, platform, external_id, product_code, disposition, order_id, product_name,
			quantity, quantity_returned, revenue, fees, adjustments, province, order_date, payment_date,
			components, upload_id, updated_at
		FROM sales_records WHERE platform = ? ORDER BY order_date ASC, id ASC`, platform)
	if err != nil {
		return nil, fmt.Errorf("error querying sale records for %s: %w", platform, err)
	}
	defer rows.Close()

	var records []models.SaleRecord
	for rows.Next() {
		var (
			r                                               models.SaleRecord
			orderID, name, province, orderDate, paymentDate sql.NullString
			components, uploadID                            sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.HashID, &r.Platform, &r.ExternalID, &r.ProductCode, &r.RecordType,
			&orderID, &name, &r.Quantity, &r.QuantityReturned, &r.Revenue, &r.Fees, &r.Adjustments,
			&province, &orderDate, &paymentDate, &components, &uploadID, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning sale record for %s: %w", platform, err)
		}
		r.OrderID = orderID.String
		r.ProductName = name.String
		r.ProvinceNormalized = province.String
		r.OrderDate = orderDate.String
		r.PaymentDate = paymentDate.String
		r.UploadID = uploadID.String
		if r.Components, err = decodeComponents(components.String); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// UpsertMetrics stores the metrics document of a platform, replacing any
// previous one.
func (s *SalesStore) UpsertMetrics(ctx context.Context, doc models.MetricsDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode metrics document: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO platform_metrics (platform, document, upload_id, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(platform) DO UPDATE SET
			document = excluded.document,
			upload_id = excluded.upload_id,
			updated_at = excluded.updated_at`,
		doc.Platform, string(payload), doc.UploadID, s.now().UTC())
	if err != nil {
		return fmt.Errorf("error upserting metrics for %s: %w", doc.Platform, err)
	}
	return nil
}

// GetMetrics loads the stored metrics document of a platform.
func (s *SalesStore) GetMetrics(ctx context.Context, platform models.Platform) (*models.MetricsDocument, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM platform_metrics WHERE platform = ?`, platform).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("metrics for %s: %w", platform, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying metrics for %s: %w", platform, err)
	}
	var doc models.MetricsDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("failed to decode metrics document for %s: %w", platform, err)
	}
	return &doc, nil
}

func encodeComponents(c map[string]decimal.Decimal) (sql.NullString, error) {
	if len(c) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode components: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeComponents(s string) (map[string]decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	var c map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(s), &c); err != nil {
		return nil, fmt.Errorf("failed to decode components: %w", err)
	}
	return c, nil
}
