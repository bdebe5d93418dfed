// Package store reads accounts and catalog data from the MySQL database.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"ogparsing/internal/models"
)

// Store wraps the database handle with the lookups the pipeline needs.
type Store struct {
	db *gorm.DB
}

// Open connects to MySQL and returns a Store.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if sqlDB, derr := db.DB(); derr == nil {
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	return &Store{db: db}, nil
}

// NewStore wraps an existing gorm handle, mainly for tests.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// locationVendorRecord mirrors the location_vendors table joined with its
// vendor and import setup.
type locationVendorRecord struct {
	ID             uint   `gorm:"column:id;primaryKey"`
	Location       string `gorm:"column:location_name"`
	VendorID       uint   `gorm:"column:vendor_id"`
	VendorName     string `gorm:"column:vendor_name"`
	SetupKind      string `gorm:"column:setup_kind"`
	CustomerNumber string `gorm:"column:customer_number"`
}

// catalogItemRecord mirrors the catalog_items table joined with the item's
// most recent price row.
type catalogItemRecord struct {
	ID               uint            `gorm:"column:id;primaryKey"`
	LocationVendorID uint            `gorm:"column:location_vendor_id"`
	ItemNo           string          `gorm:"column:item_no"`
	PackType         string          `gorm:"column:pack_type"`
	Name             string          `gorm:"column:name"`
	Brand            string          `gorm:"column:brand"`
	Barcode          string          `gorm:"column:barcode"`
	Measure          string          `gorm:"column:measure"`
	PriceAmount      decimal.Decimal `gorm:"column:price_amount"`
	PriceType        string          `gorm:"column:price_type"`
	// NULL when the item has no price history, like the joined columns above.
	PriceRecordedAt sql.NullTime `gorm:"column:price_recorded_at"`
	HasPrice        bool         `gorm:"column:has_price"`
}

const locationVendorSelect = `
SELECT lv.id,
       l.name AS location_name,
       v.id   AS vendor_id,
       v.name AS vendor_name,
       s.kind AS setup_kind,
       s.customer_number
FROM location_vendors lv
JOIN locations l ON l.id = lv.location_id
JOIN vendors v ON v.id = lv.vendor_id
LEFT JOIN import_setups s ON s.location_vendor_id = lv.id
`

// LocationVendorsByIDs loads the location vendors named by a job, preserving
// no particular order. Unknown IDs are simply absent from the result.
func (s *Store) LocationVendorsByIDs(ids []uint) ([]*models.LocationVendor, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []locationVendorRecord
	if err := s.db.Raw(locationVendorSelect+"WHERE lv.id IN ?", ids).Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load location vendors: %w", err)
	}

	lvs := make([]*models.LocationVendor, 0, len(records))
	for i := range records {
		lvs = append(lvs, records[i].toModel())
	}

	return lvs, nil
}

// ByCustomerNumber resolves a location vendor through its import setup.
// A missing row is a normal outcome and returns nil, nil.
func (s *Store) ByCustomerNumber(kind models.SetupKind, customerNumber string) (*models.LocationVendor, error) {
	var record locationVendorRecord

	err := s.db.Raw(
		locationVendorSelect+"WHERE s.kind = ? AND s.customer_number = ? LIMIT 1",
		string(kind), customerNumber,
	).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up customer number %s: %w", customerNumber, err)
	}

	return record.toModel(), nil
}

const catalogItemSelect = `
SELECT ci.id,
       ci.location_vendor_id,
       ci.item_no,
       ci.pack_type,
       ci.name,
       ci.brand,
       ci.barcode,
       ci.measure,
       COALESCE(p.amount, 0)   AS price_amount,
       COALESCE(p.price_type, '') AS price_type,
       p.recorded_at           AS price_recorded_at,
       p.id IS NOT NULL        AS has_price
FROM catalog_items ci
LEFT JOIN catalog_prices p ON p.id = (
    SELECT id FROM catalog_prices
    WHERE catalog_item_id = ci.id
    ORDER BY recorded_at DESC
    LIMIT 1
)
`

// ByItemNoAndPackType finds one catalog item scoped to the location vendor.
// A missing row is a normal outcome and returns nil, nil.
func (s *Store) ByItemNoAndPackType(lv *models.LocationVendor, itemNo string, packType models.PackType) (*models.CatalogItem, error) {
	var record catalogItemRecord

	err := s.db.Raw(
		catalogItemSelect+"WHERE ci.location_vendor_id = ? AND ci.item_no = ? AND ci.pack_type = ? LIMIT 1",
		lv.ID, itemNo, string(packType),
	).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to look up catalog item %s: %w", itemNo, err)
	}

	return record.toModel(lv), nil
}

func (r *locationVendorRecord) toModel() *models.LocationVendor {
	lv := &models.LocationVendor{
		ID:       r.ID,
		Location: r.Location,
		Vendor:   &models.Vendor{ID: r.VendorID, Name: r.VendorName},
	}
	lv.ImportSetup = buildImportSetup(models.SetupKind(r.SetupKind), r.CustomerNumber)

	return lv
}

func (r *catalogItemRecord) toModel(lv *models.LocationVendor) *models.CatalogItem {
	item := &models.CatalogItem{
		ID:             r.ID,
		LocationVendor: lv,
		ItemNo:         r.ItemNo,
		PackType:       models.PackType(r.PackType),
		Name:           r.Name,
		Brand:          r.Brand,
		Barcode:        r.Barcode,
		Measure:        r.Measure,
	}

	if r.HasPrice {
		item.LastPrice = &models.CatalogPrice{
			Amount:     r.PriceAmount,
			PriceType:  models.PriceType(r.PriceType),
			RecordedAt: r.PriceRecordedAt.Time,
		}
	}

	return item
}

func buildImportSetup(kind models.SetupKind, customerNumber string) models.ImportSetup {
	base := models.X12ImportSetup{CustomerNumber: customerNumber}

	switch kind {
	case models.SetupKindUsfX12:
		return &models.UsfX12ImportSetup{X12ImportSetup: base}
	case models.SetupKindSyscoX12:
		return &models.SyscoX12ImportSetup{X12ImportSetup: base}
	default:
		return nil
	}
}
