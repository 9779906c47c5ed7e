package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shashiranjanraj/freshko/pkg/logger"
)

// record is the row shape shared by every object store table. The semantic
// columns are populated opportunistically from the JSON value at Put time so
// indexed lookups work without deserialising every row.
type record struct {
	ObjKey    string `gorm:"column:obj_key;primaryKey;size:255"`
	ObjValue  []byte `gorm:"column:obj_value"`
	Category  string `gorm:"column:category;size:255;index"`
	Title     string `gorm:"column:title;size:255;index"`
	Email     string `gorm:"column:email;size:255;index"`
	Status    string `gorm:"column:status;size:50;index"`
	UpdatedAt time.Time
}

// schemaInfo records the database version so a re-open can detect drift.
type schemaInfo struct {
	ID        uint `gorm:"primaryKey"`
	Version   int  `gorm:"not null"`
	CreatedAt time.Time
}

func (schemaInfo) TableName() string { return "kv_schema" }

// GormEngine is the Engine implementation on top of GORM.
type GormEngine struct {
	db      *gorm.DB
	version int
}

// NewGormEngine wraps an already-open gorm.DB at the given schema version.
// Call Init before any other operation.
func NewGormEngine(db *gorm.DB, version int) *GormEngine {
	return &GormEngine{db: db, version: version}
}

// Open builds the dialector from config and opens the database.
// See Connect in pkg/kv/dialector.go for driver selection.
func Open() (*GormEngine, error) {
	db, version, err := Connect()
	if err != nil {
		return nil, err
	}
	return NewGormEngine(db, version), nil
}

// Init creates the object store tables and the version row. Safe to call on
// an existing database: AutoMigrate only adds what is missing.
func (e *GormEngine) Init(ctx context.Context) error {
	if e.db == nil {
		return fmt.Errorf("%w: no database handle", ErrEngineUnavailable)
	}

	db := e.db.WithContext(ctx)

	if err := db.AutoMigrate(&schemaInfo{}); err != nil {
		return fmt.Errorf("%w: schema table: %v", ErrEngineUnavailable, err)
	}

	var info schemaInfo
	err := db.First(&info).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		if err := db.Create(&schemaInfo{Version: e.version}).Error; err != nil {
			return fmt.Errorf("%w: record version: %v", ErrEngineUnavailable, err)
		}
	case err != nil:
		return fmt.Errorf("%w: read version: %v", ErrEngineUnavailable, err)
	case info.Version > e.version:
		return fmt.Errorf("%w: database version %d is newer than supported %d",
			ErrEngineUnavailable, info.Version, e.version)
	}

	for _, s := range Stores {
		if err := db.Table(s).AutoMigrate(&record{}); err != nil {
			return fmt.Errorf("%w: create store %s: %v", ErrEngineUnavailable, s, err)
		}
	}

	logger.Debug("kv: engine initialised", "version", e.version, "stores", len(Stores))
	return nil
}

func (e *GormEngine) Get(ctx context.Context, store, key string) ([]byte, error) {
	if !ValidStore(store) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}

	var rec record
	err := e.db.WithContext(ctx).Table(store).
		Where("obj_key = ?", key).
		Take(&rec).Error
	if err == gorm.ErrRecordNotFound {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kv: get %s/%s: %w", store, key, err)
	}
	return rec.ObjValue, nil
}

func (e *GormEngine) Put(ctx context.Context, store, key string, value []byte) error {
	if !ValidStore(store) {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}

	rec := record{
		ObjKey:    key,
		ObjValue:  value,
		UpdatedAt: time.Now(),
	}
	rec.Category, rec.Title, rec.Email, rec.Status = indexFields(value)

	err := e.db.WithContext(ctx).Table(store).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "obj_key"}},
			UpdateAll: true,
		}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("kv: put %s/%s: %w", store, key, err)
	}
	return nil
}

func (e *GormEngine) Delete(ctx context.Context, store, key string) error {
	if !ValidStore(store) {
		return fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}

	err := e.db.WithContext(ctx).Table(store).
		Where("obj_key = ?", key).
		Delete(&record{}).Error
	if err != nil {
		return fmt.Errorf("kv: delete %s/%s: %w", store, key, err)
	}
	return nil
}

func (e *GormEngine) Clear(ctx context.Context, store string) error {
	targets := Stores
	if store != "" {
		if !ValidStore(store) {
			return fmt.Errorf("%w: %s", ErrUnknownStore, store)
		}
		targets = []string{store}
	}

	for _, s := range targets {
		err := e.db.WithContext(ctx).Table(s).
			Where("obj_key IS NOT NULL").
			Delete(&record{}).Error
		if err != nil {
			return fmt.Errorf("kv: clear %s: %w", s, err)
		}
	}
	return nil
}

func (e *GormEngine) ListKeys(ctx context.Context, store string) ([]string, error) {
	if !ValidStore(store) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStore, store)
	}

	var keys []string
	err := e.db.WithContext(ctx).Table(store).
		Order("obj_key").
		Pluck("obj_key", &keys).Error
	if err != nil {
		return nil, fmt.Errorf("kv: list keys %s: %w", store, err)
	}
	return keys, nil
}

// EstimateUsage sums stored value sizes across every object store. Quota is
// zero: none of the supported backends report a hard per-database limit.
func (e *GormEngine) EstimateUsage(ctx context.Context) (Usage, error) {
	var usage Usage
	for _, s := range Stores {
		var n int64
		err := e.db.WithContext(ctx).Table(s).
			Select("COALESCE(SUM(LENGTH(obj_value)), 0)").
			Scan(&n).Error
		if err != nil {
			return Usage{}, fmt.Errorf("kv: estimate usage %s: %w", s, err)
		}
		usage.Used += n
	}
	return usage, nil
}

// indexFields pulls the indexable string fields out of a JSON value.
// Non-object values (arrays, scalars) simply index as empty.
func indexFields(value []byte) (category, title, email, status string) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(value, &obj); err != nil {
		return
	}

	str := func(k string) string {
		raw, ok := obj[k]
		if !ok {
			return ""
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	}

	return str("category"), str("title"), str("email"), str("status")
}
