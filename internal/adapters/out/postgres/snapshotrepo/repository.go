package snapshotrepo

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/item"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	metaRowID = 1
	batchSize = 200
)

var _ ports.SnapshotStore = (*GormSnapshotRepository)(nil)

// GormSnapshotRepository keeps exactly one snapshot. Save replaces it
// atomically; readers never observe half of two snapshots.
type GormSnapshotRepository struct {
	db *gorm.DB
}

func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Models lists every table the repository owns, in migration order.
func Models() []any {
	return []any{&MetaDTO{}, &DriverDTO{}, &RouteDTO{}, &RouteItemDTO{}, &PendingItemDTO{}}
}

// Migrate creates or updates the snapshot tables.
func (r *GormSnapshotRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(Models()...)
}

func (r *GormSnapshotRepository) Save(ctx context.Context, snap ports.Snapshot) error {
	drivers := make([]DriverDTO, 0, len(snap.Drivers))
	for _, d := range snap.Drivers {
		if err := d.Validate(); err != nil {
			return err
		}
		drivers = append(drivers, driverFromDomain(d))
	}

	routes := make([]RouteDTO, 0, len(snap.Routes))
	var routeItems []RouteItemDTO
	for _, rt := range snap.Routes {
		if err := rt.Validate(); err != nil {
			return err
		}
		dto := routeFromDomain(rt)
		routeItems = append(routeItems, dto.Items...)
		dto.Items = nil
		routes = append(routes, dto)
	}

	pending := make([]PendingItemDTO, 0, len(snap.Pending))
	for pos, it := range snap.Pending {
		if err := it.Validate(); err != nil {
			return err
		}
		pending = append(pending, PendingItemDTO{Position: pos, Item: itemFromDomain(it)})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearAll(tx); err != nil {
			return err
		}

		meta := MetaDTO{ID: metaRowID, TakenAt: snap.TakenAt.UTC()}
		if err := tx.Create(&meta).Error; err != nil {
			return fmt.Errorf("save snapshot meta: %w", err)
		}
		if err := createAll(tx, drivers); err != nil {
			return fmt.Errorf("save drivers: %w", err)
		}
		if err := createAll(tx.Omit(clause.Associations), routes); err != nil {
			return fmt.Errorf("save routes: %w", err)
		}
		if err := createAll(tx, routeItems); err != nil {
			return fmt.Errorf("save route items: %w", err)
		}
		if err := createAll(tx, pending); err != nil {
			return fmt.Errorf("save pending items: %w", err)
		}
		return nil
	})
}

func (r *GormSnapshotRepository) Load(ctx context.Context) (ports.Snapshot, error) {
	var snap ports.Snapshot

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var meta MetaDTO
		if err := tx.First(&meta, "id = ?", metaRowID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		snap.TakenAt = meta.TakenAt.UTC()

		var driverRows []DriverDTO
		if err := tx.Order("id").Find(&driverRows).Error; err != nil {
			return fmt.Errorf("load drivers: %w", err)
		}
		var routeRows []RouteDTO
		if err := tx.Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).Order("id").Find(&routeRows).Error; err != nil {
			return fmt.Errorf("load routes: %w", err)
		}
		var pendingRows []PendingItemDTO
		if err := tx.Order("position").Find(&pendingRows).Error; err != nil {
			return fmt.Errorf("load pending items: %w", err)
		}

		var err error
		if snap.Drivers, err = mapRows(driverRows, driverToDomain); err != nil {
			return err
		}
		if snap.Routes, err = mapRows(routeRows, routeToDomain); err != nil {
			return err
		}
		snap.Pending, err = mapRows(pendingRows, func(row PendingItemDTO) (*item.Item, error) {
			return itemToDomain(row.Item)
		})
		return err
	})
	if err != nil {
		return ports.Snapshot{}, err
	}
	return snap, nil
}

func clearAll(tx *gorm.DB) error {
	all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	for _, model := range []any{&RouteItemDTO{}, &PendingItemDTO{}, &RouteDTO{}, &DriverDTO{}, &MetaDTO{}} {
		if err := all.Delete(model).Error; err != nil {
			return fmt.Errorf("clear snapshot: %w", err)
		}
	}
	return nil
}

func createAll[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(rows, batchSize).Error
}

func mapRows[R any, D any](rows []R, fn func(R) (D, error)) ([]D, error) {
	out := make([]D, 0, len(rows))
	for _, row := range rows {
		d, err := fn(row)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
