package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStateRepository implements shared.StateStorage on a single gorm table.
type GormStateRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStateRepository creates a new GormStateRepository
func NewGormStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db, now: time.Now}
}

// WithTx returns a repository bound to tx
func (r *GormStateRepository) WithTx(tx *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: tx, now: r.now}
}

// Save upserts the namespace row, replacing the payload and bumping the version.
func (r *GormStateRepository) Save(ctx context.Context, ns shared.Namespace, payload []byte) error {
	if !ns.IsValid() {
		return shared.NewDomainError("INVALID_NAMESPACE", fmt.Sprintf("unknown namespace %q", ns))
	}

	model := models.NewStateModel(ns, payload, r.now().UTC())
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "namespace"}},
			DoUpdates: clause.Assignments(map[string]any{
				"payload":    gorm.Expr("excluded.payload"),
				"updated_at": gorm.Expr("excluded.updated_at"),
				"version":    gorm.Expr(models.StateTableName + ".version + 1"),
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to save %s state: %w", ns, err)
	}
	return nil
}

// Load returns the stored payload; found is false when the namespace has no row.
func (r *GormStateRepository) Load(ctx context.Context, ns shared.Namespace) ([]byte, bool, error) {
	var model models.StateModel
	err := r.db.WithContext(ctx).
		Where("namespace = ?", ns.String()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s state: %w", ns, err)
	}
	return model.Payload, true, nil
}

// Version returns how many times ns has been saved, 0 when never.
func (r *GormStateRepository) Version(ctx context.Context, ns shared.Namespace) (int, error) {
	var model models.StateModel
	err := r.db.WithContext(ctx).
		Select("version").
		Where("namespace = ?", ns.String()).
		First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s version: %w", ns, err)
	}
	return model.Version, nil
}

// Ensure GormStateRepository implements StateStorage
var _ shared.StateStorage = (*GormStateRepository)(nil)
