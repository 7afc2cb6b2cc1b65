package repository

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/phonglive/live-manager/internal/models"
	"github.com/phonglive/live-manager/pkg/database"
)

// StoreRepository reads the store (sales channel) reference collection.
type StoreRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewStoreRepository creates a new store repository
func NewStoreRepository(db *database.DB, logger *zap.Logger) *StoreRepository {
	return &StoreRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every store, including the "all" sentinel. Callers building
// selection lists must exclude models.StoreAllID themselves.
func (r *StoreRepository) List() ([]models.Store, error) {
	rows, err := r.db.Query(`SELECT id, name FROM stores ORDER BY name`)
	if err != nil {
		r.logger.Error("Failed to list stores", zap.Error(err))
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	defer rows.Close()

	var stores []models.Store
	for rows.Next() {
		var s models.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}

// PersonnelRepository reads the personnel lookup collection.
type PersonnelRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewPersonnelRepository creates a new personnel repository
func NewPersonnelRepository(db *database.DB, logger *zap.Logger) *PersonnelRepository {
	return &PersonnelRepository{
		db:     db,
		logger: logger,
	}
}

// List returns every personnel record.
func (r *PersonnelRepository) List() ([]models.Personnel, error) {
	rows, err := r.db.Query(`SELECT id, name, role, store_id FROM personnel ORDER BY name`)
	if err != nil {
		r.logger.Error("Failed to list personnel", zap.Error(err))
		return nil, fmt.Errorf("failed to list personnel: %w", err)
	}
	defer rows.Close()

	var people []models.Personnel
	for rows.Next() {
		var p models.Personnel
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.StoreID); err != nil {
			return nil, fmt.Errorf("failed to scan personnel: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}
