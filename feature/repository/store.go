package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"record-sync/core/database"
	"record-sync/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MappingStore persists source-to-destination id mappings.
type MappingStore struct {
	db *gorm.DB
}

// NewMappingStore creates a store on db.
func NewMappingStore(db *gorm.DB) *MappingStore {
	return &MappingStore{db: db}
}

// Migrate creates or updates the mapping table and verifies its columns.
func (s *MappingStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Mapping{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", Mapping{}.TableName(), err)
	}

	missing, err := database.MissingColumns(s.db.WithContext(ctx), Mapping{}.TableName(), mappingColumns)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("table %s is missing columns: %s", Mapping{}.TableName(), strings.Join(missing, ", "))
	}
	return nil
}

// Resolve returns the destination id for sourceID, or reconcile.ErrNotFound.
func (s *MappingStore) Resolve(ctx context.Context, sourceID string) (string, error) {
	m, err := s.Lookup(ctx, sourceID)
	if err != nil {
		return "", err
	}
	return m.DestinationID, nil
}

// Lookup returns the mapping for sourceID, or reconcile.ErrNotFound.
func (s *MappingStore) Lookup(ctx context.Context, sourceID string) (*Mapping, error) {
	var m Mapping
	err := s.db.WithContext(ctx).Where("source_id = ?", sourceID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reconcile.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up mapping for %s: %w", sourceID, err)
	}
	return &m, nil
}

// Save stores the mapping, replacing the destination id of an existing source id.
func (s *MappingStore) Save(ctx context.Context, sourceID, destinationID string) error {
	m := Mapping{SourceID: sourceID, DestinationID: destinationID}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"destination_id", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("failed to save mapping for %s: %w", sourceID, err)
	}
	return nil
}

// RemoveByDestination deletes every mapping that points at destinationID.
func (s *MappingStore) RemoveByDestination(ctx context.Context, destinationID string) (int64, error) {
	res := s.db.WithContext(ctx).Where("destination_id = ?", destinationID).Delete(&Mapping{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to remove mapping for %s: %w", destinationID, res.Error)
	}
	return res.RowsAffected, nil
}

// Count returns the number of stored mappings.
func (s *MappingStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&Mapping{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count mappings: %w", err)
	}
	return n, nil
}
