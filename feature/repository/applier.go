package repository

import (
	"context"
	"errors"
	"fmt"

	"record-sync/core/reconcile"

	"go.uber.org/zap"
)

// RecordSource fetches full records from the source catalog.
type RecordSource interface {
	Record(ctx context.Context, sourceID string) (map[string]any, error)
}

// Applier writes reconciled changes to the destination repository.
type Applier struct {
	store       *MappingStore
	client      *Client
	source      RecordSource
	transformer Transformer
	logger      *zap.Logger
}

// NewApplier creates an Applier. A nil transformer defaults to EnvelopeTransformer.
func NewApplier(store *MappingStore, client *Client, source RecordSource, transformer Transformer, logger *zap.Logger) *Applier {
	if transformer == nil {
		transformer = EnvelopeTransformer{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Applier{
		store:       store,
		client:      client,
		source:      source,
		transformer: transformer,
		logger:      logger,
	}
}

// ApplyDelete removes destinationID from the repository and drops its mapping.
func (a *Applier) ApplyDelete(ctx context.Context, destinationID string) (reconcile.DeleteOutcome, error) {
	existed, err := a.client.Delete(ctx, destinationID)
	if err != nil {
		return 0, err
	}

	if _, err := a.store.RemoveByDestination(ctx, destinationID); err != nil {
		return 0, err
	}

	if !existed {
		a.logger.Debug("Destination record already absent", zap.String("destination_id", destinationID))
		return reconcile.DeleteAbsent, nil
	}
	return reconcile.DeleteDeleted, nil
}

// ApplyUpsert pushes the current source record. Mapped records are updated in place;
// unmapped ones, or mapped ones whose destination record has vanished, are created.
func (a *Applier) ApplyUpsert(ctx context.Context, sourceID string) (reconcile.UpsertOutcome, error) {
	record, err := a.source.Record(ctx, sourceID)
	if err != nil {
		return 0, err
	}

	payload, err := a.transformer.Transform(sourceID, record)
	if err != nil {
		return 0, fmt.Errorf("failed to transform %s: %w", sourceID, err)
	}

	mapping, err := a.store.Lookup(ctx, sourceID)
	switch {
	case err == nil:
		err = a.client.Update(ctx, mapping.DestinationID, payload)
		if err == nil {
			return reconcile.UpsertUpdated, nil
		}
		if !errors.Is(err, ErrGone) {
			return 0, err
		}
		a.logger.Warn("Mapped destination record is gone, recreating",
			zap.String("source_id", sourceID),
			zap.String("destination_id", mapping.DestinationID),
		)
	case !errors.Is(err, reconcile.ErrNotFound):
		return 0, err
	}

	destinationID, err := a.client.Create(ctx, payload)
	if err != nil {
		return 0, err
	}
	if err := a.store.Save(ctx, sourceID, destinationID); err != nil {
		return 0, err
	}
	return reconcile.UpsertCreated, nil
}
