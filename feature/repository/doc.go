// Package repository connects the reconciler to the destination repository.
//
// # Components
//
//   - MappingStore: the source-to-destination id table (record_mappings), backed by GORM.
//     It implements reconcile.Resolver.
//   - Client: the repository's record API (create, update, delete).
//   - Transformer: turns a source catalog record into a repository payload.
//   - Applier: implements reconcile.Applier on top of the three.
//
// # Idempotency
//
// Upserts are keyed by the mapping table, never by blind insert: a source id with a
// mapping is updated in place, and a new mapping is saved only after a successful create.
// Deletes treat 404 and 410 from the repository as already absent and always drop the
// mapping, so replaying a feed converges to the same state.
//
// # Usage
//
//	store := repository.NewMappingStore(db)
//	if err := store.Migrate(ctx); err != nil { ... }
//	applier := repository.NewApplier(store, repository.NewClient(cfg.Destination), catalog, repository.EnvelopeTransformer{}, logger)
package repository
