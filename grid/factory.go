// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package grid

// CacheItemFactory builds and re-schemas cache items under one
// ViewApplicationMask. A space constructs it; the cache space replaces
// it wholesale when the mask or the schema changes.
type CacheItemFactory interface {
	// Create returns a fully initialized item without a built view.
	// Geometry is assigned later by the validator.
	Create(id ItemID) *CacheItem
	// UpdateSchema rewires an existing item to this factory's schema,
	// keeping identity and geometry.
	UpdateSchema(item *CacheItem)
}

// SchemaFactory is the standard factory: a view schema paired with the
// mask it was created under.
type SchemaFactory struct {
	schema ViewSchema
	mask   ViewApplicationMask
}

// NewSchemaFactory builds a factory. schema may be nil, yielding items
// without views (draw becomes a no-op).
func NewSchemaFactory(schema ViewSchema, mask ViewApplicationMask) *SchemaFactory {
	return &SchemaFactory{schema: schema, mask: mask}
}

// Create implements CacheItemFactory.
func (f *SchemaFactory) Create(id ItemID) *CacheItem {
	return &CacheItem{id: id, schema: f.schema, mask: f.mask}
}

// UpdateSchema implements CacheItemFactory. The schema version bump is
// the observable trace of re-schemaing.
func (f *SchemaFactory) UpdateSchema(item *CacheItem) {
	item.schema = f.schema
	item.mask = f.mask
	item.schemaVersion++
}
