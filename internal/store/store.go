package store

// Record is a dynamic row keyed by field name. Persisted records carry their
// identifier under "id".
type Record map[string]interface{}

// ID returns the record identifier, or "" for an unsaved record.
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// GetString returns the field value coerced to a string ("" when absent).
func (r Record) GetString(field string) string {
	v, ok := r[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return toString(v)
}

// Store is the persistence boundary used by the services. Backed by
// PocketBase collections in production and by MemoryStore in tests.
type Store interface {
	// FindByKey returns the first record of kind whose field equals value,
	// or nil when there is none.
	FindByKey(kind, field string, value interface{}) (Record, error)
	// FindAll returns all records of kind matching the filter (nil filter
	// matches everything), in creation order.
	FindAll(kind string, filter map[string]interface{}) ([]Record, error)
	// Create persists a new record and returns it with its id assigned.
	Create(kind string, rec Record) (Record, error)
	// Save upserts by id: records without an id are created, the rest are
	// overwritten in place.
	Save(kind string, rec Record) (Record, error)
	// Delete removes the record with the given id.
	Delete(kind, id string) error
}
