package recorddb

import "fmt"

// New returns a Database whose models are Record projections of the stored
// definitions. It is the common way to construct a Database; use NewDatabase
// to plug in a custom model factory instead.
func New[D any](opts ...Option) *Database[D, *Record[D]] {
	var db *Database[D, *Record[D]]

	db = NewDatabase(func(definition D, id ID) *Record[D] {
		return &Record[D]{id: id, definition: definition, db: db}
	}, opts...)

	return db
}

// Record is the built-in model: a transient projection of a stored definition.
// The identity is read-only. Get and Set work on the Record's own copy of the
// definition, so edits stay local until Save writes them back - a Record that
// is changed and never saved leaves the stored record untouched.
type Record[D any] struct {
	id         ID
	definition D

	db *Database[D, *Record[D]]
}

// ID returns the identity the record is stored under.
func (r *Record[D]) ID() ID {
	return r.id
}

// Definition returns the record's current definition, including unsaved edits.
func (r *Record[D]) Definition() D { //nolint:ireturn // valid use of generics
	return r.definition
}

// Get returns the value of column. The identity column yields the identity.
// Get panics if the definition has no field named column.
func (r *Record[D]) Get(column string) any {
	if column == r.db.idColumn {
		return r.id
	}

	return fieldValue(r.definition, column)
}

// Set assigns value to column on the record's copy of the definition. The
// stored record is only changed once Save is called. Setting the identity
// column panics, as does a column the definition has no field for.
func (r *Record[D]) Set(column string, value any) {
	if column == r.db.idColumn {
		panic("recorddb: column is the identity and cannot be set: " + column)
	}

	setField(&r.definition, column, value)
}

// Save writes the record's definition back into the Database under its
// identity, refreshing a query scope entry for it as well, so a scope built
// earlier stays consistent. Returns ErrNotFound if the identity has been
// deleted in the meantime.
func (r *Record[D]) Save() error {
	if _, ok := r.db.records[r.id]; !ok {
		return fmt.Errorf("cannot save record %d: %w", r.id, ErrNotFound)
	}

	r.db.records[r.id] = r.definition

	if _, ok := r.db.scope[r.id]; ok {
		r.db.scope[r.id] = r.definition
	}

	return nil
}
