package recorddb

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrNotFound is returned when the requested identity or source holds no
// record. It is a soft miss: callers are expected to check for it before using
// the model.
var ErrNotFound = errors.New("not found")

// ID is the identity a definition is stored under. IDs are strictly positive
// and assigned from a sequence that only ever advances; they are not reused,
// not even after Truncate.
type ID int64

// Factory builds a Model from a stored definition and the identity it is kept
// under. The Database never inspects the Model, it only constructs it, so any
// type works. Failures inside a factory are not caught and propagate to the
// caller of the operation that materialized the model.
type Factory[D, M any] func(definition D, id ID) M

// Option takes in the database configuration to set optional properties.
type Option func(*dbConfig)

type dbConfig struct {
	idColumn string
}

// WithIDColumn sets the column name that addresses a record's identity in
// Where and Update. The identity is not a field of the definition itself, so
// this is purely a routing name. If not set, "ID" is assumed. A definition
// field of the same name is shadowed by the identity.
func WithIDColumn(name string) Option {
	return func(config *dbConfig) {
		config.idColumn = name
	}
}

// NewDatabase returns a Database for definitions of type D, bound to the
// factory that turns a stored definition and its identity into a model M.
// For the built-in Record model, use New instead.
func NewDatabase[D, M any](factory Factory[D, M], opts ...Option) *Database[D, M] {
	if factory == nil {
		panic("recorddb: factory must not be nil")
	}

	db := &Database[D, M]{
		records: make(map[ID]D),
		scope:   make(map[ID]D),
		seq:     0,
		factory: factory,
		dbConfig: dbConfig{
			idColumn: "ID",
		},
	}

	for _, opt := range opts {
		opt(&db.dbConfig)
	}

	return db
}

// Database is an in-memory store of definitions of type D, queried through a
// chainable scope and materialized as models of type M.
//
// All state is owned by the instance; multiple Databases are fully
// independent. Access is single-writer and not synchronized: callers using a
// Database from multiple goroutines must serialize externally.
type Database[D, M any] struct {
	// records is the source of truth, keyed by identity.
	records map[ID]D

	// scope holds the result set of the most recent filter chain. It is
	// derived state: entries reference records as they were when the scope
	// was built and go stale if records is mutated underneath.
	scope map[ID]D

	seq     ID
	factory Factory[D, M]

	dbConfig
}

// Insert stores the definition under the next identity and returns its model.
func (db *Database[D, M]) Insert(definition D) M { //nolint:ireturn // valid use of generics
	db.seq++
	db.records[db.seq] = definition

	return db.factory(definition, db.seq)
}

// Find returns the model stored under id, or ErrNotFound.
func (db *Database[D, M]) Find(id ID) (M, error) { //nolint:ireturn // valid use of generics
	if definition, ok := db.records[id]; ok {
		return db.factory(definition, id), nil
	}

	return *new(M), ErrNotFound
}

// All returns a model for every stored record, in ascending identity order.
func (db *Database[D, M]) All() []M {
	models := make([]M, 0, len(db.records))

	for _, id := range sortedIDs(db.records) {
		models = append(models, db.factory(db.records[id], id))
	}

	return models
}

// Count returns the size of the query scope when scoped is true, else the
// number of stored records.
func (db *Database[D, M]) Count(scoped bool) int {
	if scoped {
		return len(db.scope)
	}

	return len(db.records)
}

// Where selects every record whose column strictly equals value and puts the
// matches into the query scope. Strict means reflect.DeepEqual: a value of a
// different type never matches, even if numerically equal.
//
// Filtering on the identity column is a direct lookup and replaces the scope.
// Any other column triggers a full scan of the records whose matches are ADDED
// to whatever scope is already there: chained calls on different columns union
// their result sets, they do not intersect. Callers wanting AND semantics must
// narrow the retrieved models themselves.
//
// Where panics if the definition has no field named column.
func (db *Database[D, M]) Where(column string, value any) *Database[D, M] {
	if column == db.idColumn {
		clear(db.scope)

		id := asID(value)
		if definition, ok := db.records[id]; ok {
			db.scope[id] = definition
		}

		return db
	}

	for id, definition := range db.records {
		if reflect.DeepEqual(fieldValue(definition, column), value) {
			db.scope[id] = definition
		}
	}

	return db
}

// Get materializes a model for every entry in the query scope, in ascending
// identity order, and clears the scope.
func (db *Database[D, M]) Get() []M {
	models := make([]M, 0, len(db.scope))

	for _, id := range sortedIDs(db.scope) {
		models = append(models, db.factory(db.scope[id], id))
	}

	clear(db.scope)

	return models
}

// First returns the model with the lowest identity in the query scope, or in
// the whole record collection if fromScope is false. The scope is cleared
// either way. Returns ErrNotFound if the chosen source is empty.
func (db *Database[D, M]) First(fromScope bool) (M, error) { //nolint:ireturn // valid use of generics
	source := db.records
	if fromScope {
		source = db.scope
	}

	ids := sortedIDs(source)
	if len(ids) == 0 {
		clear(db.scope)

		return *new(M), ErrNotFound
	}

	model := db.factory(source[ids[0]], ids[0])
	clear(db.scope)

	return model, nil
}

// Last returns the model stored under the current value of the identity
// sequence, looked up in the query scope, or in the whole record collection if
// fromScope is false. The scope is cleared either way. If the most recently
// assigned identity is absent from the source, because it was deleted or never
// selected, Last returns ErrNotFound even when other records remain.
func (db *Database[D, M]) Last(fromScope bool) (M, error) { //nolint:ireturn // valid use of generics
	source := db.records
	if fromScope {
		source = db.scope
	}

	definition, ok := source[db.seq]
	clear(db.scope)

	if !ok {
		return *new(M), ErrNotFound
	}

	return db.factory(definition, db.seq), nil
}

// Update sets column to value on every record in the query scope, both on the
// scope entry and on the backing record. The scope is kept, so several updates
// can chain before a final Get.
//
// The identity column is not a legal update target. A scope entry whose
// identity no longer exists in the record collection is a contract violation
// and panics; see Delete and Truncate, which clear the scope for that reason.
func (db *Database[D, M]) Update(column string, value any) *Database[D, M] {
	if column == db.idColumn {
		panic("recorddb: column is the identity and cannot be updated: " + column)
	}

	for _, id := range sortedIDs(db.scope) {
		definition, ok := db.records[id]
		if !ok {
			panic(fmt.Sprintf("recorddb: stale query scope: record %d does not exist anymore", id))
		}

		setField(&definition, column, value)

		db.records[id] = definition
		db.scope[id] = definition
	}

	return db
}

// Delete removes every record whose identity is in the query scope and returns
// the number actually removed, which can be less than the scope size if the
// scope went stale. The scope is cleared unconditionally.
func (db *Database[D, M]) Delete() int {
	removed := 0

	for id := range db.scope {
		if _, ok := db.records[id]; ok {
			delete(db.records, id)
			removed++
		}
	}

	clear(db.scope)

	return removed
}

// Truncate removes all records and clears the query scope. The identity
// sequence is NOT reset: clearing data is not the same as resetting identity,
// and later inserts continue with greater IDs than any assigned before.
func (db *Database[D, M]) Truncate() {
	clear(db.records)
	clear(db.scope)
}

func sortedIDs[D any](source map[ID]D) []ID {
	ids := make([]ID, 0, len(source))
	for id := range source {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	return ids
}

const (
	panicNoField        = "recorddb: record does not have the field with name: "
	panicIDNotSupported = "recorddb: type of identity value is not supported: "
)

func fieldValue[D any](definition D, column string) any {
	field := reflect.ValueOf(definition).FieldByName(column)
	if !field.IsValid() {
		panic(panicNoField + column)
	}

	return field.Interface()
}

func setField[D any](definition *D, column string, value any) {
	field := reflect.ValueOf(definition).Elem().FieldByName(column)
	if !field.IsValid() {
		panic(panicNoField + column)
	}

	field.Set(reflect.ValueOf(value).Convert(field.Type()))
}

func asID(value any) ID {
	if id, ok := value.(ID); ok {
		return id
	}

	val := reflect.ValueOf(value)

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ID(val.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ID(val.Uint())
	default:
		panic(panicIDNotSupported + val.Kind().String())
	}
}
