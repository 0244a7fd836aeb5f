package recorddb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/recorddb/recorddb"
)

func TestRecord_Get(t *testing.T) {
	t.Parallel()

	db := recorddb.New[Book]()
	book := testBook()
	rec := db.Insert(book)

	assert.Equal(t, book.Title, rec.Get("Title"))
	assert.Equal(t, book.Pages, rec.Get("Pages"))
	assert.Equal(t, rec.ID(), rec.Get("ID"), "the identity column yields the identity")

	assert.Panics(t, func() {
		rec.Get("Author")
	})
}

func TestRecord_Set(t *testing.T) {
	t.Parallel()

	t.Run("edits stay local until save", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)

		rec.Set("Pages", 99)
		assert.Equal(t, 99, rec.Get("Pages"))

		stored, _ := db.Find(1)
		assert.Equal(t, 10, stored.Get("Pages"), "unsaved edits must not leak into storage")
	})

	t.Run("identity is read only", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)

		assert.Panics(t, func() {
			rec.Set("ID", 2)
		})
	})

	t.Run("unknown column", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)

		assert.Panics(t, func() {
			rec.Set("Author", "unknown")
		})
	})
}

func TestRecord_Save(t *testing.T) {
	t.Parallel()

	t.Run("save", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)

		rec.Set("Pages", 99)
		err := rec.Save()
		assert.NoError(t, err)

		stored, _ := db.Find(1)
		assert.Equal(t, 99, stored.Get("Pages"))
	})

	t.Run("refreshes a live scope entry", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)
		db.Where("Pages", 10)

		rec.Set("Pages", 99)
		err := rec.Save()
		assert.NoError(t, err)

		recs := db.Get()
		assert.Len(t, recs, 1)
		assert.Equal(t, 99, recs[0].Get("Pages"), "the scope must not serve the old definition")
	})

	t.Run("record was deleted", func(t *testing.T) {
		t.Parallel()

		db := testLibrary(10)
		rec, _ := db.Find(1)

		db.Where("Pages", 10).Delete()

		err := rec.Save()
		assert.ErrorIs(t, err, recorddb.ErrNotFound)
	})
}
