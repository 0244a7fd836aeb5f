package recorddb_test

import (
	"github.com/brianvoe/gofakeit/v6"

	"github.com/recorddb/recorddb"
)

type Book struct {
	Title string
	Pages int
}

func testBook() Book {
	return Book{
		Title: gofakeit.BookTitle(),
		Pages: gofakeit.Number(50, 900),
	}
}

// testLibrary inserts one book per page count, in the given order.
func testLibrary(pages ...int) *recorddb.Database[Book, *recorddb.Record[Book]] {
	db := recorddb.New[Book]()

	for _, p := range pages {
		book := testBook()
		book.Pages = p
		db.Insert(book)
	}

	return db
}
