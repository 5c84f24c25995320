package catalog

import (
	"github.com/liblend/library-ledger-go/library/core"
)

// defaultBooks is the catalog a fresh installation starts with.
func defaultBooks() []core.Book {
	return []core.Book{
		{ID: 1, ISBN: "978-0-13-468599-1", Title: "The Go Programming Language", Author: "Alan A. A. Donovan", Publisher: "Addison-Wesley", Category: "Computing", Price: 39.99, Stock: 5, Total: 10, PublishDate: "2015-10-26", Description: "The authoritative resource for writing clear, idiomatic Go"},
		{ID: 2, ISBN: "978-1-49-205611-0", Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", Publisher: "O'Reilly Media", Category: "Computing", Price: 44.99, Stock: 3, Total: 8, PublishDate: "2017-03-16", Description: "The big ideas behind reliable, scalable systems"},
		{ID: 3, ISBN: "978-0-13-235088-4", Title: "Clean Code", Author: "Robert C. Martin", Publisher: "Prentice Hall", Category: "Computing", Price: 37.99, Stock: 2, Total: 5, PublishDate: "2008-08-01", Description: "A handbook of agile software craftsmanship"},
		{ID: 4, ISBN: "978-0-14-118280-3", Title: "Crime and Punishment", Author: "Fyodor Dostoevsky", Publisher: "Penguin Classics", Category: "Fiction", Price: 12.00, Stock: 8, Total: 15, PublishDate: "2002-12-31", Description: "A classic of nineteenth-century literature"},
		{ID: 5, ISBN: "978-0-06-088328-7", Title: "One Hundred Years of Solitude", Author: "Gabriel Garcia Marquez", Publisher: "Harper Perennial", Category: "Fiction", Price: 16.99, Stock: 4, Total: 10, PublishDate: "2006-06-24", Description: "The landmark of magical realism"},
		{ID: 6, ISBN: "978-0-06-231609-7", Title: "Sapiens", Author: "Yuval Noah Harari", Publisher: "Harper", Category: "History", Price: 24.99, Stock: 6, Total: 12, PublishDate: "2015-02-10", Description: "A brief history of humankind"},
		{ID: 7, ISBN: "978-1-25-058512-6", Title: "Principles of Economics", Author: "N. Gregory Mankiw", Publisher: "Cengage Learning", Category: "Economics", Price: 89.99, Stock: 3, Total: 8, PublishDate: "2017-01-01", Description: "An introductory economics textbook"},
		{ID: 8, ISBN: "978-0-76-538203-5", Title: "The Three-Body Problem", Author: "Liu Cixin", Publisher: "Tor Books", Category: "Science Fiction", Price: 17.99, Stock: 7, Total: 20, PublishDate: "2014-11-11", Description: "A landmark of modern science fiction"},
	}
}
