package catalog

import "errors"

var ErrBookNotFound = errors.New("book does not exist")
var ErrDuplicateISBN = errors.New("a book with this ISBN already exists")
var ErrStockUnderflow = errors.New("stock cannot drop below zero")
var ErrStockOverflow = errors.New("stock cannot exceed the total number of copies")
