package ledger

import "errors"

var ErrOutOfStock = errors.New("book is out of stock")
var ErrDuplicateActiveLoan = errors.New("user already has an active loan for this book")
var ErrRecordNotFound = errors.New("borrow record does not exist")
var ErrAlreadyReturned = errors.New("borrow record is already returned")
