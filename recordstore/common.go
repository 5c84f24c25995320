package recordstore

import (
	"errors"
)

var ErrEmptyKeySupplied = errors.New("empty document key supplied")
var ErrDocumentNotFound = errors.New("no document stored for this key")
var ErrNilDatabaseConnection = errors.New("nil database connection supplied")
var ErrEmptyBucketNameSupplied = errors.New("empty bucketName supplied")
var ErrEmptyTableNameSupplied = errors.New("empty tableName supplied")
