package recordstore

import (
	"encoding/json"
	"errors"
)

var ErrInvalidPayloadJSON = errors.New("payload json is not valid")

// Document is a DTO (data transfer object) used by the store to save
// collections and load them back.
//
// It is built on scalars to be completely agnostic of the implementation of
// the collections in the client code: the store never looks inside the
// payload, it only replaces it wholesale.
//
// While its properties are exported, it should only be constructed with the
// supplied factory method BuildDocument.
type Document struct {
	Key         string
	PayloadJSON []byte
}

// BuildDocument is a factory method for Document.
//
// It populates the Document with the given scalar input.
// Returns an error if the key is empty or payloadJSON is not valid JSON.
func BuildDocument(key string, payloadJSON []byte) (Document, error) {
	if key == "" {
		return Document{}, ErrEmptyKeySupplied
	}

	if !json.Valid(payloadJSON) {
		return Document{}, ErrInvalidPayloadJSON
	}

	return Document{
		Key:         key,
		PayloadJSON: payloadJSON,
	}, nil
}
