package shell

import (
	"errors"

	jsoniter "github.com/json-iterator/go"

	"github.com/liblend/library-ledger-go/recordstore"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrMappingToDocumentFailed is returned when a collection cannot be serialized.
var ErrMappingToDocumentFailed = errors.New("mapping collection to document failed")

// ErrMappingFromDocumentFailed is returned when a stored payload cannot be deserialized.
var ErrMappingFromDocumentFailed = errors.New("mapping document to collection failed")

// DocumentFrom serializes a collection into a store document under the given key.
func DocumentFrom(key string, collection any) (recordstore.Document, error) {
	payloadJSON, err := json.Marshal(collection)
	if err != nil {
		return recordstore.Document{}, errors.Join(ErrMappingToDocumentFailed, err)
	}

	doc, err := recordstore.BuildDocument(key, payloadJSON)
	if err != nil {
		return recordstore.Document{}, errors.Join(ErrMappingToDocumentFailed, err)
	}

	return doc, nil
}

// CollectionFrom deserializes a stored document into the given target collection.
func CollectionFrom(doc recordstore.Document, target any) error {
	if err := json.Unmarshal(doc.PayloadJSON, target); err != nil {
		return errors.Join(ErrMappingFromDocumentFailed, err)
	}

	return nil
}
