package store

import "github.com/taskforge-ai/taskforge/models"

// DocumentStore owns persistence of the canonical task document.
//
// Semantics are whole-document replace: Load returns the complete document
// and Save overwrites it atomically. There is no partial or streaming
// write, and no locking — callers are responsible for not overlapping
// writes to the same path (last writer wins).
type DocumentStore interface {
	// Load reads the document at path. It fails with an INVALID_DOCUMENT
	// error when the content is not an object containing a tasks array,
	// and a PERSISTENCE_ERROR for any read failure.
	Load(path string) (models.Document, error)

	// Save atomically overwrites the document at path with the complete
	// desired state.
	Save(path string, doc models.Document) error
}
