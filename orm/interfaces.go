package orm

import (
	"github.com/iov-one/nftseries"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	nftseries.Persistent
	nftseries.Validater
}

// ModelIterator allows to walk over a set of models stored in a bucket.
// Each LoadNext call loads the next model into given destination and returns
// its primary key. Once exhausted, errors.ErrIteratorDone is returned.
type ModelIterator interface {
	LoadNext(dest Model) (key []byte, err error)
	Release()
}

// Indexer calculates the secondary index value for a given model. Returning
// a nil value excludes the model from the index.
type Indexer func(Model) ([]byte, error)
