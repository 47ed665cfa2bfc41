package orm

import (
	"bytes"
	"reflect"
	"regexp"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
	isIndexName  = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString
)

// ModelBucket stores models of a single type under a common key prefix and
// keeps all declared secondary indexes in sync with every write.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db nftseries.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists, and
	// ErrNotFound otherwise.
	Has(db nftseries.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database, updating all indexes.
	Put(db nftseries.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db nftseries.KVStore, key []byte) error

	// PrefixScan returns an iterator over all entities whose primary key
	// starts with given prefix. A nil prefix iterates over the whole
	// bucket.
	PrefixScan(db nftseries.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error)

	// IndexScan returns an iterator over all entities indexed under given
	// value by the named index, ordered by their primary key.
	IndexScan(db nftseries.ReadOnlyKVStore, indexName string, value []byte, reverse bool) (ModelIterator, error)

	// IndexKeys returns the primary keys of all entities indexed under
	// given value by the named index.
	IndexKeys(db nftseries.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities are indexed using the provided indexer function. Index values do
// not need to be unique.
func WithIndex(name string, indexer Indexer) ModelBucketOption {
	return func(mb *modelBucket) {
		if !isIndexName(name) {
			panic("invalid index name: " + name)
		}
		if _, ok := mb.indexes[name]; ok {
			panic("duplicated index name: " + name)
		}
		mb.indexes[name] = newNativeIndex(mb.name, name, indexer)
	}
}

// NewModelBucket returns a ModelBucket instance that stores entities of the
// same type as the example model under the name prefix.
func NewModelBucket(name string, example Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("invalid bucket name: " + name)
	}
	tp := reflect.TypeOf(example)
	if tp.Kind() != reflect.Ptr {
		panic("model must be a pointer")
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]nativeIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]nativeIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	return append(append([]byte{}, mb.prefix...), key...)
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) One(db nftseries.ReadOnlyKVStore, key []byte, dest Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %T", mb.model, dest)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot get from the database")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	if err := dest.Unmarshal(raw); err != nil {
		return errors.Wrapf(err, "cannot unmarshal %s", mb.model.Name())
	}
	return nil
}

func (mb *modelBucket) Has(db nftseries.ReadOnlyKVStore, key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(err, "cannot check the database")
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model.Name())
	}
	return nil
}

func (mb *modelBucket) Put(db nftseries.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	var prev Model
	if len(mb.indexes) > 0 {
		prev = mb.newModel()
		switch err := mb.One(db, key, prev); {
		case err == nil:
		case errors.ErrNotFound.Is(err):
			prev = nil
		default:
			return err
		}
	}

	raw, err := m.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal")
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	for name, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "cannot update %q index", name)
		}
	}
	return nil
}

func (mb *modelBucket) Delete(db nftseries.KVStore, key []byte) error {
	prev := mb.newModel()
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(err, "cannot delete from the database")
	}
	for name, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %q index", name)
		}
	}
	return nil
}

func (mb *modelBucket) PrefixScan(db nftseries.ReadOnlyKVStore, prefix []byte, reverse bool) (ModelIterator, error) {
	start, end := prefixRange(mb.dbKey(prefix))
	var (
		it  nftseries.Iterator
		err error
	)
	if reverse {
		it, err = db.ReverseIterator(start, end)
	} else {
		it, err = db.Iterator(start, end)
	}
	if err != nil {
		return nil, errors.Wrap(err, "cannot create iterator")
	}
	return &modelIterator{it: it, prefix: mb.prefix}, nil
}

func (mb *modelBucket) index(name string) (nativeIndex, error) {
	idx, ok := mb.indexes[name]
	if !ok {
		return nativeIndex{}, errors.Wrapf(ErrInvalidIndex, "%q not declared for %s bucket", name, mb.name)
	}
	return idx, nil
}

func (mb *modelBucket) IndexKeys(db nftseries.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	return idx.keys(db, value, false)
}

func (mb *modelBucket) IndexScan(db nftseries.ReadOnlyKVStore, indexName string, value []byte, reverse bool) (ModelIterator, error) {
	idx, err := mb.index(indexName)
	if err != nil {
		return nil, err
	}
	keys, err := idx.keys(db, value, reverse)
	if err != nil {
		return nil, err
	}
	return &indexIterator{db: db, bucket: mb, keys: keys}, nil
}

// modelIterator loads models from a primary key range.
type modelIterator struct {
	it     nftseries.Iterator
	prefix []byte
}

func (m *modelIterator) LoadNext(dest Model) ([]byte, error) {
	key, value, err := m.it.Next()
	if err != nil {
		return nil, err
	}
	if err := dest.Unmarshal(value); err != nil {
		return nil, errors.Wrapf(err, "cannot unmarshal %T", dest)
	}
	return append([]byte{}, bytes.TrimPrefix(key, m.prefix)...), nil
}

func (m *modelIterator) Release() {
	m.it.Release()
}

// indexIterator loads models referenced by an index, one by one.
type indexIterator struct {
	db     nftseries.ReadOnlyKVStore
	bucket *modelBucket
	keys   [][]byte
}

func (i *indexIterator) LoadNext(dest Model) ([]byte, error) {
	if len(i.keys) == 0 {
		return nil, errors.ErrIteratorDone
	}
	key := i.keys[0]
	i.keys = i.keys[1:]
	if err := i.bucket.One(i.db, key, dest); err != nil {
		return nil, errors.Wrap(err, "index points to a missing entity")
	}
	return key, nil
}

func (i *indexIterator) Release() {
	i.keys = nil
}
