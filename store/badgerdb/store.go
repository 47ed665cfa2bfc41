package badgerdb

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"

	"github.com/dgraph-io/badger/v3"
	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/store"
	"github.com/tendermint/tendermint/libs/log"
)

// metaPrefix is reserved for the store own bookkeeping. Keys with this
// prefix are never returned by iterators.
var (
	metaPrefix = []byte{0x00, 0x00}
	commitKey  = append(append([]byte{}, metaPrefix...), []byte("commit")...)
)

// Store is a CommitKVStore persisted in a BadgerDB database.
//
// All operations are performed on a cache wrap of the store. Writing the
// cache applies all its changes in a single badger transaction, so a
// process crash never leaves a half applied operation behind.
type Store struct {
	db     *badger.DB
	logger log.Logger

	// hash is the running digest of all changes written since the last
	// commit.
	hash []byte
}

var _ nftseries.CommitKVStore = (*Store)(nil)

// Open returns a store that keeps its data in given directory. When
// inMemory is set, directory is ignored and nothing is persisted.
func Open(dir string, inMemory bool, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	logger = logger.With("module", "badgerdb")

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger})
	if inMemory {
		opts = opts.WithDir("").WithValueDir("").WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s := &Store{db: db, logger: logger}
	last, err := s.LatestVersion()
	if err != nil {
		db.Close()
		return nil, err
	}
	s.hash = last.Hash
	logger.Info("store opened", "dir", dir, "in_memory", inMemory, "version", last.Version)
	return s, nil
}

// Close implements CommitKVStore.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get implements ReadOnlyKVStore.
func (s *Store) Get(key []byte) ([]byte, error) {
	if key == nil {
		panic("nil key")
	}
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return value, nil
}

// Has implements ReadOnlyKVStore.
func (s *Store) Has(key []byte) (bool, error) {
	if key == nil {
		panic("nil key")
	}
	var found bool
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		switch err {
		case nil:
			found = true
			return nil
		case badger.ErrKeyNotFound:
			return nil
		default:
			return err
		}
	})
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return found, nil
}

// Iterator implements ReadOnlyKVStore.
func (s *Store) Iterator(start, end []byte) (nftseries.Iterator, error) {
	return s.newIterator(start, end, false), nil
}

// ReverseIterator implements ReadOnlyKVStore.
func (s *Store) ReverseIterator(start, end []byte) (nftseries.Iterator, error) {
	return s.newIterator(start, end, true), nil
}

// NewBatch returns a batch that applies all its operations in a single
// badger transaction.
func (s *Store) NewBatch() nftseries.Batch {
	return &batch{store: s}
}

// CacheWrap implements CommitKVStore.
func (s *Store) CacheWrap() nftseries.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Commit implements CommitKVStore.
func (s *Store) Commit() (nftseries.CommitID, error) {
	last, err := s.LatestVersion()
	if err != nil {
		return nftseries.CommitID{}, err
	}
	next := nftseries.CommitID{Version: last.Version + 1, Hash: s.hash}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(commitKey, encodeCommit(next))
	})
	if err != nil {
		return nftseries.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	s.logger.Debug("committed", "version", next.Version)
	return next, nil
}

// LatestVersion implements CommitKVStore.
func (s *Store) LatestVersion() (nftseries.CommitID, error) {
	raw, err := s.Get(commitKey)
	if err != nil || raw == nil {
		return nftseries.CommitID{}, err
	}
	return decodeCommit(raw)
}

func encodeCommit(c nftseries.CommitID) []byte {
	raw := make([]byte, 8, 8+len(c.Hash))
	binary.BigEndian.PutUint64(raw, uint64(c.Version))
	return append(raw, c.Hash...)
}

func decodeCommit(raw []byte) (nftseries.CommitID, error) {
	if len(raw) < 8 {
		return nftseries.CommitID{}, errors.Wrap(errors.ErrDatabase, "malformed commit info")
	}
	return nftseries.CommitID{
		Version: int64(binary.BigEndian.Uint64(raw[:8])),
		Hash:    raw[8:],
	}, nil
}

type batch struct {
	store *Store
	ops   []store.Op
}

func (b *batch) Set(key, value []byte) error {
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write applies all operations atomically and extends the running digest.
func (b *batch) Write() error {
	h := sha256.New()
	h.Write(b.store.hash)
	err := b.store.db.Update(func(txn *badger.Txn) error {
		for _, op := range b.ops {
			if bytes.HasPrefix(op.Key(), metaPrefix) {
				return errors.Wrapf(errors.ErrDatabase, "reserved key %X", op.Key())
			}
			if err := op.Apply(txnWriter{txn}); err != nil {
				return err
			}
			h.Write(op.Key())
			h.Write(op.Value())
		}
		return nil
	})
	if err != nil {
		if errors.ErrDatabase.Is(err) {
			return err
		}
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b.store.hash = h.Sum(nil)
	b.ops = nil
	return nil
}

type txnWriter struct {
	txn *badger.Txn
}

func (w txnWriter) Set(key, value []byte) error {
	return w.txn.Set(key, value)
}

func (w txnWriter) Delete(key []byte) error {
	return w.txn.Delete(key)
}
