//nolint
package store

import "github.com/iov-one/nftseries"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = nftseries.ReadOnlyKVStore
type SetDeleter = nftseries.SetDeleter
type KVStore = nftseries.KVStore
type Batch = nftseries.Batch
type Iterator = nftseries.Iterator
type CacheableKVStore = nftseries.CacheableKVStore
type KVCacheWrap = nftseries.KVCacheWrap
type CommitKVStore = nftseries.CommitKVStore
type CommitID = nftseries.CommitID
