package seriestest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/store/badgerdb"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db nftseries.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "seriestest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	s, err := badgerdb.Open(dbpath, false, nftseries.DefaultLogger)
	if err != nil {
		os.RemoveAll(dbpath)
		t.Fatalf("cannot open the store: %s", err)
	}
	return s, func() {
		s.Close()
		os.RemoveAll(dbpath)
	}
}
