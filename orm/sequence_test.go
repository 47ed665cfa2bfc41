package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/nftseries/seriestest/assert"
	"github.com/iov-one/nftseries/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("series", "id")

	latest, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), latest)

	first, err := s.NextVal(db)
	assert.Nil(t, err)
	second, err := s.NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), second)
	if bytes.Compare(first, EncodeUint64(second)) >= 0 {
		t.Fatal("sequence values must grow")
	}

	// Sequences with different names are independent.
	other, err := NewSequence("series", "other").NextInt(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), other)

	latest, err = s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(2), latest)
}
