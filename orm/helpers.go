package orm

import (
	"encoding/binary"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/nftseries/errors"
)

// EncodeUint64 returns the big endian representation of given value. Keys
// built this way sort in numeric order.
func EncodeUint64(val uint64) []byte {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}

// DecodeUint64 is the counterpart of EncodeUint64. A nil value decodes to 0.
func DecodeUint64(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if len(bz) != 8 {
		return 0, errors.Wrap(errors.ErrInput, "invalid length (expect 8 bytes)")
	}
	return binary.BigEndian.Uint64(bz), nil
}

// CompositeKey joins all parts into a single key. Each part is prefixed with
// its varint encoded length, so no combination of parts can produce the
// same key as another one.
func CompositeKey(parts ...[]byte) []byte {
	var res []byte
	for _, p := range parts {
		res = append(res, proto.EncodeVarint(uint64(len(p)))...)
		res = append(res, p...)
	}
	return res
}

// SplitCompositeKey is the counterpart of CompositeKey.
func SplitCompositeKey(key []byte) ([][]byte, error) {
	var parts [][]byte
	for len(key) > 0 {
		size, n := proto.DecodeVarint(key)
		if n == 0 || uint64(len(key)-n) < size {
			return nil, errors.Wrap(errors.ErrInput, "malformed composite key")
		}
		key = key[n:]
		parts = append(parts, key[:size])
		key = key[size:]
	}
	return parts, nil
}

// prefixRange turns a prefix into (start, end) to create an iterator over
// all keys having that prefix.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	start := append([]byte{}, prefix...)
	end := append([]byte{}, prefix...)
	// Drop trailing 0xFF bytes and increment the last remaining one.
	for len(end) > 0 {
		last := len(end) - 1
		if end[last] != 0xFF {
			end[last]++
			return start, end
		}
		end = end[:last]
	}
	// All bytes were 0xFF, there is no upper limit.
	return start, nil
}
