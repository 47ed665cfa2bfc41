package orm

import (
	"bytes"

	"github.com/iov-one/nftseries/errors"
	"github.com/vmihailenco/msgpack/v4"
)

// MarshalModel serializes any struct using msgpack. Map keys are sorted so
// that the same state always produces the same bytes.
func MarshalModel(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf).SortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", v, err)
	}
	return buf.Bytes(), nil
}

// UnmarshalModel is the counterpart of MarshalModel.
func UnmarshalModel(raw []byte, v interface{}) error {
	if err := msgpack.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", v, err)
	}
	return nil
}
