package app

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/shopspring/decimal"
)

// Codec decodes JSON encoded messages by their path.
type Codec struct {
	types map[string]reflect.Type
}

// NewCodec returns a codec that knows given message types.
func NewCodec(msgs ...nftseries.Msg) *Codec {
	c := &Codec{types: make(map[string]reflect.Type, len(msgs))}
	for _, m := range msgs {
		c.Register(m)
	}
	return c
}

// Register adds a message type. The message must be a pointer, it panics
// if its path is already taken.
func (c *Codec) Register(msg nftseries.Msg) {
	t := reflect.TypeOf(msg)
	if t.Kind() != reflect.Ptr {
		panic(fmt.Sprintf("message %T must be a pointer", msg))
	}
	if _, ok := c.types[msg.Path()]; ok {
		panic(fmt.Sprintf("re-registering message: %s", msg.Path()))
	}
	c.types[msg.Path()] = t.Elem()
}

// Decode returns the message of given path decoded from raw.
func (c *Codec) Decode(path string, raw json.RawMessage) (nftseries.Msg, error) {
	t, ok := c.types[path]
	if !ok {
		return nil, errors.Wrapf(errors.ErrMsg, "unknown message path %q", path)
	}
	msg := reflect.New(t).Interface().(nftseries.Msg)
	if len(raw) == 0 {
		return msg, nil
	}
	if err := json.Unmarshal(raw, msg); err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot decode %s: %s", path, err)
	}
	return msg, nil
}

// Envelope is the JSON form of a Call.
type Envelope struct {
	Caller  nftseries.AccountID `json:"caller"`
	Deposit decimal.Decimal     `json:"deposit"`
	Path    string              `json:"path"`
	Msg     json.RawMessage     `json:"msg"`
}

// Call decodes the message carried by an envelope.
func (c *Codec) Call(e Envelope) (Call, error) {
	msg, err := c.Decode(e.Path, e.Msg)
	if err != nil {
		return Call{}, err
	}
	return Call{Caller: e.Caller, Deposit: e.Deposit, Msg: msg}, nil
}
