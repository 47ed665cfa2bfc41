package nftseries

import (
	"context"
	"encoding/json"
	"reflect"
	"regexp"

	"github.com/iov-one/nftseries/errors"
)

// Msg is a request to perform a single ledger operation.
type Msg interface {
	// Path returns the route of the handler that processes this message.
	Path() string
	// Validate performs all checks that do not require the store.
	Validate() error
}

// Handler processes messages of one or more paths. All changes are written
// to the given store, which the caller discards if an error is returned.
type Handler interface {
	Deliver(ctx context.Context, db KVStore, msg Msg) (*Result, error)
}

// HandlerFunc is an adapter to use ordinary functions as handlers.
type HandlerFunc func(ctx context.Context, db KVStore, msg Msg) (*Result, error)

// Deliver implements Handler.
func (fn HandlerFunc) Deliver(ctx context.Context, db KVStore, msg Msg) (*Result, error) {
	return fn(ctx, db, msg)
}

// Result is returned by a successfully processed operation.
type Result struct {
	// Data is the operation specific response, for example the id of a
	// created series.
	Data []byte
	// Log is a human readable summary.
	Log string
	// Events lists one record per mutating operation.
	Events []Event
}

// Registry is an interface to register your handler,
// the setup side of a Router
type Registry interface {
	Handle(path string, h Handler)
}

var isPath = regexp.MustCompile(`^[a-z0-9_]+/[a-z0-9_]+$`).MatchString

// ValidatePath returns an error if given path is not in the <module>/<op>
// form.
func ValidatePath(path string) error {
	if !isPath(path) {
		return errors.Wrapf(errors.ErrInput, "invalid path %q", path)
	}
	return nil
}

// LoadMsg extracts the message represented by given value into the
// destination, which must be a pointer to a message type. ErrType is returned
// if the message cannot be represented as the destination type.
func LoadMsg(msg Msg, dest interface{}) error {
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "message")
	}
	dv := reflect.ValueOf(dest)
	if dv.Kind() != reflect.Ptr || dv.IsNil() {
		return errors.Wrap(errors.ErrType, "destination must be a non nil pointer")
	}
	mv := reflect.ValueOf(msg)
	switch {
	case mv.Type().AssignableTo(dv.Elem().Type()):
		dv.Elem().Set(mv)
	case mv.Kind() == reflect.Ptr && mv.Elem().Type().AssignableTo(dv.Elem().Type()):
		dv.Elem().Set(mv.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", msg, dest)
	}
	return nil
}

// Options are the genesis options
// Each extension can look up it's key and parse the json as desired
type Options map[string]json.RawMessage

// ReadOptions reads the values stored under a given key,
// and parses the json into the given obj.
// Returns an error if it cannot parse.
// Noop and no error if key is missing
func (o Options) ReadOptions(key string, obj interface{}) error {
	msg := o[key]
	if len(msg) == 0 {
		return nil
	}
	if err := json.Unmarshal(msg, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot parse %q options: %s", key, err)
	}
	return nil
}

// Initializer implementations are used to initialize
// extensions from genesis file contents
type Initializer interface {
	FromGenesis(ctx context.Context, opts Options, db KVStore) error
}

// ChainInitializers lets you initialize many extensions with one function
func ChainInitializers(inits ...Initializer) Initializer {
	return chainInitializer{inits}
}

type chainInitializer struct {
	inits []Initializer
}

// FromGenesis passes the options to all initializers in order, stopping at
// the first error.
func (c chainInitializer) FromGenesis(ctx context.Context, opts Options, db KVStore) error {
	for _, i := range c.inits {
		if err := i.FromGenesis(ctx, opts, db); err != nil {
			return err
		}
	}
	return nil
}
