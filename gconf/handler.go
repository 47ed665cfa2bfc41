package gconf

import (
	"context"
	"reflect"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
)

// OwnedConfig is a configuration with an owner. A configuration update
// message must be sent by the owner in order to be authorized to apply the
// change.
type OwnedConfig interface {
	Configuration
	GetOwner() nftseries.AccountID
}

// UpdateConfigurationHandler processes a configuration patch message. The
// message must have a "Patch" field of the same type as the configuration.
// All non zero fields of the patch overwrite the stored configuration.
type UpdateConfigurationHandler struct {
	pkg string
	// We require this type to load the data.
	config OwnedConfig
}

var _ nftseries.Handler = (*UpdateConfigurationHandler)(nil)

// NewUpdateConfigurationHandler returns a message handler that process
// configuration patch message of given package.
func NewUpdateConfigurationHandler(pkg string, config OwnedConfig) UpdateConfigurationHandler {
	return UpdateConfigurationHandler{
		pkg:    pkg,
		config: config,
	}
}

// Deliver implements nftseries.Handler.
func (h UpdateConfigurationHandler) Deliver(ctx context.Context, db nftseries.KVStore, msg nftseries.Msg) (*nftseries.Result, error) {
	config := reflect.New(reflect.TypeOf(h.config).Elem()).Interface().(OwnedConfig)
	if err := Load(db, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "load current configuration")
	}

	caller, ok := nftseries.GetCaller(ctx)
	if !ok || caller != config.GetOwner() {
		return nil, errors.Wrap(errors.ErrUnauthorized, "only the configuration owner can update it")
	}

	if err := msg.Validate(); err != nil {
		return nil, err
	}
	payload, err := patchPayload(msg)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get message payload")
	}
	if err := patch(config, payload); err != nil {
		return nil, errors.Wrap(err, "cannot patch config with message payload")
	}
	if err := Save(db, h.pkg, config); err != nil {
		return nil, errors.Wrap(err, "cannot save updated config")
	}
	nftseries.GetLogger(ctx).Info("configuration updated", "package", h.pkg, "owner", config.GetOwner())
	return &nftseries.Result{Log: "configuration updated"}, nil
}

// patchPayload expects the message to have a "Patch" field of the same type
// as the configuration. Content of this field is extracted and returned.
func patchPayload(msg nftseries.Msg) (OwnedConfig, error) {
	pval := reflect.ValueOf(msg)
	if pval.Kind() != reflect.Ptr || pval.Elem().Kind() != reflect.Struct {
		return nil, errors.Wrapf(errors.ErrInput, "invalid message container value: %T", msg)
	}
	field := pval.Elem().FieldByName("Patch")
	if !field.IsValid() || field.Kind() != reflect.Ptr {
		return nil, errors.Wrap(errors.ErrMsg, `"Patch" field is required`)
	}
	if field.IsNil() {
		return nil, errors.Wrap(errors.ErrState, `"Patch" field is empty`)
	}
	payload, ok := field.Interface().(OwnedConfig)
	if !ok {
		return nil, errors.Wrap(errors.ErrInput, `"Patch" field is of a wrong type`)
	}
	return payload, nil
}

func patch(config OwnedConfig, payload OwnedConfig) error {
	if reflect.TypeOf(payload) != reflect.TypeOf(config) {
		return errors.Wrap(errors.ErrMsg, "config in message doesn't match store")
	}

	cval := reflect.ValueOf(config).Elem()
	pval := reflect.ValueOf(payload).Elem()
	for i := 0; i < cval.NumField(); i++ {
		got := pval.Field(i)
		// Zero values do not update the original configuration.
		if isZero(got) {
			continue
		}
		cval.Field(i).Set(got)
	}
	return nil
}

// isZero returns true if given value represents a zero value of a given type.
func isZero(val reflect.Value) bool {
	zero := reflect.Zero(val.Type()).Interface()
	return reflect.DeepEqual(val.Interface(), zero)
}
