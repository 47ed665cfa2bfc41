package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/orm"
	"github.com/iov-one/nftseries/seriestest/assert"
	"github.com/iov-one/nftseries/store"
)

type testConfig struct {
	Owner nftseries.AccountID `json:"owner" msgpack:"owner"`
	Limit uint32              `json:"limit" msgpack:"limit"`
	Name  string              `json:"name" msgpack:"name"`
}

func (c *testConfig) Marshal() ([]byte, error)      { return orm.MarshalModel(c) }
func (c *testConfig) Unmarshal(raw []byte) error    { return orm.UnmarshalModel(raw, c) }
func (c *testConfig) GetOwner() nftseries.AccountID { return c.Owner }

func (c *testConfig) Validate() error {
	if c.Limit == 0 {
		return errors.Wrap(errors.ErrModel, "limit required")
	}
	return c.Owner.Validate()
}

type updateMsg struct {
	Patch *testConfig
}

func (*updateMsg) Path() string    { return "test/update_configuration" }
func (*updateMsg) Validate() error { return nil }

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()

	var conf testConfig
	assert.IsErr(t, errors.ErrNotFound, Load(db, "test", &conf))
	assert.IsErr(t, errors.ErrModel, Save(db, "test", &testConfig{Owner: "gateway.near"}))

	assert.Nil(t, Save(db, "test", &testConfig{Owner: "gateway.near", Limit: 50}))
	assert.Nil(t, Load(db, "test", &conf))
	assert.Equal(t, testConfig{Owner: "gateway.near", Limit: 50}, conf)
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	opts := nftseries.Options{
		"conf": json.RawMessage(`{"test": {"owner": "gateway.near", "limit": 10}}`),
	}

	assert.IsErr(t, errors.ErrNotFound, InitConfig(ctx, db, opts, "other", &testConfig{}))
	assert.Nil(t, InitConfig(ctx, db, opts, "test", &testConfig{}))
	assert.IsErr(t, errors.ErrDuplicate, InitConfig(ctx, db, opts, "test", &testConfig{}))

	var conf testConfig
	assert.Nil(t, Load(db, "test", &conf))
	assert.Equal(t, uint32(10), conf.Limit)
}

func TestUpdateConfiguration(t *testing.T) {
	cases := map[string]struct {
		caller  nftseries.AccountID
		patch   *testConfig
		wantErr *errors.Error
		want    testConfig
	}{
		"owner patches a single field": {
			caller: "gateway.near",
			patch:  &testConfig{Limit: 20},
			want:   testConfig{Owner: "gateway.near", Limit: 20, Name: "badges"},
		},
		"owner hands over ownership": {
			caller: "gateway.near",
			patch:  &testConfig{Owner: "dao.near"},
			want:   testConfig{Owner: "dao.near", Limit: 50, Name: "badges"},
		},
		"not an owner": {
			caller:  "mallory.near",
			patch:   &testConfig{Limit: 1},
			wantErr: errors.ErrUnauthorized,
		},
		"empty patch": {
			caller:  "gateway.near",
			patch:   nil,
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			assert.Nil(t, Save(db, "test", &testConfig{Owner: "gateway.near", Limit: 50, Name: "badges"}))

			h := NewUpdateConfigurationHandler("test", &testConfig{})
			ctx := nftseries.WithCaller(context.Background(), tc.caller)
			_, err := h.Deliver(ctx, db, &updateMsg{Patch: tc.patch})
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			var conf testConfig
			assert.Nil(t, Load(db, "test", &conf))
			assert.Equal(t, tc.want, conf)
		})
	}
}
