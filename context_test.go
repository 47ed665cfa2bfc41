package nftseries

import (
	"context"
	"io/ioutil"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/tendermint/tendermint/libs/log"
)

func TestContextCaller(t *testing.T) {
	ctx := context.Background()
	if _, ok := GetCaller(ctx); ok {
		t.Fatal("caller must not be set")
	}
	ctx = WithCaller(ctx, "alice.near")
	if c, ok := GetCaller(ctx); !ok || c != "alice.near" {
		t.Fatalf("unexpected caller: %q", c)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("caller must not be overwritten")
		}
	}()
	WithCaller(ctx, "mallory.near")
}

func TestContextDeposit(t *testing.T) {
	ctx := context.Background()
	if !GetDeposit(ctx).IsZero() {
		t.Fatal("default deposit must be zero")
	}
	ctx = WithDeposit(ctx, decimal.RequireFromString("1.5"))
	if got := GetDeposit(ctx).String(); got != "1.5" {
		t.Fatalf("unexpected deposit: %s", got)
	}
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	if GetLogger(ctx) != DefaultLogger {
		t.Fatal("default logger expected")
	}

	logger := log.NewTMLogger(log.NewSyncWriter(ioutil.Discard))
	ctx = WithLogger(ctx, logger)
	if GetLogger(ctx) != logger {
		t.Fatal("configured logger expected")
	}
	ctx = WithLogInfo(ctx, "module", "test")
	if GetLogger(ctx) == logger {
		t.Fatal("logger must be extended")
	}
}
