package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iov-one/nftseries/app"
	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/seriestest"
)

// setupLedger writes a configuration and a genesis file into a fresh home
// directory and initializes the ledger. It returns the configuration path.
func setupLedger(t *testing.T) string {
	t.Helper()
	dir := tempDir(t)

	confPath := filepath.Join(dir, "config.yaml")
	conf := fmt.Sprintf("home: %s\nlog_level: error\ncaller: gateway.near\n", dir)
	if err := ioutil.WriteFile(confPath, []byte(conf), 0600); err != nil {
		t.Fatalf("cannot write configuration: %s", err)
	}

	genPath := filepath.Join(dir, "genesis.json")
	gen := fmt.Sprintf(`{
		"ledger_id": "seriesd-test",
		"app_state": {
			"conf": {"series": {"owner": "gateway.near", "owner_public_key": %q}}
		}
	}`, crypto.EncodePublicKey(seriestest.KeyFromSeed(1).PublicKey()))
	if err := ioutil.WriteFile(genPath, []byte(gen), 0600); err != nil {
		t.Fatalf("cannot write genesis: %s", err)
	}

	var out bytes.Buffer
	if err := cmdInit(nil, &out, []string{"-config", confPath, "-genesis", genPath}); err != nil {
		t.Fatalf("cannot initialize: %s", err)
	}
	if !strings.Contains(out.String(), "seriesd-test") {
		t.Fatalf("unexpected output: %q", out.String())
	}
	if err := cmdInit(nil, ioutil.Discard, []string{"-config", confPath, "-genesis", genPath}); err == nil {
		t.Fatal("second initialization must fail")
	}
	return confPath
}

func TestExecAndQuery(t *testing.T) {
	confPath := setupLedger(t)

	input := `[
		{"path": "series/create", "msg": {"series_type": 2, "metadata": {"title": "Gateway", "copies": 2}}},
		{"path": "mint/batch_mint", "msg": {"series_id": 1, "amount": 3, "receiver_id": "alice.near"}},
		{"path": "mint/batch_mint", "msg": {"series_id": 1, "amount": 2, "receiver_id": "alice.near"}}
	]`
	var out bytes.Buffer
	if err := cmdExec(strings.NewReader(input), &out, []string{"-config", confPath}); err != nil {
		t.Fatalf("cannot execute: %s", err)
	}
	var resps []app.Response
	if err := json.Unmarshal(out.Bytes(), &resps); err != nil {
		t.Fatalf("cannot decode responses: %s", err)
	}
	if len(resps) != 3 {
		t.Fatalf("want 3 responses, got %d", len(resps))
	}
	if resps[0].Code != 0 || string(resps[0].Data) != "1" {
		t.Fatalf("unexpected create response: %+v", resps[0])
	}
	if resps[1].Code != errors.ErrLimit.Code() {
		t.Fatalf("want limit error, got %+v", resps[1])
	}
	if resps[2].Code != 0 || len(resps[2].Events) != 1 {
		t.Fatalf("unexpected mint response: %+v", resps[2])
	}

	// Changes are persisted between runs.
	out.Reset()
	args := []string{"-config", confPath, "-path", "/supply", "-data", `{"owner_id": "alice.near"}`}
	if err := cmdQuery(nil, &out, args); err != nil {
		t.Fatalf("cannot query: %s", err)
	}
	if got := strings.TrimSpace(out.String()); got != "2" {
		t.Fatalf("want supply 2, got %s", got)
	}

	out.Reset()
	args = []string{"-config", confPath, "-path", "/tokens", "-data", `{"series_id": 1}`}
	if err := cmdQuery(nil, &out, args); err != nil {
		t.Fatalf("cannot query: %s", err)
	}
	var views []struct {
		TokenID string `json:"token_id"`
	}
	if err := json.Unmarshal(out.Bytes(), &views); err != nil {
		t.Fatalf("cannot decode tokens: %s", err)
	}
	if len(views) != 2 || views[0].TokenID != "1:1" || views[1].TokenID != "1:2" {
		t.Fatalf("unexpected tokens: %+v", views)
	}
}

func TestExecRejectsUnknownPath(t *testing.T) {
	confPath := setupLedger(t)
	input := `{"path": "mint/everything", "msg": {}}`
	if err := cmdExec(strings.NewReader(input), ioutil.Discard, []string{"-config", confPath}); err == nil {
		t.Fatal("unknown path must fail")
	}
	if err := cmdExec(strings.NewReader(""), ioutil.Discard, []string{"-config", confPath}); err == nil {
		t.Fatal("empty input must fail")
	}
}

func TestReadEnvelopes(t *testing.T) {
	one, err := readEnvelopes(strings.NewReader(` {"caller": "bob.near", "deposit": "2", "path": "burn/burn", "msg": {}}`))
	if err != nil {
		t.Fatalf("cannot read: %s", err)
	}
	if len(one) != 1 || one[0].Caller != "bob.near" || one[0].Deposit.String() != "2" {
		t.Fatalf("unexpected envelopes: %+v", one)
	}

	many, err := readEnvelopes(strings.NewReader(`[{"path": "burn/burn"}, {"path": "transfer/transfer"}]`))
	if err != nil {
		t.Fatalf("cannot read: %s", err)
	}
	if len(many) != 2 || many[1].Path != "transfer/transfer" {
		t.Fatalf("unexpected envelopes: %+v", many)
	}

	if _, err := readEnvelopes(strings.NewReader(`{"path": `)); err == nil {
		t.Fatal("malformed input must fail")
	}
}
