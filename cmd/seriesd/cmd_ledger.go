package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"

	"github.com/iov-one/nftseries"
	"github.com/iov-one/nftseries/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new ledger from a genesis file.

The genesis declares the ledger id and the application state: the ledger
configuration under "conf" and optional role holders under "series". This
command fails if the ledger was already initialized.
`)
		fl.PrintDefaults()
	}
	var (
		configFl  = configFlag(fl)
		genesisFl = fl.String("genesis", "genesis.json", "Path to the genesis file.")
	)
	fl.Parse(args)

	conf, err := loadConfig(*configFl)
	if err != nil {
		return err
	}
	gen, err := app.LoadGenesis(*genesisFl)
	if err != nil {
		return err
	}
	l, err := openLedger(conf)
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.InitGenesis(context.Background(), gen); err != nil {
		return fmt.Errorf("cannot initialize: %s", err)
	}
	_, err = fmt.Fprintf(output, "ledger %s initialized\n", gen.LedgerID)
	return err
}

func cmdExec(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Execute operations read from standard input.

Input is a JSON envelope or a list of envelopes:

  {"caller": "alice.near", "deposit": "1.5", "path": "mint/mint", "msg": {...}}

An envelope without a caller is executed as the configured caller. Each
envelope is applied fully or not at all and one response is written for
each of them, in the same order.
`)
		fl.PrintDefaults()
	}
	var (
		configFl = configFlag(fl)
	)
	fl.Parse(args)

	conf, err := loadConfig(*configFl)
	if err != nil {
		return err
	}
	envelopes, err := readEnvelopes(input)
	if err != nil {
		return err
	}

	codec := app.Messages()
	calls := make([]app.Call, 0, len(envelopes))
	for i, e := range envelopes {
		if e.Caller == "" {
			e.Caller = nftseries.AccountID(conf.GetString("caller"))
		}
		c, err := codec.Call(e)
		if err != nil {
			return fmt.Errorf("envelope %d: %s", i, err)
		}
		calls = append(calls, c)
	}

	l, err := openLedger(conf)
	if err != nil {
		return err
	}
	defer l.Close()

	resps, err := l.Exec(context.Background(), calls...)
	if err != nil {
		return fmt.Errorf("cannot execute: %s", err)
	}
	return writeJSON(output, resps)
}

// readEnvelopes decodes a single envelope or a list of them.
func readEnvelopes(input io.Reader) ([]app.Envelope, error) {
	raw, err := ioutil.ReadAll(bufio.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("cannot read input: %s", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("no envelope given")
	}
	var envelopes []app.Envelope
	if raw[0] == '[' {
		err = json.Unmarshal(raw, &envelopes)
	} else {
		envelopes = make([]app.Envelope, 1)
		err = json.Unmarshal(raw, &envelopes[0])
	}
	if err != nil {
		return nil, fmt.Errorf("cannot decode envelope: %s", err)
	}
	return envelopes, nil
}

func cmdQuery(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Query the ledger state.

For example, to list tokens of an account:

  seriesd query -path /tokens -data '{"owner_id": "alice.near", "limit": 10}'
`)
		fl.PrintDefaults()
	}
	var (
		configFl = configFlag(fl)
		pathFl   = fl.String("path", "/supply", "Query path.")
		dataFl   = fl.String("data", "", "JSON encoded query request.")
	)
	fl.Parse(args)

	conf, err := loadConfig(*configFl)
	if err != nil {
		return err
	}
	l, err := openLedger(conf)
	if err != nil {
		return err
	}
	defer l.Close()

	res, err := l.Query(*pathFl, []byte(*dataFl))
	if err != nil {
		return fmt.Errorf("cannot query: %s", err)
	}
	return writeJSON(output, res)
}

func writeJSON(output io.Writer, v interface{}) error {
	enc := json.NewEncoder(output)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("cannot encode: %s", err)
	}
	return nil
}
