package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/iov-one/nftseries/crypto"
	"github.com/iov-one/nftseries/x/sigs"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key.

Without a seed, a random key is created. With a seed, the key is derived
from it following SLIP-0010 for the given path. When successful a new file
with binary content containing the private key is created. This command
fails if the private key file already exists.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("SERIESD_PRIV_KEY", os.Getenv("HOME")+"/.seriesd.priv.key"),
			"Path to the private key file. You can use SERIESD_PRIV_KEY environment variable to set it.")
		seedFl = fl.String("seed", "", "Hex encoded master seed to derive the key from.")
		pathFl = fl.String("path", crypto.DefaultDerivationPath, "Derivation path, used only with a seed.")
	)
	fl.Parse(args)

	if _, err := os.Stat(*keyPathFl); !os.IsNotExist(err) {
		// Do not allow to overwrite already existing private key. User
		// must manually delete it first to ensure we do not delete
		// such crucial data by an accident (bad command usage).
		return fmt.Errorf("private key file %q already exists, delete this file and try again", *keyPathFl)
	}

	var (
		key crypto.PrivateKey
		err error
	)
	if *seedFl == "" {
		key, err = crypto.GenPrivateKey()
	} else {
		seed, herr := hex.DecodeString(*seedFl)
		if herr != nil {
			return fmt.Errorf("invalid seed: %s", herr)
		}
		key, err = crypto.DerivePrivateKey(seed, *pathFl)
	}
	if err != nil {
		return fmt.Errorf("cannot create key: %s", err)
	}

	fd, err := os.OpenFile(*keyPathFl, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("cannot create private key file: %s", err)
	}
	defer fd.Close()

	if _, err := fd.Write(key); err != nil {
		return fmt.Errorf("cannot write private key: %s", err)
	}
	if err := fd.Close(); err != nil {
		return fmt.Errorf("cannot close private key file: %s", err)
	}
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print out the implicit account, the public key and the bech32 address
associated with your private key.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("SERIESD_PRIV_KEY", os.Getenv("HOME")+"/.seriesd.priv.key"),
			"Path to the private key file. You can use SERIESD_PRIV_KEY environment variable to set it.")
		hrpFl = fl.String("hrp", "series", "Human readable part of the bech32 address.")
	)
	fl.Parse(args)

	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	pub := key.PublicKey()
	addr, err := crypto.Bech32Address(*hrpFl, pub)
	if err != nil {
		return fmt.Errorf("cannot create address: %s", err)
	}
	_, err = fmt.Fprintf(output, "account:    %s\npublic key: %s\naddress:    %s\n",
		pub.Account(), crypto.EncodePublicKey(pub), addr)
	return err
}

func cmdSignNonce(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Sign a nonce and print out the proof that authorizes a single operation.

The nonce must be the next nonce of the account the operation acts as: the
current nonce, as returned by the /nonce query, plus one.
`)
		fl.PrintDefaults()
	}
	var (
		keyPathFl = fl.String("key", env("SERIESD_PRIV_KEY", os.Getenv("HOME")+"/.seriesd.priv.key"),
			"Path to the private key file. You can use SERIESD_PRIV_KEY environment variable to set it.")
		nonceFl = fl.Uint64("nonce", 1, "Nonce to sign.")
	)
	fl.Parse(args)

	if *nonceFl == 0 {
		flagDie("nonce must be greater than zero")
	}
	key, err := readKey(*keyPathFl)
	if err != nil {
		return err
	}
	proof := sigs.Proof{
		PublicKey: crypto.EncodePublicKey(key.PublicKey()),
		Signature: sigs.SignNonce(key, *nonceFl),
	}
	return writeJSON(output, proof)
}

func readKey(path string) (crypto.PrivateKey, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read private key file: %s", err)
	}
	if len(raw) != 64 {
		return nil, fmt.Errorf("invalid private key length: %d", len(raw))
	}
	return crypto.PrivateKey(raw), nil
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// flagDie terminates the program when a flag is invalid.
func flagDie(description string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, description, args...)
	fmt.Fprintln(os.Stderr)
	os.Exit(2)
}
