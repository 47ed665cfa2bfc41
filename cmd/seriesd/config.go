package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/iov-one/nftseries/app"
	"github.com/iov-one/nftseries/errors"
	"github.com/iov-one/nftseries/store/badgerdb"
	"github.com/spf13/viper"
	"github.com/tendermint/tendermint/libs/log"
)

// configFlag registers the flag selecting the configuration file. All
// ledger commands accept it.
func configFlag(fl *flag.FlagSet) *string {
	return fl.String("config", "", "Path to a YAML configuration file. Settings can also be provided with SERIESD_ prefixed environment variables, for example SERIESD_HOME.")
}

// loadConfig returns the process configuration. Values are taken from the
// environment first, then from the configuration file, then the defaults.
func loadConfig(path string) (*viper.Viper, error) {
	conf := viper.New()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	conf.SetDefault("home", filepath.Join(home, ".seriesd"))
	conf.SetDefault("log_level", "info")
	conf.SetDefault("in_memory", false)
	conf.SetDefault("caller", "")

	conf.SetEnvPrefix("seriesd")
	conf.AutomaticEnv()

	if path != "" {
		conf.SetConfigType("yaml")
		conf.SetConfigFile(path)
		if err := conf.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(errors.ErrInput, "cannot read configuration: %s", err)
		}
	}
	return conf, nil
}

// newLogger returns a logger writing to stderr, filtered by the configured
// level.
func newLogger(conf *viper.Viper) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	opt, err := log.AllowLevel(conf.GetString("log_level"))
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "log level: %s", err)
	}
	return log.NewFilter(logger, opt), nil
}

// openLedger opens the ledger store located in the configured home
// directory.
func openLedger(conf *viper.Viper) (*app.Ledger, error) {
	logger, err := newLogger(conf)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(conf.GetString("home"), "data")
	inMemory := conf.GetBool("in_memory")
	if !inMemory {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, errors.Wrapf(errors.ErrDatabase, "cannot create data directory: %s", err)
		}
	}
	db, err := badgerdb.Open(dir, inMemory, logger)
	if err != nil {
		return nil, err
	}
	return app.NewLedger(db, logger), nil
}
