// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/chain"
	"github.com/bitmark-inc/ledgerd/configuration"
	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/genesis"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/rpc"
	"github.com/bitmark-inc/ledgerd/submission"
	"github.com/bitmark-inc/ledgerd/util"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultKeyFile         = "rpc.key"
	defaultCertificateFile = "rpc.crt"

	defaultLevelDBDirectory = "data"
	defaultDatabaseSuffix   = ".leveldb"

	defaultLogDirectory = "log"
	defaultLogFile      = "ledgerd.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size

	defaultRPCClients  = 10
	defaultValidators  = 4
	defaultRequestRate = 100
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Directory string `gluamapper:"directory" json:"directory"`
	Name      string `gluamapper:"name" json:"name"`
	CacheSize int    `gluamapper:"cache_size" json:"cache_size"`
}

type AccountType struct {
	Address string `gluamapper:"address" json:"address"`
	Balance uint64 `gluamapper:"balance" json:"balance"`
}

type GenesisType struct {
	Accounts           []AccountType `gluamapper:"accounts" json:"accounts"`
	Validators         int           `gluamapper:"validators" json:"validators"`
	FrameworkDirectory string        `gluamapper:"framework_directory" json:"framework_directory"`
}

type Configuration struct {
	DataDirectory       string                 `gluamapper:"data_directory" json:"data_directory"`
	PidFile             string                 `gluamapper:"pidfile" json:"pidfile"`
	Chain               string                 `gluamapper:"chain" json:"chain"`
	Database            DatabaseType           `gluamapper:"database" json:"database"`
	PoolSize            int                    `gluamapper:"pool_size" json:"pool_size"`
	ExecutorConcurrency int                    `gluamapper:"executor_concurrency" json:"executor_concurrency"`
	Submission          submission.Config      `gluamapper:"submission" json:"submission"`
	Genesis             GenesisType            `gluamapper:"genesis" json:"genesis"`
	HttpsRPC            rpc.HTTPSConfiguration `gluamapper:"https_rpc" json:"https_rpc"`
	Logging             logger.Configuration   `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// absolute path to the main directory
	dataDirectory, _ := filepath.Split(configurationFileName)

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		PidFile:       "", // no PidFile by default
		Chain:         chain.Testing,

		Database: DatabaseType{
			Directory: defaultLevelDBDirectory,
			Name:      "", // chain name by default
		},

		Genesis: GenesisType{
			Validators: defaultValidators,
		},

		HttpsRPC: rpc.HTTPSConfiguration{
			MaximumConnections: defaultRPCClients,
			RequestRate:        defaultRequestRate,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    defaultLogLevels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	// abort if the chain name is not recognised
	options.Chain = strings.ToLower(options.Chain)
	if !chain.Valid(options.Chain) {
		return nil, fmt.Errorf("Chain: %q is not supported", options.Chain)
	}

	if "" == options.Database.Name {
		options.Database.Name = options.Chain + defaultDatabaseSuffix
	}

	// ensure absolute data directory
	if "" == options.DataDirectory || "~" == options.DataDirectory {
		return nil, fmt.Errorf("Path: %q is not a valid directory", options.DataDirectory)
	} else if "." == options.DataDirectory {
		options.DataDirectory = dataDirectory // same directory as the configuration file
	}
	options.DataDirectory = filepath.Clean(options.DataDirectory)

	// this directory must exist - i.e. must be created prior to running
	if fileInfo, err := os.Stat(options.DataDirectory); nil != err {
		return nil, err
	} else if !fileInfo.IsDir() {
		return nil, fmt.Errorf("Path: %q is not a directory", options.DataDirectory)
	}

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	mustBeAbsolute := []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	}
	for _, f := range mustBeAbsolute {
		*f = util.EnsureAbsolute(options.DataDirectory, *f)
	}

	// optional absolute paths i.e. blank or an absolute path
	optionalAbsolute := []*string{
		&options.PidFile,
		&options.HttpsRPC.Certificate,
		&options.HttpsRPC.PrivateKey,
		&options.Genesis.FrameworkDirectory,
	}
	for _, f := range optionalAbsolute {
		if "" != *f {
			*f = util.EnsureAbsolute(options.DataDirectory, *f)
		}
	}

	// fail if any of these are not simple file names i.e. must
	// not contain path seperator, then add the correct directory
	// prefix, file item is first and corresponding directory is
	// second (or nil if no prefix can be added)
	mustNotBePaths := [][2]*string{
		{&options.Database.Name, &options.Database.Directory},
		{&options.Logging.File, nil},
	}
	for _, f := range mustNotBePaths {
		switch filepath.Dir(*f[0]) {
		case "", ".":
			if nil != f[1] {
				*f[0] = util.EnsureAbsolute(*f[1], *f[0])
			}
		default:
			return nil, fmt.Errorf("Files: %q is not plain name", *f[0])
		}
	}

	// create directories if they do not already exist
	for _, d := range []*string{
		&options.Database.Directory,
		&options.Logging.Directory,
	} {
		if err := os.MkdirAll(*d, 0700); nil != err {
			return nil, err
		}
	}

	// done
	return options, nil
}

// genesis settings derived from the configuration
func (c *Configuration) genesisParameters() (genesis.Parameters, error) {
	parameters := genesis.DefaultParameters(c.Database.Name, chain.ID(c.Chain))
	parameters.CacheSize = c.Database.CacheSize
	parameters.ValidatorCount = c.Genesis.Validators

	for i, a := range c.Genesis.Accounts {
		address, err := ledger.AddressFromHex(a.Address)
		if nil != err {
			return genesis.Parameters{}, fmt.Errorf("genesis account[%d]: %q error: %w", i, a.Address, err)
		}
		parameters.Accounts = append(parameters.Accounts, engine.AccountBalance{
			Address: address,
			Balance: a.Balance,
		})
	}

	if "" != c.Genesis.FrameworkDirectory {
		bundle, err := engine.LoadBundle(c.Genesis.FrameworkDirectory)
		if nil != err {
			return genesis.Parameters{}, err
		}
		parameters.Framework = bundle
	}
	return parameters, nil
}
