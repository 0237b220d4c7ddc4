// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/engine"
	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/stateview"
	"github.com/bitmark-inc/ledgerd/storage"
)

// Parameters - where the database lives and what the chain starts with
type Parameters struct {
	Path           string
	CacheSize      int
	ChainID        uint8
	Accounts       []engine.AccountBalance
	ValidatorCount int
	ValidatorStake uint64
	Framework      engine.Bundle
	Configuration  engine.GenesisConfiguration
	GasSchedule    engine.GasSchedule
}

// DefaultParameters - a test chain with four validators and the built
// in framework
func DefaultParameters(path string, chainID uint8) Parameters {
	return Parameters{
		Path:           path,
		ChainID:        chainID,
		ValidatorCount: 4,
		ValidatorStake: engine.DefaultValidatorStake,
		Framework:      engine.DefaultBundle(),
		Configuration:  engine.DefaultGenesisConfiguration(),
		GasSchedule:    engine.DefaultGasSchedule(),
	}
}

// Result - the opened database and the components that use it
type Result struct {
	Store     *storage.Store
	View      *stateview.View
	Committer *stateview.Committer

	// Created - false if the chain already existed
	Created bool
}

// Close - close the database
func (r *Result) Close() error {
	return r.Store.Close()
}

// Bootstrap - open or create the database and make sure it holds a chain
//
// on any error the database is closed again
func Bootstrap(log *logger.L, parameters Parameters) (*Result, error) {
	if "" == parameters.Path {
		return nil, fault.ErrMissingParameters
	}

	store, err := storage.Open(log, parameters.Path, parameters.CacheSize)
	if nil != err {
		log.Criticalf("open database: %q error: %s", parameters.Path, err)
		return nil, err
	}

	result, err := install(log, store, parameters)
	if nil != err {
		_ = store.Close()
		return nil, err
	}
	return result, nil
}

// write genesis into an open store unless a chain is already present
func install(log *logger.L, store *storage.Store, parameters Parameters) (*Result, error) {
	result := &Result{
		Store:     store,
		View:      stateview.New(log, store.Pool.LedgerState),
		Committer: stateview.NewCommitter(log, store.Pool.LedgerState),
	}

	existing, err := result.View.ChainResource()
	if nil != err {
		log.Criticalf("read chain id error: %s", err)
		return nil, err
	}
	if nil != existing {
		if existing.ID != parameters.ChainID {
			log.Warnf("database chain id: %d  configured: %d  keeping database", existing.ID, parameters.ChainID)
		} else {
			log.Infof("chain id: %d already installed", existing.ID)
		}
		return result, nil
	}

	ws, err := engine.GenerateGenesis(&engine.Genesis{
		ChainID:       parameters.ChainID,
		Configuration: parameters.Configuration,
		GasSchedule:   parameters.GasSchedule,
		Validators:    engine.TestValidators(parameters.ValidatorCount, parameters.ValidatorStake),
		Accounts:      parameters.Accounts,
		Framework:     parameters.Framework,
	})
	if nil != err {
		log.Criticalf("generate genesis error: %s", err)
		return nil, err
	}

	if err := result.Committer.Commit(ws); nil != err {
		log.Criticalf("commit genesis error: %s", err)
		return nil, err
	}

	log.Infof("chain id: %d genesis installed: %d records", parameters.ChainID, ws.Len())
	result.Created = true
	return result, nil
}
