// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package engine

import (
	"io/ioutil"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bitmark-inc/ledgerd/fault"
)

// compiled module file extension
const moduleExtension = ".mv"

// Module - a named code module
type Module struct {
	Name string
	Code []byte
}

// Bundle - the framework modules published at genesis, sorted by name
type Bundle []Module

var builtinModules = []string{
	"account",
	"chain_id",
	"coin",
	"gas_schedule",
	"governance",
	"ledger_coin",
	"stake",
	"staking_config",
	"vesting",
}

// DefaultBundle - the built in framework
func DefaultBundle() Bundle {
	b := make(Bundle, len(builtinModules))
	for i, name := range builtinModules {
		b[i] = Module{
			Name: name,
			Code: []byte("module 0x1::" + name),
		}
	}
	return b
}

// LoadBundle - read every compiled module in a directory
func LoadBundle(directory string) (Bundle, error) {
	files, err := filepath.Glob(filepath.Join(directory, "*"+moduleExtension))
	if nil != err {
		return nil, err
	}
	if 0 == len(files) {
		return nil, fault.ErrMissingParameters
	}

	b := make(Bundle, 0, len(files))
	for _, f := range files {
		code, err := ioutil.ReadFile(f)
		if nil != err {
			return nil, err
		}
		b = append(b, Module{
			Name: strings.TrimSuffix(filepath.Base(f), moduleExtension),
			Code: code,
		})
	}
	sort.Slice(b, func(i, j int) bool { return b[i].Name < b[j].Name })
	return b, nil
}
