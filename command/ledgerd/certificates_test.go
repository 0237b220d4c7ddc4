// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/fault"
)

func TestMakeSelfSignedCertificate(t *testing.T) {
	dir, err := ioutil.TempDir("", "ledgerd-cert")
	assert.Nil(t, err, "temp dir")
	defer os.RemoveAll(dir)

	certificate := filepath.Join(dir, rpcCertificateKeyFilename)
	key := filepath.Join(dir, rpcPrivateKeyFilename)

	err = makeSelfSignedCertificate("test", certificate, key, false, nil)
	assert.Nil(t, err, "create")

	_, err = tls.LoadX509KeyPair(certificate, key)
	assert.Nil(t, err, "load key pair")

	err = makeSelfSignedCertificate("test", certificate, key, false, nil)
	assert.Equal(t, fault.ErrCertificateFileExists, err, "overwrote certificate")

	assert.Nil(t, os.Remove(certificate), "remove certificate")
	err = makeSelfSignedCertificate("test", certificate, key, false, nil)
	assert.Equal(t, fault.ErrKeyFileExists, err, "overwrote key")
}
