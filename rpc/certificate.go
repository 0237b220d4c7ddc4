// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"crypto/tls"

	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/fault"
	"github.com/bitmark-inc/ledgerd/util"
)

// load the key pair for a listener
//
// no certificate configured means plain HTTP and a nil configuration
func tlsConfiguration(log *logger.L, certificateFileName string, keyFileName string) (*tls.Config, error) {
	if "" == certificateFileName && "" == keyFileName {
		return nil, nil
	}

	if !util.EnsureFileExists(certificateFileName) {
		log.Errorf("certificate: %q does not exist", certificateFileName)
		return nil, fault.ErrMissingParameters
	}
	if !util.EnsureFileExists(keyFileName) {
		log.Errorf("private key: %q does not exist", keyFileName)
		return nil, fault.ErrMissingParameters
	}

	keyPair, err := tls.LoadX509KeyPair(certificateFileName, keyFileName)
	if nil != err {
		log.Errorf("failed to load keypair: %v", err)
		return nil, err
	}

	log.Infof("SHA3-256 fingerprint: %x", fingerprint(keyPair.Certificate[0]))

	return &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		NextProtos: []string{"http/1.1"},
	}, nil
}

// fingerprint - compute the fingerprint of a certificate
//
// openssl x509 -outform DER -in rpc.crt | sha3sum -a 256
func fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}
