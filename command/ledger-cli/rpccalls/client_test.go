// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/ledgerd/account"
	"github.com/bitmark-inc/ledgerd/command/ledger-cli/rpccalls"
	"github.com/bitmark-inc/ledgerd/ledger"
	"github.com/bitmark-inc/ledgerd/transaction"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/rpc/v1/transactions/chain_id", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("4"))
	})
	mux.HandleFunc("/rpc/v1/accounts/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`"unknown account"`))
	})
	mux.HandleFunc("/rpc/v1/transactions/submit", func(w http.ResponseWriter, r *http.Request) {
		txn, err := transaction.ReadEnvelope(r.Body)
		if !assert.Nil(t, err, "envelope") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		hash, _ := txn.Hash()
		b, _ := json.Marshal(hash)
		_, _ = w.Write(b)
	})
	mux.HandleFunc("/rpc/v1/transactions/simulate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("plain text failure\n"))
	})
	return httptest.NewServer(mux)
}

func TestClient(t *testing.T) {
	server := newTestServer(t)
	defer server.Close()

	var trace bytes.Buffer
	client := rpccalls.NewClient(server.URL+"/", false, true, &trace)

	id, err := client.ChainID()
	assert.Nil(t, err, "chain id")
	assert.Equal(t, uint8(4), id, "chain id value")
	assert.Contains(t, trace.String(), "GET "+server.URL+"/rpc/v1/transactions/chain_id", "verbose trace")

	_, err = client.Account(ledger.MustAddress("0xa"))
	if assert.IsType(t, &rpccalls.ReplyError{}, err, "account error") {
		assert.Equal(t, http.StatusNotFound, err.(*rpccalls.ReplyError).StatusCode, "status")
		assert.Equal(t, "unknown account", err.(*rpccalls.ReplyError).Message, "message")
	}

	key := account.DeterministicPrivateKey("client", 0)
	txn, err := transaction.Sign(transaction.RawTransaction{
		Sender:       key.Address(),
		Payload:      transaction.Transfer{To: ledger.MustAddress("0xb"), Amount: 1},
		MaxGasAmount: 10,
		GasUnitPrice: 100,
		ChainID:      4,
	}, key)
	assert.Nil(t, err, "sign")

	hash, err := client.Submit(txn)
	assert.Nil(t, err, "submit")
	expected, _ := txn.Hash()
	assert.Equal(t, expected, hash, "hash")

	_, err = client.Simulate(txn)
	if assert.IsType(t, &rpccalls.ReplyError{}, err, "simulate error") {
		assert.Equal(t, "plain text failure", err.(*rpccalls.ReplyError).Message, "non JSON message")
	}
}

func TestClientUnreachable(t *testing.T) {
	server := newTestServer(t)
	url := server.URL
	server.Close()

	client := rpccalls.NewClient(url, false, false, ioutil.Discard)
	_, err := client.ChainID()
	assert.NotNil(t, err, "closed server answered")
}
