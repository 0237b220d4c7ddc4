// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"
)

const requestTimeout = 30 * time.Second

// Client - to hold the HTTP connection to a ledgerd
type Client struct {
	url     string
	client  *http.Client
	verbose bool
	handle  io.Writer // if verbose is set output items here
}

// NewClient - create a client for a ledgerd at a base URL
//
// insecure skips certificate checks for self-signed servers
func NewClient(url string, insecure bool, verbose bool, handle io.Writer) *Client {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: insecure,
		},
	}
	return &Client{
		url: strings.TrimSuffix(url, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   requestTimeout,
		},
		verbose: verbose,
		handle:  handle,
	}
}

// ReplyError - a non 200 reply, the server sends the message as a JSON string
type ReplyError struct {
	StatusCode int
	Message    string
}

func (e *ReplyError) Error() string {
	return fmt.Sprintf("status: %d  error: %s", e.StatusCode, e.Message)
}

func (c *Client) get(path string, reply interface{}) error {
	return c.do(http.MethodGet, path, nil, reply)
}

func (c *Client) post(path string, request interface{}, reply interface{}) error {
	body, err := json.Marshal(request)
	if nil != err {
		return err
	}
	return c.do(http.MethodPost, path, body, reply)
}

func (c *Client) do(method string, path string, body []byte, reply interface{}) error {
	if c.verbose {
		fmt.Fprintf(c.handle, "%s %s%s\n", method, c.url, path)
		if nil != body {
			fmt.Fprintf(c.handle, "request: %s\n", body)
		}
	}

	request, err := http.NewRequest(method, c.url+path, bytes.NewReader(body))
	if nil != err {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if nil != err {
		return err
	}
	defer response.Body.Close()

	data, err := ioutil.ReadAll(response.Body)
	if nil != err {
		return err
	}

	if c.verbose {
		fmt.Fprintf(c.handle, "reply: %d %s\n", response.StatusCode, data)
	}

	if http.StatusOK != response.StatusCode {
		message := ""
		if err := json.Unmarshal(data, &message); nil != err {
			message = strings.TrimSpace(string(data))
		}
		return &ReplyError{
			StatusCode: response.StatusCode,
			Message:    message,
		}
	}
	return json.Unmarshal(data, reply)
}
