// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/ledgerd/fault"
)

const (
	readWriteTimeout = 10 * time.Second
	keepAlivePeriod  = 3 * time.Minute
)

// HTTPSConfiguration - configuration file data for HTTPS setup
type HTTPSConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	RequestRate        float64  `gluamapper:"request_rate" json:"request_rate"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

// Server - the listeners and the handler they share
type Server struct {
	sync.Mutex

	log       *logger.L
	listen    []string
	tlsConfig *tls.Config
	handler   http.Handler

	servers   []*http.Server
	addresses []string
	running   sync.WaitGroup
}

// New - validate the configuration and build the handler
//
// statistics may be nil
func New(log *logger.L, configuration *HTTPSConfiguration, version string, l Ledger, s Submitter, statistics Statistics) (*Server, error) {
	if configuration.MaximumConnections < 1 {
		log.Errorf("invalid maximum connection limit: %d", configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	}

	tlsConfig, err := tlsConfiguration(log, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}

	h := newHandler(log, version, l, s, statistics, configuration.MaximumConnections, configuration.RequestRate)
	return &Server{
		log:       log,
		listen:    configuration.Listen,
		tlsConfig: tlsConfig,
		handler:   h.router(),
	}, nil
}

// Handler - the routes without any listener
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start - bind every listen address and serve in the background
//
// an address that cannot be bound stops the servers already started
func (s *Server) Start() error {
	s.Lock()
	defer s.Unlock()

	if 0 != len(s.servers) {
		return fault.ErrAlreadyInitialised
	}
	if 0 == len(s.listen) {
		s.log.Info("disabled: no listen addresses")
		return nil
	}

	for _, listen := range s.listen {
		if '*' == listen[0] {
			// change "*:PORT" to "[::]:PORT"
			// on the assumption that this will listen on tcp4 and tcp6
			listen = "[::]" + ":" + strings.Split(listen, ":")[1]
		}

		ln, err := net.Listen("tcp", listen)
		if nil != err {
			s.log.Errorf("listen on: %q error: %s", listen, err)
			s.stop()
			return err
		}
		var l net.Listener = tcpKeepAliveListener{ln.(*net.TCPListener)}
		if nil != s.tlsConfig {
			l = tls.NewListener(l, s.tlsConfig)
		}

		server := &http.Server{
			Handler:        s.handler,
			ReadTimeout:    readWriteTimeout,
			WriteTimeout:   readWriteTimeout,
			MaxHeaderBytes: 1 << 20,
		}
		s.servers = append(s.servers, server)
		s.addresses = append(s.addresses, ln.Addr().String())

		s.log.Infof("starting server on: %q  tls: %t", ln.Addr(), nil != s.tlsConfig)
		s.running.Add(1)
		go func() {
			defer s.running.Done()
			if err := server.Serve(l); nil != err && http.ErrServerClosed != err {
				s.log.Errorf("serve error: %s", err)
			}
		}()
	}
	return nil
}

// Addresses - the bound listen addresses
func (s *Server) Addresses() []string {
	s.Lock()
	defer s.Unlock()
	return append([]string(nil), s.addresses...)
}

// Stop - close the listeners and wait for active requests
func (s *Server) Stop() {
	s.Lock()
	defer s.Unlock()
	s.stop()
}

func (s *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), readWriteTimeout)
	defer cancel()

	for _, server := range s.servers {
		if err := server.Shutdown(ctx); nil != err {
			s.log.Warnf("shutdown error: %s", err)
		}
	}
	s.running.Wait()
	s.servers = nil
	s.addresses = nil
}

type tcpKeepAliveListener struct {
	*net.TCPListener
}

func (ln tcpKeepAliveListener) Accept() (net.Conn, error) {
	tc, err := ln.AcceptTCP()
	if err != nil {
		return nil, err
	}
	_ = tc.SetKeepAlive(true)
	_ = tc.SetKeepAlivePeriod(keepAlivePeriod)
	return tc, nil
}
