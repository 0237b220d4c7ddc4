// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheDeleteIsAuthoritative(t *testing.T) {
	c := newCache()

	_, _, cached := c.Get("missing")
	assert.False(t, cached, "empty cache")

	c.Set(dbPut, "k", []byte("v"))
	value, present, cached := c.Get("k")
	assert.True(t, cached, "put cached")
	assert.True(t, present, "put present")
	assert.Equal(t, []byte("v"), value, "value")

	c.Set(dbDelete, "k", nil)
	_, present, cached = c.Get("k")
	assert.True(t, cached, "delete cached")
	assert.False(t, present, "delete present")

	c.Clear()
	_, _, cached = c.Get("k")
	assert.False(t, cached, "cleared")
}

func TestCacheCopiesValues(t *testing.T) {
	c := newCache()

	v := []byte("abc")
	c.Set(dbPut, "k", v)
	v[0] = 'x'

	value, _, _ := c.Get("k")
	assert.Equal(t, []byte("abc"), value, "aliased on set")

	value[1] = 'y'
	again, _, _ := c.Get("k")
	assert.Equal(t, []byte("abc"), again, "aliased on get")
}
