// Copyright (c) 2026 Touring. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pluginhost_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/5eus/touring/internal/pluginhost"
)

func TestAllowList_Unrestricted(t *testing.T) {
	a := pluginhost.NewAllowList(nil)
	assert.True(t, a.Unrestricted())
	assert.True(t, a.Allows("https://anything.example.org/cover.jpg"))
	assert.False(t, a.Allows("ftp://anything.example.org/cover.jpg"))
}

func TestAllowList_Muted(t *testing.T) {
	a := pluginhost.NewAllowList([]string{})
	assert.True(t, a.Muted())
	assert.False(t, a.Allows("https://example.com/a.jpg"))
}

func TestAllowList_ApexWildcard(t *testing.T) {
	a := pluginhost.NewAllowList([]string{"*.example.com"})
	assert.True(t, a.Allows("https://example.com/x"))
	assert.True(t, a.Allows("https://cdn.a.example.com/x"))
	assert.False(t, a.Allows("https://example.org/x"))
}

func TestAllowList_ExactHost(t *testing.T) {
	a := pluginhost.NewAllowList([]string{"cdn.example.net"})
	assert.True(t, a.Allows("https://cdn.example.net/img.png"))
	assert.False(t, a.Allows("https://other.cdn.example.net/img.png"))
}

func TestAllowList_RejectsBadSchemeOrHost(t *testing.T) {
	a := pluginhost.NewAllowList([]string{"example.com"})
	assert.False(t, a.Allows("javascript:alert(1)"))
	assert.False(t, a.Allows(""))
}
