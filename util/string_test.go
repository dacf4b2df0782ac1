package util

import (
	"github.com/go-playground/assert/v2"
	"testing"
)

func TestTrimEtag(t *testing.T) {
	assert.Equal(t, TrimEtag("\"abc\""), "abc")
	assert.Equal(t, TrimEtag("abc"), "abc")
	assert.Equal(t, TrimEtag("\"abc-3\""), "abc-3")
	assert.Equal(t, TrimEtag(""), "")
}

func TestHTTPEtag(t *testing.T) {
	assert.Equal(t, HTTPEtag("abc"), "\"abc\"")
	assert.Equal(t, HTTPEtag("\"abc\""), "\"abc\"")
	assert.Equal(t, HTTPEtag("\"abc"), "\"abc\"")
	assert.Equal(t, TrimEtag(HTTPEtag("d41d8cd9")), "d41d8cd9")
}

func TestKeyBase(t *testing.T) {
	assert.Equal(t, KeyBase("a/b/c.txt"), "c.txt")
	assert.Equal(t, KeyBase("c.txt"), "c.txt")
	assert.Equal(t, KeyBase("a/b/"), "")
	assert.Equal(t, KeyBase(""), "")
}

func TestMax(t *testing.T) {
	assert.Equal(t, Max(3, 5), 5)
	assert.Equal(t, Max(int64(7), int64(2)), int64(7))
}
