package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b,"))
	assert.Nil(t, splitList(""))
}

func TestIntParam(t *testing.T) {
	r := httptest.NewRequest("GET", "/tags?limit=20&offset=x", nil)
	assert.Equal(t, 20, intParam(r, "limit", 0))
	assert.Equal(t, 5, intParam(r, "offset", 5))
	assert.Equal(t, 7, intParam(r, "missing", 7))
}
