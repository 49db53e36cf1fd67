package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateETag_StableForEqualData(t *testing.T) {
	a, err := GenerateETag(map[string]int{"a": 1, "b": 2})
	require.NoError(t, err)
	b, err := GenerateETag(map[string]int{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	c, err := GenerateETag(map[string]int{"a": 2})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = GenerateETag(make(chan int))
	assert.Error(t, err)
}

func TestSendJSONError(t *testing.T) {
	rec := httptest.NewRecorder()
	SendJSONError(rec, "bad file", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "bad file", body["error"])
}
