package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshalToMap(t *testing.T, v any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestEnvelopeTransformer_Success(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "200", map[string]string{"title": "Learn Go"})
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.InDelta(t, float64(EnvelopeVersion), out["v"], 0)
	assert.Equal(t, true, out["success"])
	assert.Equal(t, map[string]any{"title": "Learn Go"}, out["data"])
	assert.NotContains(t, out, "error")
}

func TestEnvelopeTransformer_APIError(t *testing.T) {
	apiErr := &APIError{
		status:  http.StatusConflict,
		Code:    "DUPLICATE_KEY",
		Message: "Learn Go: goal already exists",
	}

	result, err := EnvelopeTransformer(nil, "409", apiErr)
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "DUPLICATE_KEY", out["code"])
	assert.Equal(t, "Learn Go: goal already exists", out["message"])
	assert.Equal(t, out["message"], out["error"])
	assert.NotContains(t, out, "details")
}

func TestEnvelopeTransformer_PlainError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "500", errors.New("boom"))
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "boom", out["error"])
}

func TestEnvelopeTransformer_ErrorStatusWithoutError(t *testing.T) {
	result, err := EnvelopeTransformer(nil, "404", map[string]string{"detail": "gone"})
	require.NoError(t, err)

	out := marshalToMap(t, result)
	assert.Equal(t, false, out["success"])
	assert.Contains(t, out, "data")
}
