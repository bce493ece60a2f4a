package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// JSONBody decodes a recorder body into a generic map.
func JSONBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "Failed to parse JSON response: %s", w.Body.String())
	return out
}

// AssertErrorCode asserts an error envelope carrying code.
func AssertErrorCode(t *testing.T, w *httptest.ResponseRecorder, code string) {
	t.Helper()
	body := JSONBody(t, w)
	assert.Equal(t, false, body["success"])
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "Expected error object in response")
	assert.Equal(t, code, errObj["code"])
}

// ToJSONReader converts a value to a JSON io.Reader.
func ToJSONReader(t *testing.T, v any) io.Reader {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err, "Failed to marshal to JSON")
	return bytes.NewReader(data)
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

// MultipartRequest builds a multipart/form-data request. Each value of a
// field becomes its own part.
func MultipartRequest(t *testing.T, method, target string, fields map[string][]string, files ...FormFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, vs := range fields {
		for _, v := range vs {
			require.NoError(t, mw.WriteField(k, v))
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.Field, f.Name)
		require.NoError(t, err)
		_, err = part.Write(f.Content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}
