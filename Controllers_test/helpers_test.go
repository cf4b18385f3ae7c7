package Controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// jsonBody menyusun body request dari payload
func jsonBody(t *testing.T, payload interface{}) io.Reader {
	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	return bytes.NewBuffer(body)
}

// decodeID membongkar envelope respons dan mengambil data.id
func decodeID(t *testing.T, w *httptest.ResponseRecorder) int {
	var response struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotZero(t, response.Data.ID)
	return int(response.Data.ID)
}
