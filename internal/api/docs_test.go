package api

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDocsWriteFailuresAreLogged(t *testing.T) {
	var logs bytes.Buffer
	log.SetOutput(&logs)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	req := httptest.NewRequest(http.MethodGet, "/api-docs", nil)
	serveDocsUI(brokenWriter{httptest.NewRecorder()}, req)
	serveOpenAPISpec(brokenWriter{httptest.NewRecorder()}, req)

	assert.Contains(t, logs.String(), "Error writing docs page: connection reset")
	assert.Contains(t, logs.String(), "Error writing OpenAPI document: connection reset")
}
