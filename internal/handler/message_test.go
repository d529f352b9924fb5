package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ridewatch/internal/source"
)

func TestIngestAcceptsMessage(t *testing.T) {
	queue := source.NewQueue(4)
	h := IngestMessageHandler(queue)

	req := httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("46.26 €\nA\n->\nB"))
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	require.Equal(t, "46.26 €\nA\n->\nB", <-queue.Messages())
}

func TestIngestDuplicateReturnsOK(t *testing.T) {
	queue := source.NewQueue(4)
	h := IngestMessageHandler(queue)

	first := httptest.NewRecorder()
	h(first, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("same text")))
	require.Equal(t, http.StatusAccepted, first.Code)

	second := httptest.NewRecorder()
	h(second, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("same text")))
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestIngestEmptyBody(t *testing.T) {
	h := IngestMessageHandler(source.NewQueue(4))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("   \n ")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngestQueueFull(t *testing.T) {
	queue := source.NewQueue(1)
	h := IngestMessageHandler(queue)

	h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("one")))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/api/messages", strings.NewReader("two")))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestIngestRejectsGet(t *testing.T) {
	h := IngestMessageHandler(source.NewQueue(4))

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/messages", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
