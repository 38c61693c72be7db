package apiclient

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func responseWithStatus(status int) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"X-Request-Id": []string{"abc"}},
	}
}

func TestFromResponse_JSONMessageField(t *testing.T) {
	e := fromResponse(responseWithStatus(404), []byte(`{"message":"Not found"}`))

	assert.Equal(t, 404, e.Status)
	assert.Equal(t, "Not found", e.Message)
	assert.False(t, e.IsNetworkError)
	assert.Equal(t, "abc", e.Headers.Get("X-Request-Id"))
}

func TestFromResponse_PlainTextBody(t *testing.T) {
	e := fromResponse(responseWithStatus(502), []byte("upstream exploded\n"))
	assert.Equal(t, "upstream exploded", e.Message)
}

func TestFromResponse_EmptyBodyFallsBackToStatusText(t *testing.T) {
	e := fromResponse(responseWithStatus(503), nil)
	assert.Equal(t, http.StatusText(503), e.Message)
}

func TestFromResponse_JSONObjectWithoutMessageFallsBackToStatusText(t *testing.T) {
	e := fromResponse(responseWithStatus(422), []byte(`{"detail":"nope"}`))
	assert.Equal(t, http.StatusText(422), e.Message)
}

func TestFromResponse_UnknownStatusCode(t *testing.T) {
	e := fromResponse(responseWithStatus(599), nil)
	assert.Equal(t, "Request failed", e.Message)
}

func TestFromResponse_MappingIsIdempotent(t *testing.T) {
	resp := responseWithStatus(404)
	body := []byte(`{"message":"Not found"}`)

	first := fromResponse(resp, body)
	second := fromResponse(resp, body)

	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, first.IsNetworkError, second.IsNetworkError)
}

func TestCancelled_DistinctFromNetworkError(t *testing.T) {
	c := cancelled()
	n := networkError(nil)

	assert.Equal(t, StatusCancelled, c.Status)
	assert.False(t, c.IsNetworkError)
	assert.Equal(t, 0, n.Status)
	assert.True(t, n.IsNetworkError)
}
