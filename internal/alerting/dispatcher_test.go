package alerting

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name    string
	calls   int32
	succeed bool
}

func (r *recordingSink) Name() string { return r.name }

func (r *recordingSink) Send(ctx context.Context, event Event) error {
	atomic.AddInt32(&r.calls, 1)
	if r.succeed {
		return nil
	}
	return errors.New("connection reset")
}

func TestDispatcher_IndependentSinks(t *testing.T) {
	good := &recordingSink{name: "good", succeed: true}
	bad := &recordingSink{name: "bad", succeed: false}

	d := NewDispatcher([]Sink{good, bad}, testLogger())
	d.dispatch(context.Background(), Event{Service: "web_server"})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&good.calls) == 1 && atomic.LoadInt32(&bad.calls) == maxAttempts
	}, 3*time.Second, 10*time.Millisecond, "good sink delivers once, bad sink retries to exhaustion, neither blocks the other")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(errors.New("connection timeout")))
	assert.True(t, isRetryable(&httpStatusError{StatusCode: 503}))
	assert.True(t, isRetryable(&httpStatusError{StatusCode: 429}))
	assert.False(t, isRetryable(&httpStatusError{StatusCode: 404}))
	assert.False(t, isRetryable(errors.New("invalid payload")))
	assert.False(t, isRetryable(nil))
}

func TestBackoffDelay_Exponential(t *testing.T) {
	assert.Equal(t, baseBackoff, backoffDelay(1))
	assert.Equal(t, baseBackoff*2, backoffDelay(2))
	assert.Equal(t, baseBackoff*4, backoffDelay(3))
}

func TestHTTPPostJSON_SuccessAndFailure(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer okServer.Close()

	err := httpPostJSON(context.Background(), okServer.URL, map[string]string{"text": "hi"})
	assert.NoError(t, err)

	badServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer badServer.Close()

	err = httpPostJSON(context.Background(), badServer.URL, map[string]string{"text": "hi"})
	require.Error(t, err)
	assert.False(t, isRetryable(err))
}

func TestSlackSink_PostsToWebhook(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 1024)
		n, _ := r.Body.Read(buf)
		gotBody = string(buf[:n])
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sink := &SlackSink{WebhookURL: server.URL}
	err := sink.Send(context.Background(), Event{Service: "web_server", Count: 5, WindowSeconds: 60})
	assert.NoError(t, err)
	assert.Contains(t, gotBody, "web_server")
}
