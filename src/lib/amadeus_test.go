package lib

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessTokenConcurrent(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"access_token":"tok","expires_in":1799}`)
	}))
	defer srv.Close()

	c := &AmadeusClient{
		BaseURL:      srv.URL,
		ClientID:     "test-id",
		ClientSecret: "test-secret",
		HTTPClient:   srv.Client(),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := c.AccessToken(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "tok", token)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls), "concurrent callers must share one token fetch")
}

func TestAccessTokenReused(t *testing.T) {
	t.Setenv("REDIS_HOST", "")
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"access_token":"tok","expires_in":1799}`)
	}))
	defer srv.Close()

	c := &AmadeusClient{BaseURL: srv.URL, ClientID: "test-id", ClientSecret: "test-secret", HTTPClient: srv.Client()}
	for i := 0; i < 3; i++ {
		token, err := c.AccessToken(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, "tok", token)
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}
