package gigclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sudo-init-do/crafthub/internal/gig"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestCreateGigSendsPayload(t *testing.T) {
	var (
		gotPath   string
		gotAuth   string
		gotType   string
		gotMethod string
		gotBody   map[string]any
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"gig_id":"g-1","message":"gig created successfully"}`))
	})

	p := gig.BuildPayload(gig.Draft{
		Title:        "Logo",
		Category:     "Design",
		Pricing:      "15",
		DeliveryTime: "5",
		Tags:         "a, b ,c",
	})
	res, err := c.CreateGig(context.Background(), "tok", p)
	require.NoError(t, err)

	assert.Equal(t, "g-1", res.GigID)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, GigsPath, gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, float64(5), gotBody["deliveryTime"])
	assert.Equal(t, float64(0), gotBody["revisionCount"])
	assert.Equal(t, []any{"a", "b", "c"}, gotBody["tags"])
	assert.Equal(t, "15", gotBody["pricing"])
}

func TestCreateGigErrorMessage(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Title too short"}`, "Title too short"},
		{"no message", http.StatusBadRequest, `{"error":"bad"}`, FallbackCreateMessage},
		{"not json", http.StatusInternalServerError, `<html>oops</html>`, FallbackCreateMessage},
		{"empty body", http.StatusUnauthorized, ``, FallbackCreateMessage},
		{"numeric message", http.StatusBadRequest, `{"message":123}`, "123"},
		{"boolean message", http.StatusBadRequest, `{"message":true}`, "true"},
		{"zero message", http.StatusBadRequest, `{"message":0}`, FallbackCreateMessage},
		{"empty message", http.StatusBadRequest, `{"message":""}`, FallbackCreateMessage},
		{"object message", http.StatusBadRequest, `{"message":{"a":1}}`, FallbackCreateMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := c.CreateGig(context.Background(), "tok", gig.BuildPayload(gig.EmptyDraft()))
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.want, Message(err))
		})
	}
}

func TestCreateGigSendsAuthorizationWithoutToken(t *testing.T) {
	var (
		sent bool
		got  string
	)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sent = r.Header["Authorization"]
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.CreateGig(context.Background(), "", gig.BuildPayload(gig.EmptyDraft()))
	require.Error(t, err)
	assert.True(t, sent)
	assert.Equal(t, "Bearer", strings.TrimSpace(got))
}

func TestCreateGigSuccessBodies(t *testing.T) {
	t.Run("empty body is fine", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
		_, err := c.CreateGig(context.Background(), "tok", gig.BuildPayload(gig.EmptyDraft()))
		assert.NoError(t, err)
	})

	t.Run("malformed body fails", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("created"))
		})
		_, err := c.CreateGig(context.Background(), "tok", gig.BuildPayload(gig.EmptyDraft()))
		require.Error(t, err)
		var apiErr *APIError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestCreateGigNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = c.CreateGig(context.Background(), "tok", gig.BuildPayload(gig.EmptyDraft()))
	require.Error(t, err)
	assert.Equal(t, err.Error(), Message(err))
	assert.Contains(t, Message(err), "failed to send request")
}

func TestCookiesAreSentBack(t *testing.T) {
	var seen string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == LoginPath {
			http.SetCookie(w, &http.Cookie{Name: "session", Value: "s1", Path: "/"})
			_, _ = w.Write([]byte(`{"token":"jwt"}`))
			return
		}
		if ck, err := r.Cookie("session"); err == nil {
			seen = ck.Value
		}
		w.WriteHeader(http.StatusCreated)
	})

	token, err := c.Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", token)

	_, err = c.CreateGig(context.Background(), token, gig.BuildPayload(gig.EmptyDraft()))
	require.NoError(t, err)
	assert.Equal(t, "s1", seen)
}

func TestLoginRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	})
	_, err := c.Login(context.Background(), "a@b.c", "nope")
	assert.Equal(t, "invalid credentials", Message(err))
}

func TestNewDefaults(t *testing.T) {
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	c, err = New("http://api.example.com/")
	require.NoError(t, err)
	assert.Equal(t, "http://api.example.com", c.BaseURL())
}

func TestWithHTTPClientLeavesCallerUntouched(t *testing.T) {
	hc := &http.Client{Timeout: time.Minute}

	c, err := New("http://api.example.com", WithTimeout(3*time.Second), WithHTTPClient(hc))
	require.NoError(t, err)

	assert.Nil(t, hc.Jar)
	assert.Equal(t, time.Minute, hc.Timeout)
	assert.NotSame(t, hc, c.httpClient)
	assert.NotNil(t, c.httpClient.Jar)
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}

func TestTimeoutDefaults(t *testing.T) {
	c, err := New("", WithHTTPClient(&http.Client{}))
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), c.httpClient.Timeout)

	c, err = New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}
