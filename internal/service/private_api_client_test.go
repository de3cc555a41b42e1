package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestPrivateAPIClient(baseURL string) *privateAPIClient {
	return &privateAPIClient{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
	}
}

func TestLoginReturnsSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "repostaccount", r.PostForm.Get("username"))
		require.Equal(t, "hunter2", r.PostForm.Get("password"))
		w.Write([]byte(`{"sessionid":"sid-42"}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	sid, err := c.Login(context.Background(), "repostaccount", "hunter2")
	require.NoError(t, err)
	require.Equal(t, "sid-42", sid)
}

func TestLoginRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	_, err := c.Login(context.Background(), "repostaccount", "wrong")
	require.Error(t, err)
}

func TestGetSettingsValidSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/settings/get", r.URL.Path)
		require.Equal(t, "sid-42", r.URL.Query().Get("sessionid"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	require.NoError(t, c.GetSettings(context.Background(), "sid-42"))
}

func TestGetSettingsStaleSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	require.Error(t, c.GetSettings(context.Background(), "stale"))
}

func TestPublishPhotoBuildsPermalink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/photo/upload/by_url", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "sid-42", r.PostForm.Get("sessionid"))
		require.Equal(t, "https://pub.example/x.png", r.PostForm.Get("url"))
		require.Equal(t, "a caption", r.PostForm.Get("caption"))
		w.Write([]byte(`{"code":"CxYz12"}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	permalink, err := c.PublishPhotoByURL(context.Background(), "sid-42", "https://pub.example/x.png", "a caption")
	require.NoError(t, err)
	require.Equal(t, "https://www.instagram.com/p/CxYz12", permalink)
}

func TestPublishVideoUsesVideoEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/video/upload/by_url", r.URL.Path)
		w.Write([]byte(`{"code":"Vid345"}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	permalink, err := c.PublishVideoByURL(context.Background(), "sid-42", "https://pub.example/x.mp4", "clip")
	require.NoError(t, err)
	require.Equal(t, "https://www.instagram.com/p/Vid345", permalink)
}

func TestPublishRejectedWrapsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	_, err := c.PublishPhotoByURL(context.Background(), "sid-42", "https://pub.example/x.png", "caption")
	require.ErrorIs(t, err, ErrPublishRejected)
}

func TestPublishEmptyCodeIsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":""}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	_, err := c.PublishPhotoByURL(context.Background(), "sid-42", "https://pub.example/x.png", "caption")
	require.ErrorIs(t, err, ErrPublishRejected)
}

func TestGetUsernameByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user/info", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "9001", r.PostForm.Get("user_id"))
		w.Write([]byte(`{"username":"gopher_pics"}`))
	}))
	defer server.Close()

	c := newTestPrivateAPIClient(server.URL)
	name, err := c.GetUsernameByID(context.Background(), "sid-42", "9001")
	require.NoError(t, err)
	require.Equal(t, "gopher_pics", name)
}
