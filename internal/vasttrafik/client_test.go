package vasttrafik

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Credentials{Key: "key", Secret: "secret"}, Options{
		TokenURL: server.URL + "/token",
		BaseURL:  server.URL + "/pr/v4",
	})
	require.NoError(t, err)
	return client
}

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "ext-api.vasttrafik.se", u.Host)
	assert.Equal(t, "/pr/v4", u.Path)

	u, err = parseBaseURL("example.com:1234/api?x=1#frag")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com:1234/api", u.String())
}

func TestFetchToken_ReturnsAccessToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/token", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "basic auth missing")
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"tok-123","token_type":"Bearer","expires_in":86400}`))
	}))
	defer server.Close()

	token, err := newTestClient(t, server).FetchToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
}

func TestFetchToken_NonOKIsAuthError(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := newTestClient(t, server).FetchToken(context.Background())
		server.Close()

		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, status, authErr.StatusCode)
	}
}

func TestFetchToken_MissingFieldFails(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).FetchToken(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_token missing")
}

func TestFetchDepartures_SendsBearerAndDecodes(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/pr/v4/stop-areas/9021014002090000/departures", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		gotQuery = r.URL.Query()

		_, _ = w.Write([]byte(`{
			"results": [
				{
					"estimatedTime": "2024-01-01T08:05:00.0000000+01:00",
					"serviceJourney": {
						"line": {"shortName": "6"},
						"directionDetails": {"fullDirection": "Kortedala"}
					},
					"stopPoint": {"platform": "A"}
				},
				{}
			],
			"pagination": {"limit": 10, "offset": 0, "size": 2}
		}`))
	}))
	defer server.Close()

	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	query := NewDepartureQuery("9021014002090000").WithStart(start)
	list, err := newTestClient(t, server).FetchDepartures(context.Background(), "tok-123", query)
	require.NoError(t, err)

	assert.True(t, list.HasResults)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "6", list.Results[0].LineName())
	assert.Equal(t, "Kortedala", list.Results[0].Destination())
	assert.Equal(t, "A", list.Results[0].Platform())
	assert.Equal(t, UnknownLine, list.Results[1].LineName())

	assert.Equal(t, "2024-01-01T08:00:00Z", gotQuery.Get("startDateTime"))
	assert.Equal(t, "60", gotQuery.Get("timeSpanInMinutes"))
	assert.Equal(t, "2", gotQuery.Get("maxDeparturesPerLineAndDirection"))
	assert.Equal(t, "10", gotQuery.Get("limit"))
	assert.Equal(t, "0", gotQuery.Get("offset"))
	assert.Equal(t, "false", gotQuery.Get("includeOccupancy"))
	assert.False(t, gotQuery.Has("directionGid"))
	assert.False(t, gotQuery.Has("platforms"))
}

func TestFetchDepartures_MissingResultsIsNotAnError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pagination": {"limit": 10}}`))
	}))
	defer server.Close()

	list, err := newTestClient(t, server).FetchDepartures(context.Background(), "tok", NewDepartureQuery("1"))
	require.NoError(t, err)
	assert.False(t, list.HasResults)
	assert.Empty(t, list.Results)
	assert.True(t, list.Empty())
}

func TestFetchDepartures_NonOKIsFetchError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).FetchDepartures(context.Background(), "bad", NewDepartureQuery("1"))
	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "error = %v", err)
	assert.Equal(t, http.StatusUnauthorized, fetchErr.StatusCode)

	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

func TestFetchDepartures_RejectsEmptyGID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	}))
	defer server.Close()

	_, err := newTestClient(t, server).FetchDepartures(context.Background(), "tok", DepartureQuery{StopAreaGID: "  "})
	require.Error(t, err)
}

func TestFetchDepartures_MalformedJSON(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [`))
	}))
	defer server.Close()

	_, err := newTestClient(t, server).FetchDepartures(context.Background(), "tok", NewDepartureQuery("1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}
