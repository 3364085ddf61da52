package graphql

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, opts ...Option) *Client {
	opts = append([]Option{
		WithHTTPClient(http.DefaultClient),
		WithRetryInterval(time.Millisecond),
	}, opts...)
	return NewClient(url, opts...)
}

func TestClient_QuerySendsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret-token", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GetRooms", req.OperationName)
		assert.Equal(t, "abc", req.Variables["roomId"])

		w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer server.Close()

	var out struct {
		Value string `json:"value"`
	}
	err := newTestClient(server.URL).Query(context.Background(), "secret-token", Request{
		Query:         "query GetRooms { value }",
		OperationName: "GetRooms",
		Variables:     map[string]any{"roomId": "abc"},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out.Value)
}

func TestClient_OmitsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.Header["Authorization"]
		assert.False(t, present)
		w.Write([]byte(`{"data":null}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Query(context.Background(), "", Request{Query: "{ x }"}, nil)
	assert.NoError(t, err)
}

func TestClient_QueryRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":{"value":"ok"}}`))
	}))
	defer server.Close()

	var out struct {
		Value string `json:"value"`
	}
	err := newTestClient(server.URL, WithMaxRetries(3)).Query(context.Background(), "", Request{Query: "{ value }"}, &out)

	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "ok", out.Value)
}

func TestClient_QueryGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	err := newTestClient(server.URL, WithMaxRetries(2)).Query(context.Background(), "", Request{Query: "{ value }"}, nil)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_GraphQLErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"data":null,"errors":[{"message":"You must be logged in","extensions":{"code":"UNAUTHENTICATED"}}]}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL, WithMaxRetries(3)).Query(context.Background(), "", Request{Query: "{ me { id } }"}, nil)

	var gqlErrs Errors
	require.ErrorAs(t, err, &gqlErrs)
	assert.True(t, gqlErrs.HasCode(CodeUnauthenticated))
	assert.True(t, IsUnauthenticated(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_MutateIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := newTestClient(server.URL, WithMaxRetries(5)).Mutate(context.Background(), "t", Request{Query: "mutation { x }"}, nil)

	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_ErrorsInNon2xxBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"message":"Cannot query field"}]}`))
	}))
	defer server.Close()

	err := newTestClient(server.URL).Mutate(context.Background(), "", Request{Query: "{ bogus }"}, nil)

	var gqlErrs Errors
	require.ErrorAs(t, err, &gqlErrs)
	assert.Equal(t, "graphql: Cannot query field", err.Error())
	assert.False(t, IsUnauthenticated(err))
}

func TestIsUnauthenticated_Status401(t *testing.T) {
	assert.True(t, IsUnauthenticated(&StatusError{StatusCode: http.StatusUnauthorized}))
	assert.False(t, IsUnauthenticated(&StatusError{StatusCode: http.StatusForbidden}))
}
