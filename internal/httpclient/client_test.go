package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type recordedRequest struct {
	Method  string
	Path    string
	Query   string
	Header  http.Header
	Body    string
	HasBody bool
}

// newTestServer replies with status and body and records the last request.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *recordedRequest) {
	t.Helper()

	rec := &recordedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		*rec = recordedRequest{
			Method:  r.Method,
			Path:    r.URL.Path,
			Query:   r.URL.RawQuery,
			Header:  r.Header.Clone(),
			Body:    string(raw),
			HasBody: len(raw) > 0,
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	return srv, rec
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	return &buf
}

func TestGet_DecodesBody(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"data":[{"id":7}],"total_pages":2}`)
	c := New(srv.URL)

	var out struct {
		Data []struct {
			ID int `json:"id"`
		} `json:"data"`
		TotalPages int `json:"total_pages"`
	}
	err := c.Get(context.Background(), "/users?page=2", nil, &out)

	require.NoError(t, err)
	assert.Equal(t, 2, out.TotalPages)
	require.Len(t, out.Data, 1)
	assert.Equal(t, 7, out.Data[0].ID)

	assert.Equal(t, http.MethodGet, rec.Method)
	assert.Equal(t, "/users", rec.Path)
	assert.Equal(t, "page=2", rec.Query)
	assert.Equal(t, "application/json", rec.Header.Get("Content-Type"))
	assert.False(t, rec.HasBody, "GET must not send a payload")
}

func TestPost_SendsJSONBody(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{"token":"QpwL5tke4Pnpja7X4"}`)
	c := New(srv.URL)

	var out struct {
		Token string `json:"token"`
	}
	err := c.Post(context.Background(), "/login", map[string]string{
		"email":    "eve.holt@reqres.in",
		"password": "cityslicka",
	}, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "QpwL5tke4Pnpja7X4", out.Token)
	assert.Equal(t, http.MethodPost, rec.Method)
	assert.JSONEq(t, `{"email":"eve.holt@reqres.in","password":"cityslicka"}`, rec.Body)
}

func TestVerbs_UseMatchingMethod(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := New(srv.URL)
	ctx := context.Background()

	tests := []struct {
		name    string
		call    func() error
		method  string
		hasBody bool
	}{
		{"get", func() error { return c.Get(ctx, "/users/2", nil, nil) }, http.MethodGet, false},
		{"post", func() error { return c.Post(ctx, "/users", map[string]string{"a": "b"}, nil, nil) }, http.MethodPost, true},
		{"put", func() error { return c.Put(ctx, "/users/2", map[string]string{"a": "b"}, nil, nil) }, http.MethodPut, true},
		{"patch", func() error { return c.Patch(ctx, "/users/2", map[string]string{"a": "b"}, nil, nil) }, http.MethodPatch, true},
		{"delete", func() error { return c.Delete(ctx, "/users/2", nil, nil) }, http.MethodDelete, false},
		{"nil body", func() error { return c.Put(ctx, "/users/2", nil, nil, nil) }, http.MethodPut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.call())
			assert.Equal(t, tt.method, rec.Method)
			assert.Equal(t, tt.hasBody, rec.HasBody)
		})
	}
}

func TestHeaders_CallerTakesPrecedence(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := New(srv.URL, WithDefaultHeaders(Headers{
		"x-api-key": "default-key",
		"X-Client":  "dashboard",
	}))

	err := c.Get(context.Background(), "/users/2", Headers{
		"x-api-key":     "caller-key",
		"Content-Type":  "application/merge-patch+json",
		"Authorization": "Bearer abc",
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, "caller-key", rec.Header.Get("x-api-key"))
	assert.Equal(t, "dashboard", rec.Header.Get("X-Client"))
	assert.Equal(t, "application/merge-patch+json", rec.Header.Get("Content-Type"))
	assert.Equal(t, "Bearer abc", rec.Header.Get("Authorization"))
}

func TestDefaultHeadersAreCopied(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	h := Headers{"x-api-key": "original"}
	c := New(srv.URL, WithDefaultHeaders(h))
	h["x-api-key"] = "mutated"

	require.NoError(t, c.Get(context.Background(), "/", nil, nil))
	assert.Equal(t, "original", rec.Header.Get("x-api-key"))
}

func TestNoContent_ResolvesToEmptyObject(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusNoContent, "")
	c := New(srv.URL)

	var asMap map[string]any
	require.NoError(t, c.Delete(context.Background(), "/users/2", nil, &asMap))
	assert.NotNil(t, asMap)
	assert.Empty(t, asMap)

	asStruct := struct {
		ID int `json:"id"`
	}{ID: 0}
	require.NoError(t, c.Delete(context.Background(), "/users/2", nil, &asStruct))
	assert.Zero(t, asStruct.ID)

	require.NoError(t, c.Delete(context.Background(), "/users/2", nil, nil))
}

func TestFailure_Messages(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"message field", http.StatusBadRequest, `{"message":"Invalid credentials"}`, "Invalid credentials"},
		{"empty message field", http.StatusBadRequest, `{"message":""}`, "request failed with status 400"},
		{"reqres error field", http.StatusBadRequest, `{"error":"Missing password"}`, "request failed with status 400: Missing password"},
		{"empty json object", http.StatusNotFound, `{}`, "request failed with status 404"},
		{"not json", http.StatusInternalServerError, `<html>oops</html>`, "request failed with status 500"},
		{"no body", http.StatusUnauthorized, ``, "request failed with status 401"},
		{"json array", http.StatusConflict, `["x"]`, "request failed with status 409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			c := New(srv.URL)

			var out map[string]any
			err := c.Get(context.Background(), "/users/23", nil, &out)

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, tt.status, StatusCode(err))
			assert.Nil(t, out, "failed call must not populate the result")

			var hErr *Error
			require.ErrorAs(t, err, &hErr)
			assert.Equal(t, http.MethodGet, hErr.Method)
			assert.Equal(t, srv.URL+"/users/23", hErr.URL)
		})
	}
}

func TestFailure_MessageContainsStatusWithoutMessageField(t *testing.T) {
	for _, status := range []int{400, 403, 404, 418, 500, 503} {
		t.Run(fmt.Sprint(status), func(t *testing.T) {
			srv, _ := newTestServer(t, status, `{"detail":"nope"}`)
			err := New(srv.URL).Get(context.Background(), "/", nil, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprint(status))
		})
	}
}

func TestFailure_DecodeError(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"data":`)
	c := New(srv.URL)

	var out map[string]any
	err := c.Get(context.Background(), "/users/2", nil, &out)

	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "decode response:"))
	assert.Equal(t, http.StatusOK, StatusCode(err))
}

func TestFailure_Transport(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{}`)
	url := srv.URL
	srv.Close()

	err := New(url).Get(context.Background(), "/users/2", nil, nil)

	require.Error(t, err)
	var hErr *Error
	require.ErrorAs(t, err, &hErr)
	assert.Zero(t, hErr.StatusCode)
	assert.NotNil(t, hErr.Unwrap())
}

func TestFailure_EncodeError(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)

	err := New(srv.URL).Post(context.Background(), "/users", map[string]any{"bad": make(chan int)}, nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "encode request")
	assert.Empty(t, rec.Method, "nothing should have been sent")
}

func TestFailure_IsLoggedWithMethodAndURL(t *testing.T) {
	logs := captureLogs(t)
	srv, _ := newTestServer(t, http.StatusNotFound, `{}`)

	err := New(srv.URL).Delete(context.Background(), "/users/99", nil, nil)

	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, logs.String(), "method=DELETE")
	assert.Contains(t, logs.String(), "url="+srv.URL+"/users/99")
}

func TestSuccess_IsNotLogged(t *testing.T) {
	logs := captureLogs(t)
	srv, _ := newTestServer(t, http.StatusOK, `{}`)

	require.NoError(t, New(srv.URL).Get(context.Background(), "/users/2", nil, nil))
	assert.Empty(t, logs.String())
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := New(srv.URL).Get(ctx, "/slow", nil, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	err := New(srv.URL, WithTimeout(50*time.Millisecond)).Get(context.Background(), "/slow", nil, nil)
	assert.Error(t, err)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv, rec := newTestServer(t, http.StatusOK, `{}`)
	c := New(srv.URL + "/")

	assert.Equal(t, srv.URL, c.BaseURL())
	require.NoError(t, c.Get(context.Background(), "/users/2", nil, nil))
	assert.Equal(t, "/users/2", rec.Path)
}

func TestConcurrentCallsDoNotInterfere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/users/")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]string{"id": id}})
	}))
	defer srv.Close()

	c := New(srv.URL)
	var g errgroup.Group
	results := make([]string, 20)

	for i := range results {
		g.Go(func() error {
			var out struct {
				Data struct {
					ID string `json:"id"`
				} `json:"data"`
			}
			if err := c.Get(context.Background(), fmt.Sprintf("/users/%d", i), nil, &out); err != nil {
				return err
			}
			results[i] = out.Data.ID
			return nil
		})
	}

	require.NoError(t, g.Wait())
	for i, got := range results {
		assert.Equal(t, fmt.Sprint(i), got)
	}
}
