// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestGetJSON_Decodes(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"name":"sundial"}`)
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "test/0.1", &p)
	require.NoError(t, err)
	assert.Equal(t, "sundial", p.Name)
	assert.Equal(t, "test/0.1", gotUA)
}

func TestGetJSON_HTTPStatusIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &p)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.False(t, IsUpstreamFormat(err))
	assert.Contains(t, err.Error(), "HTTP 502")
}

func TestGetJSON_TransportFailureIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	var p payload
	err := GetJSON(context.Background(), http.DefaultClient, url, "", &p)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
}

func TestGetJSON_MalformedBodyIsFormatError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<html>not json</html>`)
	}))
	defer ts.Close()

	var p payload
	err := GetJSON(context.Background(), ts.Client(), ts.URL, "", &p)
	require.Error(t, err)
	assert.True(t, IsUpstreamFormat(err))
	assert.False(t, IsNetwork(err))
}

func TestGetJSONAnyStatus_DecodesErrorDocument(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"name":"missing"}`)
	}))
	defer ts.Close()

	var p payload
	err := GetJSONAnyStatus(context.Background(), ts.Client(), ts.URL, "", &p)
	require.NoError(t, err)
	assert.Equal(t, "missing", p.Name)
}

func TestGetJSONAnyStatus_NonJSONErrorIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `<html>oops</html>`)
	}))
	defer ts.Close()

	var p payload
	err := GetJSONAnyStatus(context.Background(), ts.Client(), ts.URL, "", &p)
	require.Error(t, err)
	assert.True(t, IsNetwork(err))
	assert.Contains(t, err.Error(), "HTTP 500")
}

func TestGetJSONAnyStatus_MalformedOKBodyIsFormatError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"name":`)
	}))
	defer ts.Close()

	var p payload
	err := GetJSONAnyStatus(context.Background(), ts.Client(), ts.URL, "", &p)
	require.Error(t, err)
	assert.True(t, IsUpstreamFormat(err))
}
