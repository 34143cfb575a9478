// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testData struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func TestRespondJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusCreated, testData{Message: "ok", Code: 201})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got testData
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Message)
}

func TestRespondJSON_EncodingError(t *testing.T) {
	w := httptest.NewRecorder()
	RespondJSON(w, http.StatusOK, map[string]any{"bad": make(chan int)})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewHTTPReader_Defaults(t *testing.T) {
	r := NewHTTPReader()
	assert.Equal(t, HTTPReaderUserAgent, r.UserAgent)
	require.NotNil(t, r.Client)
	assert.Equal(t, r.Timeout, r.Client.Timeout)
}

func TestNewHTTPReader_Options(t *testing.T) {
	client := &http.Client{}
	r := NewHTTPReader(
		WithUserAgent("test-agent"),
		WithTimeout(3*time.Second),
		WithClient(client),
	)
	assert.Equal(t, "test-agent", r.UserAgent)
	assert.Same(t, client, r.Client)
	assert.Equal(t, 3*time.Second, client.Timeout)
}

func TestHTTPReader_Read(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	data, err := NewHTTPReader().Read(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))
	assert.Equal(t, HTTPReaderUserAgent, gotUA)
}

func TestHTTPReader_Read_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r := NewHTTPReader()

	_, err := r.Read(context.Background(), srv.URL)
	assert.Error(t, err)

	_, err = r.Read(context.Background(), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Read(ctx, srv.URL)
	assert.Error(t, err)
}
