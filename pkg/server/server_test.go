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

package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/implindex/pkg/implementors"
)

func newBoardServer(opts ...Option) *Server {
	return New(append([]Option{WithBoard(implementors.NewBoard())}, opts...)...)
}

func TestNew(t *testing.T) {
	s := newBoardServer(WithHandler(map[string]http.HandlerFunc{"/test": okHandler}))

	if s.config == nil || s.httpServer == nil || s.rateLimiter == nil {
		t.Fatal("expected config, http server and rate limiter to be initialized")
	}
	if s.board == nil || s.index == nil {
		t.Fatal("expected board and index to be initialized")
	}
	if s.httpServer.ReadHeaderTimeout != s.config.ReadHeaderTimeout {
		t.Errorf("expected read header timeout %v, got %v", s.config.ReadHeaderTimeout, s.httpServer.ReadHeaderTimeout)
	}
}

func TestNew_DefaultsToGlobalBoard(t *testing.T) {
	s := New()
	if s.board != implementors.Global() {
		t.Error("expected the global board by default")
	}
}

func TestHealthEndpoint(t *testing.T) {
	s := newBoardServer()

	w := httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Header().Get("Content-Type") != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", w.Header().Get("Content-Type"))
	}

	w = httptest.NewRecorder()
	s.handleHealth(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
}

func TestReadyEndpoint(t *testing.T) {
	s := newBoardServer()

	tests := []struct {
		name           string
		ready          bool
		expectedStatus int
	}{
		{"ready state", true, http.StatusOK},
		{"not ready state", false, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.setReady(tt.ready)

			w := httptest.NewRecorder()
			s.handleReady(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestAttach_MarksReady(t *testing.T) {
	board := implementors.NewBoard()
	if err := board.Publish("num::Num", implementors.ModuleMap{"num": {"a"}}); err != nil {
		t.Fatal(err)
	}
	s := New(WithBoard(board))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected not ready before attach, got %d", w.Code)
	}

	if err := s.attach(); err != nil {
		t.Fatalf("attach: %v", err)
	}
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected ready after attach, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"traits":1`) {
		t.Errorf("expected one trait in readiness body, got %s", w.Body.String())
	}
}

func TestAttach_ConflictFails(t *testing.T) {
	board := implementors.NewBoard()
	if err := board.For("num::Num").RegisterConsumer(func(implementors.ModuleMap) {}); err != nil {
		t.Fatal(err)
	}
	s := New(WithBoard(board))

	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected start to fail when another consumer owns a trait")
	}
}

func TestGracefulShutdown(t *testing.T) {
	cfg := NewConfig()
	cfg.Address = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 100 * time.Millisecond

	s := New(WithConfig(cfg), WithBoard(implementors.NewBoard()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		if err != nil {
			t.Errorf("expected clean shutdown, got error: %v", err)
		}
	case <-time.After(time.Second):
		t.Error("shutdown timed out")
	}
}

func TestDefaultRootHandler(t *testing.T) {
	s := newBoardServer(WithHandler(map[string]http.HandlerFunc{"/api/v1/test": okHandler}))

	handler := s.config.Handlers["/"]
	if handler == nil {
		t.Fatal("expected default root handler to be created")
	}

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	for _, route := range []string{"/api/v1/test", "GET /v1/implementors", "POST /v1/fragments"} {
		if !strings.Contains(body, route) {
			t.Errorf("expected response to contain %s", route)
		}
	}
}

func TestDefaultRootHandler_Rejects(t *testing.T) {
	s := newBoardServer()

	w := httptest.NewRecorder()
	s.config.Handlers["/"](w, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status %d, got %d", http.StatusMethodNotAllowed, w.Code)
	}
	if w.Header().Get("Allow") != http.MethodGet {
		t.Errorf("expected Allow GET, got %q", w.Header().Get("Allow"))
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestCustomRootHandlerNotOverridden(t *testing.T) {
	customCalled := false
	s := newBoardServer(WithHandler(map[string]http.HandlerFunc{
		"/": func(w http.ResponseWriter, _ *http.Request) {
			customCalled = true
			w.WriteHeader(http.StatusOK)
		},
	}))

	s.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !customCalled {
		t.Error("expected custom root handler to be called, not default")
	}
}

func TestBuiltinRoutesNotOverridden(t *testing.T) {
	called := false
	s := newBoardServer(WithHandler(map[string]http.HandlerFunc{
		pathTraits: func(w http.ResponseWriter, _ *http.Request) {
			called = true
			w.WriteHeader(http.StatusTeapot)
		},
	}))

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, pathTraits, nil))
	if called || w.Code != http.StatusOK {
		t.Errorf("expected built-in traits route, got status %d (custom called: %v)", w.Code, called)
	}
}

func TestWithOptions(t *testing.T) {
	s := newBoardServer(WithName("custom-api-server"), WithVersion("v9.9.9"))

	if s.config.Name != "custom-api-server" {
		t.Errorf("expected server name custom-api-server, got %s", s.config.Name)
	}
	if s.config.Version != "v9.9.9" {
		t.Errorf("expected version v9.9.9, got %s", s.config.Version)
	}
	if doc := s.index.Snapshot(); doc.Metadata["version"] != "v9.9.9" {
		t.Errorf("expected index version v9.9.9, got %q", doc.Metadata["version"])
	}
}

func TestWithConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Name = "test-server"
	cfg.Port = 9090
	cfg.RateLimit = 500

	s := newBoardServer(WithConfig(cfg))

	if s.config.Name != "test-server" || s.config.Port != 9090 || s.config.RateLimit != 500 {
		t.Errorf("expected config to be applied, got %+v", s.config)
	}
	if s.httpServer.Addr != ":9090" {
		t.Errorf("expected addr :9090, got %s", s.httpServer.Addr)
	}
}
