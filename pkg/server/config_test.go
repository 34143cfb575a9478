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
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		cfg := parseConfig()

		if cfg.Name != name {
			t.Errorf("expected name %s, got %s", name, cfg.Name)
		}
		if cfg.Address != "" {
			t.Errorf("expected empty address, got %s", cfg.Address)
		}
		if cfg.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Port)
		}
		if cfg.RateLimit != 100 || cfg.RateLimitBurst != 200 {
			t.Errorf("expected rate limit 100/200, got %v/%d", cfg.RateLimit, cfg.RateLimitBurst)
		}
		if cfg.CacheMaxAge != 60*time.Second {
			t.Errorf("expected cache max age 60s, got %v", cfg.CacheMaxAge)
		}
		if cfg.ReadHeaderTimeout != 5*time.Second {
			t.Errorf("expected read header timeout 5s, got %v", cfg.ReadHeaderTimeout)
		}
		if cfg.ShutdownTimeout != 30*time.Second {
			t.Errorf("expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
		}
	})

	tests := []struct {
		name         string
		env          map[string]string
		wantPort     int
		wantShutdown time.Duration
	}{
		{"port from env", map[string]string{EnvPort: "9090"}, 9090, 30 * time.Second},
		{"invalid port keeps default", map[string]string{EnvPort: "invalid"}, 8080, 30 * time.Second},
		{"negative port keeps default", map[string]string{EnvPort: "-1"}, 8080, 30 * time.Second},
		{"shutdown from env", map[string]string{EnvShutdownTimeout: "5"}, 8080, 5 * time.Second},
		{"zero shutdown keeps default", map[string]string{EnvShutdownTimeout: "0"}, 8080, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := parseConfig()
			if cfg.Port != tt.wantPort {
				t.Errorf("expected port %d, got %d", tt.wantPort, cfg.Port)
			}
			if cfg.ShutdownTimeout != tt.wantShutdown {
				t.Errorf("expected shutdown %v, got %v", tt.wantShutdown, cfg.ShutdownTimeout)
			}
		})
	}
}
