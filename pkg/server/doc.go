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

// Package server serves an implementor index over HTTP.
//
// The server is the page-wide consumer: Start attaches its index to every
// trait on the board, which drains whatever generated producers published
// during init. Fragments posted later are delivered immediately.
//
// # Usage
//
//	import _ "github.com/NVIDIA/implindex/pkg/fragments/num"
//
//	func main() {
//	    if err := server.Run(); err != nil {
//	        os.Exit(1)
//	    }
//	}
//
// Custom configuration:
//
//	cfg := server.NewConfig()
//	cfg.Port = 9090
//	cfg.RateLimit = 200
//	err := server.Run(server.WithConfig(cfg), server.WithBoard(board))
//
// # API Endpoints
//
//	GET  /v1/traits                    coordinator state per trait
//	GET  /v1/implementors              the whole index
//	GET  /v1/implementors?trait=T      one trait page, 404 when unknown
//	POST /v1/fragments                 publish a JSON fragment
//	GET  /health                       liveness
//	GET  /ready                        readiness, 503 until the index is attached
//	GET  /metrics                      Prometheus metrics
//
// API routes pass through metrics, version negotiation
// (Accept: application/vnd.nvidia.implindex.v1+json), request ID, panic
// recovery, rate limiting and request logging middleware. Errors use
// ErrorResponse with the code of the underlying pkg/errors StructuredError.
//
// # Configuration
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown window (default 30)
//	IMPLINDEX_MODE            queue (default) or slot, read by implementors.Global
//	LOG_LEVEL                 debug, info, warn, error
package server
