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

// Package serializer encodes and decodes implindex documents.
//
// Output formats are JSON (encoding/json), YAML (gopkg.in/yaml.v3) and a
// human-readable table. Values implementing Tabular control their own
// columns; anything else is flattened into FIELD/VALUE rows.
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatYAML, "")
//	defer w.Close()
//	err := w.Serialize(ctx, idx.Snapshot())
//
// Input is JSON or YAML, read from files (FromFile), byte slices
// (FromBytes) or remote URLs via HTTPReader. RespondJSON is shared by the
// API server handlers.
package serializer
