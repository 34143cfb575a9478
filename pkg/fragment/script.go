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

package fragment

import (
	"bytes"
	"encoding/json"
	"io"
	"path"
	"regexp"
	"strings"
	"text/template"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
	"github.com/NVIDIA/implindex/pkg/implementors"
)

const (
	scriptExt   = ".js"
	traitPrefix = "trait."
	scriptDir   = "implementors"
)

// assignment matches the left-hand side of implementors["<module>"] = [...].
var assignment = regexp.MustCompile(`implementors\[\s*("(?:[^"\\]|\\.)*")\s*\]\s*=\s*`)

var scriptTemplate = template.Must(template.New("script").Parse(
	`(function() {var implementors = {};
{{range .}}implementors[{{.Key}}] = [{{range .Records}}{{.}},{{end}}];
{{end}}
            if (window.register_implementors) {
                window.register_implementors(implementors);
            } else {
                window.pending_implementors = implementors;
            }
        
})()
`))

// TraitFromPath derives the trait path from a generated script location,
// e.g. implementors/num/trait.Num.js becomes num::Num. Directories below
// "implementors" are crate and module path segments. Without an
// "implementors" directory only the parent directory is used.
func TraitFromPath(p string) (string, error) {
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))
	base := path.Base(p)
	if !strings.HasPrefix(base, traitPrefix) || !strings.HasSuffix(base, scriptExt) {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"not a trait implementors script", map[string]any{"path": p})
	}
	name := strings.TrimSuffix(strings.TrimPrefix(base, traitPrefix), scriptExt)
	if name == "" {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"trait name is empty", map[string]any{"path": p})
	}

	dirs := strings.Split(path.Dir(p), "/")
	start := -1
	for i, d := range dirs {
		if d == scriptDir {
			start = i + 1
		}
	}
	var segs []string
	switch {
	case start >= 0:
		segs = dirs[start:]
	case len(dirs) > 0 && dirs[len(dirs)-1] != "." && dirs[len(dirs)-1] != "":
		segs = dirs[len(dirs)-1:]
	}
	if len(segs) == 0 {
		return "", apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"cannot determine crate from path", map[string]any{"path": p})
	}
	return strings.Join(append(segs, name), "::"), nil
}

// ParseScript extracts the implementor table from a generated script.
// Each implementors["<module>"] assignment contributes one module; the
// array elements are taken as opaque records. A module assigned twice keeps
// the last assignment.
func ParseScript(trait string, data []byte) (*Fragment, error) {
	matches := assignment.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, apperrors.NewWithContext(apperrors.ErrCodeInvalidRequest,
			"no implementors assignment found", map[string]any{"trait": trait})
	}

	f := &Fragment{Trait: trait, Implementors: implementors.ModuleMap{}}
	for _, m := range matches {
		var module string
		if err := json.Unmarshal(data[m[2]:m[3]], &module); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid module key", err)
		}
		literal, err := arrayLiteral(data[m[1]:])
		if err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"invalid implementors array", err, map[string]any{"module": module})
		}
		var records []implementors.Record
		if err := json.Unmarshal(literal, &records); err != nil {
			return nil, apperrors.WrapWithContext(apperrors.ErrCodeInvalidRequest,
				"invalid implementors array", err, map[string]any{"module": module})
		}
		f.Implementors[module] = records
	}

	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// arrayLiteral reads the array literal at the start of src and rewrites it
// as JSON: single-quoted strings become double-quoted, \' escapes are
// dropped and a trailing comma before ] is removed.
func arrayLiteral(src []byte) ([]byte, error) {
	if len(src) == 0 || src[0] != '[' {
		return nil, errUnexpected("expected '['")
	}

	var out bytes.Buffer
	depth := 0
	var quote byte
	lastSignificant := -1

	for i := 0; i < len(src); i++ {
		c := src[i]
		if quote != 0 {
			switch {
			case c == '\\' && i+1 < len(src):
				next := src[i+1]
				i++
				switch {
				case next == '\'':
					out.WriteByte('\'')
				case next == '"' && quote == '\'':
					out.WriteString(`\"`)
				default:
					out.WriteByte('\\')
					out.WriteByte(next)
				}
			case c == quote:
				out.WriteByte('"')
				quote = 0
			case c == '"':
				out.WriteString(`\"`)
			default:
				out.WriteByte(c)
			}
			lastSignificant = out.Len() - 1
			continue
		}

		switch c {
		case '"', '\'':
			quote = c
			out.WriteByte('"')
		case '[':
			depth++
			out.WriteByte(c)
		case ']':
			if lastSignificant >= 0 && out.Bytes()[lastSignificant] == ',' {
				out.Truncate(lastSignificant)
			}
			out.WriteByte(c)
			depth--
			if depth == 0 {
				return out.Bytes(), nil
			}
		case ' ', '\t', '\r', '\n':
			out.WriteByte(c)
			continue
		default:
			out.WriteByte(c)
		}
		lastSignificant = out.Len() - 1
	}
	return nil, errUnexpected("unterminated array")
}

func errUnexpected(msg string) error {
	return apperrors.New(apperrors.ErrCodeInvalidRequest, msg)
}

type scriptModule struct {
	Key     string
	Records []string
}

// WriteScript renders f as a generated script: one assignment per module in
// name order, wrapped so the table is handed to register_implementors when
// the page registry is ready and parked in pending_implementors otherwise.
func WriteScript(w io.Writer, f *Fragment) error {
	if err := f.Validate(); err != nil {
		return err
	}

	modules := make([]scriptModule, 0, len(f.Implementors))
	for _, name := range f.Implementors.Modules() {
		key, err := jsString(name)
		if err != nil {
			return err
		}
		sm := scriptModule{Key: key}
		for _, r := range f.Implementors[name] {
			s, err := jsString(string(r))
			if err != nil {
				return err
			}
			sm.Records = append(sm.Records, s)
		}
		modules = append(modules, sm)
	}

	if err := scriptTemplate.Execute(w, modules); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "failed to render script", err)
	}
	return nil
}

func jsString(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeInternal, "failed to encode string", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
