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

package implementors

import (
	"fmt"
	"slices"
	"strings"

	apperrors "github.com/NVIDIA/implindex/pkg/errors"
)

// Record is one pre-rendered implementor description: a display label and
// the link to the implementor's documentation page. It is opaque here and
// never parsed.
type Record string

// ModuleMap maps a module name to the implementors it contributes for one
// trait. Record order is rendering order.
type ModuleMap map[string][]Record

// Hook is the consumer capability: it absorbs one ModuleMap.
type Hook func(ModuleMap)

// Modules returns the module names of m in sorted order.
func (m ModuleMap) Modules() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the total number of records across all modules.
func (m ModuleMap) Len() int {
	n := 0
	for _, recs := range m {
		n += len(recs)
	}
	return n
}

// Clone returns a deep copy so later changes by the caller cannot reach
// data that has already been published.
func (m ModuleMap) Clone() ModuleMap {
	if m == nil {
		return nil
	}
	out := make(ModuleMap, len(m))
	for name, recs := range m {
		out[name] = slices.Clone(recs)
	}
	return out
}

// Validate checks that m names at least one module and no module name is blank.
func (m ModuleMap) Validate() error {
	if len(m) == 0 {
		return apperrors.New(apperrors.ErrCodeInvalidRequest, "module map is empty")
	}
	for name := range m {
		if strings.TrimSpace(name) == "" {
			return apperrors.New(apperrors.ErrCodeInvalidRequest, "module map contains an empty module name")
		}
	}
	return nil
}

// Mode selects what a coordinator does with publications that arrive
// before its consumer.
type Mode string

const (
	// ModeQueue buffers every early publication in arrival order.
	ModeQueue Mode = "queue"
	// ModeSlot keeps a single pending map; a later publication replaces an
	// earlier one that has not been delivered yet.
	ModeSlot Mode = "slot"
)

// ParseMode converts a flag or environment value into a Mode.
// The empty string selects ModeQueue.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeQueue:
		return ModeQueue, nil
	case ModeSlot:
		return ModeSlot, nil
	default:
		return "", apperrors.New(apperrors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown mode %q (supported: %s, %s)", s, ModeQueue, ModeSlot))
	}
}

// State is the delivery state of one producer.
type State int32

const (
	// StateUnregistered means Publish has not been called.
	StateUnregistered State = iota
	// StateDeliveredImmediately means the consumer was ready and received the map synchronously.
	StateDeliveredImmediately
	// StateBuffered means the map is waiting for the consumer.
	StateBuffered
	// StateDelivered means the map was handed over when the consumer registered.
	StateDelivered
	// StateDropped means a later publication replaced the map before delivery (ModeSlot only).
	StateDropped
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnregistered:
		return "Unregistered"
	case StateDeliveredImmediately:
		return "DeliveredImmediately"
	case StateBuffered:
		return "Buffered"
	case StateDelivered:
		return "Delivered"
	case StateDropped:
		return "Dropped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// IsTerminal reports whether no further transition can happen.
func (s State) IsTerminal() bool {
	return s == StateDeliveredImmediately || s == StateDelivered || s == StateDropped
}

// Stats counts what a coordinator has done so far.
type Stats struct {
	Published            int `json:"published" yaml:"published"`
	DeliveredImmediately int `json:"deliveredImmediately" yaml:"deliveredImmediately"`
	Buffered             int `json:"buffered" yaml:"buffered"`
	DeliveredFromBuffer  int `json:"deliveredFromBuffer" yaml:"deliveredFromBuffer"`
	Dropped              int `json:"dropped" yaml:"dropped"`
	Pending              int `json:"pending" yaml:"pending"`
}
