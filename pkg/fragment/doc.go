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

// Package fragment reads and writes the generated implementor fragments a
// documentation build emits, one per trait and module.
//
// A fragment is either the generated script itself:
//
//	(function() {var implementors = {};
//	implementors["num"] = ["impl Num for BigUint", ...];
//	if (window.register_implementors) { ... } else { window.pending_implementors = implementors; }
//	})()
//
// or the same table as a JSON or YAML document:
//
//	trait: num::Num
//	implementors:
//	  num:
//	    - impl Num for BigUint
//
// Records are carried as opaque strings. Load and LoadAll accept local
// paths and http(s) URLs; WriteScript renders a Fragment back to script form.
package fragment
