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

// Package num carries the generated implementor table for the num::Num
// trait. Importing it for side effects publishes the table on
// implementors.Global.
package num

import (
	"fmt"

	"github.com/NVIDIA/implindex/pkg/implementors"
)

// Trait is the trait path this table belongs to.
const Trait = "num::Num"

// Module is the crate that contributes the implementors.
const Module = "num"

var producer = implementors.NewProducer(Implementors())

func init() {
	if err := producer.Publish(implementors.Global().For(Trait)); err != nil {
		panic(fmt.Sprintf("num: failed to publish %s implementors: %v", Trait, err))
	}
}

// Implementors returns the table in rendering order.
func Implementors() implementors.ModuleMap {
	return implementors.ModuleMap{
		Module: {
			`impl <a class='trait' href='num/trait.Num.html' title='num::Num'>Num</a> for <a class='struct' href='num/struct.BigUint.html' title='num::BigUint'>BigUint</a>`,
			`impl <a class='trait' href='num/trait.Num.html' title='num::Num'>Num</a> for <a class='struct' href='num/struct.BigInt.html' title='num::BigInt'>BigInt</a>`,
			`impl&lt;T&gt; <a class='trait' href='num/trait.Num.html' title='num::Num'>Num</a> for <a class='struct' href='num_rational/struct.Ratio.html' title='num_rational::Ratio'>Ratio</a>&lt;T&gt; <span class='where'>where T: <a class='trait' href='https://doc.rust-lang.org/nightly/core/clone/trait.Clone.html' title='core::clone::Clone'>Clone</a> + <a class='trait' href='num/trait.Integer.html' title='num::Integer'>Integer</a></span>`,
		},
	}
}

// State reports how far the init-time publication has got.
func State() implementors.State {
	return producer.State()
}
