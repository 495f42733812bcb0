// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*
Package debug provides build-tag gated assertions and diagnostic logging for
the search kernels.

Assertions

Building with the assert tag turns on Assert. The kernels use it to check
the binary-search window invariants (0 <= left <= right <= len and
mid < len). Without the tag Assert is an empty function and Enabled is
false, so guarded call sites cost nothing:

	if debug.Enabled {
		debug.Assert(left <= right, "search window inverted")
	}

Logging

Building with the debug tag turns on Log, which writes to stderr with a
"[search_sorted] " prefix. Without the tag Log is a no-op.
*/
package debug
