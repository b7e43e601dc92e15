// Copyright 2026 TimeWtr
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package errorx

import "errors"

var (
	ErrUnknownLevel        = errors.New("unknown log level")
	ErrUnknownMode         = errors.New("unknown log mode")
	ErrUnknownFileTag      = errors.New("unknown file tag")
	ErrUnknownFileHandling = errors.New("unknown file handling")
	ErrUnknownDisplay      = errors.New("unknown display option")
)

var (
	ErrSequenceExhausted = errors.New("rotate sequence numbers exhausted")
	ErrCompressLevel     = errors.New("invalid compression level")
)

var (
	ErrNoModules = errors.New("destination has no modules")
	ErrNoSources = errors.New("config has no destinations")
)
