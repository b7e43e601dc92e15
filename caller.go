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

package qlogx

import (
	"bytes"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
)

// captureCaller 捕获日志记录时调用方的基本信息：函数名称、文件名称、所在行数。
// 文件只保留最后一段路径，函数名称去掉包导入路径前缀。
func captureCaller(skip int) (function, file string, line int) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "", "", 0
	}

	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
		if idx := strings.LastIndexByte(function, '/'); idx >= 0 {
			function = function[idx+1:]
		}
	}

	return function, filepath.Base(file), line
}

// goroutineID的解析只需要栈首行"goroutine N [running]:"，64字节足够
var goidBuf = sync.Pool{
	New: func() any {
		buf := make([]byte, 64)
		return &buf
	},
}

var goroutinePrefix = []byte("goroutine ")

// goroutineID 解析当前goroutine的编号，作为日志行中的线程标识，
// 解析失败时返回0
func goroutineID() uint64 {
	bp := goidBuf.Get().(*[]byte)
	defer goidBuf.Put(bp)

	b := *bp
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, goroutinePrefix)
	idx := bytes.IndexByte(b, ' ')
	if idx < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(b[:idx]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
