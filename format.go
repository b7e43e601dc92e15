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
	"strconv"
	"strings"
	"time"
)

// TimestampLayout 日志行时间戳的格式，毫秒精度
const TimestampLayout = "02-01-2006 15:04:05.000"

// formatLine 渲染一条完整的日志行，纯函数，不做任何IO。
// 渲染哪些元素由displays掩码决定，文件名和行号只有在目标的过滤级别
// 不高于DebugLevel时才渲染；文件名和行号缺失或者被掩码排除时，
// 退化为渲染函数名称。行尾固定追加换行符。
func formatLine(displays MessageDisplay, threshold LogLevel, ts time.Time, threadID uint64,
	module string, level LogLevel, function, file string, line int, message string,
) string {
	var b strings.Builder
	b.Grow(len(message) + 64)

	if displays.Has(DisplayLogLevel) {
		b.WriteByte('[')
		b.WriteString(level.String())
		b.WriteByte(']')
	}
	if displays.Has(DisplayModuleName) {
		sep(&b)
		b.WriteByte('[')
		b.WriteString(module)
		b.WriteByte(']')
	}
	if displays.Has(DisplayDateTime) {
		sep(&b)
		b.WriteByte('[')
		b.WriteString(ts.Format(TimestampLayout))
		b.WriteByte(']')
	}
	if displays.Has(DisplayThreadID) {
		sep(&b)
		b.WriteByte('[')
		b.WriteString(strconv.FormatUint(threadID, 10))
		b.WriteByte(']')
	}

	switch {
	case displays.Has(DisplayFile) && displays.Has(DisplayLine) &&
		file != "" && line > 0 && threshold <= DebugLevel:
		sep(&b)
		b.WriteByte('{')
		b.WriteString(file)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(line))
		b.WriteByte('}')
	case displays.Has(DisplayFunction) && function != "":
		sep(&b)
		b.WriteByte('{')
		b.WriteString(function)
		b.WriteByte('}')
	}

	if displays.Has(DisplayMessage) {
		sep(&b)
		b.WriteString(message)
	}
	b.WriteByte('\n')

	return b.String()
}

// sep 在已有内容之后写入一个分隔空格
func sep(b *strings.Builder) {
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
}
