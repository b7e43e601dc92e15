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
	"fmt"
	"github.com/TimeWtr/qlogx/errorx"
	"strings"
)

// MessageDisplay 日志行元素的位掩码，控制一条日志渲染哪些元素。
// 零值表示未设置，注册时替换为管理器的默认掩码。
type MessageDisplay uint8

const (
	// DisplayLogLevel 渲染日志级别
	DisplayLogLevel MessageDisplay = 1 << iota
	// DisplayModuleName 渲染模块名称
	DisplayModuleName
	// DisplayDateTime 渲染毫秒精度的时间戳
	DisplayDateTime
	// DisplayThreadID 渲染提交消息的goroutine编号
	DisplayThreadID
	// DisplayFunction 渲染调用方的函数名称
	DisplayFunction
	// DisplayFile 渲染调用方的文件名称
	DisplayFile
	// DisplayLine 渲染调用方的行号
	DisplayLine
	// DisplayMessage 渲染消息主体
	DisplayMessage

	// DisplayDefault 默认的渲染掩码，不包含函数名称
	DisplayDefault = DisplayLogLevel | DisplayModuleName | DisplayDateTime |
		DisplayThreadID | DisplayFile | DisplayLine | DisplayMessage
	// DisplayFull 渲染全部元素
	DisplayFull MessageDisplay = 0xFF
)

// Has 校验掩码是否包含指定的元素
func (m MessageDisplay) Has(flag MessageDisplay) bool {
	return m&flag == flag
}

// ParseDisplay 解析单个日志行元素名称，忽略大小写，用于配置文件的加载
func ParseDisplay(s string) (MessageDisplay, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "level":
		return DisplayLogLevel, nil
	case "module":
		return DisplayModuleName, nil
	case "datetime":
		return DisplayDateTime, nil
	case "threadid", "thread_id":
		return DisplayThreadID, nil
	case "function":
		return DisplayFunction, nil
	case "file":
		return DisplayFile, nil
	case "line":
		return DisplayLine, nil
	case "message":
		return DisplayMessage, nil
	case "default":
		return DisplayDefault, nil
	case "full":
		return DisplayFull, nil
	default:
		return 0, fmt.Errorf("%w: %q", errorx.ErrUnknownDisplay, s)
	}
}
