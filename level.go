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

// LogLevel 日志级别，数值越大级别越高。目标只接收不低于自身过滤级别的消息，
// 低于过滤级别的消息直接丢弃，不会进入任何队列。
type LogLevel uint8

const (
	// TraceLevel 最低的日志级别，用于跟踪程序的完整执行路径
	TraceLevel LogLevel = iota
	// DebugLevel 用于开发环境调试的日志级别，生产环境中需要切换其他的级别
	DebugLevel
	// InfoLevel 默认的日志级别
	InfoLevel
	// WarningLevel 出现了危险的情况需要打印日志，存在危险，但不影响系统的正常运行
	WarningLevel
	// ErrorLevel 比WarningLevel更严重，业务出现了明显的错误，系统仍可正常运行
	ErrorLevel
	// FatalLevel 最高的日志级别，出现的错误已经影响到系统的正常运行
	FatalLevel

	_minLevel = TraceLevel
	_maxLevel = FatalLevel
)

// String 返回日志行中使用的日志级别文本
func (l LogLevel) String() string {
	switch l {
	case TraceLevel:
		return "Trace"
	case DebugLevel:
		return "Debug"
	case InfoLevel:
		return "Info"
	case WarningLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal"
	default:
		return fmt.Sprintf("unknown level(%d)", uint8(l))
	}
}

// UpperString 返回日志级别大写格式的字符串内容
func (l LogLevel) UpperString() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARNING"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return fmt.Sprintf("unknown level(%d)", uint8(l))
	}
}

// valid 校验是否是合法的日志级别
func (l LogLevel) valid() bool {
	return l >= _minLevel && l <= _maxLevel
}

// ParseLevel 解析日志级别名称，忽略大小写，用于配置文件的加载
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return TraceLevel, nil
	case "debug":
		return DebugLevel, nil
	case "info":
		return InfoLevel, nil
	case "warning", "warn":
		return WarningLevel, nil
	case "error":
		return ErrorLevel, nil
	case "fatal":
		return FatalLevel, nil
	default:
		return InfoLevel, fmt.Errorf("%w: %q", errorx.ErrUnknownLevel, s)
	}
}
