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

// LogMode 日志输出模式。零值表示未设置，注册时替换为管理器的默认模式。
type LogMode uint8

const (
	// ModeDefault 未设置，使用管理器的默认模式
	ModeDefault LogMode = iota
	// Disabled 完全禁用，消息在入队前直接丢弃
	Disabled
	// OnlyConsole 只输出到控制台，不触碰文件系统
	OnlyConsole
	// OnlyFile 只输出到日志文件
	OnlyFile
	// Full 同时输出到日志文件和控制台
	Full
)

// writesFile 当前模式是否需要写入日志文件
func (m LogMode) writesFile() bool {
	return m == OnlyFile || m == Full
}

// writesConsole 当前模式是否需要输出到控制台
func (m LogMode) writesConsole() bool {
	return m == OnlyConsole || m == Full
}

func (m LogMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case Disabled:
		return "disabled"
	case OnlyConsole:
		return "console"
	case OnlyFile:
		return "file"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("unknown mode(%d)", uint8(m))
	}
}

// ParseMode 解析日志输出模式名称，忽略大小写，用于配置文件的加载
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "disabled":
		return Disabled, nil
	case "console", "onlyconsole":
		return OnlyConsole, nil
	case "file", "onlyfile":
		return OnlyFile, nil
	case "full":
		return Full, nil
	default:
		return ModeDefault, fmt.Errorf("%w: %q", errorx.ErrUnknownMode, s)
	}
}

// FileTag 日志文件重命名时附加的标签类型。零值表示未设置，
// 注册时替换为管理器的默认标签类型。
type FileTag uint8

const (
	// TagDefault 未设置，使用管理器的默认标签类型
	TagDefault FileTag = iota
	// DateTimeTag 使用重命名时刻的日期时间作为标签
	DateTimeTag
	// NumberTag 使用递增的序列号作为标签，探测最小的未占用序号
	NumberTag
)

func (t FileTag) String() string {
	switch t {
	case TagDefault:
		return "default"
	case DateTimeTag:
		return "datetime"
	case NumberTag:
		return "number"
	default:
		return fmt.Sprintf("unknown tag(%d)", uint8(t))
	}
}

// ParseFileTag 解析文件标签类型名称，忽略大小写，用于配置文件的加载
func ParseFileTag(s string) (FileTag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "datetime":
		return DateTimeTag, nil
	case "number":
		return NumberTag, nil
	default:
		return TagDefault, fmt.Errorf("%w: %q", errorx.ErrUnknownFileTag, s)
	}
}

// FileHandling 日志文件的管理方式。零值表示未设置，注册时替换为管理器的默认方式。
type FileHandling uint8

const (
	// HandlingDefault 未设置，使用管理器的默认管理方式
	HandlingDefault FileHandling = iota
	// SingleFile 单文件，保持原始名称，永不轮转
	SingleFile
	// SingleTaggedFile 单文件，创建时在原始名称上附加标签，永不轮转
	SingleTaggedFile
	// SplitFiles 保持原始名称，达到大小阈值时按标签重命名并切分新文件
	SplitFiles
)

func (h FileHandling) String() string {
	switch h {
	case HandlingDefault:
		return "default"
	case SingleFile:
		return "single"
	case SingleTaggedFile:
		return "singletagged"
	case SplitFiles:
		return "split"
	default:
		return fmt.Sprintf("unknown handling(%d)", uint8(h))
	}
}

// ParseFileHandling 解析文件管理方式名称，忽略大小写，用于配置文件的加载
func ParseFileHandling(s string) (FileHandling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return SingleFile, nil
	case "singletagged", "single_tagged":
		return SingleTaggedFile, nil
	case "split":
		return SplitFiles, nil
	default:
		return HandlingDefault, fmt.Errorf("%w: %q", errorx.ErrUnknownFileHandling, s)
	}
}
