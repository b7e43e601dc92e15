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
	"io"
	"os"
)

// DestConfig 单个日志目标的配置。未设置的字段在注册时替换为管理器的默认值。
type DestConfig struct {
	// 日志文件所在的目录，日志文件实际存放在该目录的logs子目录下
	folder string
	// 日志输出模式
	mode LogMode
	// 重命名时附加的标签类型
	tag FileTag
	// 文件的管理方式
	handling FileHandling
	// 单个日志文件的大小阈值，单位bytes
	maxSize int64
	// 日志行元素的渲染掩码
	displays MessageDisplay
	// 注册时是否发送一条欢迎消息
	notify bool
	// 控制台回显的输出目标，默认os.Stdout
	console io.Writer
	// 控制台回显是否开启颜色，默认关闭
	enableColor bool
	// 是否压缩轮转后的历史日志文件，默认关闭
	enableCompress bool
	// 压缩的级别，未设置或不合法时使用DefaultCompression
	compressionLevel CompressLevel
}

func newDestConfig() *DestConfig {
	return &DestConfig{notify: true}
}

// normalize 为未设置的字段填充包级别的默认值
func (c *DestConfig) normalize() {
	if c.folder == "" {
		c.folder = "."
	}
	if c.mode == ModeDefault {
		c.mode = OnlyFile
	}
	if c.tag == TagDefault {
		c.tag = DateTimeTag
	}
	if c.handling == HandlingDefault {
		c.handling = SplitFiles
	}
	if c.maxSize <= 0 {
		c.maxSize = DefaultMaxFileSize
	}
	if c.displays == 0 {
		c.displays = DisplayDefault
	}
	if c.console == nil {
		c.console = os.Stdout
	}
	if !c.compressionLevel.valid() {
		c.compressionLevel = DefaultCompression
	}
}

type DestOptions func(*DestConfig)

// WithFolder 设置日志目录，日志文件写入该目录的logs子目录
func WithFolder(folder string) DestOptions {
	return func(c *DestConfig) {
		c.folder = folder
	}
}

// WithMode 设置日志输出模式
func WithMode(mode LogMode) DestOptions {
	return func(c *DestConfig) {
		c.mode = mode
	}
}

// WithFileTag 设置重命名时附加的标签类型
func WithFileTag(tag FileTag) DestOptions {
	return func(c *DestConfig) {
		c.tag = tag
	}
}

// WithFileHandling 设置文件的管理方式
func WithFileHandling(handling FileHandling) DestOptions {
	return func(c *DestConfig) {
		c.handling = handling
	}
}

// WithMaxFileSize 设置单个日志文件的大小阈值，单位bytes
func WithMaxFileSize(size int64) DestOptions {
	return func(c *DestConfig) {
		c.maxSize = size
	}
}

// WithDisplays 设置日志行元素的渲染掩码
func WithDisplays(displays MessageDisplay) DestOptions {
	return func(c *DestConfig) {
		c.displays = displays
	}
}

// WithNotify 注册时是否发送欢迎消息，默认发送
func WithNotify(notify bool) DestOptions {
	return func(c *DestConfig) {
		c.notify = notify
	}
}

// WithConsole 设置控制台回显的输出目标
func WithConsole(w io.Writer) DestOptions {
	return func(c *DestConfig) {
		c.console = w
	}
}

// WithColor 开启控制台回显的颜色
func WithColor() DestOptions {
	return func(c *DestConfig) {
		c.enableColor = true
	}
}

// WithEnableCompress 开启轮转后历史日志文件的压缩
func WithEnableCompress() DestOptions {
	return func(c *DestConfig) {
		c.enableCompress = true
	}
}

// WithCompressionLevel 设置压缩的级别，如果不设置则为DefaultCompression
func WithCompressionLevel(level CompressLevel) DestOptions {
	return func(c *DestConfig) {
		c.compressionLevel = level
	}
}
