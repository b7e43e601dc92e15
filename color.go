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

import "fmt"

const (
	TraceColor Color = iota + 30
	DebugColor
	InfoColor
	WarningColor
	ErrorColor
	FatalColor
)

type Color uint8

func (c Color) paint(s string) string {
	return fmt.Sprintf("\x1b[1;%dm%s\x1b[0m", uint8(c), s)
}

// ColorPlugin 控制台日志颜色插件，只作用于控制台回显，文件内容保持原样
type ColorPlugin interface {
	Format(enabled bool, level LogLevel, line string) string
}

type ANSIColorPlugin struct{}

func NewANSIColorPlugin() ColorPlugin {
	return &ANSIColorPlugin{}
}

func (p *ANSIColorPlugin) Format(enabled bool, level LogLevel, line string) string {
	if !enabled {
		return line
	}

	switch level {
	case TraceLevel:
		return TraceColor.paint(line)
	case DebugLevel:
		return DebugColor.paint(line)
	case InfoLevel:
		return InfoColor.paint(line)
	case WarningLevel:
		return WarningColor.paint(line)
	case ErrorLevel:
		return ErrorColor.paint(line)
	case FatalLevel:
		return FatalColor.paint(line)
	default:
	}

	return line
}
