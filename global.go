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
	"sync"
)

var (
	stdMu sync.Mutex
	std   *Manager
)

// Default 返回进程级别的默认管理器，首次访问时惰性创建。
// 默认管理器关闭后保持关闭状态，不会重新创建。
func Default() *Manager {
	stdMu.Lock()
	defer stdMu.Unlock()

	if std == nil {
		std = NewManager()
	}
	return std
}

// ReplaceDefault 替换默认管理器并返回之前的实例，主要用于测试
func ReplaceDefault(m *Manager) *Manager {
	stdMu.Lock()
	defer stdMu.Unlock()

	old := std
	std = m
	return old
}

// AddDestination 在默认管理器上注册一个日志目标
func AddDestination(fileDest string, modules []string, level LogLevel, opts ...DestOptions) bool {
	return Default().AddDestination(fileDest, modules, level, opts...)
}

// EnqueueMessage 向默认管理器提交一条消息
func EnqueueMessage(module string, level LogLevel, message, function, file string, line int) {
	Default().EnqueueMessage(module, level, message, function, file, line)
}

// Log 向默认管理器提交一条指定级别的消息，自动捕获调用方信息
func Log(module string, level LogLevel, message string) {
	Default().logMessage(3, module, level, message)
}

// Logf 格式化并向默认管理器提交一条指定级别的消息
func Logf(module string, level LogLevel, format string, args ...any) {
	Default().logMessage(3, module, level, fmt.Sprintf(format, args...))
}

func Trace(module, message string) {
	Default().logMessage(3, module, TraceLevel, message)
}

func Tracef(module, format string, args ...any) {
	Default().logMessage(3, module, TraceLevel, fmt.Sprintf(format, args...))
}

func Debug(module, message string) {
	Default().logMessage(3, module, DebugLevel, message)
}

func Debugf(module, format string, args ...any) {
	Default().logMessage(3, module, DebugLevel, fmt.Sprintf(format, args...))
}

func Info(module, message string) {
	Default().logMessage(3, module, InfoLevel, message)
}

func Infof(module, format string, args ...any) {
	Default().logMessage(3, module, InfoLevel, fmt.Sprintf(format, args...))
}

func Warning(module, message string) {
	Default().logMessage(3, module, WarningLevel, message)
}

func Warningf(module, format string, args ...any) {
	Default().logMessage(3, module, WarningLevel, fmt.Sprintf(format, args...))
}

func Error(module, message string) {
	Default().logMessage(3, module, ErrorLevel, message)
}

func Errorf(module, format string, args ...any) {
	Default().logMessage(3, module, ErrorLevel, fmt.Sprintf(format, args...))
}

func Fatal(module, message string) {
	Default().logMessage(3, module, FatalLevel, message)
}

func Fatalf(module, format string, args ...any) {
	Default().logMessage(3, module, FatalLevel, fmt.Sprintf(format, args...))
}

// Pause 暂停默认管理器的全部写入器
func Pause() {
	Default().Pause()
}

// Resume 恢复默认管理器的全部写入器
func Resume() {
	Default().Resume()
}

// OverwriteLevel 覆盖默认管理器全部写入器的过滤级别
func OverwriteLevel(level LogLevel) {
	Default().OverwriteLevel(level)
}

// OverwriteMode 覆盖默认管理器全部写入器的输出模式
func OverwriteMode(mode LogMode) {
	Default().OverwriteMode(mode)
}

// OverwriteMaxFileSize 覆盖默认管理器全部写入器的文件大小阈值
func OverwriteMaxFileSize(size int64) {
	Default().OverwriteMaxFileSize(size)
}

// ClearFileDestinationFolder 删除默认管理器维护的日志目录下的过期文件
func ClearFileDestinationFolder(folder string, days int) int {
	return Default().ClearFileDestinationFolder(folder, days)
}

// Close 关闭默认管理器，阻塞到关闭前提交的消息全部落盘
func Close() error {
	return Default().Close()
}
