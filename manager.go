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
	"golang.org/x/sync/errgroup"
	"path/filepath"
	"sync"
	"time"
)

// queueLimit 未注册模块的暂存队列上限，超出后静默丢弃
const queueLimit = 100

// DefaultFileLayout 默认日志文件名称的日期格式
const DefaultFileLayout = "2006-01-02"

// WelcomeMessage 注册目标时发送的欢迎消息
const WelcomeMessage = "Adding destination!"

func defaultFileName() string {
	return time.Now().Format(DefaultFileLayout) + ".log"
}

// record 模块注册前暂存的原始消息，时间戳和goroutine编号在提交时已经盖好
type record struct {
	ts       time.Time
	threadID uint64
	level    LogLevel
	function string
	file     string
	line     int
	message  string
}

// Manager 日志目标的注册与路由中心。模块到写入器的绑定唯一，先注册的生效；
// 向未注册模块提交的消息按模块暂存，注册后按照目标当时的过滤级别重放。
// 全部公开方法并发安全，日志提交永远不会返回错误或者panic。
type Manager struct {
	mu sync.Mutex
	// 模块到写入器的绑定，同一次注册的多个模块共享一个写入器
	moduleDest map[string]*Writer
	// 未注册模块的暂存队列，每个模块最多保留queueLimit条
	pending map[string][]record
	// 整体暂停标记，新注册的目标继承该状态
	paused bool
	// 单向的关闭标记
	closed bool

	defaultFolder   string
	defaultLevel    LogLevel
	defaultMode     LogMode
	defaultTag      FileTag
	defaultHandling FileHandling
	defaultMaxSize  int64
	defaultDisplays MessageDisplay
}

func NewManager() *Manager {
	return &Manager{
		moduleDest:      make(map[string]*Writer),
		pending:         make(map[string][]record),
		defaultFolder:   ".",
		defaultLevel:    WarningLevel,
		defaultMode:     OnlyFile,
		defaultTag:      DateTimeTag,
		defaultHandling: SplitFiles,
		defaultMaxSize:  DefaultMaxFileSize,
		defaultDisplays: DisplayDefault,
	}
}

// AddDestination 注册一个日志目标并把指定的模块绑定到它。已经绑定过的模块
// 跳过，至少绑定一个新模块时返回true。fileDest为空时使用当前日期作为文件名，
// 未设置的配置项使用管理器的默认值。注册完成后通过正常的提交路径为每个
// 新绑定的模块发送一条Info级别的欢迎消息，处于暂停状态时跳过欢迎消息。
func (m *Manager) AddDestination(fileDest string, modules []string, level LogLevel, opts ...DestOptions) bool {
	cfg := newDestConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return false
	}

	m.fillDefaultsLocked(cfg)
	if fileDest == "" {
		fileDest = defaultFileName()
	}

	var w *Writer
	var added []string
	for _, module := range modules {
		if _, ok := m.moduleDest[module]; ok {
			continue
		}
		if w == nil {
			w = newWriter(fileDest, level, cfg)
			w.Stop(m.paused)
		}
		m.moduleDest[module] = w
		added = append(added, module)
	}
	paused := m.paused
	m.mu.Unlock()

	if w == nil {
		return false
	}

	if cfg.notify && !paused {
		for _, module := range added {
			m.EnqueueMessage(module, InfoLevel, WelcomeMessage, "", "", 0)
		}
	}

	return true
}

// fillDefaultsLocked 为未设置的配置项填充管理器的默认值
func (m *Manager) fillDefaultsLocked(cfg *DestConfig) {
	if cfg.folder == "" {
		cfg.folder = m.defaultFolder
	}
	if cfg.mode == ModeDefault {
		cfg.mode = m.defaultMode
	}
	if cfg.tag == TagDefault {
		cfg.tag = m.defaultTag
	}
	if cfg.handling == HandlingDefault {
		cfg.handling = m.defaultHandling
	}
	if cfg.maxSize <= 0 {
		cfg.maxSize = m.defaultMaxSize
	}
	if cfg.displays == 0 {
		cfg.displays = m.defaultDisplays
	}
	cfg.normalize()
}

// EnqueueMessage 提交一条消息。模块已经绑定时，先重放该模块暂存的消息，
// 再把本条消息入队；级别低于目标过滤级别的消息直接丢弃。模块未绑定时
// 暂存原始消息，暂存队列达到上限后静默丢弃。file只保留最后一段路径。
func (m *Manager) EnqueueMessage(module string, level LogLevel, message, function, file string, line int) {
	if file != "" {
		file = filepath.Base(file)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}

	r := record{
		ts:       time.Now(),
		threadID: goroutineID(),
		level:    level,
		function: function,
		file:     file,
		line:     line,
		message:  message,
	}

	if w, ok := m.moduleDest[module]; ok {
		if w.Mode() != Disabled && level >= w.Level() {
			m.drainPendingLocked(module, w)
			w.Enqueue(r.ts, r.threadID, module, r.level, r.function, r.file, r.line, r.message)
		}
		return
	}

	if len(m.pending[module]) < queueLimit {
		m.pending[module] = append(m.pending[module], r)
	}
}

// drainPendingLocked 把模块暂存的消息按照目标当前的过滤级别重放到写入器，
// 重放后清空该模块的暂存队列
func (m *Manager) drainPendingLocked(module string, w *Writer) {
	backlog := m.pending[module]
	if len(backlog) == 0 {
		return
	}
	delete(m.pending, module)

	threshold := w.Level()
	for _, r := range backlog {
		if r.level >= threshold {
			w.Enqueue(r.ts, r.threadID, module, r.level, r.function, r.file, r.line, r.message)
		}
	}
}

// logMessage 捕获调用方信息后提交消息，skip是调用方相对captureCaller的栈深度
func (m *Manager) logMessage(skip int, module string, level LogLevel, message string) {
	function, file, line := captureCaller(skip)
	m.EnqueueMessage(module, level, message, function, file, line)
}

// Log 提交一条指定级别的消息，自动捕获调用方的函数、文件和行号
func (m *Manager) Log(module string, level LogLevel, message string) {
	m.logMessage(3, module, level, message)
}

// Logf 格式化并提交一条指定级别的消息
func (m *Manager) Logf(module string, level LogLevel, format string, args ...any) {
	m.logMessage(3, module, level, fmt.Sprintf(format, args...))
}

func (m *Manager) Trace(module, message string) {
	m.logMessage(3, module, TraceLevel, message)
}

func (m *Manager) Tracef(module, format string, args ...any) {
	m.logMessage(3, module, TraceLevel, fmt.Sprintf(format, args...))
}

func (m *Manager) Debug(module, message string) {
	m.logMessage(3, module, DebugLevel, message)
}

func (m *Manager) Debugf(module, format string, args ...any) {
	m.logMessage(3, module, DebugLevel, fmt.Sprintf(format, args...))
}

func (m *Manager) Info(module, message string) {
	m.logMessage(3, module, InfoLevel, message)
}

func (m *Manager) Infof(module, format string, args ...any) {
	m.logMessage(3, module, InfoLevel, fmt.Sprintf(format, args...))
}

func (m *Manager) Warning(module, message string) {
	m.logMessage(3, module, WarningLevel, message)
}

func (m *Manager) Warningf(module, format string, args ...any) {
	m.logMessage(3, module, WarningLevel, fmt.Sprintf(format, args...))
}

func (m *Manager) Error(module, message string) {
	m.logMessage(3, module, ErrorLevel, message)
}

func (m *Manager) Errorf(module, format string, args ...any) {
	m.logMessage(3, module, ErrorLevel, fmt.Sprintf(format, args...))
}

func (m *Manager) Fatal(module, message string) {
	m.logMessage(3, module, FatalLevel, message)
}

func (m *Manager) Fatalf(module, format string, args ...any) {
	m.logMessage(3, module, FatalLevel, fmt.Sprintf(format, args...))
}

// Pause 暂停全部写入器。暂停期间提交的消息保留在队列中，不会丢失
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = true
	for _, w := range m.moduleDest {
		w.Stop(true)
	}
}

// Resume 恢复全部写入器并刷出暂停期间保留的消息
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.paused = false
	for _, w := range m.moduleDest {
		w.Stop(false)
	}
}

// OverwriteLevel 覆盖全部写入器的过滤级别，同时更新管理器的默认级别
func (m *Manager) OverwriteLevel(level LogLevel) {
	if !level.valid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaultLevel = level
	for _, w := range m.moduleDest {
		w.SetLevel(level)
	}
}

// OverwriteMode 覆盖全部写入器的输出模式，同时更新管理器的默认模式
func (m *Manager) OverwriteMode(mode LogMode) {
	if mode == ModeDefault {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaultMode = mode
	for _, w := range m.moduleDest {
		w.SetMode(mode)
	}
}

// OverwriteMaxFileSize 覆盖全部写入器的文件大小阈值，同时更新管理器的默认阈值
func (m *Manager) OverwriteMaxFileSize(size int64) {
	if size <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.defaultMaxSize = size
	for _, w := range m.moduleDest {
		w.SetMaxFileSize(size)
	}
}

// SetDefaultFolder 设置默认的日志目录
func (m *Manager) SetDefaultFolder(folder string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultFolder = folder
}

func (m *Manager) currentDefaultLevel() LogLevel {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaultLevel
}

// SetDefaultLevel 设置默认的过滤级别
func (m *Manager) SetDefaultLevel(level LogLevel) {
	if !level.valid() {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultLevel = level
}

// SetDefaultMode 设置默认的输出模式
func (m *Manager) SetDefaultMode(mode LogMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMode = mode
}

// SetDefaultMaxFileSize 设置默认的文件大小阈值
func (m *Manager) SetDefaultMaxFileSize(size int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultMaxSize = size
}

// SetDefaultFileTag 设置默认的标签类型
func (m *Manager) SetDefaultFileTag(tag FileTag) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultTag = tag
}

// SetDefaultFileHandling 设置默认的文件管理方式
func (m *Manager) SetDefaultFileHandling(handling FileHandling) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultHandling = handling
}

// SetDefaultDisplays 设置默认的日志行渲染掩码
func (m *Manager) SetDefaultDisplays(displays MessageDisplay) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaultDisplays = displays
}

// ClearFileDestinationFolder 删除指定目录的logs子目录下修改时间距今不少于
// days天的日志文件，返回删除的文件数量
func (m *Manager) ClearFileDestinationFolder(folder string, days int) int {
	return clearFolder(folder, days)
}

// Close 关闭管理器。先把全部暂存的消息强制重放到已绑定的写入器，
// 再并发关闭全部写入器，阻塞到关闭前提交的消息全部落盘。重复关闭无效，
// 关闭后提交的消息直接丢弃。
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true

	for module, w := range m.moduleDest {
		m.drainPendingLocked(module, w)
	}
	m.pending = make(map[string][]record)

	seen := make(map[*Writer]struct{}, len(m.moduleDest))
	writers := make([]*Writer, 0, len(m.moduleDest))
	for _, w := range m.moduleDest {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		writers = append(writers, w)
	}
	m.moduleDest = make(map[string]*Writer)
	m.mu.Unlock()

	var eg errgroup.Group
	for _, w := range writers {
		eg.Go(w.Close)
	}

	return eg.Wait()
}
