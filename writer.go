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
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// entry 待写入队列中的单条记录，行内容在入队时已经渲染完成，
// 级别只用于控制台回显的着色
type entry struct {
	level LogLevel
	line  string
}

// Writer 单个日志目标的异步写入器。生产方入队只做渲染和追加，不做任何IO；
// 消费协程整体换出队列作为一个批次，每个批次最多轮转一次，然后追加批次内容。
//
// 生命周期：创建后处于未启动状态，启动后在运行和暂停之间切换，关闭是单向的，
// 关闭前入队的消息在关闭返回时已经全部落盘。
type Writer struct {
	mu      sync.Mutex
	pending []entry
	// 唤醒信号，容量为1，多次入队合并为一次唤醒
	wake chan struct{}
	quit chan struct{}
	done chan struct{}

	// 目标的过滤级别，消息级别不低于该级别时才会被接收
	level LogLevel
	// 日志输出模式
	mode LogMode
	// 日志行元素的渲染掩码
	displays MessageDisplay
	// 暂停标记，暂停期间入队的消息保留在队列中，不唤醒消费协程
	stopped bool
	// 消费协程是否已经启动
	started bool
	// 单向的关闭标记
	closed bool

	rs *RotateStrategy
	// 控制台回显的输出目标
	console io.Writer
	// 控制台颜色插件
	cp ColorPlugin
	// 控制台回显是否开启颜色
	enableColor bool
}

// NewWriter 创建一个独立的日志写入器并启动消费协程，fileDest为空时使用
// 当前日期作为文件名。通过管理器注册目标时不需要直接使用本构造函数。
func NewWriter(fileDest string, level LogLevel, opts ...DestOptions) *Writer {
	cfg := newDestConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	cfg.normalize()

	w := newWriter(fileDest, level, cfg)
	w.start()

	return w
}

// newWriter 根据已经解析完成的配置创建写入器，不启动消费协程
func newWriter(fileDest string, level LogLevel, cfg *DestConfig) *Writer {
	if fileDest == "" {
		fileDest = defaultFileName()
	}
	path := filepath.Join(cfg.folder, "logs", fileDest)

	w := &Writer{
		wake:        make(chan struct{}, 1),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		level:       level,
		mode:        cfg.mode,
		displays:    cfg.displays,
		rs:          newRotateStrategy(path, cfg.tag, cfg.handling, cfg.maxSize, cfg.enableCompress, cfg.compressionLevel),
		console:     cfg.console,
		cp:          NewANSIColorPlugin(),
		enableColor: cfg.enableColor,
	}

	if cfg.mode.writesFile() {
		w.ensureDir()
	}

	return w
}

// ensureDir 确保日志目录存在，创建失败只输出诊断信息，后续写入时还会重试
func (w *Writer) ensureDir() {
	if err := os.MkdirAll(w.rs.dir, 0755); err != nil {
		_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to create log dir: %s, err: %v\n", w.rs.dir, err))
	}
}

// Level 返回目标当前的过滤级别
func (w *Writer) Level() LogLevel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.level
}

// SetLevel 覆盖目标的过滤级别
func (w *Writer) SetLevel(level LogLevel) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.level = level
}

// Mode 返回目标当前的输出模式
func (w *Writer) Mode() LogMode {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mode
}

// SetMode 覆盖目标的输出模式。切换到写文件的模式时确保日志目录存在，
// 切换到非禁用模式时确保消费协程已经启动。
func (w *Writer) SetMode(mode LogMode) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.mode = mode
	if mode.writesFile() {
		w.ensureDir()
	}
	if mode != Disabled && !w.stopped {
		w.startLocked()
		w.signalWakeLocked()
	}
}

// SetMaxFileSize 覆盖单个日志文件的大小阈值
func (w *Writer) SetMaxFileSize(size int64) {
	w.rs.SetMaxSize(size)
}

// Stop 设置暂停标记。恢复时唤醒消费协程，把暂停期间保留的消息刷出
func (w *Writer) Stop(stop bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.stopped = stop
	if !stop {
		w.startLocked()
		w.signalWakeLocked()
	}
}

// Stopped 返回目标是否处于暂停状态
func (w *Writer) Stopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

// Enqueue 渲染一条日志行并追加到待写入队列。目标处于禁用模式或者已经关闭时
// 直接丢弃；暂停期间只追加不唤醒，消息保留在队列中等待恢复。
func (w *Writer) Enqueue(ts time.Time, threadID uint64, module string, level LogLevel,
	function, file string, line int, message string,
) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || w.mode == Disabled {
		return
	}

	text := formatLine(w.displays, w.level, ts, threadID, module, level, function, file, line, message)
	w.pending = append(w.pending, entry{level: level, line: text})

	if !w.stopped {
		w.signalWakeLocked()
	}
}

// start 启动消费协程，重复调用无效
func (w *Writer) start() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.startLocked()
}

func (w *Writer) startLocked() {
	if w.started || w.closed || w.mode == Disabled {
		return
	}

	w.started = true
	go w.run()
}

func (w *Writer) signalWakeLocked() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// run 消费协程的主循环，被唤醒后整体换出队列写入，收到关闭信号后
// 完成最后一个批次再退出
func (w *Writer) run() {
	defer close(w.done)

	for {
		select {
		case <-w.quit:
			w.drain(true)
			return
		case <-w.wake:
			w.drain(false)
		}
	}
}

// drain 换出当前队列作为一个批次并写入。暂停期间的普通唤醒直接返回，
// 关闭时的最终批次不受暂停标记影响。
func (w *Writer) drain(final bool) {
	w.mu.Lock()
	if !final && w.stopped {
		w.mu.Unlock()
		return
	}
	batch := w.pending
	w.pending = nil
	mode := w.mode
	console := w.console
	enableColor := w.enableColor
	w.mu.Unlock()

	if len(batch) == 0 || mode == Disabled {
		return
	}

	if mode.writesFile() {
		w.writeBatch(batch)
	}

	if mode.writesConsole() && console != nil {
		for _, e := range batch {
			_, _ = io.WriteString(console, w.cp.Format(enableColor, e.level, e.line))
		}
	}
}

// writeBatch 把一个批次追加到日志文件，批次开始前最多轮转一次，
// 轮转成功后先写入一条指向历史文件的标记行。写入失败不致命，
// 本批次剩余的行丢弃。
func (w *Writer) writeBatch(batch []entry) {
	newName, err := w.rs.rotateIfFull()
	if err != nil {
		_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to rotate log file, err: %v\n", err))
	}
	if newName != "" {
		marker := fmt.Sprintf("%s - Previous log %s\n", time.Now().Format(TimestampLayout), newName)
		if werr := w.rs.appendLine(marker); werr != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to write rotate marker, err: %v\n", werr))
		}
	}

	for _, e := range batch {
		if werr := w.rs.appendLine(e.line); werr != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to write log file, err: %v\n", werr))
			return
		}
	}
}

// Close 关闭写入器并阻塞等待关闭前入队的消息全部落盘，重复关闭无效。
// 消费协程从未启动时由当前协程同步完成最后一次刷出。
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	started := w.started
	w.mu.Unlock()

	close(w.quit)
	if started {
		<-w.done
	} else {
		w.drain(true)
	}

	return w.rs.close()
}
