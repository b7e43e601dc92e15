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
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// FileTagLayout 日期时间标签的格式，用于轮转后的文件重命名
const FileTagLayout = "02_01_06__15_04_05"

// DefaultMaxFileSize 单个日志文件的默认大小阈值，单位bytes
const DefaultMaxFileSize int64 = 1024 * 1024

// maxSequenceProbe 序列号标签的探测上限，探测完仍未找到空闲序号时放弃本次轮转
const maxSequenceProbe = 1000

// RotateStrategy 日志文件的轮转策略，持有文件句柄并跟踪当前文件大小。
// 除maxSize外的全部状态只属于消费协程，不加锁。
type RotateStrategy struct {
	// 当前日志文件的完整路径，SingleTaggedFile方式下首次打开时附加标签
	fileDest string
	// 日志文件所在的目录
	dir string
	// 重命名时附加的标签类型
	tag FileTag
	// 文件的管理方式
	handling FileHandling
	// 日志轮转的阈值，运行期间可以被整体覆盖
	maxSize atomic.Int64
	// 是否压缩轮转后的历史日志文件
	enableCompress bool
	// 压缩的级别
	compressionLevel CompressLevel
	// 文件句柄，惰性打开
	logout *os.File
	// 当前的日志大小
	currentSize int64
}

func newRotateStrategy(fileDest string, tag FileTag, handling FileHandling,
	maxSize int64, enableCompress bool, level CompressLevel,
) *RotateStrategy {
	r := &RotateStrategy{
		fileDest:         fileDest,
		dir:              filepath.Dir(fileDest),
		tag:              tag,
		handling:         handling,
		enableCompress:   enableCompress,
		compressionLevel: level,
	}
	r.maxSize.Store(maxSize)

	return r
}

// SetMaxSize 覆盖轮转阈值，任意协程可调用
func (r *RotateStrategy) SetMaxSize(size int64) {
	r.maxSize.Store(size)
}

// ensureOpen 惰性打开日志文件并读取当前大小，目录不存在时先创建。
// SingleTaggedFile方式在首次打开前完成一次性的名称标签附加。
func (r *RotateStrategy) ensureOpen() error {
	if r.logout != nil {
		return nil
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return err
	}

	if r.handling == SingleTaggedFile {
		name, err := taggedName(r.fileDest, r.tag)
		if err != nil {
			return err
		}
		r.fileDest = name
		r.handling = SingleFile
	}

	logout, err := os.OpenFile(r.fileDest, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	r.logout = logout
	r.currentSize = 0
	if stat, serr := logout.Stat(); serr == nil {
		r.currentSize = stat.Size()
	}

	return nil
}

// rotateIfFull 检查当前文件大小是否已经达到轮转阈值，达到阈值时把现有文件
// 重命名为附加标签的名称，后续写入会在原始路径上生成新文件。返回重命名后的
// 文件名称，未轮转时返回空串。重命名失败不致命，继续在超限的文件上追加。
func (r *RotateStrategy) rotateIfFull() (string, error) {
	maxSize := r.maxSize.Load()
	if r.handling != SplitFiles || maxSize <= 0 {
		return "", nil
	}
	if r.logout == nil || r.currentSize < maxSize {
		return "", nil
	}

	newName, err := taggedName(r.fileDest, r.tag)
	if err != nil {
		return "", err
	}

	_ = r.logout.Close()
	r.logout = nil

	if err = os.Rename(r.fileDest, newName); err != nil {
		return "", err
	}

	if r.enableCompress {
		if cerr := compressFile(newName, r.compressionLevel); cerr != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to compress rotated file: %s, err: %v\n", newName, cerr))
		} else {
			newName += ".gz"
		}
	}

	return newName, nil
}

// appendLine 追加一条已经渲染完成的日志行并累加文件大小
func (r *RotateStrategy) appendLine(line string) error {
	if err := r.ensureOpen(); err != nil {
		return err
	}

	n, err := r.logout.WriteString(line)
	r.currentSize += int64(n)

	return err
}

func (r *RotateStrategy) close() error {
	if r.logout == nil {
		return nil
	}

	err := r.logout.Close()
	r.logout = nil

	return err
}

// taggedName 计算附加标签后的文件名称。日期时间标签使用当前时刻，
// 已存在同名文件时报错放弃；序列号标签探测最小的未占用序号，
// 探测达到上限时报错放弃。
func taggedName(fileDest string, tag FileTag) (string, error) {
	ext := filepath.Ext(fileDest)
	base := fileDest[:len(fileDest)-len(ext)]

	if tag == NumberTag {
		for seq := 1; seq <= maxSequenceProbe; seq++ {
			name := fmt.Sprintf("%s(%d)%s", base, seq, ext)
			if _, err := os.Stat(name); os.IsNotExist(err) {
				return name, nil
			}
		}
		return "", fmt.Errorf("%w: %s", errorx.ErrSequenceExhausted, fileDest)
	}

	name := fmt.Sprintf("%s_%s%s", base, time.Now().Format(FileTagLayout), ext)
	if _, err := os.Stat(name); err == nil {
		return "", fmt.Errorf("rotate target already exists: %s", name)
	}

	return name, nil
}
