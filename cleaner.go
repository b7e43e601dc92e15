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
	"github.com/robfig/cron/v3"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultLocation 定时清理任务的默认时区
const DefaultLocation = "Asia/Shanghai"

// defaultCleanSchedule 定时清理任务的默认调度表达式，每天凌晨执行，精确到秒
const defaultCleanSchedule = "0 0 0 * * *"

// clearFolder 删除指定目录的logs子目录下修改时间距今不少于days天的文件，
// 返回删除的文件数量。目录不存在时直接返回0。
func clearFolder(folder string, days int) int {
	dir := filepath.Join(folder, "logs")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	now := time.Now()
	cutoff := time.Duration(days) * 24 * time.Hour
	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, ierr := e.Info()
		if ierr != nil {
			continue
		}
		if now.Sub(info.ModTime()) >= cutoff {
			if os.Remove(filepath.Join(dir, e.Name())) == nil {
				removed++
			}
		}
	}

	return removed
}

// Cleaner 日志目录的定时清理器，按照保存周期删除过期的历史日志文件
type Cleaner struct {
	// 日志目录，清理的对象是该目录的logs子目录
	folder string
	// 日志文件的保存周期，单位为天
	days int
	// 时区设置，默认Asia/Shanghai
	location string
	// 调度表达式，默认每天凌晨执行
	schedule string
	cr       *cron.Cron
	// 单例
	once sync.Once
}

type CleanerOptions func(*Cleaner)

// WithCleanerLocation 设置时区，默认是Asia/Shanghai
func WithCleanerLocation(location string) CleanerOptions {
	return func(c *Cleaner) {
		c.location = location
	}
}

// WithCleanerSchedule 设置调度表达式，表达式精确到秒
func WithCleanerSchedule(schedule string) CleanerOptions {
	return func(c *Cleaner) {
		c.schedule = schedule
	}
}

func NewCleaner(folder string, days int, opts ...CleanerOptions) *Cleaner {
	c := &Cleaner{
		folder:   folder,
		days:     days,
		location: DefaultLocation,
		schedule: defaultCleanSchedule,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Sweep 立即执行一次清理，返回删除的文件数量
func (c *Cleaner) Sweep() int {
	return clearFolder(c.folder, c.days)
}

// Start 开启一个异步的定时清理任务，按照调度表达式周期性删除过期的
// 历史日志文件，重复调用无效
func (c *Cleaner) Start() {
	c.once.Do(func() {
		location, err := time.LoadLocation(c.location)
		if err != nil {
			_, _ = os.Stderr.WriteString("load location fail:" + err.Error())
			return
		}

		cr := cron.New(
			cron.WithLocation(location),
			cron.WithSeconds())
		_, err = cr.AddFunc(c.schedule, func() {
			c.Sweep()
		})
		if err != nil {
			_, _ = os.Stderr.WriteString(fmt.Sprintf("failed to add clean cron job, err: %v\n", err))
			return
		}

		c.cr = cr
		cr.Start()
	})
}

// Close 停止定时清理任务并等待执行中的清理完成
func (c *Cleaner) Close() {
	if c.cr == nil {
		return
	}

	ctx := c.cr.Stop()
	<-ctx.Done()
}
