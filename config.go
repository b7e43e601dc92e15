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
	"gopkg.in/yaml.v3"
	"os"
)

// Config 配置文件声明的整体日志设置，顶层字段是管理器的默认值，
// destinations是需要注册的日志目标列表。级别、模式等字段使用名称字符串，
// 解析时忽略大小写。
type Config struct {
	Folder       string        `yaml:"folder"`
	Level        string        `yaml:"level"`
	Mode         string        `yaml:"mode"`
	FileTag      string        `yaml:"file_tag"`
	FileHandling string        `yaml:"file_handling"`
	MaxFileSize  int64         `yaml:"max_file_size"`
	Displays     []string      `yaml:"displays"`
	Destinations []Destination `yaml:"destinations"`
}

// Destination 配置文件中的单个日志目标，未设置的字段在注册时
// 替换为管理器的默认值
type Destination struct {
	File           string   `yaml:"file"`
	Modules        []string `yaml:"modules"`
	Level          string   `yaml:"level"`
	Mode           string   `yaml:"mode"`
	Folder         string   `yaml:"folder"`
	FileTag        string   `yaml:"file_tag"`
	FileHandling   string   `yaml:"file_handling"`
	MaxFileSize    int64    `yaml:"max_file_size"`
	Displays       []string `yaml:"displays"`
	Notify         *bool    `yaml:"notify"`
	EnableCompress bool     `yaml:"enable_compress"`
	CompressLevel  string   `yaml:"compress_level"`
}

// LoadConfig 读取并解析配置文件，解析完成后立即校验，
// 校验失败时不注册任何目标
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验配置的完整性和全部名称字段的合法性
func (c *Config) Validate() error {
	if c.Level != "" {
		if _, err := ParseLevel(c.Level); err != nil {
			return fmt.Errorf("config level: %w", err)
		}
	}
	if c.Mode != "" {
		if _, err := ParseMode(c.Mode); err != nil {
			return fmt.Errorf("config mode: %w", err)
		}
	}
	if c.FileTag != "" {
		if _, err := ParseFileTag(c.FileTag); err != nil {
			return fmt.Errorf("config file tag: %w", err)
		}
	}
	if c.FileHandling != "" {
		if _, err := ParseFileHandling(c.FileHandling); err != nil {
			return fmt.Errorf("config file handling: %w", err)
		}
	}
	if _, err := parseDisplays(c.Displays); err != nil {
		return fmt.Errorf("config displays: %w", err)
	}

	if len(c.Destinations) == 0 {
		return errorx.ErrNoSources
	}

	for i, dest := range c.Destinations {
		if len(dest.Modules) == 0 {
			return fmt.Errorf("destination %d: %w", i, errorx.ErrNoModules)
		}
		if dest.Level != "" {
			if _, err := ParseLevel(dest.Level); err != nil {
				return fmt.Errorf("destination %d level: %w", i, err)
			}
		}
		if dest.Mode != "" {
			if _, err := ParseMode(dest.Mode); err != nil {
				return fmt.Errorf("destination %d mode: %w", i, err)
			}
		}
		if dest.FileTag != "" {
			if _, err := ParseFileTag(dest.FileTag); err != nil {
				return fmt.Errorf("destination %d file tag: %w", i, err)
			}
		}
		if dest.FileHandling != "" {
			if _, err := ParseFileHandling(dest.FileHandling); err != nil {
				return fmt.Errorf("destination %d file handling: %w", i, err)
			}
		}
		if _, err := parseDisplays(dest.Displays); err != nil {
			return fmt.Errorf("destination %d displays: %w", i, err)
		}
		if dest.CompressLevel != "" {
			if _, err := ParseCompressLevel(dest.CompressLevel); err != nil {
				return fmt.Errorf("destination %d compress level: %w", i, err)
			}
		}
	}

	return nil
}

// parseDisplays 解析日志行元素名称列表并合并为掩码，空列表返回零值
func parseDisplays(names []string) (MessageDisplay, error) {
	var displays MessageDisplay
	for _, name := range names {
		d, err := ParseDisplay(name)
		if err != nil {
			return 0, err
		}
		displays |= d
	}

	return displays, nil
}

// Configure 应用一份配置：先更新管理器的默认值，再逐个注册日志目标。
// 目标的注册遵循先注册生效的规则，已经绑定过的模块跳过，不视为错误。
func (m *Manager) Configure(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Folder != "" {
		m.SetDefaultFolder(cfg.Folder)
	}
	if cfg.Level != "" {
		level, _ := ParseLevel(cfg.Level)
		m.SetDefaultLevel(level)
	}
	if cfg.Mode != "" {
		mode, _ := ParseMode(cfg.Mode)
		m.SetDefaultMode(mode)
	}
	if cfg.FileTag != "" {
		tag, _ := ParseFileTag(cfg.FileTag)
		m.SetDefaultFileTag(tag)
	}
	if cfg.FileHandling != "" {
		handling, _ := ParseFileHandling(cfg.FileHandling)
		m.SetDefaultFileHandling(handling)
	}
	if cfg.MaxFileSize > 0 {
		m.SetDefaultMaxFileSize(cfg.MaxFileSize)
	}
	if displays, _ := parseDisplays(cfg.Displays); displays != 0 {
		m.SetDefaultDisplays(displays)
	}

	for _, dest := range cfg.Destinations {
		opts := make([]DestOptions, 0, 8)
		if dest.Folder != "" {
			opts = append(opts, WithFolder(dest.Folder))
		}
		if dest.Mode != "" {
			mode, _ := ParseMode(dest.Mode)
			opts = append(opts, WithMode(mode))
		}
		if dest.FileTag != "" {
			tag, _ := ParseFileTag(dest.FileTag)
			opts = append(opts, WithFileTag(tag))
		}
		if dest.FileHandling != "" {
			handling, _ := ParseFileHandling(dest.FileHandling)
			opts = append(opts, WithFileHandling(handling))
		}
		if dest.MaxFileSize > 0 {
			opts = append(opts, WithMaxFileSize(dest.MaxFileSize))
		}
		if displays, _ := parseDisplays(dest.Displays); displays != 0 {
			opts = append(opts, WithDisplays(displays))
		}
		if dest.Notify != nil {
			opts = append(opts, WithNotify(*dest.Notify))
		}
		if dest.EnableCompress {
			opts = append(opts, WithEnableCompress())
		}
		if dest.CompressLevel != "" {
			clevel, _ := ParseCompressLevel(dest.CompressLevel)
			opts = append(opts, WithCompressionLevel(clevel))
		}

		level := m.currentDefaultLevel()
		if dest.Level != "" {
			level, _ = ParseLevel(dest.Level)
		}

		m.AddDestination(dest.File, dest.Modules, level, opts...)
	}

	return nil
}

// ConfigureFromFile 加载配置文件并应用到管理器
func (m *Manager) ConfigureFromFile(path string) error {
	cfg, err := LoadConfig(path)
	if err != nil {
		return err
	}

	return m.Configure(cfg)
}
