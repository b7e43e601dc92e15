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
	"compress/gzip"
	"fmt"
	"github.com/TimeWtr/qlogx/errorx"
	"io"
	"os"
	"strings"
)

type CompressLevel int

const (
	NoCompression      CompressLevel = gzip.NoCompression
	BestSpeed          CompressLevel = gzip.BestSpeed
	BestCompression    CompressLevel = gzip.BestCompression
	DefaultCompression CompressLevel = gzip.DefaultCompression
	HuffmanOnly        CompressLevel = gzip.HuffmanOnly
)

func (l CompressLevel) valid() bool {
	switch l {
	case BestSpeed, BestCompression, DefaultCompression, HuffmanOnly:
		return true
	default:
		return false
	}
}

func (l CompressLevel) Int() int {
	return int(l)
}

// ParseCompressLevel 解析压缩级别名称，忽略大小写，用于配置文件的加载
func ParseCompressLevel(s string) (CompressLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "speed":
		return BestSpeed, nil
	case "best":
		return BestCompression, nil
	case "default":
		return DefaultCompression, nil
	case "huffman":
		return HuffmanOnly, nil
	default:
		return DefaultCompression, fmt.Errorf("%w: %q", errorx.ErrCompressLevel, s)
	}
}

// compressFile 将轮转后的历史日志文件压缩为gzip格式，压缩成功后删除原始文件。
// 生成的文件名是在原始名称上追加.gz后缀。
func compressFile(path string, level CompressLevel) error {
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	dst, err := os.OpenFile(path+".gz", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return err
	}

	zw, err := gzip.NewWriterLevel(dst, level.Int())
	if err != nil {
		_ = dst.Close()
		return err
	}

	if _, err = io.Copy(zw, src); err != nil {
		_ = zw.Close()
		_ = dst.Close()
		return err
	}

	if err = zw.Close(); err != nil {
		_ = dst.Close()
		return err
	}

	if err = dst.Close(); err != nil {
		return err
	}

	return os.Remove(path)
}
