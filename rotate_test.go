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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRotateIfFull_DateTime_Tag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	rs := newRotateStrategy(path, DateTimeTag, SplitFiles, 32, false, DefaultCompression)
	defer func() {
		_ = rs.close()
	}()

	payload := strings.Repeat("x", 40) + "\n"
	require.NoError(t, rs.appendLine(payload))

	newName, err := rs.rotateIfFull()
	require.NoError(t, err)
	require.NotEmpty(t, newName)
	assert.Regexp(t, `app_\d{2}_\d{2}_\d{2}__\d{2}_\d{2}_\d{2}\.log$`, newName)

	// 轮转只是重命名，历史内容必须原样保留
	data, err := os.ReadFile(newName)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))

	// 后续追加在原始路径上生成新文件
	require.NoError(t, rs.appendLine("fresh\n"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fresh\n", string(data))
}

func TestRotateIfFull_Number_Tag_Smallest_Free(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	// 序号1已被占用，轮转应该探测到序号2
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app(1).log"), []byte("occupied\n"), 0644))

	rs := newRotateStrategy(path, NumberTag, SplitFiles, 16, false, DefaultCompression)
	defer func() {
		_ = rs.close()
	}()
	require.NoError(t, rs.appendLine(strings.Repeat("y", 20)+"\n"))

	newName, err := rs.rotateIfFull()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app(2).log"), newName)

	data, err := os.ReadFile(filepath.Join(dir, "app(1).log"))
	require.NoError(t, err)
	assert.Equal(t, "occupied\n", string(data))
}

func TestRotateIfFull_Below_Threshold_Noop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	rs := newRotateStrategy(path, DateTimeTag, SplitFiles, 1024, false, DefaultCompression)
	defer func() {
		_ = rs.close()
	}()
	require.NoError(t, rs.appendLine("tiny\n"))

	newName, err := rs.rotateIfFull()
	require.NoError(t, err)
	assert.Empty(t, newName)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRotateIfFull_Single_Handling_Never_Rotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	rs := newRotateStrategy(path, DateTimeTag, SingleFile, 8, false, DefaultCompression)
	defer func() {
		_ = rs.close()
	}()

	for i := 0; i < 3; i++ {
		require.NoError(t, rs.appendLine(strings.Repeat("z", 16)+"\n"))
		newName, err := rs.rotateIfFull()
		require.NoError(t, err)
		assert.Empty(t, newName)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSingleTaggedFile_Name_Decoration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	rs := newRotateStrategy(path, NumberTag, SingleTaggedFile, 1024, false, DefaultCompression)
	require.NoError(t, rs.appendLine("first strategy\n"))
	require.NoError(t, rs.close())

	_, err := os.Stat(filepath.Join(dir, "app(1).log"))
	assert.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// 同一个基础名称再次启动时探测下一个空闲序号
	rs2 := newRotateStrategy(path, NumberTag, SingleTaggedFile, 1024, false, DefaultCompression)
	require.NoError(t, rs2.appendLine("second strategy\n"))
	require.NoError(t, rs2.close())

	_, err = os.Stat(filepath.Join(dir, "app(2).log"))
	assert.NoError(t, err)
}

func TestSingleTaggedFile_DateTime_Name(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	rs := newRotateStrategy(path, DateTimeTag, SingleTaggedFile, 1024, false, DefaultCompression)
	require.NoError(t, rs.appendLine("tagged\n"))
	require.NoError(t, rs.close())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^app_\d{2}_\d{2}_\d{2}__\d{2}_\d{2}_\d{2}\.log$`, entries[0].Name())
}

func TestRotateIfFull_Compress_Rotated(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	rs := newRotateStrategy(path, NumberTag, SplitFiles, 16, true, BestSpeed)
	defer func() {
		_ = rs.close()
	}()

	payload := strings.Repeat("a", 32) + "\n"
	require.NoError(t, rs.appendLine(payload))

	newName, err := rs.rotateIfFull()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app(1).log.gz"), newName)

	// 压缩成功后明文文件被移除
	_, err = os.Stat(filepath.Join(dir, "app(1).log"))
	assert.True(t, os.IsNotExist(err))

	f, err := os.Open(newName)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.NoError(t, zr.Close())
	assert.Equal(t, payload, string(data))
}

func TestParseCompressLevel(t *testing.T) {
	tests := []struct {
		input string
		want  CompressLevel
	}{
		{"speed", BestSpeed},
		{"Best", BestCompression},
		{"default", DefaultCompression},
		{"huffman", HuffmanOnly},
	}

	for _, tc := range tests {
		level, err := ParseCompressLevel(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, level)
	}

	_, err := ParseCompressLevel("zstd")
	assert.ErrorIs(t, err, errorx.ErrCompressLevel)
}

func TestTaggedName_Sequence_Exhausted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	for seq := 1; seq <= maxSequenceProbe; seq++ {
		name := filepath.Join(dir, fmt.Sprintf("app(%d).log", seq))
		require.NoError(t, os.WriteFile(name, nil, 0644))
	}

	_, err := taggedName(path, NumberTag)
	assert.ErrorIs(t, err, errorx.ErrSequenceExhausted)
}

func TestTaggedName_DateTime_Collision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	// 标签精度只到秒，占用当前秒的目标名称后必然触发冲突
	var collided bool
	for i := 0; i < 5; i++ {
		name, err := taggedName(path, DateTimeTag)
		if err != nil {
			collided = true
			break
		}
		require.NoError(t, os.WriteFile(name, nil, 0644))
	}
	assert.True(t, collided)
}

func TestSetMaxSize_Takes_Effect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")
	rs := newRotateStrategy(path, NumberTag, SplitFiles, 1<<20, false, DefaultCompression)
	defer func() {
		_ = rs.close()
	}()
	require.NoError(t, rs.appendLine(strings.Repeat("b", 64)+"\n"))

	newName, err := rs.rotateIfFull()
	require.NoError(t, err)
	assert.Empty(t, newName)

	rs.SetMaxSize(32)
	newName, err = rs.rotateIfFull()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "app(1).log"), newName)
}
