// Package embedded 提供嵌入资源的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 只有 data/（病例内容）被嵌入；assets/（音频、模型、字体）从磁盘读取，
// 缺失时由调用方降级处理。
//
// 使用前必须调用 Init() 初始化。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotInitialized Init 之前访问嵌入资源
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	dataFS      fs.FS
	initialized bool
)

// Init 设置嵌入的 data 文件系统
// 必须在 main() 开始时、任何资源加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = true
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	return initialized
}

// normalize 统一为正斜杠并去掉 "./" 前缀
func normalize(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "./")
}

func checkData(path string) error {
	if !initialized {
		return ErrNotInitialized
	}
	if !strings.HasPrefix(path, "data/") {
		return fmt.Errorf("not an embedded path: %s (must start with 'data/')", path)
	}
	return nil
}

// Open 打开嵌入文件，路径必须以 "data/" 开头
func Open(path string) (fs.File, error) {
	path = normalize(path)
	if err := checkData(path); err != nil {
		return nil, err
	}
	return dataFS.Open(path)
}

// ReadFile 读取嵌入文件，路径必须以 "data/" 开头
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if err := checkData(path); err != nil {
		return nil, err
	}
	return fs.ReadFile(dataFS, path)
}

// Exists 检查嵌入文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}

// ReadDir 读取嵌入目录
func ReadDir(path string) ([]fs.DirEntry, error) {
	path = normalize(path)
	if err := checkData(path); err != nil {
		return nil, err
	}
	return fs.ReadDir(dataFS, path)
}

// ReadFileOrDisk data/ 路径优先读取嵌入资源，其余路径（以及嵌入资源中不存在的文件）从磁盘读取
func ReadFileOrDisk(path string) ([]byte, error) {
	p := normalize(path)
	if initialized && strings.HasPrefix(p, "data/") {
		data, err := fs.ReadFile(dataFS, p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return os.ReadFile(path)
}
