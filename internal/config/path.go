package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// 相对路径的查找位置：当前目录，然后是可执行文件所在目录
func searchDirs() []string {
	dirs := []string{""}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}

// resolvePath 返回第一个存在的普通文件；都找不到时包装 os.ErrNotExist
func resolvePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty config path: %w", os.ErrNotExist)
	}

	var tried []string
	try := func(p string) (string, bool) {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", false
		}
		tried = append(tried, abs)
		info, err := os.Stat(abs)
		return abs, err == nil && info.Mode().IsRegular()
	}

	if filepath.IsAbs(path) {
		if abs, ok := try(path); ok {
			return abs, nil
		}
		return "", fmt.Errorf("config %s: %w", path, os.ErrNotExist)
	}
	for _, dir := range searchDirs() {
		// 可执行文件目录下也接受只放文件名
		for _, p := range []string{filepath.Join(dir, path), filepath.Join(dir, filepath.Base(path))} {
			if abs, ok := try(p); ok {
				return abs, nil
			}
		}
	}
	return "", fmt.Errorf("config %s not found in %v: %w", path, tried, os.ErrNotExist)
}
