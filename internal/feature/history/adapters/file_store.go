// Package adapters はhistoryフィーチャーの保存先実装を提供します。
package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"history_loader/internal/feature/history/usecase"
)

// FileStore は銘柄ごとに "<dir>/<symbol>.txt" へデータを書き出します。
type FileStore struct {
	dir string
}

var _ usecase.HistoryStore = (*FileStore)(nil)

// NewFileStore は指定ディレクトリに書き込む FileStore を生成します。
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path は銘柄の出力ファイルパスを返します。
func (s *FileStore) Path(symbol string) string {
	return filepath.Join(s.dir, symbol+".txt")
}

// Save はディレクトリを必要に応じて作成し、ファイルを上書き保存します。
func (s *FileStore) Save(_ context.Context, symbol, data string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %s: %w", s.dir, err)
	}
	path := s.Path(symbol)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
