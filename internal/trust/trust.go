// Package trust manages the allowlist of source directories denv may execute.
package trust

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrUntrusted는 신뢰되지 않은 소스 디렉토리의 프로그램 실행을 거부할 때의
// sentinel error다.
var ErrUntrusted = errors.New("trust: source directory not trusted")

// Store는 신뢰된 소스 디렉토리 목록이다.
type Store struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Entry는 하나의 신뢰 항목이다.
type Entry struct {
	TrustedAt string `json:"trusted_at"`
}

// New는 빈 Store를 생성한다.
func New() *Store {
	return &Store{Version: 1, Entries: make(map[string]Entry)}
}

// Load는 trust 파일을 파싱한다. 파일 없음/파싱 실패 시 빈 Store 반환 (graceful).
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("trust.Load: %w", err)
	}
	var s Store
	if err := json.Unmarshal(data, &s); err != nil {
		return New(), nil
	}
	if s.Entries == nil {
		s.Entries = make(map[string]Entry)
	}
	return &s, nil
}

// IsTrusted는 디렉토리가 신뢰 목록에 있는지 확인한다.
func (s *Store) IsTrusted(dir string) bool {
	_, ok := s.Entries[filepath.Clean(dir)]
	return ok
}

// Trust는 디렉토리를 신뢰 목록에 추가한다.
func (s *Store) Trust(dir string) {
	s.Entries[filepath.Clean(dir)] = Entry{
		TrustedAt: time.Now().Format(time.RFC3339),
	}
}

// Untrust는 디렉토리를 신뢰 목록에서 제거한다. 있었으면 true를 반환한다.
func (s *Store) Untrust(dir string) bool {
	key := filepath.Clean(dir)
	_, ok := s.Entries[key]
	delete(s.Entries, key)
	return ok
}

// Save는 Store를 JSON 파일로 저장한다 (0600 권한).
func (s *Store) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("trust.Save: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("trust.Save: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
