package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/hbjs97/denv/internal/loader"
)

// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
var ErrConfig = errors.New("config: invalid configuration")

// Config는 denv 설정 파일의 최상위 구조체다. 설정 파일은 선택 사항이며,
// 없으면 기본값으로 동작한다 (프롬프트 hook은 설정 없이도 항상 동작해야 한다).
type Config struct {
	Version int    `toml:"version"`
	Quiet   bool   `toml:"quiet"`    // activation 알림 억제
	NoColor bool   `toml:"no_color"` // 터미널 알림 색상 비활성화
	DirName string `toml:"dir_name"` // 설정 디렉토리 이름 (기본 ".denv.d")
}

// Default는 기본 설정을 반환한다.
func Default() *Config {
	return &Config{Version: 1, DirName: loader.DefaultDirName}
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
// 파일이 없으면 기본 설정을 반환하고, 파싱 실패는 ErrConfig로 보고한다.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w: %v", ErrConfig, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.DirName == "" {
		c.DirName = loader.DefaultDirName
	}
}
