package cli

import (
	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/engine"
	"github.com/hbjs97/denv/internal/trust"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrEval는 설정 프로그램 실행이 실패했을 때의 sentinel error다.
	ErrEval = engine.ErrEval
	// ErrUntrusted는 신뢰되지 않은 소스 실행이 거부될 때의 sentinel error다.
	ErrUntrusted = trust.ErrUntrusted
	// ErrConfig는 설정 파일 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
)
