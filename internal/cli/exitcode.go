package cli

import (
	"errors"

	"github.com/hbjs97/denv/internal/hash"
	"github.com/hbjs97/denv/internal/undo"
)

// ExitCode는 denv의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다. 변경 없음(출력 없음)도 성공이다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 일반 에러다.
	ExitGeneral ExitCode = 1
	// ExitEval는 설정 프로그램 실행 실패다.
	ExitEval ExitCode = 2
	// ExitParse는 상태 문자열(해시/ledger) 손상이다.
	ExitParse ExitCode = 3
	// ExitUntrusted는 신뢰되지 않은 소스 실행 거부다.
	ExitUntrusted ExitCode = 4
	// ExitConfigError는 설정 파일 오류다.
	ExitConfigError ExitCode = 5
)

// MapExitCode는 sentinel error를 기반으로 적절한 종료 코드를 반환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrEval):
		return ExitEval
	case errors.Is(err, hash.ErrParse), errors.Is(err, undo.ErrParse):
		return ExitParse
	case errors.Is(err, ErrUntrusted):
		return ExitUntrusted
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
