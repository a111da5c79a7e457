// Package engine implements the activation decision for one invocation.
//
// 흐름: 이전 상태 파싱 → 대상 Source 발견 → 해시 비교 →
// 필요할 때만 설정 프로그램 실행 → 새 상태 직렬화.
// 설정이 그대로면 해시 비교 외에는 아무 일도 하지 않는다 (멱등성).
package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hbjs97/denv/internal/hash"
	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/shadow"
	"github.com/hbjs97/denv/internal/trust"
	"github.com/hbjs97/denv/internal/undo"
)

// ErrEval는 설정 프로그램 실행 실패의 sentinel error다. 상세 진단은
// 런타임이 이미 stderr에 출력했으므로 여기서는 불투명하게만 전달한다.
var ErrEval = errors.New("engine: configuration evaluation failed")

// Runtime은 설정 프로그램을 실행하는 collaborator의 경계다.
// 실패 시 스스로 진단을 출력하고 불투명한 에러만 반환해야 한다.
type Runtime interface {
	Run(sh *shadow.Shadow, src *loader.Source) error
}

// Engine은 한 번의 invocation에 대한 activation 판정과 실행을 담당한다.
type Engine struct {
	Runtime Runtime
	Trust   *trust.Store // nil이면 신뢰 검사를 하지 않는다
	DirName string       // 비어 있으면 loader.DefaultDirName
}

// splitState는 opaque 상태 문자열을 해시 필드와 ledger JSON으로 나눈다.
// 첫 콜론 앞이 해시 필드이고, 뒤가 ledger JSON이다 (없으면 빈 ledger).
func splitState(data string) (hashPart, ledgerPart string) {
	if i := strings.Index(data, ":"); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}

// ParseState는 opaque 상태 문자열을 (이전 해시, ledger)로 분해한다.
// 두 필드를 모두 검증한다 — 진단용(status, doctor)이며, activation 경로는
// ledger가 실제로 필요해질 때까지 파싱을 미룬다.
func ParseState(data string) (*hash.Hash, *undo.Data, error) {
	hashPart, ledgerPart := splitState(data)

	prev, err := hash.Parse(hashPart)
	if err != nil {
		return nil, nil, fmt.Errorf("engine.ParseState: %w", err)
	}
	ledger, err := undo.Parse(ledgerPart)
	if err != nil {
		return nil, nil, fmt.Errorf("engine.ParseState: %w", err)
	}
	return prev, ledger, nil
}

// Load는 activation 여부를 판정하고, 필요하면 설정 프로그램을 실행한 Shadow를
// 반환한다. 변경이 없으면 (nil, false, nil)이다 — 출력할 것도, 할 일도 없다.
// 두 번째 반환값은 프로그램이 실제로 실행되었는지다 (false면 순수 복원).
func (e *Engine) Load(data string, environ []string, cwd string) (*shadow.Shadow, bool, error) {
	hashPart, ledgerPart := splitState(data)
	prev, err := hash.Parse(hashPart)
	if err != nil {
		return nil, false, fmt.Errorf("engine.Load: %w", err)
	}

	target, err := loader.Load(cwd, e.dirName())
	if err != nil {
		return nil, false, err
	}

	var targetHash hash.Hash
	if target != nil {
		targetHash = target.Hash()
	}

	switch {
	case prev == nil && target == nil:
		// shadowing이 적용된 적도, 적용할 것도 없다.
		return nil, false, nil
	case prev != nil && target != nil && *prev == targetHash:
		// 마지막 activation 이후 설정이 그대로다.
		return nil, false, nil
	}

	// ledger는 activation이나 복원이 실제로 일어날 때만 필요하다.
	// no-op 경로에서는 손상된 ledger도 문제가 되지 않는다.
	ledger, err := undo.Parse(ledgerPart)
	if err != nil {
		return nil, false, fmt.Errorf("engine.Load: %w", err)
	}

	sh := shadow.New(environ, ledger, targetHash)

	if target == nil {
		// shadowing 전체 제거: ledger replay만으로 복원 델타가 만들어진다.
		return sh, false, nil
	}

	if e.Trust != nil && !e.Trust.IsTrusted(target.Dir) {
		return nil, false, fmt.Errorf("engine.Load: %s: %w", target.Dir, trust.ErrUntrusted)
	}

	if err := e.Runtime.Run(sh, target); err != nil {
		// 런타임이 이미 진단을 출력했다. 부분 적용 없이 전체를 버린다.
		return nil, false, fmt.Errorf("engine.Load: %w", ErrEval)
	}
	return sh, true, nil
}

func (e *Engine) dirName() string {
	if e.DirName == "" {
		return loader.DefaultDirName
	}
	return e.DirName
}
