// Package shadow implements the mutable per-invocation environment context.
//
// Shadow는 프로세스 환경 스냅샷 위에 이전 ledger를 되돌려 "unshadow된"
// 기준 환경을 만들고, 설정 프로그램의 변경을 그 위에 누적한다.
// 최종 export/unset 델타는 작업 환경과 프로세스 스냅샷의 차이로 계산된다.
package shadow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbjs97/denv/internal/hash"
	"github.com/hbjs97/denv/internal/undo"
)

// Export는 호출 셸에 전달할 변수 하나의 델타다. Value가 nil이면 unset이다.
type Export struct {
	Name  string
	Value *string
}

// Shadow는 한 번의 invocation 동안만 살아 있는 mutable 컨텍스트다.
// Activation Engine이 독점 소유하며, 직렬화된 ledger + 대상 해시 외에는
// invocation 사이에 어떤 상태도 공유하지 않는다.
type Shadow struct {
	snapshot map[string]string // 프로세스 환경 (read-only 기준선)
	base     map[string]string // snapshot에 이전 ledger를 replay한 unshadow 환경
	env      map[string]string // 설정 프로그램이 변경하는 작업 환경
	ledger   *undo.Data        // 새로 기록되는 ledger
	target   hash.Hash
	features []string
}

// New는 프로세스 환경(os.Environ 형식), 이전 ledger, 대상 해시로 Shadow를 만든다.
func New(environ []string, prev *undo.Data, target hash.Hash) *Shadow {
	snapshot := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.Index(kv, "="); i >= 0 {
			snapshot[kv[:i]] = kv[i+1:]
		}
	}

	base := make(map[string]string, len(snapshot))
	for k, v := range snapshot {
		base[k] = v
	}
	if prev != nil {
		for _, e := range prev.Entries {
			if e.Original == nil {
				delete(base, e.Name)
			} else {
				base[e.Name] = *e.Original
			}
		}
	}

	env := make(map[string]string, len(base))
	for k, v := range base {
		env[k] = v
	}

	return &Shadow{
		snapshot: snapshot,
		base:     base,
		env:      env,
		ledger:   undo.New(),
		target:   target,
	}
}

// Get은 작업 환경에서 변수를 조회한다.
func (s *Shadow) Get(name string) (string, bool) {
	v, ok := s.env[name]
	return v, ok
}

// Set은 변수를 설정하거나(nil이면) 제거한다. 덮어쓰기 전에 pre-shadow
// 원본을 ledger에 기록한다 — 모든 변경은 이 경로를 거쳐야 복원이 보장된다.
func (s *Shadow) Set(name string, value *string) {
	s.record(name)
	if value == nil {
		delete(s.env, name)
	} else {
		s.env[name] = *value
	}
}

// Unset은 변수를 제거한다.
func (s *Shadow) Unset(name string) {
	s.Set(name, nil)
}

// PrependToPathlist는 콜론 구분 목록 변수의 맨 앞에 요소를 추가한다.
// 이미 있는 동일 요소는 제거 후 앞에 붙인다.
func (s *Shadow) PrependToPathlist(name, elem string) {
	parts := s.pathlist(name)
	next := []string{elem}
	for _, p := range parts {
		if p != elem {
			next = append(next, p)
		}
	}
	v := strings.Join(next, ":")
	s.Set(name, &v)
}

// RemoveFromPathlist는 콜론 구분 목록 변수에서 요소를 제거한다.
// 마지막 요소가 제거되면 변수 자체를 unset한다.
func (s *Shadow) RemoveFromPathlist(name, elem string) {
	parts := s.pathlist(name)
	var next []string
	for _, p := range parts {
		if p != elem {
			next = append(next, p)
		}
	}
	if len(next) == 0 {
		s.Unset(name)
		return
	}
	v := strings.Join(next, ":")
	s.Set(name, &v)
}

func (s *Shadow) pathlist(name string) []string {
	v, ok := s.env[name]
	if !ok || v == "" {
		return nil
	}
	return strings.Split(v, ":")
}

// AddFeature는 activation 알림에 표시할 feature 라벨을 등록한다.
func (s *Shadow) AddFeature(label string) {
	for _, f := range s.features {
		if f == label {
			return
		}
	}
	s.features = append(s.features, label)
}

// Features는 등록된 feature 라벨을 정렬해 반환한다.
func (s *Shadow) Features() []string {
	out := append([]string(nil), s.features...)
	sort.Strings(out)
	return out
}

func (s *Shadow) record(name string) {
	if _, ok := s.ledger.Lookup(name); ok {
		return
	}
	if v, ok := s.base[name]; ok {
		v := v
		s.ledger.Record(name, &v)
	} else {
		s.ledger.Record(name, nil)
	}
}

// Exports는 작업 환경과 프로세스 스냅샷의 차이를 이름순으로 반환한다.
// 대상 Source가 없어 프로그램이 실행되지 않은 경우 이 차이는 정확히
// 이전 ledger의 replay, 즉 전체 복원이다.
func (s *Shadow) Exports() []Export {
	names := make(map[string]struct{}, len(s.env)+len(s.snapshot))
	for k := range s.env {
		names[k] = struct{}{}
	}
	for k := range s.snapshot {
		names[k] = struct{}{}
	}

	sorted := make([]string, 0, len(names))
	for k := range names {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	var out []Export
	for _, name := range sorted {
		ev, eok := s.env[name]
		sv, sok := s.snapshot[name]
		switch {
		case eok && (!sok || ev != sv):
			v := ev
			out = append(out, Export{Name: name, Value: &v})
		case !eok && sok:
			out = append(out, Export{Name: name, Value: nil})
		}
	}
	return out
}

// TargetHash는 이번 activation의 대상 해시를 반환한다.
func (s *Shadow) TargetHash() hash.Hash {
	return s.target
}

// Ledger는 새로 기록된 ledger를 반환한다.
func (s *Shadow) Ledger() *undo.Data {
	return s.ledger
}

// FormatData는 새 opaque 상태 문자열(<hash>:<ledger json>)을 만든다.
func (s *Shadow) FormatData() (string, error) {
	j, err := s.ledger.String()
	if err != nil {
		return "", fmt.Errorf("shadow.FormatData: %w", err)
	}
	return s.target.String() + ":" + j, nil
}
