// Package undo holds the record of pre-shadow variable values.
package undo

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrParse는 ledger JSON이 손상되었을 때의 sentinel error다.
// 호출 셸이 저장한 상태가 깨졌다는 뜻이므로 조용히 복구하지 않는다.
var ErrParse = errors.New("undo: malformed ledger")

// Entry는 하나의 shadow 대상 변수의 원래 값이다.
// Original이 nil이면 shadowing 이전에 변수가 없었다는 뜻이다.
type Entry struct {
	Name     string  `json:"name"`
	Original *string `json:"original"`
}

// Data는 shadowing 적용 직전의 환경을 기록한 ordered ledger다.
// 호출 셸이 왕복시키는 opaque 상태 문자열에만 실려 다니고, 디스크에는 남지 않는다.
type Data struct {
	Entries []Entry `json:"entries,omitempty"`
}

// New는 빈 ledger를 생성한다.
func New() *Data {
	return &Data{}
}

// Parse는 직렬화된 ledger를 파싱한다. 빈 문자열은 빈 ledger다.
func Parse(s string) (*Data, error) {
	if s == "" {
		return New(), nil
	}
	var d Data
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return nil, fmt.Errorf("undo.Parse: %w", ErrParse)
	}
	return &d, nil
}

// Record는 변수의 pre-shadow 원본을 기록한다. 같은 변수에 대한
// 첫 기록만 유효하다 (이후의 Set은 이미 shadow된 값을 덮는 것이므로).
func (d *Data) Record(name string, original *string) {
	for _, e := range d.Entries {
		if e.Name == name {
			return
		}
	}
	d.Entries = append(d.Entries, Entry{Name: name, Original: original})
}

// Lookup은 변수의 ledger 항목을 조회한다.
func (d *Data) Lookup(name string) (*Entry, bool) {
	for i := range d.Entries {
		if d.Entries[i].Name == name {
			return &d.Entries[i], true
		}
	}
	return nil, false
}

// String은 ledger를 상태 문자열에 실을 JSON으로 직렬화한다.
func (d *Data) String() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("undo.String: %w", err)
	}
	return string(b), nil
}
