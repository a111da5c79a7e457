// Package hash provides the content fingerprint for configuration sources.
package hash

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// ErrParse는 해시 텍스트 인코딩이 잘못되었을 때의 sentinel error다.
var ErrParse = errors.New("hash: malformed hash")

// zeroText는 "이전 해시 없음"을 의미하는 all-zero sentinel이다.
const zeroText = "0000000000000000"

// Hash는 설정 소스 내용의 고정폭 fingerprint다. 동등 비교만 의미를 가진다.
type Hash uint64

// Parse는 canonical 텍스트 인코딩(16자리 소문자 hex)을 Hash로 변환한다.
// 빈 문자열과 all-zero sentinel은 "이전 해시 없음"(nil)으로 해석한다.
func Parse(s string) (*Hash, error) {
	if s == "" || s == zeroText {
		return nil, nil
	}
	if len(s) != 16 {
		return nil, fmt.Errorf("hash.Parse: %q: %w", s, ErrParse)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("hash.Parse: %q: %w", s, ErrParse)
	}
	h := Hash(v)
	return &h, nil
}

// String은 canonical 텍스트 인코딩을 반환한다. 제로 값은 sentinel과 일치한다.
func (h Hash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// Digest는 스트리밍 방식으로 fingerprint를 누적 계산한다.
type Digest struct {
	x *xxhash.Digest
}

// NewDigest는 빈 Digest를 생성한다.
func NewDigest() *Digest {
	return &Digest{x: xxhash.New()}
}

// WriteString은 문자열을 digest에 누적한다.
func (d *Digest) WriteString(s string) {
	_, _ = d.x.WriteString(s) // xxhash Write는 실패하지 않는다
}

// Write는 바이트를 digest에 누적한다.
func (d *Digest) Write(b []byte) {
	_, _ = d.x.Write(b)
}

// Sum은 현재까지 누적된 내용의 Hash를 반환한다.
func (d *Digest) Sum() Hash {
	return Hash(d.x.Sum64())
}
