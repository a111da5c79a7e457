// Package output renders the environment delta for the calling shell.
package output

import (
	"fmt"
	"io"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/hbjs97/denv/internal/shadow"
)

// DataVar는 호출 셸이 opaque 상태 문자열을 보관하는 변수 이름이다.
const DataVar = "__denv_data"

// Porcelain 인코딩의 opcode와 구분자. 레코드는
// <opcode> 0x1F <name> 0x1F <value> 0x1E 형태다.
const (
	OpSetUnexported = byte(0x01) // 상태 문자열 pseudo-record
	OpSetExported   = byte(0x02)
	OpUnset         = byte(0x03)
	FieldSep        = byte(0x1F)
	RecordSep       = byte(0x1E)
)

// Mode는 출력 인코딩 선택이다.
type Mode int

const (
	// ModePosix는 bash/zsh/sh용 export/unset 라인을 출력한다.
	ModePosix Mode = iota
	// ModeFish는 fish의 set 문법으로 출력한다.
	ModeFish
	// ModePorcelain는 기계 파싱용 바이너리-세이프 인코딩으로 출력한다.
	ModePorcelain
)

// Apply는 선택된 모드로 델타와 새 상태 문자열을 w에 렌더링한다.
// 출력은 해당 셸이 중간 파싱 없이 그대로 평가할 수 있어야 한다.
func Apply(w io.Writer, mode Mode, exports []shadow.Export, data string) error {
	switch mode {
	case ModeFish:
		return fish(w, exports, data)
	case ModePorcelain:
		return porcelain(w, exports, data)
	default:
		return posix(w, exports, data)
	}
}

func posix(w io.Writer, exports []shadow.Export, data string) error {
	q, err := posixQuote(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s=%s\n", DataVar, q); err != nil {
		return fmt.Errorf("output.Apply: %w", err)
	}
	for _, e := range exports {
		if e.Value == nil {
			if _, err := fmt.Fprintf(w, "unset %s\n", e.Name); err != nil {
				return fmt.Errorf("output.Apply: %w", err)
			}
			continue
		}
		q, err := posixQuote(*e.Value)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "export %s=%s\n", e.Name, q); err != nil {
			return fmt.Errorf("output.Apply: %w", err)
		}
	}
	return nil
}

func fish(w io.Writer, exports []shadow.Export, data string) error {
	if _, err := fmt.Fprintf(w, "set -g %s %s\n", DataVar, fishQuote(data)); err != nil {
		return fmt.Errorf("output.Apply: %w", err)
	}
	for _, e := range exports {
		switch {
		case e.Value == nil:
			if _, err := fmt.Fprintf(w, "set -e %s\n", e.Name); err != nil {
				return fmt.Errorf("output.Apply: %w", err)
			}
		case e.Name == "PATH":
			// fish의 PATH는 리스트다: 콜론 구분 값을 요소별로 다시 quote한다.
			segs := strings.Split(*e.Value, ":")
			quoted := make([]string, len(segs))
			for i, s := range segs {
				quoted[i] = fishQuote(s)
			}
			if _, err := fmt.Fprintf(w, "set -gx %s %s\n", e.Name, strings.Join(quoted, " ")); err != nil {
				return fmt.Errorf("output.Apply: %w", err)
			}
		default:
			if _, err := fmt.Fprintf(w, "set -gx %s %s\n", e.Name, fishQuote(*e.Value)); err != nil {
				return fmt.Errorf("output.Apply: %w", err)
			}
		}
	}
	return nil
}

func porcelain(w io.Writer, exports []shadow.Export, data string) error {
	// 후행 record separator는 출력하지만, 파서는 그 존재에 의존하면 안 된다.
	if _, err := fmt.Fprintf(w, "%c%c%s%c%s%c", OpSetUnexported, FieldSep, DataVar, FieldSep, data, RecordSep); err != nil {
		return fmt.Errorf("output.Apply: %w", err)
	}
	for _, e := range exports {
		var err error
		if e.Value == nil {
			_, err = fmt.Fprintf(w, "%c%c%s%c%c", OpUnset, FieldSep, e.Name, FieldSep, RecordSep)
		} else {
			_, err = fmt.Fprintf(w, "%c%c%s%c%s%c", OpSetExported, FieldSep, e.Name, FieldSep, *e.Value, RecordSep)
		}
		if err != nil {
			return fmt.Errorf("output.Apply: %w", err)
		}
	}
	return nil
}

// posixQuote는 셸이 값을 byte 단위로 동일하게 재현하도록 quote한다.
func posixQuote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("output.Apply: quote %q: %w", s, err)
	}
	return q, nil
}

// fishQuote는 fish의 single-quote 규칙(\\와 \'만 escape)으로 quote한다.
func fishQuote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `'`, `\'`)
	return "'" + s + "'"
}
