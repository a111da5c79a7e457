// Package loader discovers a directory's configuration source.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hbjs97/denv/internal/hash"
)

// DefaultDirName은 설정 디렉토리의 기본 이름이다.
const DefaultDirName = ".denv.d"

// SourceFile은 설정 디렉토리 안의 프로그램 조각 하나다.
type SourceFile struct {
	Name     string
	Contents []byte
}

// Source는 발견되었지만 아직 실행되지 않은 설정 프로그램이다.
// Files는 이름순으로 정렬되어 있어 실행 순서와 해시가 결정적이다.
type Source struct {
	Dir   string
	Files []SourceFile
}

// Load는 cwd에서 파일시스템 루트까지 올라가며 dirName 디렉토리를 찾는다.
// 같은 디렉토리 내용이면 항상 같은 Source를 반환한다 (결정적).
// 발견하지 못하면 (nil, nil)을 반환한다.
func Load(cwd, dirName string) (*Source, error) {
	dir, err := filepath.Abs(cwd)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: %w", err)
	}

	for {
		candidate := filepath.Join(dir, dirName)
		info, err := os.Stat(candidate)
		if err == nil && info.IsDir() {
			return loadDir(candidate)
		}
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loader.Load: %w", err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func loadDir(dir string) (*Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("loader.Load: %w", err)
	}

	src := &Source{Dir: dir}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".js") {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("loader.Load: %w", err)
		}
		src.Files = append(src.Files, SourceFile{Name: e.Name(), Contents: contents})
	}

	sort.Slice(src.Files, func(i, j int) bool {
		return src.Files[i].Name < src.Files[j].Name
	})
	return src, nil
}

// Hash는 파일 이름과 내용을 정렬 순서대로 누적한 fingerprint를 반환한다.
func (s *Source) Hash() hash.Hash {
	d := hash.NewDigest()
	for _, f := range s.Files {
		d.WriteString(f.Name)
		d.Write(f.Contents)
	}
	return d.Sum()
}
