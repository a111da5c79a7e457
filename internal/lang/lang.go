// Package lang executes a source's configuration program against a Shadow.
//
// 프로그램은 goja로 실행되는 JavaScript 조각이다. 호스트 API는 환경 변경과
// feature 선언만 노출한다 — 범용 설정 언어를 만들지 않는다.
//
//	env.get(name)                     // string | null
//	env.set(name, value)              // value가 null이면 unset
//	env.unset(name)
//	env.prependToPathlist(name, elem)
//	env.removeFromPathlist(name, elem)
//	denv.provide(feature)             // 또는 provide(feature, version)
//	denv.expandPath(path)             // ~와 상대 경로를 소스 기준으로 확장
//	denv.sourceDir                    // .denv.d의 절대 경로
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/dop251/goja"

	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/shadow"
)

// JSRuntime은 engine.Runtime의 goja 구현이다.
type JSRuntime struct{}

// New는 JSRuntime을 생성한다.
func New() *JSRuntime {
	return &JSRuntime{}
}

// Run은 소스의 프로그램 조각을 이름순으로 하나의 VM에서 실행한다.
// 실패 시 진단은 여기서 stderr로 출력하고, 호출자에게는 불투명한 에러만
// 반환한다 (engine이 전체 실행을 폐기한다).
func (r *JSRuntime) Run(sh *shadow.Shadow, src *loader.Source) error {
	vm := goja.New()
	if err := bind(vm, sh, src); err != nil {
		return fmt.Errorf("lang.Run: %w", err)
	}

	for _, f := range src.Files {
		prog, err := goja.Compile(f.Name, string(f.Contents), false)
		if err != nil {
			log.Error("denv 프로그램 컴파일 실패", "file", f.Name, "err", err)
			return fmt.Errorf("lang.Run: %s", f.Name)
		}
		if _, err := vm.RunProgram(prog); err != nil {
			log.Error("denv 프로그램 실행 실패", "file", f.Name, "err", err)
			return fmt.Errorf("lang.Run: %s", f.Name)
		}
	}
	return nil
}

func bind(vm *goja.Runtime, sh *shadow.Shadow, src *loader.Source) error {
	env := vm.NewObject()
	if err := env.Set("get", func(name string) goja.Value {
		if v, ok := sh.Get(name); ok {
			return vm.ToValue(v)
		}
		return goja.Null()
	}); err != nil {
		return err
	}
	if err := env.Set("set", func(name string, value goja.Value) {
		if value == nil || goja.IsNull(value) || goja.IsUndefined(value) {
			sh.Unset(name)
			return
		}
		s := value.String()
		sh.Set(name, &s)
	}); err != nil {
		return err
	}
	if err := env.Set("unset", func(name string) { sh.Unset(name) }); err != nil {
		return err
	}
	if err := env.Set("prependToPathlist", func(name, elem string) {
		sh.PrependToPathlist(name, elem)
	}); err != nil {
		return err
	}
	if err := env.Set("removeFromPathlist", func(name, elem string) {
		sh.RemoveFromPathlist(name, elem)
	}); err != nil {
		return err
	}
	if err := vm.Set("env", env); err != nil {
		return err
	}

	denv := vm.NewObject()
	if err := denv.Set("provide", func(feature string, version goja.Value) {
		label := feature
		if version != nil && !goja.IsUndefined(version) && !goja.IsNull(version) {
			label = feature + ":" + version.String()
		}
		sh.AddFeature(label)
	}); err != nil {
		return err
	}
	if err := denv.Set("expandPath", func(p string) string {
		return expandPath(p, src.Dir)
	}); err != nil {
		return err
	}
	if err := denv.Set("sourceDir", src.Dir); err != nil {
		return err
	}
	return vm.Set("denv", denv)
}

// expandPath는 ~를 홈으로, 상대 경로를 소스 디렉토리의 부모 기준으로 확장한다.
func expandPath(p, sourceDir string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
		}
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(filepath.Dir(sourceDir), p))
}
