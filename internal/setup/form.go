package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// FormRunner는 setup의 인터랙티브 프롬프트를 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunShellSelect는 hook을 설치할 셸 선택 UI를 표시한다.
	RunShellSelect(detected string) (string, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

// RunShellSelect는 셸 선택 UI를 표시한다. 감지된 셸이 기본값이다.
func (h *HuhFormRunner) RunShellSelect(detected string) (string, error) {
	selected := detected
	sel := huh.NewSelect[string]().
		Title("hook을 설치할 셸").
		Options(huh.NewOptions("zsh", "bash", "fish")...).
		Value(&selected)

	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", fmt.Errorf("setup.RunShellSelect: %w", err)
	}
	return selected, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	ok := true
	confirm := huh.NewConfirm().Title(message).Value(&ok)
	if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return ok, nil
}
