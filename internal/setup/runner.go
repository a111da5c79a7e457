package setup

import (
	"fmt"
	"io"
)

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	FormRunner FormRunner
	Out        io.Writer
	RCPath     string // 테스트용. 비어있으면 셸별 기본 경로.
}

// Run은 setup 플로우를 실행한다: 셸 선택 → 확인 → hook 설치.
func (r *Runner) Run() error {
	detected := DetectShell()
	shellType, err := r.FormRunner.RunShellSelect(detected)
	if err != nil {
		return err
	}

	rcPath := r.RCPath
	if rcPath == "" {
		rcPath = ShellRCPath(shellType)
	}
	if rcPath == "" {
		return fmt.Errorf("setup.Run: 지원하지 않는 셸: %s", shellType)
	}

	if HookInstalled(rcPath) {
		fmt.Fprintf(r.Out, "hook이 이미 설치되어 있습니다: %s\n", rcPath)
		return nil
	}

	ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s에 denv hook을 추가할까요?", rcPath))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(r.Out, "설치를 취소했습니다.")
		return nil
	}

	if err := InstallShellHook(shellType, rcPath); err != nil {
		return err
	}

	fmt.Fprintf(r.Out, "셸 hook이 설치되었습니다: %s\n", rcPath)
	fmt.Fprintln(r.Out, "새 셸을 열거나 RC 파일을 다시 로드하세요.")
	return nil
}
