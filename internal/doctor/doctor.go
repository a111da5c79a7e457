package doctor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hbjs97/denv/internal/cmdexec"
	"github.com/hbjs97/denv/internal/config"
	"github.com/hbjs97/denv/internal/engine"
	"github.com/hbjs97/denv/internal/output"
	"github.com/hbjs97/denv/internal/setup"
	"github.com/hbjs97/denv/internal/trust"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// CheckShellHook은 감지된 셸의 RC 파일에 hook이 설치되어 있는지 확인한다.
func CheckShellHook() DiagResult {
	shellType := setup.DetectShell()
	rcPath := setup.ShellRCPath(shellType)
	if rcPath == "" {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusWarn,
			Message: fmt.Sprintf("지원하지 않는 셸: %s", shellType),
			Fix:     "zsh, bash, fish 중 하나에서 denv setup 실행",
		}
	}
	if !setup.HookInstalled(rcPath) {
		return DiagResult{
			Name:    "shell_hook",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s에 hook 없음", rcPath),
			Fix:     "denv setup 실행",
		}
	}
	return DiagResult{
		Name:    "shell_hook",
		Status:  StatusOK,
		Message: fmt.Sprintf("hook 설치됨: %s", rcPath),
	}
}

// CheckShellBinary는 감지된 셸 바이너리가 실제로 응답하는지 확인한다.
// RC 파일 검사와 별개로, 감지가 죽은 셸을 가리키면 hook도 돌지 않는다.
func CheckShellBinary(ctx context.Context, cmdr cmdexec.Commander) DiagResult {
	shellType := setup.DetectShell()
	out, err := cmdr.Run(ctx, shellType, "--version")
	if err != nil {
		return DiagResult{
			Name:    "shell_binary",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 실행 실패: %v", shellType, err),
			Fix:     "SHELL 환경 변수와 셸 설치 상태 확인",
		}
	}
	version := strings.TrimSpace(string(out))
	if i := strings.IndexByte(version, '\n'); i >= 0 {
		version = version[:i]
	}
	return DiagResult{
		Name:    "shell_binary",
		Status:  StatusOK,
		Message: version,
	}
}

// CheckTrustStore는 trust 파일을 읽을 수 있는지 확인한다.
func CheckTrustStore(path string) DiagResult {
	s, err := trust.Load(path)
	if err != nil {
		return DiagResult{
			Name:    "trust_store",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 파일 권한 확인", path),
		}
	}
	return DiagResult{
		Name:    "trust_store",
		Status:  StatusOK,
		Message: fmt.Sprintf("신뢰된 디렉토리 %d개", len(s.Entries)),
	}
}

// CheckConfig는 설정 파일이 유효한지 확인한다. 파일 없음은 정상이다.
func CheckConfig(path string) DiagResult {
	if _, err := config.Load(path); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 수정 또는 삭제", path),
		}
	}
	return DiagResult{
		Name:    "config",
		Status:  StatusOK,
		Message: "설정 유효",
	}
}

// CheckStateVar는 셸이 넘겨주는 상태 변수가 파싱 가능한지 확인한다.
// 변수가 없으면 hook이 아직 한 번도 돌지 않았다는 뜻이라 경고만 한다.
func CheckStateVar() DiagResult {
	data, ok := os.LookupEnv(output.DataVar)
	if !ok {
		return DiagResult{
			Name:    "state_var",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 미설정 (hook이 아직 실행되지 않음)", output.DataVar),
			Fix:     "새 셸을 열거나 RC 파일 다시 로드",
		}
	}
	if _, _, err := engine.ParseState(data); err != nil {
		return DiagResult{
			Name:    "state_var",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 손상: %v", output.DataVar, err),
			Fix:     fmt.Sprintf("unset %s 후 새 프롬프트", output.DataVar),
		}
	}
	return DiagResult{
		Name:    "state_var",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 파싱 가능", output.DataVar),
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmdr cmdexec.Commander, cfgPath, trustPath string) []DiagResult {
	return []DiagResult{
		CheckShellHook(),
		CheckShellBinary(ctx, cmdr),
		CheckTrustStore(trustPath),
		CheckConfig(cfgPath),
		CheckStateVar(),
	}
}
