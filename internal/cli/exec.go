package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/engine"
	"github.com/hbjs97/denv/internal/lang"
	"github.com/hbjs97/denv/internal/output"
	"github.com/hbjs97/denv/internal/shadow"
	"github.com/hbjs97/denv/internal/trust"
)

func (a *App) newExecCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "exec -- command [args...]",
		Short: "shadow 환경 안에서 명령을 실행한다",
		Long: `현재 디렉토리(또는 --dir)의 설정을 적용한 환경으로 명령을 실행한다.
hook과 달리 셸 통합 없이 일회성으로 shadow 환경을 쓸 때 사용한다.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runExec(cmd, dir, args)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "설정을 탐색할 시작 디렉토리 (기본: 현재 디렉토리)")
	return cmd
}

func (a *App) runExec(cmd *cobra.Command, dir string, args []string) error {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("cli.exec: %w", err)
		}
		dir = cwd
	}

	cfg := a.loadConfigGraceful()
	store, err := trust.Load(a.TrustPath)
	if err != nil {
		return fmt.Errorf("cli.exec: %w", err)
	}

	eng := &engine.Engine{
		Runtime: lang.New(),
		Trust:   store,
		DirName: cfg.DirName,
	}

	environ := os.Environ()
	sh, _, err := eng.Load(os.Getenv(output.DataVar), environ, dir)
	if err != nil {
		return fmt.Errorf("cli.exec: %w", err)
	}

	env := environ
	if sh != nil {
		newData, err := sh.FormatData()
		if err != nil {
			return fmt.Errorf("cli.exec: %w", err)
		}
		env = applyExports(environ, sh, newData)
	}

	if err := a.Commander.RunInteractive(cmd.Context(), env, args[0], args[1:]...); err != nil {
		return fmt.Errorf("cli.exec: %w", err)
	}
	return nil
}

// applyExports는 프로세스 환경 위에 Shadow의 델타를 적용한 env slice를 만든다.
// 자식 안에서 도는 hook이 일관되게 판정하도록 상태 변수도 새 값으로 넘긴다.
func applyExports(environ []string, sh *shadow.Shadow, newData string) []string {
	merged := make(map[string]string, len(environ))
	for _, kv := range environ {
		if i := strings.Index(kv, "="); i >= 0 {
			merged[kv[:i]] = kv[i+1:]
		}
	}
	for _, e := range sh.Exports() {
		if e.Value == nil {
			delete(merged, e.Name)
		} else {
			merged[e.Name] = *e.Value
		}
	}
	merged[output.DataVar] = newData

	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)

	out := make([]string, 0, len(names))
	for _, k := range names {
		out = append(out, k+"="+merged[k])
	}
	return out
}
