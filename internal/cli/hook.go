package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/engine"
	"github.com/hbjs97/denv/internal/lang"
	"github.com/hbjs97/denv/internal/output"
	"github.com/hbjs97/denv/internal/trust"
)

func (a *App) newHookCmd() *cobra.Command {
	var fish bool
	var porcelain bool

	cmd := &cobra.Command{
		Use:   "hook [data]",
		Short: "프롬프트 hook: 환경 델타를 계산해 출력한다",
		Long: `이전 invocation이 내보낸 opaque 상태 문자열을 받아 activation 여부를
판정하고, 필요한 export/unset 델타와 새 상태 문자열을 출력한다.
설정이 그대로면 아무것도 출력하지 않는다. 상태 문자열은 인자로 받거나,
없으면 ` + output.DataVar + ` 환경 변수에서 읽는다.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data := os.Getenv(output.DataVar)
			if len(args) == 1 {
				data = args[0]
			}
			mode := output.ModePosix
			if fish {
				mode = output.ModeFish
			}
			if porcelain {
				mode = output.ModePorcelain
			}
			return a.runHook(cmd, data, mode)
		},
	}
	cmd.Flags().BoolVar(&fish, "fish", false, "fish 문법으로 출력")
	cmd.Flags().BoolVar(&porcelain, "porcelain", false, "기계 파싱용 인코딩으로 출력")
	return cmd
}

func (a *App) runHook(cmd *cobra.Command, data string, mode output.Mode) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.hook: %w", err)
	}

	cfg := a.loadConfigGraceful()

	store, err := trust.Load(a.TrustPath)
	if err != nil {
		return fmt.Errorf("cli.hook: %w", err)
	}

	eng := &engine.Engine{
		Runtime: lang.New(),
		Trust:   store,
		DirName: cfg.DirName,
	}

	sh, activated, err := eng.Load(data, os.Environ(), cwd)
	if err != nil {
		// 실패 시 stdout에는 아무것도 쓰지 않는다 — 셸 상태는 그대로 남는다.
		return fmt.Errorf("cli.hook: %w", err)
	}
	if sh == nil {
		// 변경 없음: 출력도 없다.
		return nil
	}

	newData, err := sh.FormatData()
	if err != nil {
		return fmt.Errorf("cli.hook: %w", err)
	}
	if err := output.Apply(cmd.OutOrStdout(), mode, sh.Exports(), newData); err != nil {
		return fmt.Errorf("cli.hook: %w", err)
	}

	if !cfg.Quiet {
		output.PrintActivation(activated, sh.Features(), cfg.NoColor)
	}
	return nil
}
