package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/setup"
	"github.com/hbjs97/denv/internal/shell"
)

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [shell]",
		Short: "셸 통합 스니펫을 출력한다",
		Long: `RC 파일에서 eval할 hook 스니펫을 출력한다:

  eval "$(denv init zsh)"

셸을 생략하면 SHELL 환경 변수로 감지한다. 영구 설치는 denv setup을 쓴다.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shellType := setup.DetectShell()
			if len(args) == 1 {
				shellType = args[0]
			}
			snippet := shell.HookSnippet(shellType)
			if snippet == "" {
				return fmt.Errorf("cli.init: 지원하지 않는 셸: %s", shellType)
			}
			fmt.Fprint(cmd.OutOrStdout(), snippet)
			return nil
		},
	}
}
