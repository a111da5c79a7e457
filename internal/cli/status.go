package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/engine"
	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/output"
	"github.com/hbjs97/denv/internal/trust"
)

func (a *App) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "현재 shadow 상태를 표시한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStatus(cmd)
		},
	}
}

func (a *App) runStatus(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	prev, ledger, err := engine.ParseState(os.Getenv(output.DataVar))
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}

	if prev == nil {
		fmt.Fprintln(out, "활성 shadow 없음")
	} else {
		fmt.Fprintf(out, "활성 해시: %s\n", prev)
		if len(ledger.Entries) > 0 {
			fmt.Fprintln(out, "shadow된 변수:")
			for _, e := range ledger.Entries {
				if e.Original == nil {
					fmt.Fprintf(out, "  %s (원래 없음)\n", e.Name)
				} else {
					fmt.Fprintf(out, "  %s (원본 보존됨)\n", e.Name)
				}
			}
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}

	cfg := a.loadConfigGraceful()
	src, err := loader.Load(cwd, cfg.DirName)
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}
	if src == nil {
		fmt.Fprintf(out, "현재 디렉토리 트리에 %s 없음\n", cfg.DirName)
		return nil
	}

	fmt.Fprintf(out, "설정 디렉토리: %s (프로그램 %d개, 해시 %s)\n", src.Dir, len(src.Files), src.Hash())

	store, err := trust.Load(a.TrustPath)
	if err != nil {
		return fmt.Errorf("cli.status: %w", err)
	}
	if store.IsTrusted(src.Dir) {
		fmt.Fprintln(out, "신뢰됨")
	} else {
		fmt.Fprintln(out, "신뢰되지 않음 — denv trust를 실행하세요")
	}
	return nil
}
