package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/loader"
	"github.com/hbjs97/denv/internal/trust"
)

func (a *App) newTrustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trust [dir]",
		Short: "디렉토리의 설정 프로그램 실행을 허용한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveSourceDir(args)
			if err != nil {
				return err
			}

			store, err := trust.Load(a.TrustPath)
			if err != nil {
				return fmt.Errorf("cli.trust: %w", err)
			}
			store.Trust(dir)
			if err := store.Save(a.TrustPath); err != nil {
				return fmt.Errorf("cli.trust: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "신뢰 목록에 추가: %s\n", dir)
			return nil
		},
	}
}

func (a *App) newUntrustCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untrust [dir]",
		Short: "디렉토리의 설정 프로그램 실행 허용을 취소한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveSourceDir(args)
			if err != nil {
				return err
			}

			store, err := trust.Load(a.TrustPath)
			if err != nil {
				return fmt.Errorf("cli.untrust: %w", err)
			}
			if !store.Untrust(dir) {
				fmt.Fprintf(cmd.OutOrStdout(), "신뢰 목록에 없음: %s\n", dir)
				return nil
			}
			if err := store.Save(a.TrustPath); err != nil {
				return fmt.Errorf("cli.untrust: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "신뢰 목록에서 제거: %s\n", dir)
			return nil
		},
	}
}

// resolveSourceDir는 인자 또는 현재 디렉토리에서 설정 디렉토리를 찾는다.
func (a *App) resolveSourceDir(args []string) (string, error) {
	start := ""
	if len(args) == 1 {
		start = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("cli.trust: %w", err)
		}
		start = cwd
	}

	cfg := a.loadConfigGraceful()
	src, err := loader.Load(start, cfg.DirName)
	if err != nil {
		return "", fmt.Errorf("cli.trust: %w", err)
	}
	if src == nil {
		return "", fmt.Errorf("cli.trust: %s에서 %s를 찾지 못했습니다", start, cfg.DirName)
	}
	return src.Dir, nil
}
