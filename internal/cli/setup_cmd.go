package cli

import (
	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/setup"
)

func (a *App) newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "셸 RC 파일에 hook을 설치한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &setup.Runner{
				FormRunner: &setup.HuhFormRunner{},
				Out:        cmd.OutOrStdout(),
			}
			return r.Run()
		},
	}
}
