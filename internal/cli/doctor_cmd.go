package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/doctor"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "denv 설치 상태를 진단한다",
		RunE: func(cmd *cobra.Command, args []string) error {
			results := doctor.RunAll(cmd.Context(), a.Commander, a.CfgPath, a.TrustPath)
			printDiagResults(cmd, results)
			return nil
		},
	}
}

func printDiagResults(cmd *cobra.Command, results []doctor.DiagResult) {
	out := cmd.OutOrStdout()
	for _, r := range results {
		var status string
		switch r.Status {
		case doctor.StatusOK:
			status = okStyle.Render(string(r.Status))
		case doctor.StatusWarn:
			status = warnStyle.Render(string(r.Status))
		default:
			status = failStyle.Render(string(r.Status))
		}
		fmt.Fprintf(out, "[%s] %s: %s\n", status, r.Name, r.Message)
		if r.Fix != "" && r.Status != doctor.StatusOK {
			fmt.Fprintf(out, "      Fix: %s\n", r.Fix)
		}
	}
}
