package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hbjs97/denv/internal/cmdexec"
	"github.com/hbjs97/denv/internal/config"
)

// App은 CLI 전체가 공유하는 의존성 묶음이다. 테스트에서는 경로와
// Commander를 주입해 사용한다.
type App struct {
	CfgPath   string
	TrustPath string
	Commander cmdexec.Commander

	verbose bool
}

// NewApp은 기본 경로와 실제 Commander로 App을 생성한다.
func NewApp() *App {
	return &App{
		CfgPath:   filepath.Join(configDir(), "config.toml"),
		TrustPath: filepath.Join(configDir(), "trust.json"),
		Commander: &cmdexec.RealCommander{},
	}
}

// NewRootCmd는 denv CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "denv",
		Short:        "디렉토리 단위 셸 환경 shadowing",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetReportTimestamp(false)
			if a.verbose {
				log.SetLevel(log.DebugLevel)
			} else {
				log.SetLevel(log.WarnLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", a.CfgPath, "설정 파일 경로")
	cmd.PersistentFlags().StringVar(&a.TrustPath, "trust-store", a.TrustPath, "trust 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "상세 출력")

	cmd.AddCommand(
		a.newHookCmd(),
		a.newExecCmd(),
		a.newTrustCmd(),
		a.newUntrustCmd(),
		a.newStatusCmd(),
		a.newInitCmd(),
		a.newSetupCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

// loadConfigGraceful는 설정을 읽는다. 프롬프트 hook 경로에서는 설정 오류로
// 프롬프트를 깨지 않도록 경고 후 기본값을 쓴다.
func (a *App) loadConfigGraceful() *config.Config {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		log.Warn("설정 파일을 무시합니다", "path", a.CfgPath, "err", err)
		return config.Default()
	}
	return cfg
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return filepath.Join(home, ".config", "denv")
}
