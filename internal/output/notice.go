package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	featureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// PrintActivation은 사람이 읽을 한 줄 알림을 제어 터미널에만 출력한다.
// 기계가 파싱하는 stdout 스트림에는 절대 섞지 않는다. 터미널이 없으면
// (파이프/CI) 조용히 생략한다.
func PrintActivation(activated bool, features []string, noColor bool) {
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return
	}
	defer tty.Close()

	fmt.Fprintln(tty, FormatActivation(activated, features, noColor))
}

// FormatActivation은 activation/deactivation 알림 문자열을 만든다.
func FormatActivation(activated bool, features []string, noColor bool) string {
	msg := "denv: deactivated."
	if activated {
		msg = "denv: activated."
		if len(features) > 0 {
			msg += " (" + strings.Join(features, ", ") + ")"
		}
	}
	if noColor {
		return msg
	}
	if i := strings.Index(msg, " ("); i >= 0 {
		return noticeStyle.Render(msg[:i]) + featureStyle.Render(msg[i:])
	}
	return noticeStyle.Render(msg)
}
