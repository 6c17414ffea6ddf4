package util

import (
	"errors"
	"os/exec"
	"runtime"
)

// browserCommands 各平台打开链接的候选命令，按顺序尝试
func browserCommands(goos, url string) [][]string {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return [][]string{
			{"rundll32", "url.dll,FileProtocolHandler", url},
			{"explorer", url},
		}
	case "darwin":
		return [][]string{{"open", url}}
	default:
		return [][]string{
			{"xdg-open", url},
			{"sensible-browser", url},
			{"firefox", url},
			{"google-chrome", url},
		}
	}
}

// OpenBrowser 用默认浏览器打开链接，依次尝试候选命令
func OpenBrowser(url string) error {
	var errs []error
	for _, args := range browserCommands(runtime.GOOS, url) {
		err := exec.Command(args[0], args[1:]...).Start()
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
