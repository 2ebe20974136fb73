package util

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// browserCommand 各平台打开 URL 的命令
func browserCommand(goos, target string) (string, []string) {
	switch goos {
	case "windows":
		// rundll32 在 Windows 7 上比 cmd /c start 稳定
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}
	case "darwin":
		return "open", []string{target}
	default:
		return "xdg-open", []string{target}
	}
}

// fallbackBrowsers 主方式失败后依次尝试的命令
func fallbackBrowsers(goos string) []string {
	switch goos {
	case "windows":
		return []string{"explorer"}
	case "linux":
		return []string{"google-chrome", "firefox", "chromium-browser", "sensible-browser"}
	}
	return nil
}

// OpenBrowser 打开默认浏览器
func OpenBrowser(target string) error {
	name, args := browserCommand(runtime.GOOS, target)
	return exec.Command(name, args...).Start()
}

// OpenBrowserWithFallback 主方式失败时尝试备选浏览器
func OpenBrowserWithFallback(target string) error {
	err := OpenBrowser(target)
	if err == nil {
		return nil
	}
	for _, browser := range fallbackBrowsers(runtime.GOOS) {
		if exec.Command(browser, target).Start() == nil {
			return nil
		}
	}
	return err
}

// DashboardURL 本机访问地址
func DashboardURL(port int, studentID string) string {
	u := fmt.Sprintf("http://localhost:%d/", port)
	if studentID != "" {
		u += "?student=" + url.QueryEscape(studentID)
	}
	return u
}
