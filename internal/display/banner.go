package display

import (
	_ "embed"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
)

//go:embed banner.txt
var bannerRaw string

// RenderBanner returns the startup banner centred for the current
// terminal width, styled as one block. Replace banner.txt to change
// the art.
func RenderBanner() string {
	lines := strings.Split(strings.TrimRight(bannerRaw, "\n"), "\n")

	artW := 0
	for _, l := range lines {
		if len(l) > artW {
			artW = len(l)
		}
	}

	pad := ""
	if w := termWidth(); w > artW {
		pad = strings.Repeat(" ", (w-artW)/2)
	}
	for i, l := range lines {
		lines[i] = pad + l
	}
	return BannerStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func termWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return 80
}
