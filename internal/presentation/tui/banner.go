package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	`  __      _____  __ ___   _____ `,
	`  \ \ /\ / / _ \/ _' \ \ / / _ \`,
	`   \ V  V /  __/ (_| |\ V /  __/`,
	`    \_/\_/ \___|\__,_| \_/ \___|`,
}

var bannerColors = []string{"#818cf8", "#a78bfa", "#c084fc", "#e879f9"}

// PrintBanner writes the weave banner and version to w.
// Color is dropped when w is not a terminal.
func PrintBanner(w io.Writer, version string) {
	out := termenv.NewOutput(w)

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, out.String(line).Foreground(out.Color(bannerColors[i])))
	}
	fmt.Fprintln(w, out.String("   v"+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(w)
}
