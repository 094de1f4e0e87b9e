package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the turingtoy banner, colored when the profile allows it.
func PrintBanner(w io.Writer, profile termenv.Profile, version string) {
	out := termenv.NewOutput(w, termenv.WithProfile(profile))
	lines := []struct {
		text  string
		color string
	}{
		{" _              _             _            ", "#818cf8"},
		{"| |_ _  _ _ _ _(_)_ _  __ _  | |_ ___ _  _ ", "#a78bfa"},
		{"|  _| || | '_| | | ' \\/ _` | |  _/ _ \\ || |", "#e879f9"},
		{" \\__|\\_,_|_| |_|_|_||_\\__, |  \\__\\___/\\_, |", "#f472b6"},
		{"                      |___/           |__/ ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	if version != "" {
		fmt.Fprintln(w, out.String("  v"+version).Faint())
	}
	fmt.Fprintln(w)
}
