package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{` _          _                _       _   _     `, "#34d399"},
	{`| |    __ _| |__  _   _ _ __(_)_ __ | |_| |__  `, "#2dd4bf"},
	{`| |   / _' | '_ \| | | | '__| | '_ \| __| '_ \ `, "#22d3ee"},
	{`| |__| (_| | |_) | |_| | |  | | | | | |_| | | |`, "#38bdf8"},
	{`|_____\__,_|_.__/ \__, |_|  |_|_| |_|\__|_| |_|`, "#60a5fa"},
	{`                  |___/                         `, "#818cf8"},
}

// PrintBanner writes the Labyrinth banner to w, coloured when the terminal supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for _, line := range bannerLines {
		fmt.Fprintln(w, out.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Fprintln(w)
}
