package command

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	colorGreen  = color.New(color.FgGreen)
	colorYellow = color.New(color.FgYellow)
	colorGray   = color.New(color.FgHiBlack)
)

func success(w io.Writer, format string, v ...any) {
	fmt.Fprintf(w, "%s %s\n", colorGreen.Sprint("✔"), fmt.Sprintf(format, v...))
}

func warn(w io.Writer, format string, v ...any) {
	fmt.Fprintf(w, "%s %s\n", colorYellow.Sprint("!"), fmt.Sprintf(format, v...))
}

func row(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "  %-18s %v\n", colorGray.Sprint(label), value)
}
