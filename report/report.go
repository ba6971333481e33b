// Package report prints messages and errors for the operator
package report

import (
	"os"

	"github.com/pterm/pterm"
)

func Error(err error) {
	pterm.Error.Println(err)
}

func Quit(err error) {
	Error(err)
	os.Exit(1)
}
