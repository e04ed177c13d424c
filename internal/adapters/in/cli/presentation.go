package cli

import (
	"fmt"
	"io"

	"github.com/bnema/registry-cli/internal/adapters/in/cli/ui/styles"
)

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMeta(label, value string) string {
	return styles.Theme.Bold.Render(label) + " " + styles.Theme.Muted.Render(value)
}

func cliRenderError(msg string) string {
	return styles.RenderError(msg)
}
