package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"github.com/phanxgames/arbor"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "List a word's instructions with trunk and fruit counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			word, err := resolveWord(cfg)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			inspect(w, colorProfile(w), word, float64(cfg.Width), float64(cfg.Height))
			return nil
		},
	}
}

// colorProfile returns the terminal's profile, or plain ASCII when w is not
// a terminal.
func colorProfile(w io.Writer) termenv.Profile {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return termenv.ColorProfile()
	}
	return termenv.Ascii
}

func inspect(w io.Writer, p termenv.Profile, word string, width, height float64) {
	tree := arbor.NewTree(word)
	prog := tree.Program()

	// Fully grown passes give the real open-branch count and fruit tally.
	rec := arbor.NewRecorder(width, height)
	full := float64(prog.Len())
	wood := tree.Pass(rec, arbor.ModeWood, full)
	fruit := tree.Pass(rec, arbor.ModeFruit, full)

	fmt.Fprintf(w, "word:         %s\n", prog)
	fmt.Fprintf(w, "instructions: %d\n", prog.Len())
	fmt.Fprintf(w, "trunks:       %d\n", prog.Trunks)
	fmt.Fprintf(w, "fruits:       %d\n", prog.Fruits)
	fmt.Fprintf(w, "open:         %d\n", wood.OpenBranches)
	fmt.Fprintf(w, "draw calls:   %d\n", len(rec.Calls))
	if fruit.Fruits != prog.Fruits {
		fmt.Fprintf(w, "hidden:       %d fruit\n", prog.Fruits-fruit.Fruits)
	}
	fmt.Fprintln(w)

	for i, in := range prog.Instructions {
		fmt.Fprintf(w, "%4d  %-8s %s", i, in.Op, in)
		if in.Op == arbor.OpFruit {
			fmt.Fprintf(w, "  %s %.2f", swatch(p, arbor.SentimentColor(in.Sentiment)), in.Sentiment)
		}
		fmt.Fprintln(w)
	}
}

func swatch(p termenv.Profile, c arbor.Color) string {
	if p == termenv.Ascii {
		return "##"
	}
	return termenv.String("██").Foreground(p.Color(hexColor(c))).String()
}

func hexColor(c arbor.Color) string {
	rgba := c.WithAlpha(1).RGBA()
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
