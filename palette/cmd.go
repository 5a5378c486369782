package palette

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

type CLICmd struct {
	Show struct {
		File string `arg:"" help:"PAL file in RIFF format" type:"existingfile"`
	} `cmd:"" help:"Print the colors stored in a palette file"`
}

func (c *CLICmd) Run(out io.Writer) error {
	f, err := os.Open(c.Show.File)
	if err != nil {
		return fmt.Errorf("could not open palette %q: %w", c.Show.File, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette", "file", c.Show.File, "error", closeErr)
		}
	}()

	pals, err := ReadFrom(f)
	if err != nil {
		return fmt.Errorf("could not read palette %q: %w", c.Show.File, err)
	}

	for i, pal := range pals {
		if _, err := fmt.Fprintf(out, "%d: %s\n", i, strings.Join(HexList(pal), " ")); err != nil {
			return err
		}
	}
	return nil
}
