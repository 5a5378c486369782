package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"kmquant/palette"
	"kmquant/parallel"
	"kmquant/quantize"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config   kong.ConfigFlag `help:"JSON file with default flag values"`
	LogLevel string          `help:"Log level" enum:"debug,info,warn,error" default:"info"`
	Workers  int             `help:"Number of images processed in parallel, 0 uses all CPUs" default:"0"`

	Quantize quantize.CLICmd `cmd:"" help:"Reduce every picture in a folder to k colors"`
	Palette  palette.CLICmd  `cmd:"" help:"Inspect palette files"`
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("kmquant"),
		kong.Description("Color quantization of pictures with k-means clustering."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "kmquant.json", "~/.config/kmquant.json"),
	)

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(cli.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	kctx.BindTo(os.Stdout, (*io.Writer)(nil))
	err := kctx.Run(parallel.Start(ctx, cli.Workers))
	if err != nil {
		slog.Error("command failed", "command", kctx.Command(), "error", err)
	}
	kctx.FatalIfErrorf(err)
}
