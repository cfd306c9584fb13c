// Package main provides the CLI entry point for vcompress.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/user/vcompress/pkg/adapters/ffmpegio"
	"github.com/user/vcompress/pkg/adapters/logger"
	"github.com/user/vcompress/pkg/adapters/nullsink"
	"github.com/user/vcompress/pkg/adapters/osfilesystem"
	"github.com/user/vcompress/pkg/adapters/pngsink"
	"github.com/user/vcompress/pkg/codec"
	"github.com/user/vcompress/pkg/codec/bilinear"
	"github.com/user/vcompress/pkg/codec/xdraw"
	"github.com/user/vcompress/pkg/config"
	"github.com/user/vcompress/pkg/orchestrator"
	"github.com/user/vcompress/pkg/ports"
	"github.com/user/vcompress/pkg/stages/decode"
	"github.com/user/vcompress/pkg/stages/encode"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Encode     EncodeCmd     `cmd:"" help:"Compress a video into a .vcomp stream."`
	Decode     DecodeCmd     `cmd:"" help:"Reconstruct a video from a .vcomp stream."`
	Algorithms AlgorithmsCmd `cmd:"" help:"List available compression algorithms."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`
}

// EncodeCmd defines the encode subcommand.
type EncodeCmd struct {
	Input  string `arg:"" help:"Input video file."`
	Output string `short:"o" default:"data.vcomp" help:"Output compressed stream path."`

	Algorithm        string `short:"a" default:"bilinear" enum:"bilinear,xdraw" help:"Compression algorithm."`
	Quality          int    `short:"q" default:"75" help:"Quality level (1-100, higher keeps more detail)."`
	Bitrate          int    `help:"Target bitrate in kbps (informational)."`
	KeyFrameInterval int    `short:"k" default:"30" help:"Number of frames between key frames."`

	NoAudio  bool   `help:"Skip audio extraction."`
	KeepTemp bool   `help:"Keep temporary files after processing."`
	Config   string `short:"c" help:"YAML config file (flags override file values)."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// DecodeCmd defines the decode subcommand.
type DecodeCmd struct {
	Input  string `arg:"" help:"Input compressed stream path."`
	Output string `short:"o" required:"" help:"Output video file."`

	Algorithm string `short:"a" help:"Compression algorithm (default: resolved from the stream header)."`
	Quality   int    `short:"q" default:"75" help:"Quality used at encode time (must match)."`

	NoAudio  bool   `help:"Skip audio muxing."`
	KeepTemp bool   `help:"Keep temporary files after processing."`
	Config   string `short:"c" help:"YAML config file (flags override file values)."`

	Debug    bool   `short:"d" help:"Save decoded frames as PNG for inspection."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`

	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// AlgorithmsCmd lists the registered algorithms.
type AlgorithmsCmd struct{}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("vcompress"),
		kong.Description("Spatial-resampling video compression."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newRegistry builds the codec registry every session uses.
func newRegistry() *codec.Registry {
	registry := codec.NewRegistry()
	// Registration of built-in codecs cannot collide on a fresh registry.
	_ = bilinear.Register(registry)
	_ = xdraw.Register(registry)
	return registry
}

func newLogger(level string, quiet bool) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// sessionContext returns a context cancelled by SIGINT/SIGTERM.
func sessionContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Interrupted, shutting down...")
		cancel()
	}()

	return ctx, cancel
}

// Run executes the encode command.
func (cmd *EncodeCmd) Run() error {
	log := newLogger(cmd.LogLevel, cmd.Quiet)

	ctx, cancel := sessionContext(log)
	defer cancel()

	cfg, err := cmd.buildConfig()
	if err != nil {
		return err
	}

	registry := newRegistry()
	if !registry.IsAvailable(cfg.Algorithm) {
		return fmt.Errorf("algorithm %q is not available (have: %v)", cfg.Algorithm, registry.List())
	}

	encodeStage := encode.NewStage(ffmpegio.NewSource(), registry, log)
	orch := orchestrator.New(encodeStage, nil, ffmpegio.NewAudioTool(), osfilesystem.New(), log)

	result, err := orch.Encode(ctx, cfg)
	if err != nil {
		return err
	}

	if !cmd.Quiet {
		fmt.Println(result.Stats)
	}

	return nil
}

func (cmd *EncodeCmd) buildConfig() (orchestrator.Config, error) {
	fileCfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.Load(cmd.Config)
		if err != nil {
			return orchestrator.Config{}, err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.ToOrchestrator()
	cfg.InputPath = cmd.Input
	cfg.StreamPath = cmd.Output
	cfg.Algorithm = cmd.Algorithm
	cfg.Quality = cmd.Quality
	cfg.TargetBitrate = cmd.Bitrate
	cfg.KeyFrameInterval = cmd.KeyFrameInterval
	cfg.KeepAudio = !cmd.NoAudio
	cfg.KeepTempFiles = cmd.KeepTemp

	return cfg, nil
}

// Run executes the decode command.
func (cmd *DecodeCmd) Run() error {
	log := newLogger(cmd.LogLevel, cmd.Quiet)

	ctx, cancel := sessionContext(log)
	defer cancel()

	fileCfg := config.Defaults()
	if cmd.Config != "" {
		loaded, err := config.Load(cmd.Config)
		if err != nil {
			return err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.ToOrchestrator()
	cfg.StreamPath = cmd.Input
	cfg.OutputPath = cmd.Output
	cfg.Algorithm = cmd.Algorithm
	cfg.Quality = cmd.Quality
	cfg.KeepAudio = !cmd.NoAudio
	cfg.KeepTempFiles = cmd.KeepTemp

	var debug ports.DebugSink = nullsink.New()
	if cmd.Debug {
		debug = pngsink.New(cmd.DebugDir, osfilesystem.New())
	}

	registry := newRegistry()
	decodeStage := decode.NewStage(ffmpegio.NewSink(), registry, debug, log)
	orch := orchestrator.New(nil, decodeStage, ffmpegio.NewAudioTool(), osfilesystem.New(), log)

	result, err := orch.Decode(ctx, cfg)
	if err != nil {
		return err
	}

	if !cmd.Quiet {
		fmt.Println(result.Stats)
	}

	return nil
}

// Run lists the registered algorithms.
func (cmd *AlgorithmsCmd) Run() error {
	registry := newRegistry()

	fmt.Println("Available algorithms:")
	for _, name := range registry.List() {
		id, _ := orchestrator.AlgorithmID(name)
		fmt.Printf("  %s (header id %d)\n", name, id)
	}

	return nil
}

// Run prints version information.
func (cmd *VersionCmd) Run() error {
	fmt.Printf("vcompress %s (%s/%s)\n", version, runtime.GOOS, runtime.GOARCH)
	return nil
}
