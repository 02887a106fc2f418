package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tacusci/logging/v2"
	"github.com/tauraamui/motiongrid/pkg/config"
	"github.com/tauraamui/motiongrid/pkg/flow"
	"github.com/tauraamui/motiongrid/pkg/video/videodec"
)

func init() {
	logging.ColorLogLevelLabelOnly = true
	loggingLevel := os.Getenv("MOTIONGRID_LOGGING_LEVEL")

	switch strings.ToLower(loggingLevel) {
	case "info":
		logging.CurrentLoggingLevel = logging.InfoLevel
	case "debug":
		logging.CurrentLoggingLevel = logging.DebugLevel
		logging.CallbackLabel = true
	default:
		logging.CurrentLoggingLevel = logging.WarnLevel
	}
}

func run(values config.Values) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-interrupt
		cancel()
	}()

	backendType := os.Getenv("MOTIONGRID_VIDEO_BACKEND")
	if len(backendType) == 0 {
		backendType = values.VideoBackend
	}

	stream, err := videodec.Resolve(backendType).Open(ctx, values.VideoPath)
	if err != nil {
		return err
	}
	defer stream.Close()

	// output is buffered so an aborted run leaves nothing half-written
	// beyond what was already flushed
	out := bufio.NewWriter(os.Stdout)

	pipeline := flow.NewPipeline(flow.PipelineSettings{
		Raw:              values.RawVectors,
		FineGrid:         values.FineGrid,
		IncludeOccupancy: values.IncludeOccupancy,
		Out:              out,
	})

	if err := pipeline.Run(ctx, stream); err != nil {
		return err
	}

	return out.Flush()
}

func main() {
	values, err := config.Resolve(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, config.Usage)
		os.Exit(1)
	}

	if values.Quiet {
		logging.CurrentLoggingLevel = logging.SilentLevel
	}

	if err := run(values); err != nil {
		fmt.Fprintf(os.Stderr, "Error occurred: %s\n", err.Error())
		os.Exit(1)
	}
}
