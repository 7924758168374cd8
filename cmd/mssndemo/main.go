// Command mssndemo is a test/demo harness for the mssn engine: it is
// not part of the engine's public API and holds no persisted state.
// It feeds a captured HTTP/1.x-then-WebSocket byte stream through a
// Session and prints each parsed frame as it goes, and
// separately demonstrates a Build round trip.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/lalawue/mssn"
)

func main() {
	cmd := &cli.Command{
		Name:  "mssndemo",
		Usage: "feed a captured byte stream through the mssn session engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "path to a raw captured HTTP/WebSocket byte stream (stdin if unset)",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable per-session debug logging",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			return run(cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		color.Red("mssndemo: %v", err)
		os.Exit(1)
	}
}

func run(cmd *cli.Command) error {
	var data []byte
	var err error
	if path := cmd.String("file"); path != "" {
		data, err = os.ReadFile(path)
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := []mssn.Option{}
	if cmd.Bool("verbose") {
		logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
		opts = append(opts, mssn.WithLogger(logger))
	}

	s := mssn.Create(mssn.RoleServer, opts...)
	defer s.Close()

	buf := data
	for len(buf) > 0 {
		n, err := s.Process(buf)
		if err != nil {
			color.Red("process error: %v", err)
			return err
		}
		if n == 0 {
			color.Yellow("parser needs more data than was provided (%d bytes left unconsumed)", len(buf))
			break
		}
		buf = buf[n:]

		for _, f := range s.Frames {
			color.Green("frame: type=%s len=%d", f.Type, f.Len())
		}
		s.Reclaim(nil)
	}

	if s.Upgrade {
		color.Cyan("upgraded to websocket: method=%s path=%s", s.Method, s.Path)
	}

	demoBuildRoundTrip()
	return nil
}

func demoBuildRoundTrip() {
	client := mssn.Create(mssn.RoleClient)
	defer client.Close()

	built, err := client.Build(mssn.FrameWSText, 0, 4096, []byte("hello from mssndemo"))
	if err != nil {
		color.Red("build error: %v", err)
		return
	}
	defer client.Reclaim(built)

	total := 0
	for c := built; c != nil; c = c.Next() {
		total += c.Len()
	}
	color.Green("built %d bytes of outgoing websocket frame(s)", total)
}
