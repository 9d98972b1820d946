// Package main provides the graphplan tool: it loads a YAML session
// description, builds and negotiates every filter graph in it, and
// prints the resulting node chains. It doubles as the stream-mapping
// driver the library defers complex-graph outputs to.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/chicogong/media-graph/pkg/schemas"
	"github.com/chicogong/media-graph/pkg/script"
	"github.com/chicogong/media-graph/pkg/session"
)

var (
	specPath = flag.String("spec", "session.yaml", "Session description file")
	verbose  = flag.Bool("verbose", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	level := hclog.Info
	if *verbose {
		level = hclog.Debug
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:  "graphplan",
		Level: level,
	})

	if err := run(context.Background(), logger); err != nil {
		logger.Error("graph configuration failed", "error", err)
		if session.IsFatal(err) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, logger hclog.Logger) error {
	spec, err := session.LoadSpec(*specPath)
	if err != nil {
		return err
	}
	spec.Options.Logger = logger

	resolver := script.DefaultResolver()
	if needsS3(spec) {
		s3src, err := script.NewS3Source(ctx)
		if err != nil {
			return fmt.Errorf("session references s3:// scripts: %w", err)
		}
		resolver.RegisterSource("s3", s3src)
	}

	s, outputs, err := spec.Build(ctx, resolver)
	if err != nil {
		return err
	}

	// First pass: complex graphs bind their inputs; outputs may come
	// back pending.
	for _, fg := range s.Graphs {
		if err := s.Configure(fg); err != nil {
			return err
		}
		if n := fg.PendingOutputs(); n > 0 {
			logger.Debug("graph outputs awaiting mapping", "graph", fg.Index, "pending", n)
		}
	}

	if err := mapStreams(s, outputs, logger); err != nil {
		return err
	}

	// Second pass completes deferred outputs and builds the simple
	// graphs created by mapping.
	for _, fg := range s.Graphs {
		if err := s.Configure(fg); err != nil {
			return err
		}
	}

	for _, fg := range s.Graphs {
		kind := "complex"
		if fg.Description == "" {
			kind = "simple"
		}
		fmt.Printf("graph %d (%s, %d inputs, %d outputs):\n%s\n",
			fg.Index, kind, len(fg.Inputs), len(fg.Outputs), fg.Graph.Dump())
	}
	return nil
}

// mapStreams assigns streams to every endpoint the configuration pass
// left open: pending complex-graph outputs take the first unclaimed
// output stream of their type, and every output stream still without a
// feeding graph gets a simple graph from the first free input of its
// type.
func mapStreams(s *session.Session, outputs []*schemas.OutputStream, logger hclog.Logger) error {
	for _, fg := range s.Graphs {
		for _, of := range fg.Outputs {
			if !of.Pending() {
				continue
			}
			ost := firstUnclaimedOutput(s, outputs, of.MediaType())
			if ost == nil {
				return fmt.Errorf("no %s output stream for graph %d output [%s]",
					of.MediaType(), fg.Index, of.Label())
			}
			if err := of.Bind(ost); err != nil {
				return err
			}
			logger.Debug("mapped graph output", "graph", fg.Index, "label", of.Label(),
				"stream", ost.StreamIndex)
		}
	}

	for _, ost := range outputs {
		if s.OutputFilter(ost) != nil {
			continue
		}
		ist := firstFreeInput(s, ost.Type)
		if ist == nil {
			return fmt.Errorf("no free %s input stream for output %d", ost.Type, ost.StreamIndex)
		}
		ist.Discard = false
		ist.DecodingNeeded = true
		fg := s.NewSimpleGraph(ist, ost)
		logger.Debug("created simple graph", "graph", fg.Index,
			"input", fmt.Sprintf("%d:%d", ist.FileIndex, ist.StreamIndex),
			"output", ost.StreamIndex)
	}
	return nil
}

func firstUnclaimedOutput(s *session.Session, outputs []*schemas.OutputStream, t schemas.MediaType) *schemas.OutputStream {
	for _, ost := range outputs {
		if ost.Type == t && s.OutputFilter(ost) == nil {
			return ost
		}
	}
	return nil
}

func firstFreeInput(s *session.Session, t schemas.MediaType) *schemas.InputStream {
	for _, ist := range s.Streams {
		if ist.Type == t && ist.Discard {
			return ist
		}
	}
	return nil
}

func needsS3(spec *session.Spec) bool {
	for _, g := range spec.Graphs {
		if strings.HasPrefix(g.Script, "s3://") {
			return true
		}
	}
	return false
}
