package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/matzehuels/vtmaltego/pkg/errors"
	"github.com/matzehuels/vtmaltego/pkg/graph"
	"github.com/matzehuels/vtmaltego/pkg/maltego"
)

// runExport fetches graphID and writes it to output as Maltego CSV.
//
// The output file is only created once the graph response has been
// validated, so a failed fetch leaves no file behind. A failure while
// writing (a URL lookup, a full disk) leaves the partial file in place.
func (c *CLI) runExport(ctx context.Context, graphID, output string) error {
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}

	logger := loggerFromContext(ctx).With("graph", graphID)
	client, closeClient := c.newClient(ctx)
	defer closeClient()

	g, err := fetchGraph(ctx, client, graphID)
	if err != nil {
		return err
	}

	prog := newProgress(logger)
	exp := maltego.NewExporter(client, maltego.WithLogger(logger))
	if err := writeExport(ctx, exp, g, output); err != nil {
		return err
	}
	prog.done("Exported " + output)

	printSuccess("Exported graph %s", graphID)
	printFile(output)
	printExportStats(exp.Stats())
	return nil
}

// graphFetcher is the part of *virustotal.Client the commands need.
type graphFetcher interface {
	GetGraph(ctx context.Context, id string) (*graph.Graph, error)
}

// fetchGraph fetches a graph behind a spinner and logs its shape.
func fetchGraph(ctx context.Context, client graphFetcher, graphID string) (*graph.Graph, error) {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Fetching graph "+graphID+"...")
	spinner.Start()
	g, err := client.GetGraph(ctx, graphID)
	spinner.Stop()
	if err != nil {
		return nil, err
	}

	s := g.Stats()
	logger.Debug("graph stats", "nodes", s.Nodes, "links", s.Links, "relationships", s.Related, "types", s.ByType)
	prog.done(fmt.Sprintf("Fetched graph %s: %d nodes, %d links", graphID, s.Nodes, s.Links))
	return g, nil
}

func writeExport(ctx context.Context, exp *maltego.Exporter, g *graph.Graph, output string) (err error) {
	f, err := os.Create(output)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", output)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", output, cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := exp.Export(ctx, g, w); err != nil {
		_ = w.Flush()
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
