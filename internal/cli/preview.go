package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vtmaltego/pkg/errors"
	"github.com/matzehuels/vtmaltego/pkg/render/nodelink"
)

// previewOpts holds options for the preview command.
type previewOpts struct {
	output   string
	detailed bool
}

// previewCommand creates the preview command for rendering a graph diagram.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview <graph_id>",
		Short: "Render a VirusTotal graph as an SVG or DOT diagram",
		Long: `Render a VirusTotal graph as a node-link diagram before exporting it.

Relationship nodes are drawn dashed. The output format follows the file
extension: .svg (default) or .dot.`,
		Example: `  vtmaltego preview g2b2c9a1f0e6d4f7a8e3b5c1d9f0a7e6
  vtmaltego preview g2b2c9a1f0e6d4f7a8e3b5c1d9f0a7e6 -o graph.dot --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default <graph_id>.svg)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node types and full identifiers")

	return cmd
}

func (c *CLI) runPreview(ctx context.Context, graphID string, opts previewOpts) error {
	output := opts.output
	if output == "" {
		output = graphID + ".svg"
	}
	if err := errors.ValidateOutputPath(output); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(output))
	if ext != ".svg" && ext != ".dot" {
		return errors.New(errors.ErrCodeInvalidInput, "unsupported preview format %q (use .svg or .dot)", ext)
	}

	client, closeClient := c.newClient(ctx)
	defer closeClient()

	g, err := fetchGraph(ctx, client, graphID)
	if err != nil {
		return err
	}

	dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})
	data := []byte(dot)
	if ext == ".svg" {
		prog := newProgress(loggerFromContext(ctx))
		if data, err = nodelink.RenderSVG(ctx, dot); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "render preview")
		}
		prog.done("Rendered SVG")
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "write %s", output)
	}

	printSuccess("Rendered graph %s", graphID)
	printFile(output)
	return nil
}
