package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zolinad/dsportfolio/internal/portfolio"
	"github.com/Zolinad/dsportfolio/internal/utils"
)

var (
	renderParams []string
	renderJSON   bool
	renderOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <page>",
	Short: "Render one portfolio page as Markdown (or JSON)",
	Long: `Render a page without starting the server. Widget values are passed as
repeated --set key=value pairs, the same names the web forms use, e.g.

  dsportfolio render churn --set tenure=3 --set fee=140 --set complaints=4 --set simulate=1
  dsportfolio render kpi --set region=Sul --set category=Eletrônicos`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := portfolio.ParsePage(args[0])
		if err != nil {
			return err
		}
		q, err := parseParams(renderParams)
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		view, err := app.Render(cmd.Context(), page, q)
		if err != nil {
			return fmt.Errorf("render %s: %w", page, err)
		}

		var out string
		if renderJSON {
			b, err := json.MarshalIndent(view, "", "  ")
			if err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
			out = string(b) + "\n"
		} else {
			out = view.Markdown()
		}

		if renderOutput != "" {
			if err := utils.EnsureDir(filepath.Dir(renderOutput)); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := utils.SafeWriteFile(renderOutput, []byte(out)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", renderOutput)
			return nil
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

// parseParams turns key=value pairs into query values; repeated keys accumulate.
func parseParams(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --set %q (want key=value)", p)
		}
		q.Add(k, strings.TrimSpace(v))
	}
	return q, nil
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringArrayVar(&renderParams, "set", nil, "widget value as key=value (repeatable)")
	renderCmd.Flags().BoolVar(&renderJSON, "json", false, "print the page view as JSON instead of Markdown")
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "write to file instead of stdout")
}
