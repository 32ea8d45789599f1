package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/titellus/geonetwork-pnf/lib/datadir"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Width(20).
			Foreground(lipgloss.Color("240"))

	pathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208"))
)

func newResolveCmd(ctx *appContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve, create and seed the data directory, then print its layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch output {
			case "text", "yaml", "json":
			default:
				return newExitCodeError(ExitConfigError, fmt.Errorf("unknown output format %q (text, yaml, json)", output))
			}
			n, err := resolveNode(afero.NewOsFs(), ctx.properties)
			if err != nil {
				return err
			}
			return printLayout(cmd.OutOrStdout(), output, n.layout, n.report)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text, yaml or json")
	return cmd
}

func printLayout(w io.Writer, format string, layout datadir.Config, report datadir.SeedReport) error {
	summary := layout.Summary()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(summary)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Data directory") + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + pathStyle.Render(value) + "\n")
	}
	row("root", summary.SystemDataDir)
	row("origin", string(summary.RootOrigin))
	row("node", summary.NodeID)
	if summary.Rejected != "" {
		b.WriteString(warnStyle.Render("rejected: "+summary.Rejected) + "\n")
	}

	roles := make([]string, 0, len(summary.Directories))
	for role := range summary.Directories {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	for _, role := range roles {
		row(role, summary.Directories[role])
	}

	for _, copied := range report.Copied {
		row("seeded", copied)
	}
	for _, f := range report.Failures {
		b.WriteString(warnStyle.Render(fmt.Sprintf("seed failed: %s -> %s: %v", f.Source, f.Target, f.Err)) + "\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
