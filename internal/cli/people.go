package cli

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gedgraph/pkg/names"
	"github.com/matzehuels/gedgraph/pkg/records"
)

type peopleOpts struct {
	search  string
	limit   int
	noCache bool
}

// peopleCommand lists the individuals of a file so the user can pick a
// --personid.
func (c *CLI) peopleCommand() *cobra.Command {
	opts := peopleOpts{limit: 50}

	cmd := &cobra.Command{
		Use:   "people <file>",
		Short: "List individuals with their ids and secondary fields",
		Long: `List the individuals in a GEDCOM file or record-set JSON export.

The id column is what --personid expects by default; any secondary field
shown can be used instead with --iditem.

Examples:
  gedgraph people family.ged --search smith
  gedgraph family.ged --include desc --personid 1001 --iditem refn`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(opts.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			rs, _, err := runner.Load(cmd.Context(), args[0], false)
			if err != nil {
				return err
			}
			listPeople(cmd.OutOrStdout(), rs, opts)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only show names containing this text (case-insensitive)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", opts.limit, "maximum rows to show (0 for all)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the parsed-record cache")

	return cmd
}

// matchPeople returns the individuals whose plain name contains search,
// in source order.
func matchPeople(rs *records.Set, search string) []*records.Individual {
	search = strings.ToLower(strings.TrimSpace(search))
	var out []*records.Individual
	for _, i := range rs.Individuals() {
		if search == "" || strings.Contains(strings.ToLower(names.Resolver{}.Name(i)), search) {
			out = append(out, i)
		}
	}
	return out
}

func listPeople(w io.Writer, rs *records.Set, opts peopleOpts) {
	matched := matchPeople(rs, opts.search)
	shown := matched
	if opts.limit > 0 && len(shown) > opts.limit {
		shown = shown[:opts.limit]
	}

	resolver := names.Resolver{}
	rows := make([][]string, 0, len(shown))
	for _, i := range shown {
		rows = append(rows, []string{
			strings.Trim(i.Xref, "@"),
			resolver.Name(i),
			names.Years(i),
			i.Sex,
			formatFields(i.Fields),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Years", "Sex", "Fields").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleTitle
			case col == 2 || col == 4:
				return StyleDim
			}
			return lipgloss.NewStyle()
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("  %s of %s individuals",
		StyleNumber.Render(fmt.Sprint(len(shown))), StyleNumber.Render(fmt.Sprint(len(matched))))))
}

// formatFields renders secondary fields as sorted key=value pairs.
func formatFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + fields[k]
	}
	return strings.Join(parts, " ")
}
