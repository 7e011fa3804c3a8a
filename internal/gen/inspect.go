package gen

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/griffnb/core-typegen/internal/loader"
	"github.com/griffnb/core-typegen/internal/rules"
)

// Inspect prints the rule and kind each component schema classifies as,
// one table per document.
func (g *Gen) Inspect(config *Config, w io.Writer) error {
	if config.Debugger != nil {
		g.debug = config.Debugger
	}

	docs, err := loader.NewService(
		loader.WithExcludes(parseExcludes(config.Excludes)),
		loader.WithParseExtensions(parseExtensions(config.ParseExtension)),
		loader.WithDebugger(g.debug),
	).LoadPaths(splitList(config.Inputs))
	if err != nil {
		return err
	}

	dispatcher, err := rules.NewDispatcher(rules.WithDebugger(g.debug))
	if err != nil {
		return err
	}

	for i, doc := range docs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if len(docs) > 1 {
			fmt.Fprintf(w, "%s:\n", doc.Path)
		}

		components, _ := doc.Raw["components"].(map[string]any)
		schemas, _ := components["schemas"].(map[string]any)
		names := make([]string, 0, len(schemas))
		for name := range schemas {
			names = append(names, name)
		}
		sort.Strings(names)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "SCHEMA\tRULE\tKIND")
		for _, name := range names {
			rule, _ := dispatcher.Match(schemas[name])
			fmt.Fprintf(tw, "%s\t%s\t%s\n", name, rule.Name, rule.Kind)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
