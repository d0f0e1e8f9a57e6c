package cli

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/IVAO-Colombia/Aurora-Sectorfile-Development/pkg/errors"
)

//go:embed docs/*.md
var docsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "docs [topic]",
		Short: "Browse the built-in documentation",
		Long:  `Docs renders a built-in documentation topic. Without a topic it lists what is available.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Available topics:")
				for _, topic := range docTopics() {
					fmt.Fprintf(out, "  %s\n", topic)
				}
				return nil
			}

			topic := strings.ToLower(args[0])
			content, err := docsFS.ReadFile("docs/" + topic + ".md")
			if err != nil {
				return errors.Newf(errors.ErrInvalidInput, "no such topic %q (try `sectorlink docs`)", args[0])
			}

			fmt.Fprint(out, renderMarkdown(string(content)))
			return nil
		},
	}
}

func docTopics() []string {
	entries, err := docsFS.ReadDir("docs")
	if err != nil {
		return nil
	}

	topics := make([]string, 0, len(entries))
	for _, entry := range entries {
		topics = append(topics, strings.TrimSuffix(entry.Name(), ".md"))
	}
	sort.Strings(topics)
	return topics
}

// renderMarkdown converts markdown to terminal output, falling back to
// the raw text when rendering is not possible
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}
