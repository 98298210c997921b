package llm

import (
	"fmt"
	"strings"

	"github.com/datadesk/scrub/internal/taxonomy"
)

// BuildPrompt constructs the single instruction block for one title: the
// full taxonomy (each category's name and illustrative description), the
// author's disambiguation guidance, and the literal title text.
func BuildPrompt(tax taxonomy.Taxonomy, title string) string {
	var b strings.Builder

	b.WriteString("You are a text categorization assistant. Your task is to categorize website titles from the military. ")
	b.WriteString("The titles have recently been erased, and I want to group them into categories. ")
	b.WriteString("You need to group each title into one of the following groups based on its content:\n\n")

	for i, cat := range tax.Categories {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, cat.Name, cat.Description)
	}

	b.WriteString("\n")
	b.WriteString(tax.Guidance)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Here's the title to categorize: %q", title)

	return b.String()
}
