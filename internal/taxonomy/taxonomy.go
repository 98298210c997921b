// Package taxonomy defines the fixed category sets a title can be assigned
// to, plus the best-effort cleanup applied to raw model labels.
package taxonomy

import (
	"fmt"
	"strings"
)

// Category is one named group within a taxonomy. The description is embedded
// verbatim in the classification instructions.
type Category struct {
	Name        string
	Description string
}

// Taxonomy is an ordered, fixed set of categories, shared by every
// classification call in a run.
type Taxonomy struct {
	Name       string
	Categories []Category
	// Guidance holds the taxonomy author's disambiguation rules, appended to
	// the classification instructions after the category list.
	Guidance string
}

// Names returns the category names in declaration order.
func (t Taxonomy) Names() []string {
	names := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		names[i] = c.Name
	}
	return names
}

// ByName returns the built-in taxonomy with the given name.
func ByName(name string) (Taxonomy, error) {
	switch strings.ToLower(name) {
	case "theme":
		return Theme(), nil
	case "type":
		return Type(), nil
	default:
		return Taxonomy{}, fmt.Errorf("unknown taxonomy %q (want theme or type)", name)
	}
}

// Theme groups titles by which community the erased content was about.
func Theme() Taxonomy {
	return Taxonomy{
		Name: "theme",
		Categories: []Category{
			{
				Name:        "Black",
				Description: "Titles with events, figures, or topics related to Black people. For example, titles related to Black History Month, African Americans, Juneteenth, the Tuskegee Airmen, etc.",
			},
			{
				Name:        "Women",
				Description: "Titles relating to women/females, including both women's cultural events like women's history month, and events specifically for/about female military personnel.",
			},
			{
				Name:        "Hispanic",
				Description: "Titles with events, figures, or topics related to Hispanic/Latino people. For example, titles related to Hispanic Heritage Month, Hispanic soldiers, Latin food, fiestas, etc.",
			},
			{
				Name:        "Native American",
				Description: "Titles with events, figures, or topics related to Native American/Indigenous people. For example, titles related to Native American Heritage Month, indigenous soldiers, the Navajo code talkers, powwows, various native tribes, etc.",
			},
			{
				Name:        "Asian or Pacific Islander",
				Description: "Titles with events, figures, or topics related to Asian and Pacific Islander people. For example, titles related to Asian Heritage Month, Asian soldiers, Asian food, Luaus, etc.",
			},
			{
				Name:        "LGBTQ+",
				Description: "Titles with events, figures, or topics related to LGBTQ+ people. For example, titles related to Pride Month, the LGBTQ+ community, the Stonewall Riots, etc.",
			},
			{
				Name:        "Other ethnicities & religions",
				Description: "Titles with events, figures, or topics related to other ethnicities and religions not mentioned above (e.g. not black, not hispanic, not native american, not asian, not pacific islander, not LGBTQ+). For example, titles related to Jewish Heritage Month, the Holocaust, Irish American Heritage, German American Heritage, Iraqi heritage, etc.",
			},
			{
				Name:        "Generic DEI",
				Description: "Titles with events, figures, or topics related to diversity and inclusion, but not a specific racial or ethnic group. For example, titles related to diversity training, unconscious bias, equal employment, inclusivity, unspecified heritage, immigrants from unspecified places, barriers being broken, first-time achievements, etc.",
			},
			{
				Name:        "Other",
				Description: "Titles that don't fit into any of the above categories.",
			},
		},
		Guidance: `For each title, respond with just the category name. Make sure to consider a title's context and meaning, and also whether titles were flagged for removal by accident. For example, a title about "Enola Gay" should be categorized as *LGBTQ+* because, even though it's about a plane, the plane's name has "gay" in it and that's probably why it was flagged. Another example: a title about "Vance Marchbanks" should be categorized as *Black* because, even though "black" isn't in the name, it's about a Black soldier.`,
	}
}

// Type groups titles by how the erased content related to its subject.
func Type() Taxonomy {
	return Taxonomy{
		Name: "type",
		Categories: []Category{
			{
				Name:        "Explicit heritage and DEI events",
				Description: "Titles that celebrate a specific heritage month or event, or an explicit Diversity, Equity, and Inclusion (DEI) program. For example, titles related to Black History Month, Hispanic Heritage Month, Native American Heritage Month, Asian Heritage Month, Inclusivity workshops, etc.",
			},
			{
				Name:        "Everyday celebrations of heritage or ethnicity",
				Description: "Titles that mention activities or celebrations related to a specific heritage group without explicitly mentioning a heritage month or event. For example, titles related to Asian food, gospel music, female-led movies, fiestas, powwows, etc.",
			},
			{
				Name:        "Mentions of personnel that highlight their ethnicity",
				Description: "Any mentions of military personnel that call out the fact that these personnel are black, hispanic, native american, asian, etc.",
			},
			{
				Name:        "Military personnel that belong to a specific ethnic group, even if that isn't explicitly mentioned",
				Description: "Titles that mention military personnel who happen to belong to a specific heritage group, even if that isn't in the title. For example, titles like Vance Marchbanks (who is black), the code talkers (who are native American), Nishimoto (who is asian), Eric Fanning (who is gay), etc.",
			},
			{
				Name:        "Facts of history that relate to a specific ethnic group",
				Description: "Titles that mention facts of history that relate to a specific ethnic group. For example, titles related to slavery, the civil rights movement, the holocaust (but not an official observance event, which would be in category #1), the niagara movement, etc.",
			},
			{
				Name:        "Other",
				Description: "Titles that don't fit into any of the above categories.",
			},
		},
		Guidance: "For each title, respond with just the category name (don't include the number).",
	}
}

// NormalizeLabel cleans a raw model label: list markers, numbering, and
// stray punctuation are stripped. This is a lossy textual cleanup, not a
// validated parse against the taxonomy; unrecognizable labels pass through.
func NormalizeLabel(label string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r == '*' || r == '.' || r == '#':
			return -1
		case r >= '0' && r <= '9':
			return -1
		default:
			return r
		}
	}, label)

	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimLeft(cleaned, "-) ")
	cleaned = strings.TrimRight(cleaned, ",;: ")

	return cleaned
}
