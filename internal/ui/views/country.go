package views

import (
	"fmt"
	"strings"

	"lookout/internal/countries"
	"lookout/internal/domain"
)

// CountryRenderer handles rendering of country lookups
type CountryRenderer struct {
	styles *Styles
}

// NewCountryRenderer creates a new country renderer
func NewCountryRenderer(styles *Styles) *CountryRenderer {
	return &CountryRenderer{
		styles: styles,
	}
}

// RenderCountryCard renders the full card of a single match
func (c *CountryRenderer) RenderCountryCard(country domain.Country, width int) string {
	var b strings.Builder
	b.WriteString(c.styles.CardTitle.Render(strings.TrimSpace(country.Flag + " " + country.Name)))
	b.WriteString("\n")
	if country.Official != "" && country.Official != country.Name {
		b.WriteString(c.styles.Dim.Render(country.Official))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("%s %s\n", c.styles.Label.Render("Capital:"), strings.Join(country.Capital, ", ")))
	b.WriteString(fmt.Sprintf("%s %d\n", c.styles.Label.Render("Population:"), country.Population))
	if country.Region != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", c.styles.Label.Render("Region:"), country.Region))
	}
	b.WriteString(fmt.Sprintf("%s %s", c.styles.Label.Render("Languages:"), strings.Join(country.Languages, ", ")))

	style := c.styles.Card
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style.Render(b.String())
}

// RenderCountryList renders the names of several matches, one per line
func (c *CountryRenderer) RenderCountryList(list []domain.Country) string {
	lines := make([]string, 0, len(list))
	for _, country := range list {
		lines = append(lines, strings.TrimSpace(country.Flag+" "+country.Name))
	}
	return strings.Join(lines, "\n")
}

// RenderCountries renders the current lookup result. Branches that only
// raise a notice render nothing.
func (c *CountryRenderer) RenderCountries(res countries.Result, width int) string {
	switch res.Branch {
	case countries.BranchCard:
		if len(res.Countries) == 0 {
			return ""
		}
		return c.RenderCountryCard(res.Countries[0], width)
	case countries.BranchList:
		return c.RenderCountryList(res.Countries)
	default:
		return ""
	}
}
