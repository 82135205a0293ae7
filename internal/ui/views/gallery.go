package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"lookout/internal/domain"
)

// CardHeight is the number of terminal lines one image card occupies
const CardHeight = cardLines + 2 // content plus top and bottom border

const cardLines = 4

// LoadMoreLabel is the footer shown when another page can be requested
const LoadMoreLabel = "[ Load more ]"

// GalleryRenderer handles rendering of image cards and history chips
type GalleryRenderer struct {
	styles *Styles
}

// NewGalleryRenderer creates a new gallery renderer
func NewGalleryRenderer(styles *Styles) *GalleryRenderer {
	return &GalleryRenderer{
		styles: styles,
	}
}

// RenderImageCard renders one image as a bordered card of fixed height
func (g *GalleryRenderer) RenderImageCard(img domain.Image, isSelected bool, width int) string {
	style := g.styles.Card
	if isSelected {
		style = g.styles.CardSelected
	}

	// border and padding take four columns
	inner := width - 4
	if inner < 20 {
		inner = 20
	}

	tags := img.Tags
	if tags == "" {
		tags = "untitled"
	}

	lines := []string{
		g.styles.CardTitle.Render(tags),
		g.styles.Dim.Render(fmt.Sprintf("%dx%d  by %s", img.Width, img.Height, img.User)),
		fmt.Sprintf("%s %d  %s %d  %s %d  %s %d",
			g.styles.Label.Render("Likes"), img.Likes,
			g.styles.Label.Render("Views"), img.Views,
			g.styles.Label.Render("Comments"), img.Comments,
			g.styles.Label.Render("Downloads"), img.Downloads,
		),
		g.styles.Scroll.Render(img.WebformatURL),
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, inner, "…")
	}

	return style.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

// RenderGallery renders the cards in display order followed by the load-more
// footer when it is revealed. The output is the content of the results viewport.
func (g *GalleryRenderer) RenderGallery(images []domain.Image, selected int, loadMore bool, width int) string {
	if len(images) == 0 {
		return ""
	}

	cards := make([]string, 0, len(images)+1)
	for i, img := range images {
		cards = append(cards, g.RenderImageCard(img, i == selected, width))
	}
	if loadMore {
		footer := lipgloss.PlaceHorizontal(width, lipgloss.Center, g.styles.LoadMore.Render(LoadMoreLabel))
		cards = append(cards, footer)
	}
	return strings.Join(cards, "\n")
}

// RenderChips renders the search-history chips on one row; active is the
// focused chip or -1
func (g *GalleryRenderer) RenderChips(chips []string, active int, width int) string {
	if len(chips) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(chips))
	for i, chip := range chips {
		style := g.styles.Chip
		if i == active {
			style = g.styles.ChipActive
		}
		rendered = append(rendered, style.Render(chip))
	}
	row := strings.Join(rendered, " ")
	if width > 0 {
		row = ansi.Truncate(row, width, "…")
	}
	return row
}

// RenderLightbox renders the popup body for the image shown full size
func (g *GalleryRenderer) RenderLightbox(img domain.Image, query string) string {
	var b strings.Builder
	title := query
	if title == "" {
		title = img.Tags
	}
	b.WriteString(g.styles.Title.Render(title))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("%s %s\n", g.styles.Label.Render("Tags:"), img.Tags))
	b.WriteString(fmt.Sprintf("%s %dx%d\n", g.styles.Label.Render("Size:"), img.Width, img.Height))
	b.WriteString(fmt.Sprintf("%s %s\n", g.styles.Label.Render("Author:"), img.User))
	b.WriteString(fmt.Sprintf("%s %s\n", g.styles.Label.Render("Page:"), img.PageURL))
	b.WriteString("\n")
	b.WriteString(g.styles.Highlight.Render(img.LargeImageURL))
	b.WriteString("\n\n")
	b.WriteString(g.styles.Help.Render("o open  d download  ←/→ previous/next  esc close"))
	return b.String()
}
