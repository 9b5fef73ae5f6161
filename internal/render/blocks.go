package render

import (
	"context"

	"blogsync/internal/notion"
)

// renderBlock dispatches one block to its per-type fragment renderer.
// Children HTML is handled by the walker; the only blocks that reach
// storage from here are tables (row fetch) and media (asset resolution).
// Unknown types get a visible placeholder so broken content is caught by
// the author, not silently dropped.
func (r *Renderer) renderBlock(ctx context.Context, block *notion.Block) (string, error) {
	switch block.Type {
	case notion.TypeParagraph:
		return renderParagraph(block), nil
	case notion.TypeHeading1, notion.TypeHeading2, notion.TypeHeading3:
		return renderHeading(block), nil
	case notion.TypeBulletedListItem, notion.TypeNumberedListItem:
		return renderListItem(block), nil
	case notion.TypeQuote:
		return renderQuote(block), nil
	case notion.TypeCode:
		return renderCode(block), nil
	case notion.TypeCallout:
		return renderCallout(block), nil
	case notion.TypeToDo:
		return renderToDo(block, ""), nil
	case notion.TypeToggle:
		return renderToggle(block, ""), nil
	case notion.TypeDivider:
		return "<hr />", nil
	case notion.TypeImage:
		return r.renderImage(ctx, block), nil
	case notion.TypeTable:
		return r.renderTable(ctx, block)
	case notion.TypeBookmark:
		return renderLink(block.Bookmark), nil
	case notion.TypeEmbed:
		return renderLink(block.Embed), nil
	case notion.TypeLinkPreview:
		return renderLink(block.LinkPreview), nil
	case notion.TypeChildPage:
		return renderChildRef(block.ChildPage, "📄", "Untitled page"), nil
	case notion.TypeChildDatabase:
		return renderChildRef(block.ChildDatabase, "🗃️", "Untitled database"), nil
	case notion.TypeEquation:
		return renderEquation(block), nil
	case notion.TypeTableOfContents:
		return "", nil
	case notion.TypeFile, notion.TypePDF, notion.TypeVideo, notion.TypeAudio:
		return r.renderFileLike(ctx, block), nil
	case notion.TypeColumnList, notion.TypeColumn, notion.TypeSyncedBlock:
		return "", nil
	default:
		return renderUnsupported(block), nil
	}
}

func renderParagraph(block *notion.Block) string {
	if block.Paragraph == nil {
		return ""
	}
	content := RichTextHTML(block.Paragraph.RichText)
	if content == "" {
		return ""
	}
	return "<p>" + content + "</p>"
}

func headingTag(blockType string) string {
	switch blockType {
	case notion.TypeHeading1:
		return "h1"
	case notion.TypeHeading2:
		return "h2"
	}
	return "h3"
}

func renderHeading(block *notion.Block) string {
	heading := block.Heading()
	if heading == nil {
		return ""
	}
	content := RichTextHTML(heading.RichText)
	if content == "" {
		return ""
	}
	tag := headingTag(block.Type)
	return "<" + tag + ">" + content + "</" + tag + ">"
}

func renderListItem(block *notion.Block) string {
	return "<li>" + RichTextHTML(block.ListItemText()) + "</li>"
}

func renderQuote(block *notion.Block) string {
	if block.Quote == nil {
		return ""
	}
	content := RichTextHTML(block.Quote.RichText)
	if content == "" {
		return ""
	}
	return "<blockquote>" + content + "</blockquote>"
}

func renderCode(block *notion.Block) string {
	if block.Code == nil {
		return ""
	}
	content := escapeHTML(notion.PlainText(block.Code.RichText))
	language := block.Code.Language
	if language == "" {
		language = "plaintext"
	}
	return `<pre><code data-language="` + escapeHTML(language) + `">` + content + `</code></pre>`
}

func renderCallout(block *notion.Block) string {
	if block.Callout == nil {
		return ""
	}
	content := RichTextHTML(block.Callout.RichText)
	if content == "" {
		return ""
	}
	icon := ""
	if block.Callout.Icon != nil && block.Callout.Icon.Type == "emoji" {
		icon = escapeHTML(block.Callout.Icon.Emoji)
	}
	html := `<div class="blog-callout">`
	if icon != "" {
		html += `<span class="blog-callout-icon">` + icon + `</span>`
	}
	return html + "<div>" + content + "</div></div>"
}

func renderToDo(block *notion.Block, childHTML string) string {
	var content string
	checked := ""
	if block.ToDo != nil {
		content = RichTextHTML(block.ToDo.RichText)
		if block.ToDo.Checked {
			checked = " checked"
		}
	}
	return `<div class="blog-todo"><label><input type="checkbox" disabled` + checked + ` /> <span>` + content + "</span></label>" + childHTML + "</div>"
}

func renderToggle(block *notion.Block, childHTML string) string {
	var content string
	if block.Toggle != nil {
		content = RichTextHTML(block.Toggle.RichText)
	}
	if content == "" {
		content = "Toggle"
	}
	return `<details class="blog-toggle"><summary>` + content + "</summary>" + childHTML + "</details>"
}

func renderHeadingToggle(block *notion.Block, childHTML string) string {
	heading := block.Heading()
	if heading == nil {
		return childHTML
	}
	content := RichTextHTML(heading.RichText)
	if content == "" {
		return childHTML
	}
	tag := headingTag(block.Type)
	return `<details class="blog-toggle blog-toggle-heading"><summary><span class="` + tag + `">` + content + "</span></summary>" + childHTML + "</details>"
}

func renderLink(link *notion.Link) string {
	if link == nil || link.URL == "" {
		return ""
	}
	return `<p><a href="` + escapeHTML(link.URL) + `" target="_blank" rel="noopener noreferrer">` + escapeHTML(link.URL) + "</a></p>"
}

func renderChildRef(ref *notion.ChildRef, marker, fallbackTitle string) string {
	title := fallbackTitle
	if ref != nil && ref.Title != "" {
		title = ref.Title
	}
	return `<p class="blog-child-ref">` + marker + " " + escapeHTML(title) + "</p>"
}

func renderEquation(block *notion.Block) string {
	if block.Equation == nil || block.Equation.Expression == "" {
		return ""
	}
	return `<pre><code data-language="latex">` + escapeHTML(block.Equation.Expression) + "</code></pre>"
}

func renderUnsupported(block *notion.Block) string {
	blockType := block.Type
	if blockType == "" {
		blockType = "unknown"
	}
	return `<p class="blog-unsupported">Unsupported Notion block: ` + escapeHTML(blockType) + "</p>"
}
