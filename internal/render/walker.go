package render

import (
	"context"
	"strings"

	"blogsync/internal/notion"
)

// renderBlocks renders one sibling sequence at the given depth. Consecutive
// list items of the same kind are buffered and flushed into a single
// enclosing <ul>/<ol>; switching item kind or hitting any other block closes
// the open group. Container blocks (toggle, to-do, synced block, columns,
// toggleable headings) wrap their children's HTML inside their own markup;
// ordinary blocks get children appended after their own fragment.
func (r *Renderer) renderBlocks(ctx context.Context, blocks []notion.Block, depth int) (string, error) {
	var html strings.Builder
	var listBuffer []string
	listType := ""

	flushList := func() {
		if len(listBuffer) == 0 {
			return
		}
		tag := "ul"
		if listType == notion.TypeNumberedListItem {
			tag = "ol"
		}
		html.WriteString("<" + tag + ">" + strings.Join(listBuffer, "") + "</" + tag + ">")
		listBuffer = nil
		listType = ""
	}

	for i := range blocks {
		block := &blocks[i]

		if block.Type == notion.TypeBulletedListItem || block.Type == notion.TypeNumberedListItem {
			if listType != "" && listType != block.Type {
				flushList()
			}
			listType = block.Type
			listBuffer = append(listBuffer, renderListItem(block))

			// Nested content is spliced inside the open <li>.
			if block.HasChildren && depth < r.maxDepth {
				children, err := r.source.ListBlockChildren(ctx, block.ID)
				if err != nil {
					return "", err
				}
				if len(children) > 0 {
					childHTML, err := r.renderBlocks(ctx, children, depth+1)
					if err != nil {
						return "", err
					}
					last := len(listBuffer) - 1
					listBuffer[last] = strings.TrimSuffix(listBuffer[last], "</li>") + childHTML + "</li>"
				}
			}
			continue
		}

		flushList()

		// Tables fetch their own row children; beyond maxDepth blocks are
		// treated as leaves.
		childHTML := ""
		if block.HasChildren && depth < r.maxDepth && block.Type != notion.TypeTable {
			children, err := r.source.ListBlockChildren(ctx, block.ID)
			if err != nil {
				return "", err
			}
			if len(children) > 0 {
				childHTML, err = r.renderBlocks(ctx, children, depth+1)
				if err != nil {
					return "", err
				}
			}
		}

		var blockHTML string
		heading := block.Heading()
		switch {
		case block.Type == notion.TypeToggle:
			blockHTML = renderToggle(block, childHTML)
		case block.Type == notion.TypeToDo:
			blockHTML = renderToDo(block, childHTML)
		case block.Type == notion.TypeSyncedBlock:
			if childHTML != "" {
				blockHTML = `<div class="blog-synced-block">` + childHTML + `</div>`
			}
		case block.Type == notion.TypeColumnList:
			if childHTML != "" {
				blockHTML = `<div class="blog-columns">` + childHTML + `</div>`
			}
		case block.Type == notion.TypeColumn:
			blockHTML = `<div class="blog-column">` + childHTML + `</div>`
		case heading != nil && heading.IsToggleable:
			blockHTML = renderHeadingToggle(block, childHTML)
		default:
			rendered, err := r.renderBlock(ctx, block)
			if err != nil {
				return "", err
			}
			blockHTML = rendered + childHTML
		}

		html.WriteString(blockHTML)
	}

	flushList()
	return html.String(), nil
}
