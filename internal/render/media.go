package render

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"blogsync/internal/assets"
	"blogsync/internal/notion"
)

// formatNum prints a width value without trailing zeros (50, not 50.000000).
func formatNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// renderImage resolves the image through the asset pipeline and emits a
// figure element. With a srcset from the staging pipeline it renders a
// responsive <picture>; otherwise a plain <img>. Resolution never fails the
// block: a broken asset degrades to its original URL upstream.
func (r *Renderer) renderImage(ctx context.Context, block *notion.Block) string {
	image := block.Image
	if image == nil {
		return ""
	}
	sourceURL := image.URL()
	if sourceURL == "" {
		return ""
	}

	var asset assets.Staged
	if r.assets.PipelineEnabled() {
		staged, err := r.assets.StageRemote(ctx, sourceURL, block.ID, ".png")
		if err != nil {
			r.logger.Warn("pipeline upload failed for image block", "block", block.ID, "error", err)
			if image.Hosted() {
				staged = r.assets.CacheLocal(ctx, sourceURL, block.ID, ".png")
			} else {
				staged = assets.Staged{PublicPath: sourceURL}
			}
		}
		asset = staged
	} else if image.Hosted() {
		asset = r.assets.CacheLocal(ctx, sourceURL, block.ID, ".png")
	} else {
		asset = assets.Staged{PublicPath: sourceURL}
	}

	hints := ParseImageHints(image.Caption)
	captionHTML := ""
	if hints.Caption != "" {
		captionHTML = escapeHTML(hints.Caption)
	}
	altText := hints.Caption
	if altText == "" {
		altText = notion.PlainText(image.Caption)
	}
	if altText == "" {
		altText = "Notion image"
	}
	altText = escapeHTML(altText)

	sizeAttrs := ""
	if asset.Width > 0 && asset.Height > 0 {
		sizeAttrs = fmt.Sprintf(` width="%d" height="%d"`, asset.Width, asset.Height)
	}

	figureStyle := ` style="text-align:center;"`
	switch hints.Align {
	case "left":
		figureStyle = ` style="text-align:left;"`
	case "right":
		figureStyle = ` style="text-align:right;"`
	}

	maxGenerated := float64(r.maxGeneratedWidth())
	desiredWidth := 0.0
	switch {
	case hints.WidthPx > 0:
		desiredWidth = hints.WidthPx
		if maxGenerated > 0 {
			desiredWidth = math.Min(desiredWidth, maxGenerated)
		}
	case asset.Width > 0:
		if maxGenerated > 0 {
			desiredWidth = math.Min(float64(asset.Width), maxGenerated)
		} else {
			desiredWidth = math.Min(float64(asset.Width), defaultIntrinsicCap)
		}
	case maxGenerated > 0:
		desiredWidth = maxGenerated
	}
	if r.displayMaxWidth > 0 && desiredWidth > 0 {
		desiredWidth = math.Min(desiredWidth, float64(r.displayMaxWidth))
	}

	var inlineStyle, sizesValue string
	switch {
	case hints.WidthPercent > 0:
		inlineStyle = ` style="width:` + formatNum(hints.WidthPercent) + `%;height:auto;display:inline-block;"`
		sizesValue = strconv.Itoa(int(math.Round(hints.WidthPercent))) + "vw"
	case desiredWidth > 0:
		inlineStyle = ` style="width:min(100%, ` + formatNum(desiredWidth) + `px);height:auto;display:inline-block;"`
		sizesValue = strconv.Itoa(int(math.Round(desiredWidth))) + "px"
	default:
		inlineStyle = ` style="max-width:100%;height:auto;display:inline-block;"`
		sizesValue = "(max-width: 768px) 100vw, 960px"
	}

	figcaption := ""
	if captionHTML != "" {
		figcaption = "<figcaption>" + captionHTML + "</figcaption>"
	}

	if asset.SrcSet != "" {
		fallbackSrc := asset.FallbackPath
		if fallbackSrc == "" {
			fallbackSrc = asset.PublicPath
		}
		return "<figure" + figureStyle + `><picture><source type="image/webp" srcset="` + asset.SrcSet + `" sizes="` + sizesValue + `" /><img src="` + fallbackSrc + `" alt="` + altText + `"` + sizeAttrs + inlineStyle + " /></picture>" + figcaption + "</figure>"
	}

	return "<figure" + figureStyle + `><img src="` + asset.PublicPath + `" alt="` + altText + `"` + sizeAttrs + inlineStyle + " />" + figcaption + "</figure>"
}

// renderFileLike handles file, pdf, video and audio blocks. Notion-hosted
// files are cached locally (their URLs expire); external URLs pass through.
func (r *Renderer) renderFileLike(ctx context.Context, block *notion.Block) string {
	payload := block.FileLike()
	if payload == nil {
		return ""
	}
	sourceURL := payload.URL()
	if sourceURL == "" {
		return ""
	}

	var asset assets.Staged
	if payload.Hosted() {
		fallbackExt := ".bin"
		if block.Type == notion.TypePDF {
			fallbackExt = ".pdf"
		}
		asset = r.assets.CacheLocal(ctx, sourceURL, block.ID, fallbackExt)
	} else {
		asset = assets.Staged{PublicPath: sourceURL}
	}

	captionHTML := RichTextHTML(payload.Caption)
	figcaption := ""
	if captionHTML != "" {
		figcaption = "<figcaption>" + captionHTML + "</figcaption>"
	}

	switch block.Type {
	case notion.TypePDF:
		return `<figure><a href="` + asset.PublicPath + `" target="_blank" rel="noopener noreferrer">Open PDF</a>` + figcaption + "</figure>"
	case notion.TypeVideo:
		return `<figure><video controls preload="metadata" src="` + asset.PublicPath + `" style="max-width:100%;border-radius:0.75rem;"></video>` + figcaption + "</figure>"
	case notion.TypeAudio:
		return `<figure><audio controls preload="metadata" src="` + asset.PublicPath + `" style="width:100%;"></audio>` + figcaption + "</figure>"
	case notion.TypeFile:
		name := payload.Name
		if name == "" {
			name = "Download file"
		}
		return `<p><a href="` + asset.PublicPath + `" target="_blank" rel="noopener noreferrer">` + escapeHTML(name) + "</a></p>"
	}

	return `<p><a href="` + asset.PublicPath + `" target="_blank" rel="noopener noreferrer">Open media</a></p>`
}

// renderTable fetches its own row children: rows are structurally fixed, so
// the generic walker skips descending into tables. Zero rows render nothing.
func (r *Renderer) renderTable(ctx context.Context, block *notion.Block) (string, error) {
	rows, err := r.source.ListBlockChildren(ctx, block.ID)
	if err != nil {
		return "", err
	}

	var tableRows []notion.Block
	for _, row := range rows {
		if row.Type == notion.TypeTableRow && row.TableRow != nil {
			tableRows = append(tableRows, row)
		}
	}
	if len(tableRows) == 0 {
		return "", nil
	}

	hasColumnHeader := block.Table != nil && block.Table.HasColumnHeader
	hasRowHeader := block.Table != nil && block.Table.HasRowHeader

	var b strings.Builder
	b.WriteString(`<div class="blog-table-wrap"><table><tbody>`)
	for rowIndex, row := range tableRows {
		b.WriteString("<tr>")
		for cellIndex, cell := range row.TableRow.Cells {
			tag := "td"
			if (hasColumnHeader && rowIndex == 0) || (hasRowHeader && cellIndex == 0) {
				tag = "th"
			}
			b.WriteString("<" + tag + ">" + RichTextHTML(cell) + "</" + tag + ">")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table></div>")
	return b.String(), nil
}
