package notion

import "strings"

// Block type tags as returned by the Notion API.
// The renderer switches over these; anything else falls through to the
// visible unsupported-block placeholder.
const (
	TypeParagraph        = "paragraph"
	TypeHeading1         = "heading_1"
	TypeHeading2         = "heading_2"
	TypeHeading3         = "heading_3"
	TypeBulletedListItem = "bulleted_list_item"
	TypeNumberedListItem = "numbered_list_item"
	TypeQuote            = "quote"
	TypeCode             = "code"
	TypeCallout          = "callout"
	TypeToDo             = "to_do"
	TypeToggle           = "toggle"
	TypeDivider          = "divider"
	TypeImage            = "image"
	TypeTable            = "table"
	TypeTableRow         = "table_row"
	TypeBookmark         = "bookmark"
	TypeEmbed            = "embed"
	TypeLinkPreview      = "link_preview"
	TypeChildPage        = "child_page"
	TypeChildDatabase    = "child_database"
	TypeEquation         = "equation"
	TypeTableOfContents  = "table_of_contents"
	TypeFile             = "file"
	TypePDF              = "pdf"
	TypeVideo            = "video"
	TypeAudio            = "audio"
	TypeColumnList       = "column_list"
	TypeColumn           = "column"
	TypeSyncedBlock      = "synced_block"
	TypeUnsupported      = "unsupported"
)

// Annotations holds the boolean style flags of one rich-text span.
type Annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Underline     bool `json:"underline"`
	Code          bool `json:"code"`
}

// RichText is one formatted text span.
type RichText struct {
	PlainText   string      `json:"plain_text"`
	Href        string      `json:"href,omitempty"`
	Annotations Annotations `json:"annotations"`
}

// PlainText concatenates the span texts and trims surrounding whitespace.
func PlainText(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.PlainText)
	}
	return strings.TrimSpace(b.String())
}

// HostedFile is a Notion-hosted file reference. The URL is time-limited,
// which is why hosted media must be re-materialized during a sync run.
type HostedFile struct {
	URL string `json:"url"`
}

// ExternalFile is a caller-provided file reference.
type ExternalFile struct {
	URL string `json:"url"`
}

// FileObject is the shared shape of image, file, pdf, video and audio
// payloads: a tagged union of a hosted or external URL plus a caption.
type FileObject struct {
	Type     string        `json:"type"`
	File     *HostedFile   `json:"file,omitempty"`
	External *ExternalFile `json:"external,omitempty"`
	Caption  []RichText    `json:"caption,omitempty"`
	Name     string        `json:"name,omitempty"`
}

// URL returns the source URL for either variant, or "" when absent.
func (f *FileObject) URL() string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case "external":
		if f.External != nil {
			return f.External.URL
		}
	case "file":
		if f.File != nil {
			return f.File.URL
		}
	}
	return ""
}

// Hosted reports whether the file lives on Notion's storage (as opposed to
// an external URL the author pasted in).
func (f *FileObject) Hosted() bool {
	return f != nil && f.Type == "file"
}

// Icon is a callout icon; only emoji icons are rendered.
type Icon struct {
	Type  string `json:"type"`
	Emoji string `json:"emoji,omitempty"`
}

// Text is the payload of blocks that carry only rich text (paragraph, quote,
// toggle, list items).
type Text struct {
	RichText []RichText `json:"rich_text"`
}

// Heading is the payload of heading_1/2/3 blocks.
type Heading struct {
	RichText     []RichText `json:"rich_text"`
	IsToggleable bool       `json:"is_toggleable,omitempty"`
}

// Code is the payload of code blocks.
type Code struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language,omitempty"`
}

// Callout is the payload of callout blocks.
type Callout struct {
	RichText []RichText `json:"rich_text"`
	Icon     *Icon      `json:"icon,omitempty"`
}

// ToDo is the payload of to_do blocks.
type ToDo struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked,omitempty"`
}

// Table is the payload of table blocks. Rows arrive as table_row children.
type Table struct {
	HasColumnHeader bool `json:"has_column_header,omitempty"`
	HasRowHeader    bool `json:"has_row_header,omitempty"`
}

// TableRow is the payload of table_row blocks.
type TableRow struct {
	Cells [][]RichText `json:"cells"`
}

// Link is the payload of bookmark, embed and link_preview blocks.
type Link struct {
	URL string `json:"url"`
}

// ChildRef is the payload of child_page and child_database blocks.
type ChildRef struct {
	Title string `json:"title"`
}

// Equation is the payload of equation blocks.
type Equation struct {
	Expression string `json:"expression"`
}

// Block is one node of a page's content tree. Exactly one payload field is
// populated, selected by Type; children are fetched lazily by id.
type Block struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`

	Paragraph        *Text       `json:"paragraph,omitempty"`
	Heading1         *Heading    `json:"heading_1,omitempty"`
	Heading2         *Heading    `json:"heading_2,omitempty"`
	Heading3         *Heading    `json:"heading_3,omitempty"`
	BulletedListItem *Text       `json:"bulleted_list_item,omitempty"`
	NumberedListItem *Text       `json:"numbered_list_item,omitempty"`
	Quote            *Text       `json:"quote,omitempty"`
	Code             *Code       `json:"code,omitempty"`
	Callout          *Callout    `json:"callout,omitempty"`
	ToDo             *ToDo       `json:"to_do,omitempty"`
	Toggle           *Text       `json:"toggle,omitempty"`
	Image            *FileObject `json:"image,omitempty"`
	Table            *Table      `json:"table,omitempty"`
	TableRow         *TableRow   `json:"table_row,omitempty"`
	Bookmark         *Link       `json:"bookmark,omitempty"`
	Embed            *Link       `json:"embed,omitempty"`
	LinkPreview      *Link       `json:"link_preview,omitempty"`
	ChildPage        *ChildRef   `json:"child_page,omitempty"`
	ChildDatabase    *ChildRef   `json:"child_database,omitempty"`
	Equation         *Equation   `json:"equation,omitempty"`
	File             *FileObject `json:"file,omitempty"`
	PDF              *FileObject `json:"pdf,omitempty"`
	Video            *FileObject `json:"video,omitempty"`
	Audio            *FileObject `json:"audio,omitempty"`
}

// Heading returns the heading payload for heading_1/2/3 blocks.
func (b *Block) Heading() *Heading {
	switch b.Type {
	case TypeHeading1:
		return b.Heading1
	case TypeHeading2:
		return b.Heading2
	case TypeHeading3:
		return b.Heading3
	}
	return nil
}

// ListItemText returns the rich text of a list-item block.
func (b *Block) ListItemText() []RichText {
	switch b.Type {
	case TypeBulletedListItem:
		if b.BulletedListItem != nil {
			return b.BulletedListItem.RichText
		}
	case TypeNumberedListItem:
		if b.NumberedListItem != nil {
			return b.NumberedListItem.RichText
		}
	}
	return nil
}

// FileLike returns the file-like payload for file, pdf, video and audio blocks.
func (b *Block) FileLike() *FileObject {
	switch b.Type {
	case TypeFile:
		return b.File
	case TypePDF:
		return b.PDF
	case TypeVideo:
		return b.Video
	case TypeAudio:
		return b.Audio
	}
	return nil
}

// Property names expected on the blog database.
const (
	PropTitle         = "Title"
	PropDescription   = "Description"
	PropPublishedDate = "Published Date"
	PropTags          = "Tags"
	PropPublished     = "Published"
)

// SelectOption is one entry of a multi_select property.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is the value of a date property.
type DateValue struct {
	Start string `json:"start"`
}

// Property is a page property. Like Block, it is a tagged union keyed by Type.
type Property struct {
	Type        string         `json:"type"`
	Title       []RichText     `json:"title,omitempty"`
	RichText    []RichText     `json:"rich_text,omitempty"`
	Date        *DateValue     `json:"date,omitempty"`
	MultiSelect []SelectOption `json:"multi_select,omitempty"`
	Checkbox    bool           `json:"checkbox,omitempty"`
}

// Page is one database page (one blog post) with its property map.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// Title returns the page title, or "" when the property is missing or of the
// wrong type.
func (p *Page) Title() string {
	prop, ok := p.Properties[PropTitle]
	if !ok || prop.Type != "title" {
		return ""
	}
	return PlainText(prop.Title)
}

// Description returns the description text, or "".
func (p *Page) Description() string {
	prop, ok := p.Properties[PropDescription]
	if !ok || prop.Type != "rich_text" {
		return ""
	}
	return PlainText(prop.RichText)
}

// PublishedDate returns the ISO start date of the publication date property,
// or "".
func (p *Page) PublishedDate() string {
	prop, ok := p.Properties[PropPublishedDate]
	if !ok || prop.Type != "date" || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

// Tags returns the non-empty tag names of the tags property.
func (p *Page) Tags() []string {
	prop, ok := p.Properties[PropTags]
	if !ok || prop.Type != "multi_select" {
		return nil
	}
	tags := make([]string, 0, len(prop.MultiSelect))
	for _, opt := range prop.MultiSelect {
		if opt.Name != "" {
			tags = append(tags, opt.Name)
		}
	}
	return tags
}

// Published returns the value of the published checkbox.
func (p *Page) Published() bool {
	prop, ok := p.Properties[PropPublished]
	if !ok || prop.Type != "checkbox" {
		return false
	}
	return prop.Checkbox
}
