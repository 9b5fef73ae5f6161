package testutil

import "blogsync/internal/notion"

// Spans wraps plain text in a single unstyled rich-text span.
func Spans(text string) []notion.RichText {
	return []notion.RichText{{PlainText: text}}
}

// NewPage builds a database page with the standard blog properties.
func NewPage(id, title, description, date string, tags []string, published bool) notion.Page {
	options := make([]notion.SelectOption, 0, len(tags))
	for _, tag := range tags {
		options = append(options, notion.SelectOption{Name: tag})
	}

	props := map[string]notion.Property{
		notion.PropTitle:       {Type: "title", Title: Spans(title)},
		notion.PropDescription: {Type: "rich_text", RichText: Spans(description)},
		notion.PropTags:        {Type: "multi_select", MultiSelect: options},
		notion.PropPublished:   {Type: "checkbox", Checkbox: published},
	}
	if date != "" {
		props[notion.PropPublishedDate] = notion.Property{Type: "date", Date: &notion.DateValue{Start: date}}
	}

	return notion.Page{ID: id, Properties: props}
}
