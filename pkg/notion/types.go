package notion

// Page is a Notion page row as returned by the database query endpoint.
type Page struct {
	ID         string     `json:"id"`
	Archived   bool       `json:"archived,omitempty"`
	Properties Properties `json:"properties"`
}

// Properties is the property bag of a task page. Property names match the
// database schema exactly ("Due date" is case-sensitive upstream).
type Properties struct {
	Task     *PropTitle    `json:"Task,omitempty"`
	Status   *PropStatus   `json:"Status,omitempty"`
	Priority *PropSelect   `json:"Priority,omitempty"`
	DueDate  *PropDate     `json:"Due date,omitempty"`
	Project  *PropRichText `json:"Project,omitempty"`
}

// PropTitle is a title property.
type PropTitle struct {
	Title []RichText `json:"title"`
}

// PropStatus is a status property.
type PropStatus struct {
	Status *SelectOption `json:"status"`
}

// PropSelect is a select property.
type PropSelect struct {
	Select *SelectOption `json:"select"`
}

// PropDate is a date property.
type PropDate struct {
	Date *DateValue `json:"date"`
}

// PropRichText is a rich text property.
type PropRichText struct {
	RichText []RichText `json:"rich_text"`
}

// RichText is a single rich text fragment.
type RichText struct {
	Text      *TextContent `json:"text,omitempty"`
	PlainText string       `json:"plain_text,omitempty"`
}

// TextContent is the writable part of a rich text fragment.
type TextContent struct {
	Content string `json:"content"`
}

// SelectOption is a named select/status option.
type SelectOption struct {
	Name string `json:"name"`
}

// DateValue is a date property value (date only, no time component).
type DateValue struct {
	Start string `json:"start"`
}

// PlainTitle returns the first plain-text fragment of a title property.
func (p *PropTitle) PlainTitle() string {
	if p == nil || len(p.Title) == 0 {
		return ""
	}
	if p.Title[0].PlainText != "" {
		return p.Title[0].PlainText
	}
	if p.Title[0].Text != nil {
		return p.Title[0].Text.Content
	}
	return ""
}

// queryRequest is the body for POST /v1/databases/{id}/query.
type queryRequest struct {
	PageSize int         `json:"page_size"`
	Sorts    []querySort `json:"sorts,omitempty"`
}

type querySort struct {
	Property  string `json:"property"`
	Direction string `json:"direction"`
}

type queryResponse struct {
	Results []Page `json:"results"`
}

// createPageRequest is the body for POST /v1/pages.
type createPageRequest struct {
	Parent     parentRef  `json:"parent"`
	Properties Properties `json:"properties"`
}

type parentRef struct {
	DatabaseID string `json:"database_id"`
}

// patchPageRequest is the body for PATCH /v1/pages/{id}.
type patchPageRequest struct {
	Properties *Properties `json:"properties,omitempty"`
	Archived   *bool       `json:"archived,omitempty"`
}
