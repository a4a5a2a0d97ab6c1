package export

import (
	"bytes"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/rogersnm/salesfirst/internal/model"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// SummaryMarkdown renders the RFP analysis of a project. Empty sections are
// kept so the document layout is stable.
func SummaryMarkdown(p model.Project, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Client != "" {
		fmt.Fprintf(&b, "**Client:** %s  \n", p.Client)
	}
	if p.DueDate != nil {
		fmt.Fprintf(&b, "**Due:** %s  \n", p.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "**Generated:** %s\n\n", at.UTC().Format(time.RFC3339))

	section(&b, "Purpose", p.Summary.Purpose)
	section(&b, "Scope", p.Summary.Scope)
	section(&b, "Payment Terms", p.Summary.PaymentTerms)

	b.WriteString("## Key Requirements\n\n")
	if len(p.Summary.KeyRequirements) == 0 {
		b.WriteString("_None recorded._\n\n")
	}
	for _, r := range p.Summary.KeyRequirements {
		fmt.Fprintf(&b, "- %s\n", r)
	}
	if len(p.Summary.KeyRequirements) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## Estimated Effort\n\n")
	if len(p.Summary.Estimates) == 0 {
		b.WriteString("_None recorded._\n")
		return b.String()
	}
	for _, e := range p.Summary.Estimates {
		fmt.Fprintf(&b, "- %s: %s hours\n", e.Role, hours(e.Hours))
	}
	fmt.Fprintf(&b, "\n**Total:** %s hours\n", hours(p.Summary.TotalHours()))
	return b.String()
}

// SummaryHTML renders the summary as a standalone HTML page.
func SummaryHTML(p model.Project, at time.Time) (string, error) {
	body, err := render(SummaryMarkdown(p, at))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// SummaryDoc wraps the HTML rendering in the Office namespace envelope Word
// opens as a document.
func SummaryDoc(p model.Project, at time.Time) (string, error) {
	body, err := render(SummaryMarkdown(p, at))
	if err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(`<html xmlns:o="urn:schemas-microsoft-com:office:office" xmlns:w="urn:schemas-microsoft-com:office:word" xmlns="http://www.w3.org/TR/REC-html40">` + "\n")
	b.WriteString("<head>\n<meta http-equiv=\"Content-Type\" content=\"text/html; charset=utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(p.Title))
	b.WriteString("</head>\n<body>\n")
	b.WriteString(body)
	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

// SummaryFileName is the suggested download name for a summary export.
// ext is "html" or "doc".
func SummaryFileName(p model.Project, ext string) string {
	return slug(p.Title) + "-summary." + ext
}

func section(b *strings.Builder, heading, text string) {
	fmt.Fprintf(b, "## %s\n\n", heading)
	if strings.TrimSpace(text) == "" {
		b.WriteString("_None recorded._\n\n")
		return
	}
	b.WriteString(text + "\n\n")
}

func render(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering summary: %w", err)
	}
	return buf.String(), nil
}

func hours(h float64) string {
	return strconv.FormatFloat(h, 'f', -1, 64)
}
