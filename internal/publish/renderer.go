// Package publish renders synthesized articles to static HTML and records
// them as deployments.
package publish

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"

	"github.com/vidjalsa/vidjalsa/internal/blog"
)

// Paragraphs are treated as markdown: the model frequently emits emphasis,
// lists, and fenced code blocks. goldmark escapes raw HTML by default, and
// the surrounding shell goes through html/template, so article text cannot
// inject markup into the page.

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            margin: 0;
            font-family: Georgia, 'Times New Roman', serif;
            background-color: #fafafa;
            color: #242424;
            line-height: 1.7;
        }
        .container {
            max-width: 720px;
            margin: 0 auto;
            padding: 48px 24px;
        }
        h1 {
            font-size: 2.4em;
            line-height: 1.2;
            margin-bottom: 8px;
        }
        .question {
            font-size: 1.25em;
            font-style: italic;
            color: #6b6b6b;
            margin-bottom: 24px;
        }
        .byline {
            font-size: 0.95em;
            color: #6b6b6b;
            border-bottom: 1px solid #e0e0e0;
            padding-bottom: 24px;
            margin-bottom: 32px;
        }
        .cover {
            width: 100%;
            border-radius: 4px;
            margin-bottom: 32px;
        }
        .content p {
            margin: 0 0 1.4em;
            font-size: 1.12em;
        }
        .content pre {
            background: #f2f2f2;
            padding: 16px;
            border-radius: 4px;
            overflow-x: auto;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Title}}</h1>
        <div class="question">{{.Question}}</div>
        <div class="byline">By {{.Author}}</div>
        {{if .ImageURL}}<img class="cover" src="{{.ImageURL}}" alt="{{.Title}}">{{end}}
        <div class="content">
        {{range .Paragraphs}}{{.}}
        {{end}}</div>
    </div>
</body>
</html>
`

type pageData struct {
	Title      string
	Question   string
	Author     string
	ImageURL   string
	Paragraphs []template.HTML
}

// Renderer turns article fields into a complete static HTML page.
type Renderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		tmpl:     template.Must(template.New("article").Parse(pageTemplate)),
		markdown: goldmark.New(),
	}
}

// Render produces the page for one article. The author is passed separately
// because article rows do not store it; on cache hits the owning user stands
// in. Each paragraph becomes its own converted markdown block so it renders
// as a separate <p>.
func (r *Renderer) Render(a *blog.Article, author string) ([]byte, error) {
	data := pageData{
		Title:      a.Title,
		Question:   a.Question,
		Author:     author,
		ImageURL:   a.ImageURL,
		Paragraphs: make([]template.HTML, 0, len(a.Paragraphs)),
	}
	for i, p := range a.Paragraphs {
		var buf bytes.Buffer
		if err := r.markdown.Convert([]byte(p), &buf); err != nil {
			return nil, fmt.Errorf("render paragraph %d: %w", i, err)
		}
		data.Paragraphs = append(data.Paragraphs, template.HTML(buf.String()))
	}

	var out bytes.Buffer
	if err := r.tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("render article page: %w", err)
	}
	return out.Bytes(), nil
}
