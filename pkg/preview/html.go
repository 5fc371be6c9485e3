package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// htmlRenderer wraps a generated markdown page in a browsable HTML shell
// with a navigation sidebar listing every page in the site.
type htmlRenderer struct {
	template *template.Template
}

func newHTMLRenderer() *htmlRenderer {
	tmpl := template.Must(template.New("view").Funcs(template.FuncMap{
		"markdown": markdownToHTML,
	}).Parse(viewTemplate))
	return &htmlRenderer{template: tmpl}
}

type viewData struct {
	Title   string
	Pages   []string
	Content string
}

func (r *htmlRenderer) render(data viewData) (string, error) {
	var buf bytes.Buffer
	if err := r.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute view template: %w", err)
	}
	return buf.String(), nil
}

// markdownToHTML converts the markdown subset the page renderer emits:
// headings, fenced code blocks, bold and inline code. Anything fancier is
// passed through as a plain paragraph.
func markdownToHTML(text string) template.HTML {
	if text == "" {
		return ""
	}

	text = template.HTMLEscapeString(text)

	var result []string
	inCodeBlock := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			if inCodeBlock {
				result = append(result, "</code></pre>")
			} else {
				result = append(result, "<pre><code>")
			}
			inCodeBlock = !inCodeBlock
		case inCodeBlock:
			result = append(result, line)
		case strings.HasPrefix(line, "### "):
			result = append(result, "<h3>"+inlineHTML(line[4:])+"</h3>")
		case strings.HasPrefix(line, "## "):
			result = append(result, "<h2>"+inlineHTML(line[3:])+"</h2>")
		case strings.HasPrefix(line, "# "):
			result = append(result, "<h1>"+inlineHTML(line[2:])+"</h1>")
		case line == "":
			// Blank lines only separate blocks.
		default:
			result = append(result, "<p>"+inlineHTML(line)+"</p>")
		}
	}

	return template.HTML(strings.Join(result, "\n"))
}

func inlineHTML(line string) string {
	line = pairTags(line, "**", "<strong>", "</strong>")
	return pairTags(line, "`", "<code>", "</code>")
}

// pairTags replaces alternating occurrences of marker with open and close
// tags. Unbalanced markers leave the line untouched rather than emitting
// broken HTML.
func pairTags(line, marker, open, close string) string {
	parts := strings.Split(line, marker)
	if len(parts)%2 == 0 {
		return line
	}
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			if i%2 == 1 {
				b.WriteString(open)
			} else {
				b.WriteString(close)
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

const viewTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{ .Title }} - Documentation Preview</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #f5f5f5;
            margin: 0;
        }
        .layout {
            display: flex;
            max-width: 1100px;
            margin: 0 auto;
            gap: 24px;
            padding: 24px;
        }
        nav {
            flex: 0 0 240px;
            background: white;
            border-radius: 8px;
            padding: 16px;
            height: fit-content;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
        }
        nav ul {
            list-style: none;
            padding: 0;
            margin: 0;
        }
        nav li {
            margin: 8px 0;
        }
        nav a {
            color: #3498db;
            text-decoration: none;
        }
        main {
            flex: 1;
            background: white;
            border-radius: 8px;
            padding: 24px;
            box-shadow: 0 2px 4px rgba(0,0,0,0.1);
            overflow-x: auto;
        }
        main h1 {
            border-bottom: 2px solid #eee;
            padding-bottom: 8px;
        }
        pre {
            background: #2c3e50;
            color: #ecf0f1;
            padding: 12px;
            border-radius: 6px;
            overflow-x: auto;
        }
        code {
            font-family: "SF Mono", Consolas, "Liberation Mono", monospace;
            font-size: 0.9em;
        }
    </style>
</head>
<body>
    <div class="layout">
        <nav>
            <ul>
                {{- range .Pages }}
                <li><a href="/view/{{ . }}">{{ . }}</a></li>
                {{- end }}
            </ul>
        </nav>
        <main>
{{ markdown .Content }}
        </main>
    </div>
</body>
</html>
`
