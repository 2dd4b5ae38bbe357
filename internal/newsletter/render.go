// Package newsletter renders the daily HTML document. Rendering is a pure
// function of its inputs: no network, no filesystem, no clock. The only
// date that appears is the one the caller injects, so identical inputs
// produce byte-identical output.
package newsletter

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/investordaily/AI-Investor-Daily/internal/models"
)

// Data is everything the template needs for one issue.
type Data struct {
	Date     string
	Picks    []models.StockCandidate
	Articles []models.ArticleCandidate
}

var funcs = template.FuncMap{
	"money": FormatMoney,
	"pct":   FormatPercentChange,
	"badge": SentimentBadge,
}

var issueTemplate = template.Must(template.New("issue").Funcs(funcs).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Investor Daily — {{.Date}}</title>
<style>
body { font-family: Georgia, serif; max-width: 720px; margin: 2rem auto; color: #1a1a1a; }
h1 { border-bottom: 3px solid #1a1a1a; padding-bottom: .5rem; }
.pick { border: 1px solid #ddd; border-radius: 6px; padding: 1rem; margin: 1rem 0; }
.pick h3 { margin: 0 0 .25rem; }
.meta { color: #555; font-size: .9rem; }
.badge { display: inline-block; padding: .1rem .5rem; border-radius: 3px; font-size: .8rem; color: #fff; }
.badge-positive { background: #2e7d32; }
.badge-neutral { background: #757575; }
.badge-negative { background: #c62828; }
.article { margin: .75rem 0; }
.article .source { color: #777; font-size: .85rem; }
</style>
</head>
<body>
<h1>AI Investor Daily</h1>
<p class="meta">{{.Date}}</p>
{{if .Picks}}
<h2>Top Picks</h2>
{{range .Picks}}
<div class="pick">
<h3>{{.Symbol}}{{with .Quote}}{{if .DisplayName}} — {{.DisplayName}}{{end}}{{end}}</h3>
{{with .Quote}}
<p class="meta">Price {{money .Price}} · Change {{pct .ChangePercent}} · Market cap {{money .MarketCap}}</p>
{{end}}
<p class="meta">Ratings: {{.Ratings.Buy}} buy / {{.Ratings.Hold}} hold / {{.Ratings.Sell}} sell
<span class="badge {{badge .SentimentScore}}">sentiment {{printf "%.2f" .SentimentScore}}</span></p>
{{if .Article.Summary}}<p>{{.Article.Summary}}</p>{{end}}
<p><a href="{{.Article.Link}}">{{.Article.Title}}</a></p>
</div>
{{end}}
{{end}}
{{if .Articles}}
<h2>More AI News</h2>
{{range .Articles}}
<div class="article">
<a href="{{.Link}}">{{.Title}}</a>
<div class="source">{{.SourceName}}</div>
{{if .Summary}}<p>{{.Summary}}</p>{{end}}
</div>
{{end}}
{{end}}
<p class="meta">You are receiving this because you subscribed to AI Investor Daily.</p>
</body>
</html>
`))

// Render produces the HTML for one issue.
func Render(date string, picks []models.StockCandidate, articles []models.ArticleCandidate) (string, error) {
	var sb strings.Builder
	err := issueTemplate.Execute(&sb, Data{Date: date, Picks: picks, Articles: articles})
	if err != nil {
		return "", fmt.Errorf("rendering newsletter: %w", err)
	}
	return sb.String(), nil
}
