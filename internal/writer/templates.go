package writer

import (
	"net/url"
	"regexp"
	"strings"
	"text/template"
	"time"

	"git.home.luguber.info/inful/gitin/internal/markup"
	"git.home.luguber.info/inful/gitin/internal/paths"
	"git.home.luguber.info/inful/gitin/internal/repo"
)

const (
	dateFormat = "2006-01-02 15:04"
	feedFormat = time.RFC3339
)

var funcs = template.FuncMap{
	"enc":   markup.String,
	"ascii": func(s string) string { return string(markup.AppendASCII(nil, []byte(s))) },
	"href":  href,
	"date":  func(t time.Time) string { return t.UTC().Format(dateFormat) },
	"rfc":   func(t time.Time) string { return t.UTC().Format(feedFormat) },
	"lines": func(s string) []string { return strings.Split(strings.TrimRight(s, "\n"), "\n") },
	"filepage": filePage,
	"linkable": linkable,
}

// href escapes a relative link for use in an attribute.
func href(p string) string { return markup.String(linkPath(p)) }

// linkPath percent-escapes every segment of a relative link.
func linkPath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

// filePage is the page of a file of the head tree, relative to the
// repository directory. Hidden components are made visible.
// scpLike matches the user@host:path form git accepts for ssh remotes.
var scpLike = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z0-9.-]+:[^/]`)

// linkable reports whether a clone URL may become a link target. Anything
// outside the transports git speaks is shown as text only.
func linkable(u string) bool {
	if scpLike.MatchString(u) {
		return true
	}
	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return false
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "git", "ssh", "git+ssh", "ssh+git":
		return true
	}
	return false
}

func filePage(path string) string {
	return repo.FilesDir + "/" + paths.Unhide(path) + ".html"
}

var pages = template.Must(template.New("pages").Funcs(funcs).Parse(layoutTemplates + repoTemplates + siteTemplates + feedTemplates))

const layoutTemplates = `
{{- define "header" -}}
<!DOCTYPE html>
<html>
<head>
<meta http-equiv="Content-Type" content="text/html; charset=UTF-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>{{enc .Title}}{{with .Repo}} - {{enc .Name}}{{end}}</title>
<link rel="icon" type="{{enc .Site.FaviconType}}" href="{{.SiteRoot}}{{href .Site.Favicon}}" />
<link rel="stylesheet" type="text/css" href="{{.SiteRoot}}{{href .Site.Stylesheet}}" />
{{- with .Repo}}
<link rel="alternate" type="application/atom+xml" title="{{enc .Name}} Atom Feed" href="{{$.RepoRoot}}{{href $.Site.FileCommitAtom}}" />
<link rel="alternate" type="application/atom+xml" title="{{enc .Name}} Atom Feed (tags)" href="{{$.RepoRoot}}{{href $.Site.FileTagAtom}}" />
{{- end}}
</head>
<body>
<table>
<tr><td><a href="{{.SiteRoot}}{{href .Site.FileIndex}}"><img src="{{.SiteRoot}}{{href .Site.LogoIcon}}" alt="" width="32" height="32" /></a></td>
<td><h1>{{if .Repo}}{{enc .Repo.Name}}{{else}}{{enc .Site.Name}}{{end}}</h1><span class="desc">{{if .Repo}}{{enc .Repo.Description}}{{else}}{{enc .Site.Description}}{{end}}</span></td></tr>
{{- with .Repo}}
{{- if .CloneURL}}
<tr class="url"><td></td><td>git clone {{if linkable .CloneURL}}<a href="{{enc .CloneURL}}">{{enc .CloneURL}}</a>{{else}}{{enc .CloneURL}}{{end}}</td></tr>
{{- end}}
<tr><td></td><td>
<a href="{{$.RepoRoot}}{{href $.Site.FileIndex}}">Log</a> |
<a href="{{$.RepoRoot}}{{href $.Site.FileTree}}">Files</a> |
<a href="{{$.RepoRoot}}{{href $.Site.FileLog}}">Refs</a>
{{- range .PinnedFiles}} |
<a href="{{$.RepoRoot}}{{href (filepage .)}}">{{enc .}}</a>
{{- end}}
{{- if .HasSubmodules}} |
<a href="{{$.RepoRoot}}{{href (filepage ".gitmodules")}}">Submodules</a>
{{- end}}
{{- if $.Archive}} |
<a href="{{$.RepoRoot}}{{href $.Archive}}">Download</a>
{{- end}}
</td></tr>
{{- end}}
</table>
<hr/>
<div id="content">
{{end}}

{{- define "footer" -}}
</div>
<hr/>
<footer>{{ascii .Site.Footer}}</footer>
</body>
</html>
{{end}}
`

const repoTemplates = `
{{- define "log" -}}
{{template "header" .}}<table id="log"><thead>
<tr><td><b>Date</b></td><td class="expand"><b>Commit message</b></td><td><b>Author</b></td><td class="num" align="right"><b>Files</b></td><td class="num" align="right"><b>+</b></td><td class="num" align="right"><b>-</b></td></tr>
</thead><tbody>
{{range .Commits}}<tr><td>{{date .Author.When}}</td><td><a href="commit/{{.Hash}}.html">{{enc .Summary}}</a></td><td>{{enc .Author.Name}}</td><td class="num" align="right">{{len .Stats}}</td><td class="num" align="right">+{{.Added}}</td><td class="num" align="right">-{{.Deleted}}</td></tr>
{{end}}</tbody></table>
{{template "footer" .}}
{{- end}}

{{- define "refs" -}}
{{template "header" .}}<h2>Branches</h2>
<table id="branches"><thead>
<tr><td><b>Name</b></td><td><b>Last commit date</b></td><td><b>Author</b></td></tr>
</thead><tbody>
{{range .Branches}}<tr><td><a href="commit/{{.Target}}.html">{{enc .Name}}</a></td><td>{{date .When}}</td><td>{{enc .Author.Name}}</td></tr>
{{end}}</tbody></table>
<h2>Tags</h2>
<table id="tags"><thead>
<tr><td><b>Name</b></td><td><b>Last commit date</b></td><td><b>Author</b></td></tr>
</thead><tbody>
{{range .Tags}}<tr><td><a href="commit/{{.Target}}.html">{{enc .Name}}</a></td><td>{{date .When}}</td><td>{{enc .Author.Name}}</td></tr>
{{end}}</tbody></table>
{{template "footer" .}}
{{- end}}

{{- define "tree" -}}
{{template "header" .}}<table id="files"><thead>
<tr><td><b>Mode</b></td><td class="expand"><b>Name</b></td><td class="num" align="right"><b>Size</b></td></tr>
</thead><tbody>
{{range .Files}}<tr><td>{{.ModeString}}</td><td><a href="{{href (filepage .Path)}}">{{enc .Path}}</a></td><td class="num" align="right">{{.Size}}B</td></tr>
{{end}}</tbody></table>
{{template "footer" .}}
{{- end}}

{{- define "blob" -}}
{{template "header" .}}<p>{{enc .Blob.Path}} <span class="desc">({{.Blob.Size}}B)</span></p>
<hr/>
{{if .Blob.Binary}}<p>Binary file.</p>
{{else if .Blob.Truncated}}<p>File too large to display ({{.Blob.Size}}B, limit {{.Limit}}B).</p>
{{else}}{{.Body}}{{end}}
{{- template "footer" .}}
{{- end}}

{{- define "commit" -}}
{{template "header" .}}{{with .Commit}}<pre><b>commit</b> <a href="{{.Hash}}.html">{{.Hash}}</a>
{{range .Parents}}<b>parent</b> <a href="{{.}}.html">{{.}}</a>
{{end}}<b>Author:</b> {{enc .Author.Name}} &lt;<a href="mailto:{{enc .Author.Email}}">{{enc .Author.Email}}</a>&gt;
<b>Date:</b>   {{rfc .Author.When}}
</pre>
<pre class="message">{{range lines .Message}}{{enc .}}
{{end}}</pre>
<p><b>Diffstat:</b></p>
<table id="diffstat">{{range .Stats}}<tr><td>{{enc .Name}}</td><td class="num">+{{.Added}}</td><td class="num">-{{.Deleted}}</td></tr>
{{end}}</table>
<p>{{len .Stats}} files changed, {{.Added}} insertions(+), {{.Deleted}} deletions(-)</p>
{{end}}<hr/>
{{if .DiffTooLarge}}<p>Diff is too large to display.</p>
{{else}}<pre id="diff">{{range .Diff}}{{if .Class}}<span class="{{.Class}}">{{enc .Text}}</span>{{else}}{{enc .Text}}{{end}}
{{end}}</pre>
{{end}}
{{- template "footer" .}}
{{- end}}
`

const siteTemplates = `
{{- define "site" -}}
{{template "header" .}}<table id="index"><thead>
<tr><td><b>Name</b></td><td><b>Description</b></td><td><b>Last commit</b></td></tr>
</thead><tbody>
{{range .Entries}}<tr><td><a href="{{href .RepoPath}}/{{href $.Site.FileIndex}}">{{enc .Name}}</a></td><td>{{enc .Description}}</td><td>{{if not .LastCommit.IsZero}}{{date .LastCommit}}{{end}}</td></tr>
{{end}}</tbody></table>
{{template "footer" .}}
{{- end}}
`

const feedTemplates = `
{{- define "atom" -}}
<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
<title>{{enc .Repo.Name}}, {{enc .Kind}}</title>
<subtitle>{{enc .Repo.Description}}</subtitle>
<id>urn:uuid:{{.ID}}</id>
<updated>{{rfc .Updated}}</updated>
{{range .Entries}}<entry>
<id>urn:uuid:{{.ID}}</id>
<published>{{rfc .Published}}</published>
<updated>{{rfc .Updated}}</updated>
<title>{{enc .Title}}</title>
<link rel="alternate" type="text/html" href="commit/{{.Hash}}.html" />
<author>
<name>{{enc .Author.Name}}</name>
<email>{{enc .Author.Email}}</email>
</author>
<content>{{range lines .Content}}{{enc .}}
{{end}}</content>
</entry>
{{end}}</feed>
{{end}}
`
