package writer

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/gitin/internal/markup"
	"git.home.luguber.info/inful/gitin/internal/paths"
)

// isMarkdown reports whether the file is rendered instead of listed.
func isMarkdown(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(goldmark.WithExtensions(extension.GFM))
}

// renderMarkdown converts the Markdown file at name to HTML. Raw HTML in the
// source is omitted by the renderer. Relative links to other files of the
// tree are pointed at their file pages; repoRoot leads from the page being
// written back to the repository directory.
func renderMarkdown(md goldmark.Markdown, name string, src []byte, repoRoot string) ([]byte, error) {
	doc := md.Parser().Parse(text.NewReader(src))
	dir := path.Dir(name)
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if link, ok := n.(*gmast.Link); ok {
			if dest, ok := treeLink(dir, string(link.Destination), repoRoot); ok {
				link.Destination = []byte(dest)
			}
		}
		return gmast.WalkContinue, nil
	})

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, src, doc); err != nil {
		return nil, err
	}
	return markup.AppendASCII(make([]byte, 0, buf.Len()), buf.Bytes()), nil
}

// treeLink maps a relative link found in a file of dir to a file page.
func treeLink(dir, dest, repoRoot string) (string, bool) {
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" || strings.HasPrefix(u.Path, "/") {
		return "", false
	}
	target, err := paths.Canonicalize("/" + path.Join(dir, u.Path))
	if err != nil || target == "/" {
		return "", false
	}
	out := repoRoot + linkPath(filePage(strings.TrimPrefix(target, "/")))
	if u.Fragment != "" {
		out += "#" + url.PathEscape(u.Fragment)
	}
	return out, true
}
