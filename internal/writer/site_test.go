package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"git.home.luguber.info/inful/gitin/internal/repo"
	"git.home.luguber.info/inful/gitin/internal/testutil"
)

// links returns href and text of every anchor in the document.
func links(t *testing.T, path string) map[string]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	doc, err := html.Parse(f)
	require.NoError(t, err)

	out := map[string]string{}
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var text strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					text.WriteString(c.Data)
				}
			}
			for _, a := range n.Attr {
				if a.Key == "href" {
					out[a.Val] = text.String()
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func TestSiteIndex_Write(t *testing.T) {
	cfg := plainConfig()
	cfg.Name = "Ünïted <repos>"
	dest := t.TempDir()

	idx := NewSiteIndex(cfg, nil)
	idx.Add(&repo.Descriptor{Name: "a<b>", RepoPath: "team/a<b>", Description: "first & best"})
	idx.Add(&repo.Descriptor{Name: "tools", RepoPath: "tools", LastCommit: time.Date(2024, 3, 1, 13, 0, 0, 0, time.UTC)})
	require.Len(t, idx.Entries(), 2)
	require.NoError(t, idx.Write(dest))

	fa := testutil.NewFileAssertions(t, dest)
	fa.AssertASCII("index.html").
		AssertFileContains("index.html", "&#220;n&#239;ted &lt;repos&gt;").
		AssertFileContains("index.html", "first &amp; best").
		AssertFileContains("index.html", "2024-03-01 13:00").
		AssertFileNotContains("index.html", "atom.xml")

	got := links(t, filepath.Join(dest, "index.html"))
	assert.Equal(t, "a<b>", got["team/a%3Cb%3E/index.html"])
	assert.Equal(t, "tools", got["tools/index.html"])

	order := fa.Read("index.html")
	assert.Less(t, strings.Index(order, "a&lt;b&gt;"), strings.Index(order, ">tools<"))
}

func TestSiteIndex_Empty(t *testing.T) {
	dest := t.TempDir()
	require.NoError(t, NewSiteIndex(plainConfig(), nil).Write(dest))
	testutil.NewFileAssertions(t, dest).
		AssertFileContains("index.html", `<table id="index">`).
		AssertFileContains("index.html", "</html>")
}

func TestCopyAssets(t *testing.T) {
	src := t.TempDir()
	style := filepath.Join(src, "custom.css")
	require.NoError(t, os.WriteFile(style, []byte("body { color: red; }\n"), 0o600))

	cfg := plainConfig()
	cfg.CopyStylesheet = style
	cfg.Stylesheet = "css/site.css"
	dest := t.TempDir()
	require.NoError(t, CopyAssets(cfg, dest))

	fa := testutil.NewFileAssertions(t, dest)
	assert.Equal(t, "body { color: red; }\n", fa.Read("css/site.css"))
	fa.AssertNotExists(cfg.Favicon).AssertNotExists(cfg.LogoIcon)

	cfg.CopyFavicon = filepath.Join(src, "missing.svg")
	err := CopyAssets(cfg, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to open asset")
}
