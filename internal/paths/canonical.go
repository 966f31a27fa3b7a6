package paths

import (
	"errors"
	"strings"
)

// MaxPath bounds every path handled by Canonicalize.
const MaxPath = 4096

// ErrPathTooLong is returned when a path exceeds MaxPath bytes.
var ErrPathTooLong = errors.New("path too long")

// Canonicalize lexically reduces p without touching the filesystem.
//
// Repeated separators collapse, "." segments disappear and ".." removes the
// previous output segment. A ".." with nothing left to remove is dropped, so
// the result never climbs above the start of p. A leading and a trailing
// separator are preserved; an empty relative result becomes ".".
func Canonicalize(p string) (string, error) {
	if len(p) > MaxPath {
		return "", ErrPathTooLong
	}
	if p == "" {
		return ".", nil
	}

	abs := p[0] == '/'
	buf := []byte(p)
	dst := 0
	if abs {
		dst = 1
	}
	// starts[i] is where the output is cut back to when segment i is popped.
	starts := make([]int, 0, 8)

	for src := 0; src < len(buf); {
		for src < len(buf) && buf[src] == '/' {
			src++
		}
		end := src
		for end < len(buf) && buf[end] != '/' {
			end++
		}
		seg := buf[src:end]
		switch {
		case len(seg) == 0:
		case len(seg) == 1 && seg[0] == '.':
		case len(seg) == 2 && seg[0] == '.' && seg[1] == '.':
			if n := len(starts); n > 0 {
				dst = starts[n-1]
				starts = starts[:n-1]
			}
		default:
			starts = append(starts, dst)
			if len(starts) > 1 {
				buf[dst] = '/'
				dst++
			}
			dst += copy(buf[dst:], seg)
		}
		src = end
	}

	out := string(buf[:dst])
	switch {
	case len(starts) == 0 && abs:
		return "/", nil
	case len(starts) == 0:
		return ".", nil
	case p[len(p)-1] == '/':
		out += "/"
	}
	return out, nil
}

// Unhide rewrites every component that starts with a dot so that it is
// published as an ordinary name: ".git/config" becomes "-git/config".
// The "." and ".." components are left untouched.
func Unhide(p string) string {
	if !strings.Contains(p, ".") {
		return p
	}
	b := []byte(p)
	for i := 0; i < len(b); i++ {
		if b[i] != '.' || (i > 0 && b[i-1] != '/') {
			continue
		}
		end := i
		for end < len(b) && b[end] != '/' {
			end++
		}
		if comp := b[i:end]; string(comp) == "." || string(comp) == ".." {
			continue
		}
		b[i] = '-'
	}
	return string(b)
}

// Within reports whether p lies at or below root once both are
// canonicalized. Overlong input is never contained.
func Within(root, p string) bool {
	r, err := Canonicalize(root)
	if err != nil {
		return false
	}
	c, err := Canonicalize(p)
	if err != nil {
		return false
	}
	r = strings.TrimSuffix(r, "/")
	c = strings.TrimSuffix(c, "/")
	switch r {
	case "":
		return c == "" || strings.HasPrefix(c, "/")
	case ".":
		return !strings.HasPrefix(c, "/")
	}
	return c == r || strings.HasPrefix(c, r+"/")
}

// Join appends an untrusted relative path to root. rel is anchored at "/"
// before it is canonicalized, so its ".." segments cannot climb out of root.
func Join(root, rel string) (string, error) {
	r, err := Canonicalize(root)
	if err != nil {
		return "", err
	}
	anchored, err := Canonicalize("/" + rel)
	if err != nil {
		return "", err
	}
	if anchored == "/" {
		return r, nil
	}
	return Canonicalize(strings.TrimSuffix(r, "/") + strings.TrimSuffix(anchored, "/"))
}
