package dispatch

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jedib0t/go-pretty/v6/text"
)

// printer serializes progress output across workers. The seen-directory
// set and the counter are the only state shared between workers; one
// mutex guards both.
type printer struct {
	mu    sync.Mutex
	out   io.Writer
	total int
	count int
	dirs  map[string]struct{}
}

func newPrinter(out io.Writer, total int) *printer {
	if out == nil {
		out = io.Discard
	}
	return &printer{out: out, total: total, dirs: make(map[string]struct{})}
}

// announce prints a directory header the first time a directory is
// seen, then the per-file position line.
func (p *printer) announce(src string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.count++
	dir := filepath.Dir(src)
	if _, seen := p.dirs[dir]; !seen {
		p.dirs[dir] = struct{}{}
		fmt.Fprintln(p.out, strings.Repeat("-", 30))
		fmt.Fprintf(p.out, "%s/...\n", text.Trim(dir, 74))
	}
	pos := fmt.Sprintf("[%d of %d]", p.count, p.total)
	fmt.Fprintf(p.out, "%15s %s\n", pos, text.Trim(filepath.Base(src), 60))
}
