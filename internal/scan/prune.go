package scan

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"flacmirror/internal/logging"
)

// Pruner removes orphaned destination files, prompting per file unless
// Force is set. Answers: empty input or "y"/"yes" removes the file,
// "n"/"no" keeps it, "a"/"all" removes it and everything remaining
// without further prompts, and "none" aborts the rest of the list
// immediately.
type Pruner struct {
	In     io.Reader
	Out    io.Writer
	Force  bool
	Logger *slog.Logger
}

// Prune finds orphans under destDir and deletes the confirmed ones,
// then sweeps away directories the removals left empty. It returns the
// number of files removed.
func (p *Pruner) Prune(destDir, baseDir string, filters []string) (int, error) {
	orphans, err := Orphans(destDir, baseDir, filters)
	if err != nil {
		return 0, err
	}
	if len(orphans) == 0 {
		return 0, nil
	}

	reader := bufio.NewReader(p.In)
	removed := 0
	yesToAll := p.Force
prompt:
	for _, orphan := range orphans {
		remove := true
		for !yesToAll {
			fmt.Fprintf(p.Out, "remove orphan %q? [YES,no,all,none]: ", orphan)
			line, err := reader.ReadString('\n')
			if err != nil && line == "" {
				// Input exhausted: stop prompting, keep the rest.
				break prompt
			}
			switch strings.ToLower(strings.TrimSpace(line)) {
			case "", "y", "yes":
			case "n", "no":
				remove = false
			case "a", "all":
				yesToAll = true
			case "none":
				break prompt
			default:
				continue
			}
			break
		}
		if !remove {
			continue
		}
		if err := os.Remove(orphan); err != nil {
			p.Logger.Warn("failed to remove orphan", logging.String("path", orphan), logging.Error(err))
			continue
		}
		p.Logger.Info("removed orphan", logging.String("path", orphan))
		removed++
	}

	sweepEmptyDirs(destDir)
	return removed, nil
}

// sweepEmptyDirs removes every now-empty directory under root, deepest
// first, leaving root itself in place. Removal failures are expected
// (directories with lingering files) and ignored.
func sweepEmptyDirs(root string) {
	var dirs []string
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, dir := range dirs {
		_ = os.Remove(dir)
	}
}
