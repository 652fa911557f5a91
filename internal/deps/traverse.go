// Package deps follows lightweight import chains between source files and
// collects the transitive closure as an ordered file list plus a directed
// file graph.
package deps

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/flatsrc/flatsrc/internal/ignore"
	"github.com/flatsrc/flatsrc/internal/scan"
)

// Resolver extracts the files referenced by one source file, resolved to
// absolute paths inside the repository. Unresolvable references are
// dropped, not reported.
type Resolver interface {
	Imports(absPath string) []string
}

// Options configures a dependency traversal.
type Options struct {
	RepoRoot string
	Ignore   *ignore.Matcher

	// MaxDepth bounds how many levels of imports are expanded below the
	// start files. Negative means unlimited.
	MaxDepth int

	// CountTokens accumulates a rough token estimate over kept files.
	CountTokens bool

	// Keep decides whether a discovered file enters the result. Nil
	// defaults to the text sniff.
	Keep func(absPath, relPath string) bool

	// Expand decides whether a kept file is parsed for further imports.
	// Nil means every kept file is expanded.
	Expand func(absPath string) bool
}

// Result holds the traversal outcome.
type Result struct {
	// Files lists kept absolute paths in discovery order.
	Files []string

	// TotalTokens is the accumulated estimate, zero unless requested.
	TotalTokens int

	// Graph holds every discovered import edge between repo-relative
	// paths, including edges into files that were later skipped.
	Graph graph.Graph[string, string]
}

type queued struct {
	path  string
	depth int
}

// Traverse runs a breadth-first walk over the import chains rooted at the
// start files. Every file is visited at most once; ignored, binary and
// policy-skipped files are logged to stderr and dropped without aborting
// the walk.
func Traverse(start []string, resolver Resolver, opts Options) (*Result, error) {
	// All queued paths are resolved against an absolute root so the
	// visited set and ignore matching see one canonical key per file,
	// no matter how the repo root was given.
	root, err := filepath.Abs(opts.RepoRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repo root %s: %w", opts.RepoRoot, err)
	}

	if opts.Ignore == nil {
		m, err := ignore.NewMatcher(nil)
		if err != nil {
			return nil, err
		}
		opts.Ignore = m
	}
	keep := opts.Keep
	if keep == nil {
		keep = func(absPath, relPath string) bool { return scan.IsTextFile(absPath) }
	}

	res := &Result{
		Graph: graph.New(graph.StringHash, graph.Directed()),
	}

	visited := make(map[string]bool)
	queue := make([]queued, 0, len(start))
	for _, s := range start {
		abs, err := filepath.Abs(s)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve start file %s: %w", s, err)
		}
		queue = append(queue, queued{path: abs, depth: 0})
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		relPath, err := filepath.Rel(root, current.path)
		if err != nil {
			relPath = current.path
		}
		relPath = filepath.ToSlash(relPath)

		if visited[current.path] {
			continue
		}
		visited[current.path] = true

		if ignored, pattern := opts.Ignore.Match(relPath); ignored {
			log.Printf("Skipping file %q due to ignore pattern %q", relPath, pattern)
			continue
		}

		if !keep(current.path, relPath) {
			log.Printf("Skipping binary or excluded file %q", relPath)
			continue
		}

		if opts.CountTokens && !IsImage(current.path) {
			content, err := os.ReadFile(current.path)
			if err != nil {
				log.Printf("Warning: could not read file %s: %v", relPath, err)
			} else {
				res.TotalTokens += scan.ApproxTokenCount(string(content))
			}
		}

		res.Files = append(res.Files, current.path)
		_ = res.Graph.AddVertex(relPath)

		if opts.MaxDepth >= 0 && current.depth >= opts.MaxDepth {
			continue
		}
		if opts.Expand != nil && !opts.Expand(current.path) {
			continue
		}

		for _, next := range resolver.Imports(current.path) {
			next, err := filepath.Abs(next)
			if err != nil {
				log.Printf("Warning: could not resolve import target %s: %v", next, err)
				continue
			}
			nextRel, err := filepath.Rel(root, next)
			if err != nil {
				nextRel = next
			}
			nextRel = filepath.ToSlash(nextRel)
			_ = res.Graph.AddVertex(nextRel)
			_ = res.Graph.AddEdge(relPath, nextRel)

			if !visited[next] {
				queue = append(queue, queued{path: next, depth: current.depth + 1})
			}
		}
	}

	return res, nil
}

// WriteDOT renders the traversal graph in DOT format for graphviz.
func (r *Result) WriteDOT(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create DOT file: %w", err)
	}
	defer f.Close()

	if err := draw.DOT(r.Graph, f); err != nil {
		return fmt.Errorf("failed to render DOT graph: %w", err)
	}
	return nil
}
