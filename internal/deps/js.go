package deps

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// imageExtensions are asset files that can appear in JS import chains but
// hold no further imports.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".svg":  true,
	".webp": true,
}

// styleExtensions mark CSS-family imports which are optional in the chain.
var styleExtensions = []string{".css", ".scss", ".sass"}

// jsCandidateExtensions are tried in order when an import omits the
// extension, mirroring typical bundler resolution.
var jsCandidateExtensions = []string{
	"", ".js", ".jsx", ".ts", ".tsx",
	"/index.js", "/index.jsx", "/index.ts", "/index.tsx",
}

var cssCandidateExtensions = []string{
	".css", ".scss", ".sass", ".module.css", ".module.scss", ".module.sass",
	"/index.css", "/index.scss", "/index.sass",
}

// IsImage reports whether the path has a known image extension.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// JSResolver maps local JavaScript/TypeScript imports onto files under
// the repository root. Bare module imports (react, lodash) are not local
// and are dropped.
type JSResolver struct {
	RepoRoot   string
	IncludeCSS bool
}

// Imports extracts the file's local import paths and resolves each one
// against the repo; unresolvable imports are dropped.
func (r JSResolver) Imports(absPath string) []string {
	var resolved []string
	for _, imp := range ExtractJSImports(absPath, r.IncludeCSS) {
		if target, ok := ResolveJSImport(absPath, imp, r.RepoRoot, r.IncludeCSS); ok {
			resolved = append(resolved, target)
		}
	}
	return resolved
}

// ExtractJSImports scans a file for lines starting with "import " or
// containing "require(" and pulls the quoted path out by first/last quote
// position. Only local paths (starting with '.' or '/') are returned, and
// CSS-family imports are dropped unless includeCSS is set.
func ExtractJSImports(path string, includeCSS bool) []string {
	f, err := os.Open(path)
	if err != nil {
		log.Printf("Warning: could not read file %s: %v", path, err)
		return nil
	}
	defer f.Close()

	var imports []string
	scanner := bufio.NewScanner(f)
	// Minified bundles can exceed the default line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "import ") || strings.Contains(line, "require(") {
			if imp, ok := quotedPath(line); ok {
				imports = append(imports, imp)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("Warning: could not read file %s: %v", path, err)
	}

	var local []string
	for _, imp := range imports {
		if !strings.HasPrefix(imp, ".") && !strings.HasPrefix(imp, "/") {
			continue
		}
		if !includeCSS && isStyleImport(imp) {
			continue
		}
		local = append(local, imp)
	}
	return local
}

// quotedPath pulls the text between the first and last quote on a line,
// accepting single or double quotes.
func quotedPath(line string) (string, bool) {
	start := strings.IndexByte(line, '\'')
	end := strings.LastIndexByte(line, '\'')
	if start == -1 {
		start = strings.IndexByte(line, '"')
		end = strings.LastIndexByte(line, '"')
	}
	if start == -1 || end <= start {
		return "", false
	}
	return strings.TrimSpace(line[start+1 : end]), true
}

func isStyleImport(imp string) bool {
	for _, ext := range styleExtensions {
		if strings.HasSuffix(imp, ext) {
			return true
		}
	}
	return strings.Contains(imp, ".module.scss")
}

// ResolveJSImport resolves an import path against the importing file (or
// the repo root for '/'-prefixed paths), trying the usual extension and
// index-file candidates. Returns the absolute path of the first match.
func ResolveJSImport(currentFile, importPath, repoRoot string, includeCSS bool) (string, bool) {
	var base string
	if strings.HasPrefix(importPath, "/") {
		base = filepath.Join(repoRoot, strings.TrimPrefix(importPath, "/"))
	} else {
		base = filepath.Join(filepath.Dir(currentFile), importPath)
	}

	// An explicit extension gets checked directly first, so asset imports
	// like './logo.png' resolve without candidate guessing.
	if filepath.Ext(base) != "" {
		if info, err := os.Stat(base); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(base)
			if err == nil {
				return abs, true
			}
		}
	}

	candidates := jsCandidateExtensions
	if includeCSS {
		candidates = append(append([]string{}, candidates...), cssCandidateExtensions...)
	}
	for _, ext := range candidates {
		candidate := base + ext
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			abs, err := filepath.Abs(candidate)
			if err == nil {
				return abs, true
			}
		}
	}
	return "", false
}
