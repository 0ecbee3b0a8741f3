package compose

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// CanonicalRootPage is where the framework expects the application's root page.
const CanonicalRootPage = "app/page.tsx"

// minCandidateBytes is the floor for the largest-content heuristic; anything
// smaller is too thin to be "the page".
const minCandidateBytes = 200

var rootPagePaths = map[string]bool{
	"app/page.tsx":     true,
	"src/app/page.tsx": true,
}

// Root-level files that are clearly meant as the entry page, just misplaced.
var promotableRootFiles = []string{"page.tsx", "index.tsx"}

// Semantic filename fragments, in priority order. Compounds like
// "landing-page" or "home-screen" match by substring.
var semanticNames = []string{"page", "app", "home", "landing", "main", "index", "hero"}

var excludedPathFragments = []string{"layout", "global", "provider", "components/ui/"}

// candidateMatcher picks an entry-point candidate from the component files, or
// nil for no pick. Matchers run in order; extend the chain by appending.
type candidateMatcher func(files []File) *File

var candidateMatchers = []candidateMatcher{
	matchSemanticName,
	matchLargestContent,
	matchFirstComponent,
}

// EnsureEntryPoint makes sure the set contains a root page. It never fails:
// when no usable candidate exists it falls back to a static placeholder.
func EnsureEntryPoint(files []File) []File {
	for _, f := range files {
		if rootPagePaths[f.Path] {
			return files
		}
	}
	for i, f := range files {
		if isPromotableRoot(f.Path) {
			out := make([]File, len(files))
			copy(out, files)
			out[i].Path = CanonicalRootPage
			return out
		}
	}

	candidates := componentFiles(files)
	if len(candidates) == 0 {
		return append(files, File{Path: CanonicalRootPage, Content: placeholderPage})
	}
	var pick *File
	for _, m := range candidateMatchers {
		if pick = m(candidates); pick != nil {
			break
		}
	}
	if pick == nil {
		return append(files, File{Path: CanonicalRootPage, Content: placeholderPage})
	}
	name := defaultExportName(pick.Content)
	return append(files, File{Path: CanonicalRootPage, Content: rootPageImporting(name, modulePath(pick.Path))})
}

func isPromotableRoot(p string) bool {
	for _, root := range promotableRootFiles {
		if p == root {
			return true
		}
	}
	return false
}

func componentFiles(files []File) []File {
	var out []File
	for _, f := range files {
		ext := path.Ext(f.Path)
		if ext != ".tsx" && ext != ".jsx" {
			continue
		}
		lower := strings.ToLower(f.Path)
		excluded := false
		for _, frag := range excludedPathFragments {
			if strings.Contains(lower, frag) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, f)
		}
	}
	return out
}

func matchSemanticName(files []File) *File {
	for _, name := range semanticNames {
		for i := range files {
			base := strings.ToLower(strings.TrimSuffix(path.Base(files[i].Path), path.Ext(files[i].Path)))
			if strings.Contains(base, name) {
				return &files[i]
			}
		}
	}
	return nil
}

func matchLargestContent(files []File) *File {
	var best *File
	for i := range files {
		if best == nil || len(files[i].Content) > len(best.Content) {
			best = &files[i]
		}
	}
	if best != nil && len(best.Content) > minCandidateBytes {
		return best
	}
	return nil
}

func matchFirstComponent(files []File) *File {
	if len(files) == 0 {
		return nil
	}
	return &files[0]
}

var exportNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`export\s+default\s+function\s+([A-Za-z_$][\w$]*)`),
	regexp.MustCompile(`export\s+default\s+class\s+([A-Za-z_$][\w$]*)`),
	regexp.MustCompile(`export\s+\{\s*([A-Za-z_$][\w$]*)\s+as\s+default\s*\}`),
	regexp.MustCompile(`export\s+default\s+([A-Za-z_$][\w$]*)`),
}

// defaultExportName extracts the component's declared name from common
// default-export forms. Free-form generated code, so this is best effort.
func defaultExportName(content string) string {
	for _, re := range exportNamePatterns {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		switch m[1] {
		case "function", "class", "async": // anonymous export
			continue
		}
		return m[1]
	}
	return "GeneratedPage"
}

// modulePath derives the import specifier for a file path,
// e.g. components/landing-page.tsx -> @/components/landing-page.
func modulePath(p string) string {
	return "@/" + strings.TrimSuffix(p, path.Ext(p))
}

func rootPageImporting(name, module string) string {
	return fmt.Sprintf(`import %s from %q;

export default function Page() {
  return <%s />;
}
`, name, module, name)
}

const placeholderPage = `export default function Page() {
  return (
    <main style={{ display: "flex", minHeight: "100vh", alignItems: "center", justifyContent: "center" }}>
      <p>This app has no pages yet.</p>
    </main>
  );
}
`
