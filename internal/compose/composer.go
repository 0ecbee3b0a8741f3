package compose

// Compose merges generator output with scaffold files into one path-keyed set.
//
// With a caller-supplied scaffold, the scaffold wins on path collision: the
// scaffold is infrastructure the caller deliberately pinned. With no scaffold,
// defaults are synthesized and the generator wins instead, since a generator
// that produced its own manifest or config is authoritative for it.
//
// The result never contains two entries with the same path, and ordering is
// stable: kept input files first in input order, then overrides/synthesized
// files.
func Compose(app AppMeta, generated []GeneratedFile, scaffold []ScaffoldFile) []File {
	if len(scaffold) > 0 {
		return composeWithScaffold(generated, scaffold)
	}
	return composeWithDefaults(app, generated)
}

func composeWithScaffold(generated []GeneratedFile, scaffold []ScaffoldFile) []File {
	override := make(map[string]bool, len(scaffold))
	for _, sf := range scaffold {
		override[sf.Path] = true
	}
	var out []File
	seen := make(map[string]bool)
	for _, gf := range generated {
		if override[gf.Path] || seen[gf.Path] {
			continue
		}
		seen[gf.Path] = true
		out = append(out, File{Path: gf.Path, Content: gf.Content})
	}
	for _, sf := range scaffold {
		if seen[sf.Path] {
			continue
		}
		seen[sf.Path] = true
		out = append(out, File{Path: sf.Path, Content: sf.Content})
	}
	return out
}

func composeWithDefaults(app AppMeta, generated []GeneratedFile) []File {
	var out []File
	seen := make(map[string]bool)
	for _, gf := range generated {
		if seen[gf.Path] {
			continue
		}
		seen[gf.Path] = true
		out = append(out, File{Path: gf.Path, Content: gf.Content})
	}
	for _, sf := range DefaultScaffold(app) {
		if seen[sf.Path] {
			continue
		}
		seen[sf.Path] = true
		out = append(out, File{Path: sf.Path, Content: sf.Content})
	}
	return out
}
