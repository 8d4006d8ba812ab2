package yarnwhy

import (
	"regexp"
	"strings"
)

// MaxChains caps the number of chains returned by [Extract]. Entries beyond
// the cap are omitted, not reported as elided.
const MaxChains = 5

// projectToken is yarn's name for the root project inside reason strings,
// e.g. "_project_#package-a". It carries no information for the reader.
const projectToken = "_project_#"

// dependsOnRe captures the consumer name from info messages like
// `"package-b" exists because "package-a" depends on it`. yarn also emits a
// bare `"<X>" depends on it` form; this single pattern matches both, so the
// narrower "exists because" variant is not matched separately.
var dependsOnRe = regexp.MustCompile(`"([^"]+)" depends on it`)

// Extract applies the three chain extraction strategies to recs and returns
// the resulting chains deduplicated in first-seen order, capped at
// [MaxChains]:
//
//   - reason lists: each item of a list record with sub-kind "reasons"
//   - tree walk: the first-child path of every root in a tree record,
//     joined with " → "
//   - info text: the consumer captured by dependsOnRe
//
// A single stream may trigger more than one strategy; all contributions are
// unioned. Reason and info chains are normalized (quotes trimmed, the
// project token removed); tree node names are already clean and are taken
// as-is. Chains naming a synthetic workspace aggregator are dropped
// regardless of origin.
func Extract(recs []Record) []string {
	var chains []string
	seen := make(map[string]bool)
	add := func(chain string) {
		if chain == "" || seen[chain] {
			return
		}
		if strings.Contains(chain, "workspace aggregator") || strings.Contains(chain, "workspace-aggregator") {
			return
		}
		seen[chain] = true
		chains = append(chains, chain)
	}

	for _, rec := range recs {
		switch rec.Kind {
		case KindList:
			if rec.List.Type != "reasons" {
				continue
			}
			for _, item := range rec.List.Items {
				add(scrub(trimQuotes(item)))
			}

		case KindTree:
			for _, root := range rec.Trees {
				if root == nil {
					continue
				}
				add(firstChildPath(root))
			}

		case KindInfo:
			if m := dependsOnRe.FindStringSubmatch(rec.Info); m != nil {
				add(scrub(m[1]))
			}

		case KindStep, KindUnknown:
			// No chain information.
		}
	}

	if len(chains) > MaxChains {
		chains = chains[:MaxChains]
	}
	return chains
}

// firstChildPath walks from root following only the first child at each
// level and joins the visited names with " → ". Dependency trees can
// branch, but yarn lists every distinct consumer as its own root, so the
// first-child path matches the chains yarn prints itself. A root without
// children yields its own name.
func firstChildPath(root *Tree) string {
	names := []string{root.Name}
	for node := root; len(node.Children) > 0; {
		next := node.Children[0]
		if next == nil {
			break
		}
		names = append(names, next.Name)
		node = next
	}
	return strings.Join(names, " → ")
}

// trimQuotes strips one leading and one trailing double quote, if present.
func trimQuotes(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}

// scrub removes the project token from a chain.
func scrub(s string) string {
	return strings.ReplaceAll(s, projectToken, "")
}
