package schema

import "strings"

// refName extracts the definition name from a local pointer string like
// "#/definitions/Gene". Strings outside that shape are not references.
func refName(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !strings.HasPrefix(s, RefPrefix) {
		return "", false
	}
	name := strings.TrimPrefix(s, RefPrefix)
	if name == "" {
		return "", false
	}
	return name, true
}

// ExtractRefs collects every definition name referenced anywhere inside
// fragment. An object can both be a reference and hold nested references
// in sibling keys; both are collected. Primitives contribute nothing.
func ExtractRefs(fragment any) map[string]bool {
	refs := make(map[string]bool)
	collectRefs(fragment, refs)
	return refs
}

func collectRefs(fragment any, refs map[string]bool) {
	switch v := fragment.(type) {
	case map[string]any:
		if name, ok := refName(v[RefKey]); ok {
			refs[name] = true
		}
		for _, value := range v {
			collectRefs(value, refs)
		}
	case []any:
		for _, item := range v {
			collectRefs(item, refs)
		}
	}
}

// BuildAdjacency derives the directed edge relation over definition names:
// one entry per definition, mapping to the set of names its body
// references. Targets are not validated against the container.
func BuildAdjacency(defs map[string]any) map[string]map[string]bool {
	adjacency := make(map[string]map[string]bool, len(defs))
	for name, body := range defs {
		adjacency[name] = ExtractRefs(body)
	}
	return adjacency
}

// Reachable computes the forward-reachable closure from root over the
// adjacency relation via breadth-first traversal. Names without an
// adjacency entry are leaves, so a root absent from the container still
// seeds the result while expanding nothing.
func Reachable(root string, adjacency map[string]map[string]bool) map[string]bool {
	reached := make(map[string]bool)
	queue := []string{root}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if reached[current] {
			continue
		}
		reached[current] = true
		for neighbor := range adjacency[current] {
			if !reached[neighbor] {
				queue = append(queue, neighbor)
			}
		}
	}
	return reached
}
