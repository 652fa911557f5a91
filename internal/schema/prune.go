package schema

// PruneResult describes the outcome of pruning a document.
type PruneResult struct {
	Doc         Document        // minimized document
	Reachable   map[string]bool // names visited by the traversal, root included
	Retained    int             // definitions kept in the output container
	RootDefined bool            // whether root existed in the input container
}

// PruneFromRoot computes the forward-reachable closure from root and
// returns a new document holding only the reachable definitions. Kept
// definition bodies are rebuilt bottom-up; references whose target fell
// outside the reachable set are rewritten to RemovedRef. Note that a
// reference to a name that never existed in the container is itself
// visited by the traversal and therefore left untouched; only targets
// that were dropped get the sentinel.
//
// Returns ErrNoDefinitions when the document lacks the definitions
// container; the input document is never mutated.
func PruneFromRoot(doc Document, root string) (*PruneResult, error) {
	defs, err := doc.Definitions()
	if err != nil {
		return nil, err
	}

	adjacency := BuildAdjacency(defs)
	reached := Reachable(root, adjacency)

	newDefs := make(map[string]any)
	for name := range reached {
		if body, ok := defs[name]; ok {
			newDefs[name] = RewriteRefs(body, reached)
		}
	}

	minimized := make(Document, len(doc))
	for key, value := range doc {
		if key == DefinitionsKey {
			minimized[key] = newDefs
		} else {
			minimized[key] = value
		}
	}

	_, rootDefined := defs[root]
	return &PruneResult{
		Doc:         minimized,
		Reachable:   reached,
		Retained:    len(newDefs),
		RootDefined: rootDefined,
	}, nil
}

// RewriteRefs returns a copy of fragment with every reference to a name
// outside keep replaced by the sentinel. New containers are built
// throughout so the source document stays untouched. Strings that do not
// match the local pointer shape are never rewritten.
func RewriteRefs(fragment any, keep map[string]bool) any {
	switch v := fragment.(type) {
	case map[string]any:
		rebuilt := make(map[string]any, len(v))
		for key, value := range v {
			if key == RefKey {
				if name, ok := refName(value); ok && !keep[name] {
					rebuilt[key] = RemovedRef
				} else {
					rebuilt[key] = value
				}
				continue
			}
			rebuilt[key] = RewriteRefs(value, keep)
		}
		return rebuilt
	case []any:
		rebuilt := make([]any, len(v))
		for i, item := range v {
			rebuilt[i] = RewriteRefs(item, keep)
		}
		return rebuilt
	default:
		return fragment
	}
}
