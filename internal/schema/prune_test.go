package schema

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for schema pruning:
// - ExtractRefs finds references at any nesting depth, in objects and arrays
// - ExtractRefs ignores non-matching pointer strings and non-string values
// - BuildAdjacency records one edge set per definition, self-loops included
// - Reachable includes the root even when it has no adjacency entry
// - PruneFromRoot keeps exactly the reachable definitions that existed
// - PruneFromRoot drops definitions not on a forward path from the root
// - RewriteRefs swaps references outside the keep set for the sentinel
// - RewriteRefs leaves foreign pointer shapes alone
// - References to names that never existed are visited and left untouched
// - Self-references survive pruning untouched
// - Non-definitions top-level keys pass through unchanged
// - Missing definitions container is a fatal error
// - Pruning its own output again is a no-op (idempotence)

func ref(name string) map[string]any {
	return map[string]any{RefKey: RefPrefix + name}
}

func mustDecode(t *testing.T, raw string) Document {
	t.Helper()
	doc, err := Decode([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestExtractRefs_NestedObjectsAndArrays(t *testing.T) {
	fragment := map[string]any{
		"properties": map[string]any{
			"genes": map[string]any{
				"type":  "array",
				"items": []any{map[string]any{"anyOf": []any{ref("Gene"), ref("Allele")}}},
			},
		},
	}

	refs := ExtractRefs(fragment)
	assert.Equal(t, map[string]bool{"Gene": true, "Allele": true}, refs)
}

func TestExtractRefs_ObjectCanBeRefAndContainRefs(t *testing.T) {
	fragment := map[string]any{
		RefKey:  RefPrefix + "Gene",
		"extra": ref("Allele"),
	}

	refs := ExtractRefs(fragment)
	assert.True(t, refs["Gene"])
	assert.True(t, refs["Allele"])
}

func TestExtractRefs_IgnoresForeignPointerShapes(t *testing.T) {
	fragment := map[string]any{
		"a": map[string]any{RefKey: "http://example.com/other.json#/definitions/X"},
		"b": map[string]any{RefKey: "#/$defs/Y"},
		"c": map[string]any{RefKey: 42},
		"d": map[string]any{RefKey: RefPrefix},
		"e": "a plain string mentioning #/definitions/Z",
	}

	assert.Empty(t, ExtractRefs(fragment))
}

func TestBuildAdjacency_RecordsSelfLoops(t *testing.T) {
	defs := map[string]any{
		"A": ref("A"),
		"B": map[string]any{"type": "string"},
	}

	adj := BuildAdjacency(defs)
	assert.True(t, adj["A"]["A"])
	assert.Empty(t, adj["B"])
}

func TestReachable_MissingRootIsStillSeeded(t *testing.T) {
	reached := Reachable("Z", map[string]map[string]bool{})
	assert.Equal(t, map[string]bool{"Z": true}, reached)
}

func TestPrune_KeepsForwardClosureOnly(t *testing.T) {
	// definitions = {A: {ref B}, B: {ref C}, C: {}, D: {ref A}}, root A
	doc := Document{
		DefinitionsKey: map[string]any{
			"A": ref("B"),
			"B": ref("C"),
			"C": map[string]any{"type": "string"},
			"D": ref("A"),
		},
	}

	res, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)
	assert.True(t, res.RootDefined)
	assert.Equal(t, 3, res.Retained)

	defs, err := res.Doc.Definitions()
	require.NoError(t, err)
	assert.Len(t, defs, 3)
	assert.Contains(t, defs, "A")
	assert.Contains(t, defs, "B")
	assert.Contains(t, defs, "C")
	assert.NotContains(t, defs, "D")

	// All retained targets resolve, so no sentinel appears anywhere.
	encoded, err := res.Doc.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), "REMOVED_REFERENCE")
}

func TestRewriteRefs_SentinelForDroppedTarget(t *testing.T) {
	// Forward traversal marks every referenced name as reachable, so a
	// single prune pass never drops a name that a kept body still points
	// at. The rewrite step is still contract: given a keep set that
	// excludes a referenced name, the pointer becomes the sentinel while
	// the reference key and surrounding structure survive.
	fragment := map[string]any{
		"properties": map[string]any{
			"kept":    ref("B"),
			"dropped": ref("Gone"),
		},
		"items": []any{ref("Gone")},
	}

	rebuilt := RewriteRefs(fragment, map[string]bool{"B": true}).(map[string]any)

	props := rebuilt["properties"].(map[string]any)
	assert.Equal(t, RefPrefix+"B", props["kept"].(map[string]any)[RefKey])
	assert.Equal(t, RemovedRef, props["dropped"].(map[string]any)[RefKey])

	items := rebuilt["items"].([]any)
	assert.Equal(t, RemovedRef, items[0].(map[string]any)[RefKey])
}

func TestRewriteRefs_LeavesForeignPointersAlone(t *testing.T) {
	fragment := map[string]any{
		RefKey: "#/$defs/Other",
	}

	rebuilt := RewriteRefs(fragment, map[string]bool{}).(map[string]any)
	assert.Equal(t, "#/$defs/Other", rebuilt[RefKey])
}

func TestPrune_NeverDefinedTargetIsVisitedAndUntouched(t *testing.T) {
	// definitions = {A: {ref B}} with B absent entirely. The traversal
	// visits B, so A's reference survives verbatim and the output keeps
	// the pre-existing dangling pointer.
	doc := Document{
		DefinitionsKey: map[string]any{
			"A": ref("B"),
		},
	}

	res, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)
	assert.True(t, res.Reachable["B"])
	assert.Equal(t, 1, res.Retained)

	defs, err := res.Doc.Definitions()
	require.NoError(t, err)
	require.Contains(t, defs, "A")
	assert.NotContains(t, defs, "B")

	body := defs["A"].(map[string]any)
	assert.Equal(t, RefPrefix+"B", body[RefKey])
}

func TestPrune_MissingRootYieldsEmptyDefinitions(t *testing.T) {
	doc := Document{
		DefinitionsKey: map[string]any{
			"A": ref("B"),
			"B": map[string]any{"type": "string"},
		},
	}

	res, err := PruneFromRoot(doc, "Z")
	require.NoError(t, err)
	assert.False(t, res.RootDefined)
	assert.Equal(t, 0, res.Retained)

	defs, err := res.Doc.Definitions()
	require.NoError(t, err)
	assert.Empty(t, defs)
}

func TestPrune_SelfReferenceSurvives(t *testing.T) {
	doc := Document{
		DefinitionsKey: map[string]any{
			"A": ref("A"),
		},
	}

	res, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)

	defs, err := res.Doc.Definitions()
	require.NoError(t, err)
	body := defs["A"].(map[string]any)
	assert.Equal(t, RefPrefix+"A", body[RefKey])
}

func TestPrune_DeeplyNestedReferenceIsFound(t *testing.T) {
	doc := Document{
		DefinitionsKey: map[string]any{
			"A": map[string]any{
				"items": []any{
					map[string]any{
						"properties": map[string]any{
							"b": []any{ref("B")},
						},
					},
				},
			},
			"B": map[string]any{"type": "string"},
			"C": map[string]any{"type": "string"},
		},
	}

	res, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)
	defs, err := res.Doc.Definitions()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, keys(defs))
}

func TestPrune_NonDefinitionsKeysPassThrough(t *testing.T) {
	doc := mustDecode(t, `{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"title": "alliance",
		"metadata": {"version": 7, "tags": ["a", "b"]},
		"definitions": {"A": {"type": "string"}, "B": {"type": "number"}}
	}`)

	res, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)

	assert.Equal(t, doc["$schema"], res.Doc["$schema"])
	assert.Equal(t, doc["title"], res.Doc["title"])
	assert.Equal(t, doc["metadata"], res.Doc["metadata"])
}

func TestPrune_InputDocumentNotMutated(t *testing.T) {
	doc := Document{
		"title": "t",
		DefinitionsKey: map[string]any{
			"A":       ref("Dropped"),
			"Dropped": map[string]any{"type": "string"},
			"Kept":    ref("A"),
		},
	}
	before, err := json.Marshal(doc)
	require.NoError(t, err)

	_, err = PruneFromRoot(doc, "Kept")
	require.NoError(t, err)

	after, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestPrune_MissingContainerIsFatal(t *testing.T) {
	_, err := PruneFromRoot(Document{"title": "no defs"}, "A")
	assert.ErrorIs(t, err, ErrNoDefinitions)

	_, err = PruneFromRoot(Document{DefinitionsKey: "not an object"}, "A")
	assert.ErrorIs(t, err, ErrNoDefinitions)
}

func TestPrune_Idempotent(t *testing.T) {
	doc := Document{
		"title": "big",
		DefinitionsKey: map[string]any{
			"A": map[string]any{"allOf": []any{ref("B"), ref("Missing")}},
			"B": ref("C"),
			"C": map[string]any{"type": "string"},
			"D": ref("A"),
			"E": map[string]any{"type": "number"},
		},
	}

	first, err := PruneFromRoot(doc, "A")
	require.NoError(t, err)
	second, err := PruneFromRoot(first.Doc, "A")
	require.NoError(t, err)

	assert.Equal(t, first.Retained, second.Retained)

	a, err := first.Doc.Encode()
	require.NoError(t, err)
	b, err := second.Doc.Encode()
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
