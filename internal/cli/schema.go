package cli

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/flatsrc/flatsrc/internal/schema"
)

// schemaCmd groups schema document operations.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Operations on JSON schema documents",
}

// schemaPruneCmd represents the schema prune command
var schemaPruneCmd = &cobra.Command{
	Use:   "prune <schema.json> <root-definition> <out.json>",
	Short: "Keep only the definitions reachable from a root",
	Long: `Prune loads a JSON schema document, follows "#/definitions/..."
references forward from the root definition and writes a minimized
document holding only the reachable definitions. References whose target
was dropped are rewritten to "#/definitions/REMOVED_REFERENCE" so the
document shape stays intact.

Example:
  flatsrc schema prune alliance_model.json Gene gene.json
`,
	Args: cobra.ExactArgs(3),
	RunE: runSchemaPrune,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaPruneCmd)
}

func runSchemaPrune(cmd *cobra.Command, args []string) error {
	inPath, root, outPath := args[0], args[1], args[2]

	doc, err := schema.Load(inPath)
	if err != nil {
		return err
	}

	res, err := schema.PruneFromRoot(doc, root)
	if err != nil {
		return err
	}
	if !res.RootDefined {
		log.Printf("Warning: %q not found in %s, continuing traversal anyway", root, schema.DefinitionsKey)
	}

	if err := res.Doc.Write(outPath); err != nil {
		return err
	}

	fmt.Printf("Done. Wrote minimized schema with %d definitions to %q\n", res.Retained, outPath)
	return nil
}
