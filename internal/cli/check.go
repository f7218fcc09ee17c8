package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tacogips/pfegen/internal/app"
)

// checkTemplatesCmd validates a template directory against every variant.
var checkTemplatesCmd = &cobra.Command{
	Use:   "check-templates [DIR]",
	Short: "Check templates for syntax errors and unknown placeholders",
	Long: `Plan and check a template directory under every element family
and style variant, without writing anything.

Each template is parsed and every placeholder it references is checked
against the property model. Errors are reported with the template key
and line number. Templates missing from the directory are listed.

If DIR is not specified, the built-in templates are checked.

Examples:
  pfegen check-templates
  pfegen check-templates ./templates`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckTemplates,
}

func runCheckTemplates(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) > 0 {
		dir = args[0]
	}

	result, err := app.CheckTemplates(cmd.Context(), app.CheckTemplatesOptions{TemplatesDir: dir})
	if err != nil {
		printErrorMsg(fmt.Sprintf("Check failed: %v", err))
		return err
	}
	return reportCheck(result)
}

// reportCheck prints a check result. It fails when any template has errors.
func reportCheck(result *app.CheckResult) error {
	printInfo(fmt.Sprintf("Checked %s templates under %d variants", result.Source, result.VariantsChecked))

	if len(result.Missing) > 0 {
		printWarning(fmt.Sprintf("%d template(s) not found:", len(result.Missing)))
		for _, key := range result.Missing {
			printWarning("  - " + key)
		}
	}

	if len(result.Errors) == 0 {
		printSuccess("All templates are valid")
		return nil
	}

	for _, e := range result.Errors {
		if e.Line > 0 {
			printErrorMsg(fmt.Sprintf("%s:%d: %s [%s]", e.Key, e.Line, e.Message, e.Variant))
		} else {
			printErrorMsg(fmt.Sprintf("%s: %s [%s]", e.Key, e.Message, e.Variant))
		}
	}
	return app.NewTemplateRenderError(fmt.Sprintf("%d template error(s) found", len(result.Errors)), nil)
}
