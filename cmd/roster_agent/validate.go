package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/mod-roster/internal/schemas"
)

func newValidateCmd() *cobra.Command {
	var in, schemaPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a resolved model against its JSON Schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var err error
			if schemaPath != "" {
				resolved, rerr := schemas.ResolveSchemaPath(schemaPath)
				if rerr != nil {
					return rerr
				}
				err = schemas.ValidateJSON(resolved, in)
			} else {
				var data []byte
				data, err = os.ReadFile(in)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", in, err)
				}
				err = schemas.ValidateModule(data)
			}

			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) {
				_, _ = fmt.Fprintf(out, "Validation failed: %s\n", in)
				for _, fe := range validationErr.Errors {
					_, _ = fmt.Fprintf(out, "  • %s: %s\n", fe.Field, fe.Message)
				}
				return fmt.Errorf("%d schema violations in %s", len(validationErr.Errors), in)
			}
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(out, "Validation passed: %s\n", in)
			return nil
		},
	}

	cmd.Flags().StringVarP(&in, "in", "i", "", "Path to the model JSON")
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Schema file to use instead of the built-in module schema")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}
