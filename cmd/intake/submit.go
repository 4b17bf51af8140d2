package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobeaver/intakekit/recipe"
)

func submitCmd(a *app) *cobra.Command {
	var name, recipeName, details string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill in and submit the recipe form",
		Long:  `Submit validates a recipe submission and logs it. Nothing is stored.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := recipe.NewSubmission(a.logger)
			fields := map[string]string{
				recipe.FieldParticipantName: name,
				recipe.FieldRecipeName:      recipeName,
				recipe.FieldDetails:         details,
			}
			for field, value := range fields {
				if err := s.Set(field, value); err != nil {
					return err
				}
			}

			if err := s.Submit(); err != nil {
				return err
			}

			form := s.Form()
			fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("Thank you for your submission!"))
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", nameStyle.Render(form.RecipeName), metaStyle.Render("by "+form.ParticipantName))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "participant name")
	cmd.Flags().StringVar(&recipeName, "recipe", "", "recipe name")
	cmd.Flags().StringVar(&details, "details", "", "recipe details")
	return cmd
}
