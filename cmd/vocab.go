package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lehigh-university-libraries/zotero-xml/format/dublincore"
)

type vocabularyDoc struct {
	Default  string                   `yaml:"default"`
	Mappings []dublincore.TypeMapping `yaml:"mappings"`
}

func newVocabCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vocab",
		Short: "Print the item type to DCMI type table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := yaml.Marshal(vocabularyDoc{
				Default:  dublincore.DefaultType,
				Mappings: dublincore.TypeVocabulary(),
			})
			if err != nil {
				return fmt.Errorf("encoding vocabulary: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
