package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/verbdrill/pkg/adapters/source"
	"github.com/aretw0/verbdrill/pkg/grammar"
	"github.com/aretw0/verbdrill/pkg/mutation"
)

var describeFormat string

type rule struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Default     bool   `json:"default" yaml:"default"`
}

type description struct {
	Columns   []string            `json:"columns" yaml:"columns"`
	Features  map[string][]string `json:"features" yaml:"features"`
	Mutations []rule              `json:"mutations" yaml:"mutations"`
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the dictionary columns, feature values and mutation rules",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := describe(os.Stdout, describeFormat); err != nil {
			fatal("Error describing grammar", err)
		}
	},
}

func describe(w io.Writer, format string) error {
	d := description{
		Columns:  source.Columns,
		Features: grammar.Vocabulary(),
	}
	defaults := mutation.DefaultEnabled()
	for _, m := range mutation.All() {
		d.Mutations = append(d.Mutations, rule{
			Name:        m.Name(),
			Description: m.String(),
			Default:     slices.Contains(defaults, m),
		})
	}

	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(d)
	case "yaml", "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(d)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringVarP(&describeFormat, "format", "f", "yaml", "Output format: yaml or json")
}
