package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var expandSkillCmd = &cobra.Command{
	Use:   "expand-skill [skill]",
	Short: "Expand a skill through the ontology graph",
	Long:  "Walk the skill ontology from the given skill and print related skills with distance-based confidence, as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpandSkill,
}

var (
	expandOntologyFile string
	expandDepth        int
	expandMaxResults   int
	expandOutputFile   string
)

func init() {
	expandSkillCmd.Flags().StringVar(&expandOntologyFile, "ontology", "", "Path to skill ontology JSON (overrides config)")
	expandSkillCmd.Flags().IntVar(&expandDepth, "depth", 0, "Maximum traversal depth (default 2)")
	expandSkillCmd.Flags().IntVar(&expandMaxResults, "max", 0, "Maximum related skills to return (default 10)")
	expandSkillCmd.Flags().StringVarP(&expandOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")

	rootCmd.AddCommand(expandSkillCmd)
}

func runExpandSkill(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ontologyPath := expandOntologyFile
	if ontologyPath == "" {
		ontologyPath = cfg.Ontology
	}
	if ontologyPath == "" {
		return fmt.Errorf("an ontology file is required (use --ontology or set 'ontology' in the config file)")
	}

	expander, err := buildSkillExpander(ontologyPath,
		cfg.SkillCacheCapacity, time.Duration(cfg.SkillCacheTTLMinutes)*time.Minute)
	if err != nil {
		return err
	}

	result := expander.Expand(args[0], expandDepth, expandMaxResults)
	return writeJSON(result, expandOutputFile)
}
