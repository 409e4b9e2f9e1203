package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word",
		Short: "Print the word arbor would grow",
		Long:  `Resolves the word from --word, --word-file or --history and prints it. With --history this shows the word generated from the sentiment history.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			word, err := resolveWord(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), word)
			return nil
		},
	}
}
