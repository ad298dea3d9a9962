package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the value stored under a key",
	Long: `Reads a key directly from the store and prints its raw value and the
domain it was written through. Absent keys exit with status 1.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	value, domain, found, err := eng.Get(key)
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		logger.Debug("Key absent", zap.String("key", key))
		return fmt.Errorf("key %q not found", key)
	}

	fmt.Printf("%s\t(%s)\n", value, domain)
	return nil
}
