package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var removeCmd = &cobra.Command{
	Use:   "remove [key]",
	Short: "Delete a key from the store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		if err := eng.Remove(args[0]); err != nil {
			return err
		}
		logger.Info("Key removed", zap.String("key", args[0]))
		fmt.Printf("removed: %s\n", args[0])
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List every key in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		keys, err := eng.AllKeys()
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Println(k)
		}
		logger.Debug("Listed keys", zap.Int("count", len(keys)))
		return nil
	},
}

var hasCmd = &cobra.Command{
	Use:   "has [key]",
	Short: "Check whether a key exists (exit 1 when absent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		ok, err := eng.Contains(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("key %q not found", args[0])
		}
		fmt.Println("yes")
		return nil
	},
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every key in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !clearYes {
			fmt.Printf("This deletes every key in %s. Continue? [y/N] ", storePath)
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
				fmt.Println("aborted")
				return nil
			}
		}

		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		if err := eng.ClearAll(); err != nil {
			return err
		}
		logger.Info("Store cleared", zap.String("path", storePath))
		fmt.Println("cleared")
		return nil
	},
}

var statCmd = &cobra.Command{
	Use:   "stat",
	Short: "Print store statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := openEngine()
		if err != nil {
			return err
		}
		defer eng.Close()

		stats, err := eng.Stats()
		if err != nil {
			return err
		}

		fmt.Printf("path:  %s\n", stats.Path)
		fmt.Printf("keys:  %d\n", stats.Keys)
		fmt.Printf("bytes: %d\n", stats.FileBytes)
		for domain, count := range stats.Domains {
			fmt.Printf("  %s: %d\n", domain, count)
		}
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Skip the confirmation prompt")
}
