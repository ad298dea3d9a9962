package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"atomkv/internal/engine"
	"atomkv/internal/kv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var setType string

var setCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Write a value under a key",
	Long: `Writes a value through the typed facade selected by --type, so the
value is validated and tagged the same way the library would tag it.

Examples:
  atomkv set greeting hello
  atomkv set visitCount 5 --type number
  atomkv set darkMode true --type bool
  atomkv set profile '{"name":"ada"}' --type json`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

func init() {
	setCmd.Flags().StringVarP(&setType, "type", "t", "string", "Value domain: string, number, bool, json")
}

func runSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	eng, err := openEngine()
	if err != nil {
		return err
	}
	defer eng.Close()

	switch setType {
	case engine.DomainString:
		if err := kv.NewStringStore(eng).Set(key, raw); err != nil {
			return err
		}
	case engine.DomainNumber:
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("value %q is not a number: %w", raw, err)
		}
		if err := kv.NewNumberStore(eng).Set(key, n); err != nil {
			return err
		}
	case engine.DomainBool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("value %q is not a bool: %w", raw, err)
		}
		if err := kv.NewBoolStore(eng).Set(key, b); err != nil {
			return err
		}
	case engine.DomainJSON:
		var payload any
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return fmt.Errorf("value is not valid JSON: %w", err)
		}
		if err := kv.NewJSONStore[any](eng).Set(key, payload); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown type %q (want string, number, bool, or json)", setType)
	}

	logger.Info("Key written", zap.String("key", key), zap.String("type", setType))
	fmt.Printf("ok: %s (%s)\n", key, setType)
	return nil
}
