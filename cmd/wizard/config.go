package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "go-dashboard-wizard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set wizard configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		fmt.Printf("listen_addr: %s\n", c.ListenAddr)
		fmt.Printf("db_path: %s\n", c.DBPath)
		fmt.Printf("uploads_dir: %s\n", c.UploadsDir)
		fmt.Printf("page_size: %d\n", c.PageSize)
		fmt.Printf("ai_api_key: %s\n", mask(c.AIAPIKey))
		fmt.Printf("ai_base_url: %s\n", c.AIBaseURL)
		fmt.Printf("ai_model: %s\n", c.AIModel)
		fmt.Printf("http_timeout_sec: %d\n", c.HTTPTimeoutSec)
		fmt.Printf("retry_max_attempts: %d\n", c.RetryMaxAttempts)
		fmt.Printf("retry_base_delay_ms: %d\n", c.RetryBaseDelayMs)
		fmt.Printf("retry_max_delay_ms: %d\n", c.RetryMaxDelayMs)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		c, err := ensureConfig()
		if err != nil {
			return err
		}
		switch key {
		case "listen_addr":
			c.ListenAddr = val
		case "db_path":
			c.DBPath = val
		case "uploads_dir":
			c.UploadsDir = val
		case "page_size":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid page_size: %s", val)
			}
			c.PageSize = n
		case "ai_api_key":
			c.AIAPIKey = val
		case "ai_base_url":
			c.AIBaseURL = val
		case "ai_model":
			c.AIModel = val
		case "http_timeout_sec":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid http_timeout_sec: %s", val)
			}
			c.HTTPTimeoutSec = n
		case "retry_max_attempts":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid retry_max_attempts: %s", val)
			}
			c.RetryMaxAttempts = n
		case "retry_base_delay_ms":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid retry_base_delay_ms: %s", val)
			}
			c.RetryBaseDelayMs = n
		case "retry_max_delay_ms":
			n, err := strconv.Atoi(val)
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid retry_max_delay_ms: %s", val)
			}
			c.RetryMaxDelayMs = n
		default:
			return fmt.Errorf("unknown config key: %s", key)
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ Saved %s\n", key)
		return nil
	},
}

func mask(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "****"
	}
	return s[:4] + "..." + s[len(s)-4:]
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
