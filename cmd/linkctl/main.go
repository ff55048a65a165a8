// linkctl is a small operator CLI for the crosslink HTTP API: trigger scans,
// list suspicious profiles, and dump ego-networks from scripts or a shell.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	serverURL string
	authToken string
)

var rootCmd = &cobra.Command{
	Use:   "linkctl",
	Short: "Operator CLI for the crosslink linkage engine",
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Trigger a full-corpus linkage scan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodPost, "/api/linkages/detect")
	},
}

var suspiciousCmd = &cobra.Command{
	Use:   "suspicious",
	Short: "List profiles at or above a suspicion score",
	RunE: func(cmd *cobra.Command, args []string) error {
		minScore, _ := cmd.Flags().GetInt("min-score")
		limit, _ := cmd.Flags().GetInt("limit")
		return call(http.MethodGet, fmt.Sprintf("/api/linkages/suspicious?min_score=%d&limit=%d", minScore, limit))
	},
}

var networkCmd = &cobra.Command{
	Use:   "network <profile-id>",
	Short: "Dump the ego-network around a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, _ := cmd.Flags().GetInt("depth")
		return call(http.MethodGet, fmt.Sprintf("/api/linkages/network/%s?depth=%d", args[0], depth))
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show last-run statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return call(http.MethodGet, "/api/linkages/stats")
	},
}

// call performs the request and pretty-prints the JSON response.
func call(method, path string) error {
	req, err := http.NewRequest(method, serverURL+path, nil)
	if err != nil {
		return err
	}
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty json.RawMessage = body
	var buf map[string]any
	if json.Unmarshal(body, &buf) == nil {
		if b, err := json.MarshalIndent(buf, "", "  "); err == nil {
			pretty = b
		}
	}
	fmt.Println(string(pretty))

	if resp.StatusCode >= 400 {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("CROSSLINK_SERVER", "http://localhost:8080"), "crosslink server base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", os.Getenv("CROSSLINK_TOKEN"), "bearer token (when the server gate is enabled)")

	suspiciousCmd.Flags().Int("min-score", 50, "minimum suspicion score")
	suspiciousCmd.Flags().Int("limit", 50, "maximum number of profiles")
	networkCmd.Flags().Int("depth", 2, "traversal depth bound")

	rootCmd.AddCommand(scanCmd, suspiciousCmd, networkCmd, statsCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
