package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var importFormat string

var importCmd = &cobra.Command{
	Use:   "import <userID> <file>",
	Short: "Upload a JSON or CSV document of journal entries.",
	Long: `Upload a document of journal entries. Records that fail to import
are reported individually; the rest are still saved.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if importFormat != "json" && importFormat != "csv" {
			return fmt.Errorf("unsupported format %q (want json or csv)", importFormat)
		}

		doc, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}

		url := fmt.Sprintf("%s/users/%s/import/%s", serverURL, args[0], importFormat)
		req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(doc))
		if err != nil {
			return err
		}
		if authToken != "" {
			req.Header.Set("Authorization", "Bearer "+authToken)
		}

		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		// 207 means some records failed; the response body carries details.
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusMultiStatus {
			return fmt.Errorf("import failed: %s: %s", resp.Status, body)
		}

		fmt.Println(string(body))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importFormat, "format", "csv", "import format: json or csv")
	rootCmd.AddCommand(importCmd)
}
