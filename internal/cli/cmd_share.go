package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type shareRequest struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type shareResponse struct {
	ID string `json:"id"`
}

// newShareCmd creates the share command.
func newShareCmd() *cobra.Command {
	var shareURL string

	cmd := &cobra.Command{
		Use:   "share <book>",
		Short: "POST a spell-book's contents to a sharing endpoint",
		Long: `Share posts the raw contents of a spell-book file to a configured remote
URL as {"name":..., "value":...} and prints the id the server returns on
HTTP 201.

Example:
  quest share auth --url https://quest-share.example.com/config`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if shareURL == "" {
				shareURL = os.Getenv("QUEST_SHARE_URL")
			}
			if shareURL == "" {
				return fmt.Errorf("no share URL: pass --url or set QUEST_SHARE_URL")
			}

			path := filepath.Join(bookDir(), args[0]+".toml")
			content, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read spell-book: %w", err)
			}

			id, err := share(shareURL, args[0], string(content))
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		},
	}

	cmd.Flags().StringVar(&shareURL, "url", "", "remote sharing endpoint (default $QUEST_SHARE_URL)")
	return cmd
}

func share(baseURL, name, content string) (string, error) {
	payload, err := json.Marshal(shareRequest{Name: name, Value: content})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgentShare)
	req.Header.Set("X-Correlation-Id", uuid.NewString())

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending POST to %s: %w", baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("unexpected status %d from %s", resp.StatusCode, baseURL)
	}

	var created shareResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("parsing JSON body: %w", err)
	}
	return created.ID, nil
}

const userAgentShare = "quest/0.1"
