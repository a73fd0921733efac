package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deppfellow/camfleet/internal/envelope"
	"github.com/deppfellow/camfleet/internal/lib/utils"
	"github.com/spf13/cobra"
)

func newInvokeCommand() *cobra.Command {
	var eventFile string

	cmd := &cobra.Command{
		Use:   "invoke",
		Short: "Run one request event through the API and print the response envelope",
		Long: `Reads an event such as

  {"httpMethod": "GET", "path": "/api/roles", "queryStringParameters": {"id": "1"}}

from --event or stdin, serves it without opening a listener and prints
{statusCode, headers, body, isBase64Encoded}.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			event, err := readEvent(cmd.InOrStdin(), eventFile)
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			resp, err := envelope.NewAdapter(a.router).Invoke(cmd.Context(), event)
			if err != nil {
				return err
			}
			return utils.PrintJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&eventFile, "event", "", "path to the event JSON (default: stdin)")
	return cmd
}

func readEvent(stdin io.Reader, path string) (envelope.Event, error) {
	var event envelope.Event

	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return event, fmt.Errorf("open event: %w", err)
		}
		defer f.Close()
		r = f
	}

	if err := json.NewDecoder(r).Decode(&event); err != nil {
		return event, fmt.Errorf("decode event: %w", err)
	}
	return event, nil
}
