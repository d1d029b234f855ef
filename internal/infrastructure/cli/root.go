// Package cli wires the cobra command tree: one-shot dispatch, the
// interactive chat loop, the HTTP server, and history inspection.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/doeshing/aimy-go/internal/app"
	"github.com/doeshing/aimy-go/internal/domain"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// exitWords end the interactive chat loop.
var exitWords = map[string]bool{
	"exit": true, "quit": true, "bye": true, "goodbye": true, "stop": true,
}

// NewRootCmd wires the cobra root command.
func NewRootCmd(ctx context.Context, opts Options) (*cobra.Command, error) {
	container, err := app.BuildContainer(ctx, opts.Verbose)
	if err != nil {
		return nil, err
	}

	root := &cobra.Command{
		Use:   "aimy [request]",
		Short: "Aimy - natural language assistant",
		Long:  "Aimy turns natural language into actions: launching apps, opening websites, creating content, adjusting settings, and answering questions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return runOnce(cmd, container, strings.Join(args, " "))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newChatCommand(container))
	root.AddCommand(newServeCommand(container))
	root.AddCommand(newHistoryCommand(container))
	root.AddCommand(newVersionCommand(container))
	return root, nil
}

func runOnce(cmd *cobra.Command, container *app.Container, text string) error {
	result := container.Pipeline.Process(domain.Request{
		Context: cmd.Context(),
		Text:    text,
	})
	container.Pipeline.Drain()
	renderResult(cmd.OutOrStdout(), result)
	if !result.Success {
		return fmt.Errorf("request failed: %s", result.Error)
	}
	return nil
}

func newChatCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive conversation loop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
			if interactive {
				fmt.Fprintf(out, "%s ready. Type 'exit' to leave.\n", container.Config.Assistant.Name)
			}

			scanner := bufio.NewScanner(os.Stdin)
			for {
				if interactive {
					fmt.Fprint(out, "> ")
				}
				if !scanner.Scan() {
					break
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if exitWords[strings.ToLower(line)] {
					if interactive {
						fmt.Fprintln(out, "Goodbye!")
					}
					break
				}

				result := container.Pipeline.Process(domain.Request{
					Context: cmd.Context(),
					Text:    line,
					Session: "cli",
				})
				renderResult(out, result)
			}
			container.Pipeline.Drain()
			return scanner.Err()
		},
	}
}

func newServeCommand(container *app.Container) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP interface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = container.Config.Server.Addr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Listening on %s\n", addr)
			return container.Server.ListenAndServe(addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func newHistoryCommand(container *app.Container) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past interactions",
	}

	var limit int
	var search string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent interactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := container.History.Records(limit, search)
			if err != nil {
				return err
			}
			renderHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", domain.DefaultHistoryLimit, "Max entries to show")
	listCmd.Flags().StringVar(&search, "search", "", "Filter by input or message text")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded interactions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := container.History.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(listCmd, clearCmd)
	return historyCmd
}

func newVersionCommand(container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			a := container.Config.Assistant
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", a.Name, a.Version)
		},
	}
}
