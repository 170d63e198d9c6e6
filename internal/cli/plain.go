// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// plain.go - Line-based REPL for terminals without alternate screen support.
//
// Command: plain
// Short:   Interactive chat without the full-screen TUI
// Aliases: repl, chat
//
// Slash Commands:
//   /help       Show available commands
//   /clear      Start a fresh conversation
//   /model [id] Show or switch the active model
//   /models     List the model catalog
//   /history    Show the current conversation transcript
//   /status     Show endpoint, backend, and conversation info
//   /quit       Exit (also: exit, quit, Ctrl+D)
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/parley-tui/internal/api"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/store"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// REPL STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Cyan)

	welcomeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.Purple)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	replWarningStyle = lipgloss.NewStyle().
				Foreground(styles.Amber)

	summaryHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(styles.Cyan)
)

// =============================================================================
// LINE EDITOR
// =============================================================================

// ChatCLI wraps liner with persistent input history.
type ChatCLI struct {
	line        *liner.State
	historyPath string
}

// NewChatCLI creates a line editor with history stored in the config dir.
func NewChatCLI() (*ChatCLI, error) {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		line.Close()
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}

	return &ChatCLI{
		line:        line,
		historyPath: filepath.Join(configDir, "plain_history"),
	}, nil
}

// LoadHistory loads prior input history if present.
func (c *ChatCLI) LoadHistory() {
	f, err := os.Open(c.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	c.line.ReadHistory(f)
}

// ReadInput prompts for a line and records it in history.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// SaveHistory persists input history with restrictive permissions.
func (c *ChatCLI) SaveHistory() error {
	f, err := os.OpenFile(c.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = c.line.WriteHistory(f)
	return err
}

// Close releases the terminal.
func (c *ChatCLI) Close() {
	c.line.Close()
}

// =============================================================================
// REPL LOOP
// =============================================================================

// HandlePlainCommand runs the plain REPL until the user quits.
func HandlePlainCommand(args Args) error {
	if err := RequireTTY("plain"); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s (using defaults)\n", err)
		cfg = config.Default()
	}

	logger, closeLog := NewLogger(cfg)
	defer closeLog()

	st, closeStore, err := OpenStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client := NewChatClient(cfg, args)

	// --model overrides the persisted selection for this run and beyond
	if args.Model != "" {
		info, ok := model.LookupModel(args.Model)
		if !ok {
			return NewValidationError("model", fmt.Sprintf("unknown model %q (see: parley models)", args.Model))
		}
		st.SetModel(info.ID)
	}

	editor, err := NewChatCLI()
	if err != nil {
		return err
	}
	defer editor.Close()
	editor.LoadHistory()

	if !args.Quiet {
		printWelcome(st)
	}

	// Ctrl+C during a request cancels that request, not the REPL.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	startTime := time.Now()
	exchanges := 0
	prompt := promptStyle.Render("> ")

	for {
		input, err := editor.ReadInput(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				fmt.Println(infoStyle.Render("(Ctrl+C) Type /quit or press Ctrl+D to exit"))
				continue
			}
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("input error: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if quit := handleSlashCommand(input, st, client, cfg); quit {
				break
			}
			continue
		}
		if input == "exit" || input == "quit" {
			break
		}

		if sendExchange(st, client, sigCh, input) {
			exchanges++
		}
	}

	if err := editor.SaveHistory(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save input history: %v\n", err)
	}

	if !args.Quiet {
		printExitSummary(exchanges, time.Since(startTime))
	}
	return nil
}

// sendExchange performs one request/reply round trip against the active
// conversation. Returns true when a reply was received.
func sendExchange(st *store.Store, client *api.Client, sigCh <-chan os.Signal, input string) bool {
	snap := st.Snapshot()
	active := snap.Active()
	if active == nil {
		st.NewConversation()
		snap = st.Snapshot()
		active = snap.Active()
	}

	// History is the prior turns only, captured before the new message
	history := active.History()
	st.AppendMessage(active.ID, model.NewUserMessage(input))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-done:
		}
	}()

	fmt.Println(infoStyle.Render("... (Ctrl+C to cancel)"))
	response, err := client.Send(ctx, input, snap.Model, history)
	close(done)
	cancel()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Println(replWarningStyle.Render("Request cancelled"))
			return false
		}
		detail := apiErrorDetail(err)
		st.AppendMessage(active.ID, model.NewErrorMessage("[SYSTEM ERROR]: "+detail))
		fmt.Println(ErrorStyle.Render("Error: ") + detail)
		return false
	}

	st.AppendMessage(active.ID, model.NewBotMessage(response))
	fmt.Println()
	displayResponse(response)
	fmt.Println()
	return true
}

// apiErrorDetail extracts the service's explanation from a failed exchange.
func apiErrorDetail(err error) string {
	var netErr *api.NetworkError
	if errors.As(err, &netErr) && netErr.Detail != "" {
		return netErr.Detail
	}
	if err != nil {
		return err.Error()
	}
	return "network response was not ok"
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand dispatches a /command. Returns true to quit the REPL.
func handleSlashCommand(input string, st *store.Store, client *api.Client, cfg *config.Config) bool {
	fields := strings.Fields(input)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/help", "/h", "/?":
		printHelp()

	case "/clear", "/new":
		st.NewConversation()
		fmt.Println(infoStyle.Render("Started a new conversation"))

	case "/model":
		if len(fields) < 2 {
			fmt.Println(RenderLabel("Current model", model.ModelDisplayName(st.Model())))
			return false
		}
		info, ok := model.LookupModel(fields[1])
		if !ok {
			fmt.Println(ErrorStyle.Render("Unknown model: ") + fields[1])
			fmt.Println(infoStyle.Render("Use /models to list available models"))
			return false
		}
		st.SetModel(info.ID)
		fmt.Println(SuccessStyle.Render("[OK]") + " Model set to " + info.Name)

	case "/models":
		for _, info := range model.Catalog {
			marker := "  "
			if info.ID == st.Model() {
				marker = commandStyle.Render("* ")
			}
			fmt.Printf("%s%-24s %s\n", marker, info.ID, infoStyle.Render(info.Name))
		}

	case "/history":
		printHistory(st)

	case "/status":
		printStatus(st, client, cfg)

	case "/quit", "/exit", "/q":
		return true

	default:
		fmt.Println(ErrorStyle.Render("Unknown command: ") + cmd)
		fmt.Println(infoStyle.Render("Type /help for available commands"))
	}
	return false
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printWelcome(st *store.Store) {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("parley " + Version))
	fmt.Println(infoStyle.Render("Model: " + model.ModelDisplayName(st.Model())))
	fmt.Println(infoStyle.Render("Type /help for commands, /quit to exit"))
	fmt.Println()
}

func printHelp() {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Commands"))
	rows := [][2]string{
		{"/help", "Show this help"},
		{"/clear", "Start a fresh conversation"},
		{"/model [id]", "Show or switch the active model"},
		{"/models", "List the model catalog"},
		{"/history", "Show the current transcript"},
		{"/status", "Show endpoint and storage info"},
		{"/quit", "Exit (also: exit, quit, Ctrl+D)"},
	}
	for _, row := range rows {
		fmt.Printf("  %s  %s\n", commandStyle.Render(fmt.Sprintf("%-12s", row[0])), row[1])
	}
	fmt.Println()
}

func printHistory(st *store.Store) {
	active := st.Snapshot().Active()
	if active == nil || len(active.Messages) == 0 {
		fmt.Println(infoStyle.Render("No messages yet"))
		return
	}

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render(active.Title))
	for _, msg := range active.Messages {
		label := msg.Sender.DisplayName()
		if msg.IsError {
			fmt.Printf("  %s %s\n", ErrorStyle.Render(label+":"), msg.Text)
			continue
		}
		fmt.Printf("  %s %s\n", LabelStyle.Render(label+":"), historyText(msg))
	}
	fmt.Println()
}

// historyText formats a transcript entry's body for /history output.
// Bot replies carrying code fences keep their highlighting; everything
// else prints verbatim.
func historyText(msg *model.Message) string {
	if msg.Sender != model.SenderBot || !strings.Contains(msg.Text, "```") {
		return msg.Text
	}
	if !IsStdoutTTY() {
		return msg.Text
	}
	return components.ParseCodeBlocks(msg.Text, GetTerminalWidth())
}

func printStatus(st *store.Store, client *api.Client, cfg *config.Config) {
	snap := st.Snapshot()
	active := snap.Active()

	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Status"))
	fmt.Println("  " + RenderLabel("Endpoint", client.Endpoint()))
	fmt.Println("  " + RenderLabel("Backend", cfg.Storage.Backend))
	fmt.Println("  " + RenderLabel("Model", model.ModelDisplayName(snap.Model)))
	fmt.Println("  " + RenderLabel("Conversations", fmt.Sprintf("%d", len(snap.Conversations))))
	if active != nil {
		fmt.Println("  " + RenderLabel("Active", fmt.Sprintf("%s (%d messages)", active.Title, len(active.Messages))))
	}
	fmt.Println()
}

func printExitSummary(exchanges int, elapsed time.Duration) {
	fmt.Println()
	fmt.Println(summaryHeaderStyle.Render("Session summary"))
	fmt.Printf("  Exchanges: %d\n", exchanges)
	fmt.Printf("  Duration:  %s\n", formatDurationShort(elapsed))
	fmt.Println()
}

// formatDurationShort formats a short duration string.
func formatDurationShort(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", h, m)
}
