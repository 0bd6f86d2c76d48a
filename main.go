package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/nijaru/yt-summary/config"
	"github.com/nijaru/yt-summary/errors"
	"github.com/nijaru/yt-summary/handlers/api"
	"github.com/nijaru/yt-summary/models"
	"github.com/spf13/cobra"
)

var (
	port      string
	model     string
	languages []string
	inputText string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "yt-summary",
		Short: "Summarize YouTube videos and text with Gemini",
		Long: `yt-summary fetches YouTube transcripts and summarizes them, or any pasted
text, with Google's Gemini models.

Run without a subcommand to start the web server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the HTTP server.

Endpoints:
  GET  /           - Page shell
  POST /summarize  - Summarize a video (JSON or form) or text (form)
  POST /transcript - Fetch transcript only
  GET  /health     - Health check
  GET  /metrics    - Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	serveCmd.Flags().StringVar(&port, "port", "", "Port to listen on (default: from PORT env or 5000)")

	summarizeCmd := &cobra.Command{
		Use:   "summarize [youtube-url]",
		Short: "Summarize a YouTube video, or text given with --text",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummarize,
	}
	summarizeCmd.Flags().StringVar(&inputText, "text", "", "Summarize this text instead of a video (use - to read stdin)")

	transcriptCmd := &cobra.Command{
		Use:   "transcript <youtube-url>",
		Short: "Fetch and print the transcript only",
		Args:  cobra.ExactArgs(1),
		RunE:  runTranscript,
	}

	rootCmd.PersistentFlags().StringVar(&model, "model", "", "Gemini model (default: from GEMINI_MODEL env)")
	rootCmd.PersistentFlags().StringSliceVar(&languages, "lang", nil, "Transcript language preference, in order (default: from TRANSCRIPT_LANGUAGES env)")

	rootCmd.AddCommand(serveCmd, summarizeCmd, transcriptCmd)
	return rootCmd
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if port != "" {
		cfg.ServerPort = port
	}
	if model != "" {
		cfg.Gemini.Model = model
	}
	if len(languages) > 0 {
		cfg.Transcript.Languages = languages
	}
	return cfg, cfg.Validate()
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, os.Stdout)
	if err != nil {
		return err
	}
	defer app.Close()

	server, err := api.NewServer(cfg,
		api.WithServices(app.service),
		api.WithLogger(app.logger),
		api.WithRegistry(app.registry, app.recorder),
	)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.WithError(err).Error("Server shutdown error")
		return err
	}
	app.logger.Info("Server stopped")
	return nil
}

func runSummarize(cmd *cobra.Command, args []string) error {
	if inputText == "" && len(args) == 0 {
		return fmt.Errorf("either a YouTube URL or --text is required")
	}
	if inputText != "" && len(args) > 0 {
		return fmt.Errorf("a YouTube URL and --text cannot be used together")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app, err := newApplication(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	if inputText != "" {
		text, err := readText(cmd.InOrStdin(), inputText)
		if err != nil {
			return err
		}
		result, err := app.service.SummarizeText(cmd.Context(), models.SummarizeTextRequest{Text: text})
		if err != nil {
			return cliError(err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
		return nil
	}

	result, err := app.service.SummarizeVideo(cmd.Context(), models.SummarizeVideoRequest{VideoURL: args[0]})
	if err != nil {
		return cliError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Summary)
	return nil
}

func runTranscript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app, err := newApplication(cmd.Context(), cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer app.Close()

	result, err := app.service.Transcript(cmd.Context(), models.SummarizeVideoRequest{VideoURL: args[0]})
	if err != nil {
		return cliError(err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Transcript)
	return nil
}

func readText(stdin io.Reader, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// cliError reduces an AppError to the message a web client would see.
func cliError(err error) error {
	if appErr, ok := errors.As(err); ok {
		return stderrors.New(appErr.Message)
	}
	return err
}
