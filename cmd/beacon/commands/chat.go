package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aldertree/beacon/internal/command"
	"github.com/aldertree/beacon/internal/config"
	"github.com/aldertree/beacon/internal/engine"
	"github.com/aldertree/beacon/internal/pipeline"
	"github.com/aldertree/beacon/internal/policy"
	"github.com/aldertree/beacon/internal/render"
	"github.com/aldertree/beacon/internal/session"
	"github.com/aldertree/beacon/internal/stats"
)

var (
	chatTUI    bool
	chatStrict bool
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat [message]",
		Short: "Chat with Beacon",
		RunE:  runChat,
	}
	cmd.Flags().BoolVar(&chatTUI, "tui", false, "Start the full-screen terminal UI")
	cmd.Flags().BoolVar(&chatStrict, "strict", false, "Enable strict policy mode")
	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if chatStrict {
		cfg.Policy.Strict = true
	}

	sessions := session.NewManager()
	sess := sessions.GetOrCreate("cli:local")

	pipe, err := buildPipeline(cfg, sess.Stats())
	if err != nil {
		return err
	}

	registry := buildRegistry()
	env := command.Env{
		Session:      sess,
		Config:       cfg,
		ListCommands: registry.List,
	}

	if len(args) > 0 {
		turn := pipe.HandleTurn(ctx, strings.Join(args, " "))
		sess.Append(turn)
		fmt.Println(render.PlainTurn(turn))
		return nil
	}

	if chatTUI {
		return runChatTUI(cfg, pipe, sess, registry)
	}

	fmt.Printf("%s ready. Type /help for commands, /quit to exit.\n", cfg.Engine.AssistantName)
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("\n> ")
		if !scanner.Scan() {
			break
		}

		input := strings.TrimSpace(scanner.Text())
		if isQuit(input) {
			break
		}
		if input == "" {
			continue
		}

		if cmd, cmdArgs, ok := registry.Lookup(input); ok {
			fmt.Println(cmd.Execute(ctx, cmdArgs, env).Content)
			continue
		}

		turn := pipe.HandleTurn(ctx, input)
		sess.Append(turn)
		fmt.Println(render.PlainTurn(turn))
	}

	return nil
}

// buildPipeline assembles the three pipeline stages from validated config,
// recording into the given session collector.
func buildPipeline(cfg *config.Config, collector *stats.Collector) (*pipeline.Pipeline, error) {
	engineCfg, err := cfg.BuildEngine()
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(engineCfg)
	if err != nil {
		return nil, err
	}

	policyCfg, err := cfg.BuildPolicy()
	if err != nil {
		return nil, err
	}
	categories, err := cfg.Categories()
	if err != nil {
		return nil, err
	}
	gate, err := policy.NewEvaluatorWithCategories(policyCfg, categories)
	if err != nil {
		return nil, err
	}

	return pipeline.New(eng, gate, collector), nil
}

func buildRegistry() *command.Registry {
	registry := command.NewRegistry()
	registry.Register(&command.StatsCommand{})
	registry.Register(&command.ResetStatsCommand{})
	registry.Register(&command.HelpCommand{})
	registry.Register(&command.VersionCommand{})
	return registry
}

func isQuit(input string) bool {
	switch strings.ToLower(input) {
	case "/quit", "exit", "quit":
		return true
	}
	return false
}
