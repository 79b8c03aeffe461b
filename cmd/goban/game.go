package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aretw0/goban"
	"github.com/aretw0/goban/internal/dto"
	"github.com/aretw0/goban/internal/service"
	"github.com/aretw0/goban/pkg/adapters/file"
	redisAdapter "github.com/aretw0/goban/pkg/adapters/redis"
	"github.com/aretw0/goban/pkg/gametree"
	"github.com/aretw0/goban/pkg/session"
	"github.com/aretw0/goban/pkg/sgf"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Manage stored games",
	Long: `Create, play, inspect and remove games kept as SGF files in the store directory
(store.dir, default .goban/games). Set lock.redis_addr to serialize access across
processes sharing the directory.`,
}

// openManager builds the session manager described by the configuration.
// The returned cleanup closes the Redis client, if any.
func openManager(cmd *cobra.Command) (*session.Manager, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if dir, _ := cmd.Flags().GetString("store"); dir != "" {
		cfg.Store.Dir = dir
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	opts := []session.Option{session.WithLogger(logger), session.WithLockTTL(cfg.Lock.TTL)}
	cleanup := func() {}
	if cfg.Lock.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.Lock.RedisAddr})
		opts = append(opts, session.WithLocker(redisAdapter.NewLocker(client, cfg.Lock.Prefix)))
		cleanup = func() { _ = client.Close() }
	}
	return session.NewManager(file.New(cfg.Store.Dir), opts...), cleanup, nil
}

var gameNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a game and print its ID",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		opts, err := cfg.GameOptions()
		if err != nil {
			return err
		}
		size := cfg.BoardSize
		if cmd.Flags().Changed("size") {
			size, _ = cmd.Flags().GetInt("size")
		}
		if handicap, _ := cmd.Flags().GetInt("handicap"); handicap > 0 {
			opts = append(opts, goban.WithHandicap(handicap))
		}
		if cmd.Flags().Changed("komi") {
			komi, _ := cmd.Flags().GetFloat64("komi")
			opts = append(opts, goban.WithKomi(komi))
		}
		id, _ := cmd.Flags().GetString("id")
		if id == "" {
			id = uuid.NewString()
		}

		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		created := false
		_, err = mgr.LoadOrCreate(cmd.Context(), id, func() (*gametree.Tree, error) {
			g, err := goban.New(size, opts...)
			if err != nil {
				return nil, err
			}
			created = true
			return g.Tree(), nil
		})
		if err != nil {
			return err
		}
		if !created {
			return fmt.Errorf("game %q already exists", id)
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var gameLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored games",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		ids, err := mgr.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("error listing games: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(ids) == 0 {
			fmt.Fprintln(out, "No stored games found.")
			return nil
		}

		fmt.Fprintln(out, "Stored Games:")
		for _, id := range ids {
			tree, err := mgr.Load(cmd.Context(), id)
			if err != nil {
				fmt.Fprintf(out, "- %s (unreadable: %v)\n", id, err)
				continue
			}
			sum := service.Summarize(goban.FromTree(tree))
			status := sum.ToMove + " to move"
			if sum.Result != "" {
				status = sum.Result
			} else if sum.Phase != "playing" {
				status = sum.Phase
			}
			fmt.Fprintf(out, "- %s %dx%d, %d moves, %s\n", id, sum.Size, sum.Size, sum.Moves, status)
		}
		return nil
	},
}

var gameInspectCmd = &cobra.Command{
	Use:   "inspect <game-id>",
	Short: "Print the summary and current position of a game",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		tree, err := mgr.Load(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("error loading game '%s': %w", args[0], err)
		}
		if raw, _ := cmd.Flags().GetBool("sgf"); raw {
			fmt.Fprintln(cmd.OutOrStdout(), sgf.Serialize(tree))
			return nil
		}

		g := goban.FromTree(tree)
		pos := service.Describe(g)
		pos.SGF = ""
		data, err := json.MarshalIndent(struct {
			Summary  dto.GameSummary `json:"summary"`
			Position dto.Position    `json:"position"`
		}{service.Summarize(g), pos}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var gameRmCmd = &cobra.Command{
	Use:   "rm <game-id>...",
	Short: "Remove one or more games",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		failed := 0
		for _, id := range args {
			if err := mgr.Delete(cmd.Context(), id); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error removing '%s': %v\n", id, err)
				failed++
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed game '%s'\n", id)
		}
		if failed > 0 {
			return fmt.Errorf("%d games could not be removed", failed)
		}
		return nil
	},
}

var gamePlayCmd = &cobra.Command{
	Use:   "play <game-id> <move>...",
	Short: "Play moves at the end of the main line",
	Long:  `Each move is an SGF point such as "dd", or "pass" or "resign", played by the side to move. The moves are applied in order and saved together; nothing is saved if one is illegal.`,
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		var g *goban.Game
		_, err = mgr.Update(cmd.Context(), args[0], func(tree *gametree.Tree) error {
			g = goban.FromTree(tree)
			for _, m := range args[1:] {
				mv, err := service.ParseMove(m, g.ToMove(), g.Size())
				if err != nil {
					return err
				}
				if _, err := g.Apply(mv); err != nil {
					return fmt.Errorf("move %s: %w", m, err)
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
		printPosition(cmd, g)
		return nil
	},
}

var gameUndoCmd = &cobra.Command{
	Use:   "undo <game-id>",
	Short: "Take back the last move of the main line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, cleanup, err := openManager(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		var g *goban.Game
		_, err = mgr.Update(cmd.Context(), args[0], func(tree *gametree.Tree) error {
			g = goban.FromTree(tree)
			return g.Undo()
		})
		if err != nil {
			return err
		}
		printPosition(cmd, g)
		return nil
	},
}

func printPosition(cmd *cobra.Command, g *goban.Game) {
	pos := service.Describe(g)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, strings.Join(pos.Board, "\n"))
	fmt.Fprintf(out, "Move %d, %s to move (%s). Captures: B %d, W %d\n",
		pos.MoveNumber, pos.ToMove, pos.Phase, pos.Captures.Black, pos.Captures.White)
}

func init() {
	rootCmd.AddCommand(gameCmd)
	gameCmd.PersistentFlags().String("store", "", "Store directory (overrides store.dir)")

	gameCmd.AddCommand(gameNewCmd, gameLsCmd, gameInspectCmd, gameRmCmd, gamePlayCmd, gameUndoCmd)

	gameNewCmd.Flags().Int("size", 19, "Board size (overrides board_size)")
	gameNewCmd.Flags().Int("handicap", 0, "Fixed handicap stones")
	gameNewCmd.Flags().Float64("komi", 0, "Komi (overrides the ruleset)")
	gameNewCmd.Flags().String("id", "", "Game ID (default: a random UUID)")

	gameInspectCmd.Flags().Bool("sgf", false, "Print the raw SGF record")
}
