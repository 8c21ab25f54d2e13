package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/midbel/ggraphs/dash"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderStdout bool

var renderCmd = &cobra.Command{
	Use:   "render <dashboard.yaml>",
	Short: "draw every chart of a dashboard into its page or into svg files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		board, logger, err := openBoard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer board.Close()

		if renderStdout {
			_, err = board.WriteTo(cmd.OutOrStdout())
			return err
		}
		return board.Save()
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch <dashboard.yaml>",
	Short: "redraw a dashboard each time its page or its data files change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		board, logger, err := openBoard(ctx, args[0])
		if err != nil {
			return err
		}
		defer logger.Sync()
		defer board.Close()

		if err := board.Save(); err != nil {
			return err
		}
		return board.Watch(ctx, func() error {
			logger.Info("dashboard saved", zap.String("file", args[0]))
			return board.Save()
		})
	},
}

func init() {
	renderCmd.Flags().BoolVar(&renderStdout, "stdout", false, "write the result to stdout")
}

func openBoard(ctx context.Context, file string) (*dash.Board, *zap.Logger, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}
	cfg, err := dash.Load(file)
	if err != nil {
		return nil, nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	board, err := dash.Open(ctx, cfg, dash.WithLogger(logger), dash.WithDebounce(debounce()))
	if err != nil {
		return nil, nil, err
	}
	return board, logger, nil
}
