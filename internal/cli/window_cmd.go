package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/deskpet-io/deskpet/internal/hostapi"
	"github.com/deskpet-io/deskpet/internal/pet"
)

var moveCmd = &cobra.Command{
	Use:   "move [x y]",
	Short: "Move the pet window",
	Long: `Move the pet window.

Without arguments the host picks a random on-screen position, the same way
the pet's own "Random move" does. Coordinates outside the screen are clamped.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("expected no arguments or both x and y")
		}
		return nil
	},
	RunE: runMove,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the pet window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(func(ctx context.Context, c *hostapi.Client) error {
			w, err := c.ShowWindow(ctx)
			if err != nil {
				return fmt.Errorf("failed to show window: %w", err)
			}
			fmt.Printf("Pet shown at (%d, %d).\n", w.X, w.Y)
			return nil
		})
	},
}

var hideCmd = &cobra.Command{
	Use:   "hide",
	Short: "Hide the pet window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(func(ctx context.Context, c *hostapi.Client) error {
			if _, err := c.HideWindow(ctx); err != nil {
				return fmt.Errorf("failed to hide window: %w", err)
			}
			fmt.Println("Pet hidden.")
			return nil
		})
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Tell the host to quit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withHost(func(ctx context.Context, c *hostapi.Client) error {
			if err := c.Quit(ctx); err != nil {
				return fmt.Errorf("failed to quit: %w", err)
			}
			fmt.Println("Goodbye.")
			return nil
		})
	},
}

func runMove(cmd *cobra.Command, args []string) error {
	var target *pet.Position
	if len(args) == 2 {
		pos, err := parsePosition(args[0], args[1])
		if err != nil {
			return err
		}
		target = &pos
	}

	return withHost(func(ctx context.Context, c *hostapi.Client) error {
		if target == nil {
			pos, err := c.RandomPosition(ctx)
			if err != nil {
				return fmt.Errorf("failed to get a random position: %w", err)
			}
			target = &pos
		}
		if err := c.MoveWindow(ctx, *target); err != nil {
			return fmt.Errorf("failed to move window: %w", err)
		}
		w, err := c.Window(ctx)
		if err != nil {
			fmt.Printf("Pet moved to %s.\n", *target)
			return nil
		}
		fmt.Printf("Pet moved to (%d, %d).\n", w.X, w.Y)
		return nil
	})
}

// parsePosition parses window coordinates. Negative values are rejected;
// the host clamps anything past the screen edge.
func parsePosition(xs, ys string) (pet.Position, error) {
	x, err := strconv.Atoi(xs)
	if err != nil {
		return pet.Position{}, fmt.Errorf("invalid x coordinate: %s", xs)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return pet.Position{}, fmt.Errorf("invalid y coordinate: %s", ys)
	}
	if x < 0 || y < 0 {
		return pet.Position{}, fmt.Errorf("coordinates must not be negative: %d, %d", x, y)
	}
	return pet.Position{X: x, Y: y}, nil
}

// withHost connects to the running host and calls fn with a short deadline.
func withHost(fn func(ctx context.Context, c *hostapi.Client) error) error {
	client, conn, err := connectDaemon()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return fn(ctx, client)
}
