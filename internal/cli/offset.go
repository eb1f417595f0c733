package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/neophoriac/SimpleDraggable/pkg/errors"
	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
)

// newOffsetCmd creates the offset management command with get, set, and
// clear subcommands. All subcommands operate on the store backend selected
// by the config file or the --store flag.
func newOffsetCmd() *cobra.Command {
	var flags storeFlags

	cmd := &cobra.Command{
		Use:   "offset",
		Short: "Read, write, and clear persisted offsets",
	}
	flags.register(cmd)

	cmd.AddCommand(offsetGetCmd(&flags))
	cmd.AddCommand(offsetSetCmd(&flags))
	cmd.AddCommand(offsetClearCmd(&flags))

	return cmd
}

// offsetGetCmd creates the "offset get" subcommand.
func offsetGetCmd(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the persisted offset for an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateIdentifier(id); err != nil {
				return err
			}

			ctx := cmd.Context()
			_, st, err := flags.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			raw, ok, err := st.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("read offset: %w", err)
			}
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no offset recorded for %q", id)
			}

			off := geometry.DecodeOffset(raw)
			fmt.Fprintln(cmd.OutOrStdout(), string(geometry.EncodeOffset(off)))
			return nil
		},
	}
}

// offsetSetCmd creates the "offset set" subcommand.
func offsetSetCmd(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <id> <x> <y>",
		Short: "Record an offset for an element",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateIdentifier(id); err != nil {
				return err
			}
			x, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid x value %q", args[1])
			}
			y, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return errors.New(errors.ErrCodeInvalidInput, "invalid y value %q", args[2])
			}

			ctx := cmd.Context()
			_, st, err := flags.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			payload := geometry.EncodeOffset(geometry.Offset{X: x, Y: y})
			if err := st.Set(ctx, id, payload); err != nil {
				return fmt.Errorf("write offset: %w", err)
			}

			loggerFromContext(ctx).Info("Offset recorded", "id", id, "x", x, "y", y)
			return nil
		},
	}
}

// offsetClearCmd creates the "offset clear" subcommand.
func offsetClearCmd(flags *storeFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <id>",
		Short: "Remove the persisted offset for an element",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := errors.ValidateIdentifier(id); err != nil {
				return err
			}

			ctx := cmd.Context()
			_, st, err := flags.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Delete(ctx, id); err != nil {
				return fmt.Errorf("clear offset: %w", err)
			}

			loggerFromContext(ctx).Info("Offset cleared", "id", id)
			return nil
		},
	}
}
