// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dalzilio/robdd/internal/diagram"
	"github.com/dalzilio/robdd/internal/order"
	"github.com/dalzilio/robdd/internal/service"
)

// OrderReport describes a variable order and the size of the diagram it
// gives.
type OrderReport struct {
	Strategy    string   `json:"strategy"`
	Order       []string `json:"order"`
	Size        int      `json:"size"`
	Passes      int      `json:"passes"`
	Evaluations int      `json:"evaluations"`
}

func newOrderReport(s diagram.Strategy, res order.Result) *OrderReport {
	return &OrderReport{
		Strategy:    string(s),
		Order:       res.Order,
		Size:        res.Cost,
		Passes:      res.Passes,
		Evaluations: res.Evaluations,
	}
}

// OrderResult is the JSON output of the order command.
type OrderResult struct {
	Formula string         `json:"formula"`
	Type    string         `json:"type"`
	Orders  []*OrderReport `json:"orders"`
}

// NewOrderCommand creates the order command.
func NewOrderCommand(rootOpts *RootOptions) *cobra.Command {
	var kindName string

	cmd := &cobra.Command{
		Use:   "order <formula>",
		Short: "Compare the variable orders of a formula",
		Long: `Compare the size of the diagram of a formula for the order of first
occurrence of its variables (discovery), the frequency order (freq) and
the order found by local sifting (ls).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(rootOpts, kindName, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&kindName, "type", "t", "robdd", "diagram type (bdd|robdd)")

	return cmd
}

func runOrder(rootOpts *RootOptions, kindName, text string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg := rootOpts.Settings()

	kind, err := diagram.ParseKind(kindName)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalid, err.Error())
		return WrapExitError(ExitCommandError, ErrCodeInvalid, err)
	}
	d, err := diagram.New(service.StripSpaces(text), diagram.KernelOptions(cfg.Kernel.Options()...))
	if err != nil {
		return formatter.Fail(err)
	}

	size, err := d.Measure(kind, d.Variables())
	if err != nil {
		return formatter.Fail(err)
	}
	result := OrderResult{
		Formula: d.Formula(),
		Type:    kind.String(),
		Orders: []*OrderReport{{
			Strategy:    "discovery",
			Order:       d.Variables(),
			Size:        size,
			Evaluations: 1,
		}},
	}
	for _, s := range []diagram.Strategy{diagram.Frequency, diagram.Sifting} {
		res, err := d.AutoOrder(kind, s, cfg.Sift.Options()...)
		if err != nil {
			return formatter.Fail(err)
		}
		formatter.VerboseLog("%s: %d node(s)", s, res.Cost)
		result.Orders = append(result.Orders, newOrderReport(s, res))
	}

	return formatter.Success(result, func(w io.Writer) error {
		fmt.Fprintf(w, "%s of %s\n\n", result.Type, result.Formula)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "STRATEGY\tSIZE\tPASSES\tORDER")
		for _, r := range result.Orders {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", r.Strategy, r.Size, r.Passes, strings.Join(r.Order, " "))
		}
		return tw.Flush()
	})
}
