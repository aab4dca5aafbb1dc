// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dalzilio/robdd/internal/diagram"
	"github.com/dalzilio/robdd/internal/formula"
	"github.com/dalzilio/robdd/internal/order"
	"github.com/dalzilio/robdd/internal/service"
)

// BuildOptions holds the flags of the build command.
type BuildOptions struct {
	Type  string // bdd or robdd
	Order string // manual order, such as "c a b"
	Auto  string // freq or ls
	Eval  string // assignment to highlight, such as "a:1 b:0"
	Dot   bool   // print the DOT format instead of the view
}

// BuildResult is the JSON output of the build command.
type BuildResult struct {
	Formula    string        `json:"formula"`
	Expression string        `json:"expression"`
	Type       string        `json:"type"`
	Order      []string      `json:"order"`
	Size       int           `json:"size"`
	Models     string        `json:"models"`
	Sift       *OrderReport  `json:"sift,omitempty"`
	Graph      *diagram.View `json:"graph"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build <formula>",
		Short: "Build the decision diagram of a formula",
		Long: `Build the decision diagram of a formula and print its nodes.

The variable order is the order of first occurrence in the formula, unless
a manual order (--order) or an ordering strategy (--auto) is given. With
--eval, the path followed by an assignment is highlighted.`,
		Example: `  robdd build "(a | b) & c" --order "c a b"
  robdd build "a & c | b & c" --type bdd --auto ls --format json
  robdd build "a -> b" --eval "a:1 b:0" --dot | dot -Tsvg > diagram.svg`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Type, "type", "t", "robdd", "diagram type (bdd|robdd)")
	cmd.Flags().StringVarP(&opts.Order, "order", "o", "", "variable order, such as \"c a b\"")
	cmd.Flags().StringVarP(&opts.Auto, "auto", "a", "", "ordering strategy (freq|ls)")
	cmd.Flags().StringVarP(&opts.Eval, "eval", "e", "", "assignment to highlight, such as \"a:1 b:0\"")
	cmd.Flags().BoolVar(&opts.Dot, "dot", false, "print the diagram in the DOT format")

	return cmd
}

func runBuild(rootOpts *RootOptions, opts *BuildOptions, text string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	cfg := rootOpts.Settings()

	kind, err := diagram.ParseKind(opts.Type)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalid, err.Error())
		return WrapExitError(ExitCommandError, ErrCodeInvalid, err)
	}
	var strategy diagram.Strategy
	if opts.Auto != "" {
		if strategy, err = diagram.ParseStrategy(opts.Auto); err != nil {
			_ = formatter.Error(ErrCodeInvalid, err.Error())
			return WrapExitError(ExitCommandError, ErrCodeInvalid, err)
		}
	}
	var assignment diagram.Assignment
	if opts.Eval != "" {
		if assignment, err = diagram.ParseAssignment(opts.Eval); err != nil {
			return formatter.Fail(err)
		}
	}

	text = service.StripSpaces(text)
	options := []diagram.Option{diagram.KernelOptions(cfg.Kernel.Options()...)}
	if opts.Order != "" {
		options = append(options, diagram.WithOrder(order.Manual(formula.Variables(text), order.ParseManual(opts.Order))))
	}
	d, err := diagram.New(text, options...)
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Simplified expression: %s", d.Expression())
	if formatter.Verbose {
		formatter.VerboseLog("Simplifier nodes:")
		if err := d.WriteKernel(formatter.ErrWriter); err != nil {
			return formatter.Fail(err)
		}
	}

	var sift *OrderReport
	if strategy != "" {
		res, err := d.AutoOrder(kind, strategy, cfg.Sift.Options()...)
		if err != nil {
			return formatter.Fail(err)
		}
		formatter.VerboseLog("Order %s found after %d pass(es) and %d evaluation(s)",
			strings.Join(res.Order, " "), res.Passes, res.Evaluations)
		sift = newOrderReport(strategy, res)
	} else if _, err := d.Build(kind); err != nil {
		return formatter.Fail(err)
	}
	if assignment != nil {
		if err := d.Highlight(kind, assignment); err != nil {
			return formatter.Fail(err)
		}
	}

	if opts.Dot {
		return d.WriteDot(formatter.Writer, kind)
	}
	view, err := d.View(kind)
	if err != nil {
		return formatter.Fail(err)
	}
	result := BuildResult{
		Formula:    d.Formula(),
		Expression: d.Expression(),
		Type:       kind.String(),
		Order:      d.Order(),
		Size:       d.Size(kind),
		Models:     d.Models().String(),
		Sift:       sift,
		Graph:      view,
	}
	return formatter.Success(result, func(w io.Writer) error {
		return writeView(w, result, d.Highlighted())
	})
}

// writeView prints a header followed by a table of the nodes, sorted by
// level then by identifier.
func writeView(w io.Writer, r BuildResult, highlighted diagram.Assignment) error {
	fmt.Fprintf(w, "%s of %s\n", r.Type, r.Formula)
	fmt.Fprintf(w, "expression:  %s\n", r.Expression)
	fmt.Fprintf(w, "order:       %s\n", strings.Join(r.Order, " "))
	fmt.Fprintf(w, "nodes:       %d\n", r.Size)
	fmt.Fprintf(w, "models:      %s\n", r.Models)
	if highlighted != nil {
		fmt.Fprintf(w, "highlighted: %s\n", highlighted)
	}
	fmt.Fprintln(w)

	nodes := make([]diagram.NodeView, 0, len(r.Graph.Nodes))
	for _, n := range r.Graph.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Level != nodes[j].Level {
			return nodes[i].Level < nodes[j].Level
		}
		return nodes[i].ID < nodes[j].ID
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tVAR\tLEVEL\tSTEP\tLOW\tHIGH\tMARK\tEXPR")
	for _, n := range nodes {
		mark := ""
		if n.Highlight != nil && *n.Highlight {
			mark = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, orDash(n.Var), n.Level, stepString(n.Step), orDash(n.Low), orDash(n.High), mark, n.Expr)
	}
	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func stepString(step *int) string {
	if step == nil {
		return "-"
	}
	return fmt.Sprint(*step)
}
