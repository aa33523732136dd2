package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-runewidth"

	"github.com/granadev/grana/ledger"
	"github.com/granadev/grana/loader"
	"github.com/granadev/grana/parser"
)

type ReportCmd struct {
	File string `help:"Ledger input filename (use '-' for stdin)." arg:"" optional:"" default:"-"`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	src, err := loader.Load(cmd.File)
	if err != nil {
		return err
	}

	ops, lexErrs, parseErrs := parser.ParseBytes(src.Contents)
	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		renderer := NewErrorRenderer(src.Contents)

		errs := make([]error, 0, len(lexErrs)+len(parseErrs))
		for _, e := range lexErrs {
			errs = append(errs, e)
		}
		for _, e := range parseErrs {
			errs = append(errs, e)
		}

		_, _ = fmt.Fprintln(ctx.Stderr, renderer.RenderAll(errs))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d syntax error(s) in %s", len(errs), src.Filename))
		os.Exit(1)
	}

	totals := ledger.Build(ops).Totals()

	if len(totals.ByAccount) == 0 {
		printInfof(ctx.Stdout, "No transactions in %s", src.Filename)
		return nil
	}

	width := 0
	for _, at := range totals.ByAccount {
		if w := runewidth.StringWidth(at.Account.String()); w > width {
			width = w
		}
	}
	for _, kt := range totals.ByKind {
		if w := runewidth.StringWidth(kt.Kind.String()); w > width {
			width = w
		}
	}

	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render("Balance per account"))
	for _, at := range totals.ByAccount {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s  %12s  %12s\n",
			runewidth.FillRight(at.Account.String(), width),
			at.Gross.String(),
			at.Signed.String(),
		)
	}

	_, _ = fmt.Fprintln(ctx.Stdout)
	_, _ = fmt.Fprintln(ctx.Stdout, headerStyle.Render("Balance per account kind"))
	for _, kt := range totals.ByKind {
		_, _ = fmt.Fprintf(ctx.Stdout, "  %s  %12s  %12s\n",
			runewidth.FillRight(kt.Kind.String(), width),
			kt.Gross.String(),
			kt.Signed.String(),
		)
	}

	return nil
}
