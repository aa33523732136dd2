package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
)

const starterLedger = `// Starter ledger.
//
// Accounts are opened before use, movements read as
// '<' debit and '>' credit.

2026-01-01 open assets:cash BRL
2026-01-01 open equity:opening_balances BRL

2026-01-01 transaction "opening balance"
    < 500 BRL assets:cash
    > 500 BRL equity:opening_balances
`

type InitCmd struct {
	File  string `help:"Ledger filename to create." arg:"" optional:"" default:"main.grana"`
	Force bool   `help:"Overwrite the file if it already exists (no confirmation prompt)." short:"f"`
}

func (cmd *InitCmd) Run(ctx *kong.Context, globals *Globals) error {
	ledgerFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if _, err := os.Stat(ledgerFile); err == nil {
		shouldOverwrite := cmd.Force

		if !shouldOverwrite {
			confirmed, err := promptYesNo(fmt.Sprintf("File %q already exists. Overwrite it?", ledgerFile))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			shouldOverwrite = confirmed
		}

		if !shouldOverwrite {
			return fmt.Errorf("file already exists: %s", ledgerFile)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	parentDir := filepath.Dir(ledgerFile)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	if err := os.WriteFile(ledgerFile, []byte(starterLedger), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	printInfof(ctx.Stdout, "Created starter ledger: %s", pathStyle.Render(ledgerFile))
	printSuccess(ctx.Stdout, "Run 'grana check' to compile it")

	return nil
}
