package cli

var (
	Version   = ""
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
}

type Commands struct {
	Globals

	Check  CheckCmd  `cmd:"" help:"Compile a ledger file and run its validators."`
	Report ReportCmd `cmd:"" help:"Summarize balances per account and account kind."`
	Init   InitCmd   `cmd:"" help:"Create a starter ledger file."`
}
