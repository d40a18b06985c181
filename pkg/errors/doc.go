// Package errors defines the error taxonomy and exit codes for hubfilter.
//
// Two error kinds are fatal: ConfigError (malformed rule grammar, bad regex,
// invalid keep_latest_n) aborts before any network activity with exit code 3,
// and FetchError (non-success HTTP response at any pagination step) aborts
// the run with exit code 2. Unknown software references are not errors; they
// are reported through pkg/warnings after all outputs are written.
//
// Commands translate errors to process exit codes via GetExitCode:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
package errors
