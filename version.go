package lisp

// Version is reported by the CLI's version subcommand and REPL banner.
var Version = "0.1.0"

// BuildDate is overridden at release time via -ldflags "-X".
var BuildDate = "dev"
