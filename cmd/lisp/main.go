package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	// Adjust this to your actual module path
	lisp "github.com/MartinAskestad/LISP"
)

const (
	appName     = "lisp"
	historyFile = ".lisp_history"
	promptMain  = "λ "
	promptCont  = "... "
	srcExt      = ".lisp"
)

var banner = fmt.Sprintf("LISP %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type quit to exit.", lisp.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "fmt":
		os.Exit(cmdFmt(os.Args[2:]))
	case "version":
		fmt.Println(lisp.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`LISP %s (built %s)

Usage:
  %s run <file%s>                    Run a program and print its result.
  %s repl                            Start the REPL.
  %s fmt [-w] [--check] [path ...]   Format file(s) by path prefix (default ".")
  %s version                         Print the compiled version

`, lisp.Version, lisp.BuildDate, appName, srcExt, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file%s>\n", appName, srcExt)
		return 2
	}
	file := args[0]

	data, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}
	src := string(data)

	ip := lisp.NewInterpreter()
	v, eerr := lisp.Evaluate(src, lisp.NewEnv(ip.Global))
	if eerr != nil {
		fmt.Fprintln(os.Stderr, lisp.WrapErrorWithName(eerr, file, src).Error())
		return 1
	}
	fmt.Println(lisp.FormatValue(v))
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := lisp.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		input := strings.TrimSpace(code)
		if input == "quit" {
			return 0
		}
		if input == "" {
			continue
		}

		// One bad line reports and the loop continues; the session's
		// environment keeps whatever bindings ran before the failure.
		v, err := ip.EvalPersistentSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(lisp.FormatValue(v)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readByParseProbe accumulates lines until the buffer parses, or fails with
// an error more input cannot repair. An unclosed "(let result (+ 1" keeps
// prompting with cont; a stray ")" returns at once and surfaces on eval.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := lisp.Parse(src); perr == nil || !lisp.IsIncomplete(perr) {
			return src, true
		}
	}
}

// -----------------------------------------------------------------------------
// fmt
// -----------------------------------------------------------------------------

func cmdFmt(args []string) int {
	fs := flag.NewFlagSet("fmt", flag.ContinueOnError)
	write := fs.Bool("w", false, "write result back to the source file")
	check := fs.Bool("check", false, "check format; exit 1 if any file would change")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	paths := fs.Args()
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectSourceFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}

	bad := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
			return 1
		}
		src := string(data)

		formatted, perr := lisp.Pretty(src)
		if perr != nil {
			fmt.Fprintf(os.Stderr, "%s: %s:\n%s\n", appName, file, perr.Error())
			return 1
		}
		formatted += "\n"

		switch {
		case *check:
			if formatted != src {
				fmt.Println(file)
				bad++
			}
		case *write:
			if formatted != src {
				if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
					fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, file, err)
					return 1
				}
			}
		default:
			fmt.Print(formatted)
		}
	}

	if bad > 0 {
		return 1
	}
	return 0
}

// collectSourceFiles expands each path: directories are walked for source
// files by extension, explicit files are taken as such.
func collectSourceFiles(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, srcExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
