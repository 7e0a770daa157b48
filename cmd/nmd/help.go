package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nmd <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  compile    Compile a dossier to HTML")
	fmt.Fprintln(w, "  init       Create nmd.yaml for a directory of documents")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'nmd help <command>' for details on a specific command.")
}

// printCompileUsage prints usage for the compile command.
func printCompileUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nmd compile [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compile the dossier in dir (default: current directory) to HTML.")
	fmt.Fprintln(w, "Documents listed in nmd.yaml resolve against dir.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <path>        Dossier file (default: <dir>/nmd.yaml)")
	fmt.Fprintln(w, "  -o, --output <path>        Output HTML file, - for stdout")
	fmt.Fprintln(w, "      --code-css <path>      Also write the code highlighting stylesheet")
	fmt.Fprintln(w, "      --only <names>         Compile only these documents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Compilation:")
	fmt.Fprintln(w, "  -p, --parallel             Parse in parallel")
	fmt.Fprintln(w, "      --no-parallel          Parse sequentially")
	fmt.Fprintln(w, "  -w, --workers <n>          Workers per fan-out (0 = auto)")
	fmt.Fprintln(w, "      --fast-draft           Skip highlighting and image loading")
	fmt.Fprintln(w, "      --lenient              Log malformed images, lists and quotes")
	fmt.Fprintln(w, "      --strict-references    Fail on unknown references")
	fmt.Fprintln(w, "      --compress-images      Recompress embedded images losslessly")
	fmt.Fprintln(w, "      --no-embed             Link local images instead of embedding")
	fmt.Fprintln(w, "      --embed-remote         Request embedding of remote images")
	fmt.Fprintln(w, "      --image-justify <s>    Multi-image layout")
	fmt.Fprintln(w, "      --code-style <s>       Chroma style for code blocks")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Table of Contents:")
	fmt.Fprintln(w, "      --toc                  Generate a table of contents")
	fmt.Fprintln(w, "      --toc-title <s>        Heading text")
	fmt.Fprintln(w, "      --toc-min-depth <n>    Min heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-max-depth <n>    Max heading depth (1-6)")
	fmt.Fprintln(w, "      --toc-numbered         Number entries")
	fmt.Fprintln(w, "      --no-toc               Disable table of contents")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug logs and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  NMD_CONFIG, NMD_OUTPUT, NMD_CODE_STYLE, NMD_WORKERS, NMD_FAST_DRAFT")
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: nmd init [dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Create nmd.yaml listing the .nmd and .md files of dir.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -c, --config <path>        Write to this path instead")
	fmt.Fprintln(w, "      --name <s>             Dossier name (default: directory name)")
	fmt.Fprintln(w, "  -f, --force                Overwrite an existing file")
	fmt.Fprintln(w, "  -q, --quiet                Print nothing on success")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "compile":
		printCompileUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: nmd version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: nmd help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
