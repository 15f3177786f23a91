// Zerus string CLI - code point inspection and transcoding from the shell
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/zerustech/string/catalog"
	"github.com/zerustech/string/codespace"
	"github.com/zerustech/string/config"
	"github.com/zerustech/string/inspect"
	"github.com/zerustech/string/server"
)

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	jsonOut := flag.Bool("json", false, "Print inspection reports as JSON")
	countsMode := flag.Bool("counts", false, "Print the codespace counts")
	planesMode := flag.Bool("planes", false, "List the Unicode planes")
	noncharsMode := flag.Bool("noncharacters", false, "List the noncharacter code points")
	utf8Only := flag.Bool("utf8", false, "Print only the UTF-8 hex of each code point")
	utf16Only := flag.Bool("utf16", false, "Print only the UTF-16 hex of each code point")
	exportPath := flag.String("export", "", "Export the codespace catalog to a database file")
	exportDriver := flag.String("driver", "", "Catalog database driver, sqlite or duckdb (used with --export)")
	serveMode := flag.Bool("serve", false, "Start the RPC server (Connect HTTP with JSON and CBOR)")
	listenAddr := flag.String("listen", "", "RPC server listen address (used with --serve)")
	grpcAddr := flag.String("grpc-listen", "", "gRPC bridge listen address (used with --serve)")
	lspMode := flag.Bool("lsp", false, "Start the language server on stdio")
	remoteTarget := flag.String("remote", "", "Transcode on a remote gRPC bridge at host:port")
	noConfig := flag.Bool("no-config", false, "Skip zerus.toml discovery")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: zstr [options] [code points...]\n\n")
		fmt.Fprintf(os.Stderr, "Inspects Unicode code points given as U+XXXX, 0xXXXX, decimal, or a literal character.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  zstr U+20AC              # Inspect the euro sign\n")
		fmt.Fprintf(os.Stderr, "  zstr -utf8 0x10437       # Print f09090b7\n")
		fmt.Fprintf(os.Stderr, "  zstr -planes             # List the 17 planes\n")
		fmt.Fprintf(os.Stderr, "  zstr -export unicode.db  # Export the catalog to SQLite\n")
		fmt.Fprintf(os.Stderr, "  zstr -i                  # Start REPL\n")
		fmt.Fprintf(os.Stderr, "\nServer:\n")
		fmt.Fprintf(os.Stderr, "  zstr --serve                          # Serve Connect RPC on :4567\n")
		fmt.Fprintf(os.Stderr, "  zstr --serve --grpc-listen :4568      # Also serve the gRPC bridge\n")
		fmt.Fprintf(os.Stderr, "  zstr --remote localhost:4568 U+20AC   # Transcode on a remote bridge\n")
	}
	flag.Parse()

	cfg := loadConfig(*noConfig, *verbose)
	args := flag.Args()

	// Print a reference table if requested
	if *countsMode {
		fmt.Print(renderCounts())
		os.Exit(0)
	}
	if *planesMode {
		fmt.Print(renderPlanes())
		os.Exit(0)
	}
	if *noncharsMode {
		fmt.Print(renderNoncharacters())
		os.Exit(0)
	}

	// Export the catalog if requested
	if *exportPath != "" {
		driver := *exportDriver
		if driver == "" {
			driver = cfg.Catalog.Driver
		}
		if err := runExport(driver, *exportPath, *verbose); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Start the RPC server if requested
	if *serveMode {
		runServe(cfg, *listenAddr, *grpcAddr, *verbose)
		os.Exit(0)
	}

	// Start the language server if requested
	if *lspMode {
		commonlog.Configure(cfg.Log.Verbosity, nil)
		if err := server.NewLSP().Run(); err != nil {
			fmt.Fprintf(os.Stderr, "LSP error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Transcode against a remote bridge if requested
	if *remoteTarget != "" {
		if err := runRemote(*remoteTarget, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Inspect any code points given on the command line
	if len(args) > 0 {
		for _, arg := range args {
			if err := inspectArg(arg, *utf8Only, *utf16Only, *jsonOut); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
	}

	// Start REPL if requested or if no arguments given
	if *interactive || len(args) == 0 {
		runREPL(*jsonOut)
	}
}

// loadConfig finds zerus.toml by walking up from the working directory.
// Built-in defaults apply when discovery is skipped or finds nothing.
func loadConfig(skip, verbose bool) *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	if !skip {
		cfg, err := config.FindAndLoad(cwd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else if cfg != nil {
			if verbose {
				fmt.Printf("Loaded config from %s\n", cfg.Dir)
			}
			return cfg
		}
	}

	return config.Default(cwd)
}

// inspectArg parses one code point token and prints the requested form.
func inspectArg(arg string, utf8Only, utf16Only, jsonOut bool) error {
	cp, err := inspect.ParseNotation(arg)
	if err != nil {
		return err
	}

	if utf8Only {
		hex, err := codespace.ConvertToUTF8(cp)
		if err != nil {
			return err
		}
		fmt.Println(hex)
		return nil
	}
	if utf16Only {
		fmt.Println(codespace.ConvertToUTF16(cp))
		return nil
	}

	report, err := inspect.Inspect(cp)
	if err != nil {
		return err
	}
	if jsonOut {
		out, err := renderReportJSON(report)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	}
	fmt.Print(renderReport(report))
	return nil
}

// runServe starts the Connect server, plus the gRPC bridge when a bridge
// address is given or configured.
func runServe(cfg *config.Config, listen, grpcListen string, verbose bool) {
	if listen == "" {
		listen = cfg.Server.Listen
	}
	if grpcListen == "" {
		grpcListen = cfg.Server.GRPCListen
	}

	var opts []server.ServerOption
	if store := openServeCatalog(cfg, verbose); store != nil {
		defer store.Close()
		opts = append(opts, server.WithCatalog(store))
	}

	if grpcListen != "" {
		bridge, err := server.NewGRPCBridge()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer bridge.Stop()
		go func() {
			if err := bridge.ListenAndServe(grpcListen); err != nil {
				fmt.Fprintf(os.Stderr, "gRPC bridge error: %v\n", err)
				os.Exit(1)
			}
		}()
	}

	srv := server.New(opts...)
	defer srv.Stop()
	if err := srv.ListenAndServe(listen); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// openServeCatalog opens the catalog database when one has been exported.
// The server answers from the built-in tables otherwise.
func openServeCatalog(cfg *config.Config, verbose bool) *catalog.Store {
	path := cfg.CatalogPath()
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	store, err := catalog.Open(cfg.Catalog.Driver, path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open catalog %s: %v\n", path, err)
		return nil
	}
	if verbose {
		fmt.Printf("Serving plane data from %s\n", path)
	}
	return store
}

// runREPL starts an interactive inspection loop
func runREPL(jsonOut bool) {
	fmt.Println("Zerus string REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Printf("Codespace: %d code points in %d planes\n",
		codespace.NumberOfCodePoints(), codespace.NumPlanes)
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print(">> ")

		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			continue
		}

		// Handle exit
		if line == "exit" || line == "quit" {
			break
		}

		// Handle REPL commands (start with ':')
		if strings.HasPrefix(line, ":") {
			handleREPLCommand(line)
			continue
		}

		if err := inspectArg(line, false, false, jsonOut); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}

	fmt.Println()
}

// handleREPLCommand handles REPL meta-commands
func handleREPLCommand(cmd string) {
	switch cmd {
	case ":help", ":h", ":?":
		fmt.Println("REPL Commands:")
		fmt.Println("  :help, :h, :?     Show this help")
		fmt.Println("  :counts           Show the codespace counts")
		fmt.Println("  :planes           List the 17 planes")
		fmt.Println("  :noncharacters    List the 66 noncharacters")
		fmt.Println("  exit, quit        Exit REPL")
	case ":counts":
		fmt.Print(renderCounts())
	case ":planes":
		fmt.Print(renderPlanes())
	case ":noncharacters":
		fmt.Print(renderNoncharacters())
	default:
		fmt.Printf("Unknown command: %s (type :help for commands)\n", cmd)
	}
}
