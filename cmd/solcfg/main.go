package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/solcfg/internal/application"
	"github.com/eugenenazirov/solcfg/internal/config"
	"github.com/eugenenazirov/solcfg/internal/keypair"
	"github.com/eugenenazirov/solcfg/internal/logging"
)

var newLogger = logging.New

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "solcfg: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	kingpinApp := kingpin.New("solcfg", "Resolve the RPC endpoint and payer keypair from the Solana CLI config")
	configPath := kingpinApp.Flag("config", "Path to the Solana CLI config file (default ~/.config/solana/cli/config.yml)").String()
	fallbackRPCURL := kingpinApp.Flag("fallback-rpc-url", "RPC URL used when the config file has none").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	rpcCmd := kingpinApp.Command("rpc-url", "Print the JSON RPC URL")
	wsCmd := kingpinApp.Command("websocket-url", "Print the websocket URL")
	payerCmd := kingpinApp.Command("payer", "Print the payer address")
	keypairCmd := kingpinApp.Command("keypair", "Load a keypair file and print its address")
	keypairPath := keypairCmd.Arg("path", "Keypair file containing a JSON byte array").Required().String()
	newCmd := kingpinApp.Command("new", "Generate a keypair file")
	outfile := newCmd.Flag("outfile", "Where to write the keypair").Short('o').Required().String()
	force := newCmd.Flag("force", "Overwrite an existing keypair file").Bool()
	showCmd := kingpinApp.Command("show", "Print every resolved value")

	command, err := kingpinApp.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(&config.CLIOverrides{
		ConfigPath:     configPath,
		FallbackRPCURL: fallbackRPCURL,
		LogLevel:       logLevel,
	})
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := application.New(cfg, logger)

	switch command {
	case rpcCmd.FullCommand():
		_, err = fmt.Fprintln(stdout, app.RPCURL())
	case wsCmd.FullCommand():
		_, err = fmt.Fprintln(stdout, app.WebsocketURL())
	case payerCmd.FullCommand():
		_, err = fmt.Fprintln(stdout, app.Payer().Address())
	case keypairCmd.FullCommand():
		err = printKeypair(stdout, *keypairPath)
	case newCmd.FullCommand():
		err = writeKeypair(stdout, *outfile, *force, logger)
	case showCmd.FullCommand():
		err = printSummary(stdout, app.Summary())
	}
	return err
}

func printKeypair(w io.Writer, path string) error {
	kp, err := keypair.FromFile(path)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, kp.Address())
	return err
}

func writeKeypair(w io.Writer, path string, overwrite bool, logger *zap.Logger) error {
	kp := keypair.New()
	if err := keypair.WriteFile(path, kp, overwrite); err != nil {
		return err
	}
	logger.Info("wrote new keypair", zap.String("path", path), zap.String("address", kp.Address()))

	_, err := fmt.Fprintln(w, kp.Address())
	return err
}

func printSummary(w io.Writer, summary application.Summary) error {
	out, err := yaml.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	_, err = w.Write(out)
	return err
}
