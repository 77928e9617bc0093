package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iov-one/coledger"
	"github.com/iov-one/coledger/cmd/coledgerd/app"
	"github.com/iov-one/coledger/commands"
	"github.com/iov-one/coledger/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	flagHome = "home"
	varHome  *string

	flagLogLevel = "log_level"
	varLogLevel  *string
)

func init() {
	defaultHome := filepath.Join(os.ExpandEnv("$HOME"), ".coledger")
	varHome = flag.String(flagHome, defaultHome, "directory to store files under")
	varLogLevel = flag.String(flagLogLevel, "info", "minimal log level: debug, info or error")

	flag.CommandLine.Usage = helpMessage
}

func helpMessage() {
	fmt.Println("coledgerd")
	fmt.Println("        Shared account ledger node")
	fmt.Println("")
	fmt.Println("help    Print this message")
	fmt.Println("init    Initialize app state in genesis file")
	fmt.Println("start   Run the abci server")
	fmt.Println("testgen Write example encodings of messages")
	fmt.Println("version Print the app version")
	fmt.Println(`
  -home string
        directory to store files under (default "$HOME/.coledger")
  -log_level string
        minimal log level: debug, info or error (default "info")`)
}

func main() {
	flag.Parse()

	logger, err := newLogger(*varLogLevel)
	if err != nil {
		fmt.Printf("Error: %s\n", err)
		os.Exit(1)
	}

	if flag.NArg() == 0 {
		fmt.Println("Missing command:")
		helpMessage()
		os.Exit(1)
	}

	cmd := flag.Arg(0)
	rest := flag.Args()[1:]

	switch cmd {
	case "help":
		helpMessage()
	case "init":
		err = server.InitCmd(app.GenInitOptions, logger, *varHome, rest)
	case "start":
		err = server.StartCmd(app.GenerateApp, logger, *varHome, rest)
	case "testgen":
		err = commands.TestGenCmd(app.TxCodec, app.Examples(), rest)
	case "version":
		fmt.Println(coledger.Version())
	default:
		err = fmt.Errorf("unknown command: %s", cmd)
	}

	if err != nil {
		fmt.Printf("Error: %+v\n\n", err)
		helpMessage()
		os.Exit(1)
	}
}

func newLogger(level string) (log.Logger, error) {
	logger := log.NewTMLogger(log.NewSyncWriter(os.Stdout)).With("module", "coledger")
	opt, err := log.AllowLevel(level)
	if err != nil {
		return nil, err
	}
	return log.NewFilter(logger, opt), nil
}
