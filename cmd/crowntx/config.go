package main

import (
	"os"
	"path/filepath"

	"github.com/btcsuite/btcutil"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

const (
	decodeSubCmd     = "decode"
	roundtripSubCmd  = "roundtrip"
	encodeVoteSubCmd = "encode-vote"
	storeSubCmd      = "store"
	showSubCmd       = "show"
	listSubCmd       = "list"
)

const (
	defaultLogLevel     = "warn"
	defaultDBDirname    = "txdb"
	defaultCacheSizeMiB = 16
)

var defaultAppDir = btcutil.AppDataDir("crowntx", false)

type configFlags struct {
	LogDir   string `long:"logdir" description:"Directory to write log files to. Logs go to stderr only when empty"`
	LogLevel string `short:"d" long:"loglevel" description:"Logging level for all subsystems {trace, debug, info, warn, error, critical} -- You may also specify <subsystem>=<level>,<subsystem2>=<level>,... to set the log level for individual subsystems"`
}

type transactionArgs struct {
	Transaction string `positional-arg-name:"hex" description:"The transaction (encoded in hex). Read from stdin when omitted"`
}

type decodeConfig struct {
	Dump bool            `long:"dump" description:"Dump the decoded transaction structure instead of a summary"`
	Args transactionArgs `positional-args:"yes"`
}

type roundtripConfig struct {
	Args transactionArgs `positional-args:"yes"`
}

type encodeVoteConfig struct {
	Version      uint16   `long:"version" description:"Version of the special transaction"`
	Voter        string   `long:"voter" description:"The outpoint identifying the voter, as txid:index" required:"true"`
	ElectionCode int64    `long:"election" description:"The election code" required:"true"`
	Vote         int64    `long:"vote" description:"The vote: 1 for yes, 2 for no, 3 for abstain" required:"true"`
	Candidate    int64    `long:"candidate" description:"The candidate voted for"`
	KeyID        string   `long:"keyid" description:"The key id of the signing key (encoded in hex)"`
	PublicKey    string   `long:"pubkey" description:"The serialized public key of the signing key (encoded in hex), instead of --keyid"`
	Signature    string   `long:"signature" description:"The vote signature (encoded in hex)"`
	Inputs       []string `long:"input" description:"An outpoint to spend, as txid:index. May be repeated"`
	LockTime     uint32   `long:"locktime" description:"The transaction lock time"`
}

type DBFlags struct {
	DBPath string `long:"dbpath" description:"Directory of the transaction database"`
}

type storeConfig struct {
	DBFlags
	Args transactionArgs `positional-args:"yes"`
}

type showConfig struct {
	DBFlags
	Dump bool `long:"dump" description:"Dump the decoded transaction structure instead of a summary"`
	Args struct {
		Hash string `positional-arg-name:"txid" required:"yes"`
	} `positional-args:"yes"`
}

type listConfig struct {
	DBFlags
}

func (f *DBFlags) resolvedDBPath() string {
	if f.DBPath == "" {
		return filepath.Join(defaultAppDir, defaultDBDirname)
	}
	return f.DBPath
}

func parseCommandLine() (subCommand string, cfg *configFlags, subConfig interface{}) {
	cfg = &configFlags{LogLevel: defaultLogLevel}
	parser := flags.NewParser(cfg, flags.PrintErrors|flags.HelpFlag)

	decodeConf := &decodeConfig{}
	parser.AddCommand(decodeSubCmd, "Decode a transaction",
		"Decode a transaction and print a summary of its fields", decodeConf)

	roundtripConf := &roundtripConfig{}
	parser.AddCommand(roundtripSubCmd, "Check that a transaction re-encodes identically",
		"Decode a transaction, encode it again and compare the two encodings byte for byte", roundtripConf)

	encodeVoteConf := &encodeVoteConfig{Version: 3}
	parser.AddCommand(encodeVoteSubCmd, "Build a governance vote transaction",
		"Build a governance vote special transaction and print its encoding in hex", encodeVoteConf)

	storeConf := &storeConfig{}
	parser.AddCommand(storeSubCmd, "Store a transaction",
		"Store a transaction in the transaction database under its hash", storeConf)

	showConf := &showConfig{}
	parser.AddCommand(showSubCmd, "Show a stored transaction",
		"Decode and print a transaction from the transaction database", showConf)

	listConf := &listConfig{}
	parser.AddCommand(listSubCmd, "List stored transactions",
		"List the hash, version and type of every stored transaction", listConf)

	_, err := parser.Parse()
	if err != nil {
		var flagsErr *flags.Error
		if ok := errors.As(err, &flagsErr); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	switch parser.Command.Active.Name {
	case decodeSubCmd:
		subConfig = decodeConf
	case roundtripSubCmd:
		subConfig = roundtripConf
	case encodeVoteSubCmd:
		if (encodeVoteConf.KeyID == "") == (encodeVoteConf.PublicKey == "") {
			printErrorAndExit(errors.New("exactly one of --keyid or --pubkey must be specified"))
		}
		subConfig = encodeVoteConf
	case storeSubCmd:
		subConfig = storeConf
	case showSubCmd:
		subConfig = showConf
	case listSubCmd:
		subConfig = listConf
	}
	return parser.Command.Active.Name, cfg, subConfig
}
