package main

import (
	"fmt"
	"os"

	"github.com/crownplatform/crownwire/infrastructure/logger"
	"github.com/pkg/errors"
)

func main() {
	subCmd, cfg, config := parseCommandLine()

	err := initLog(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		printErrorAndExit(errors.Wrap(err, "error initializing the logger"))
	}
	defer logger.BackendLog.Close()

	switch subCmd {
	case decodeSubCmd:
		err = decode(config.(*decodeConfig))
	case roundtripSubCmd:
		err = roundtrip(config.(*roundtripConfig))
	case encodeVoteSubCmd:
		err = encodeVote(config.(*encodeVoteConfig))
	case storeSubCmd:
		err = store(config.(*storeConfig))
	case showSubCmd:
		err = show(config.(*showConfig))
	case listSubCmd:
		err = list(config.(*listConfig))
	default:
		err = errors.Errorf("Unknown sub-command '%s'\n", subCmd)
	}

	if err != nil {
		logger.BackendLog.Close()
		printErrorAndExit(err)
	}
}

func printErrorAndExit(err error) {
	fmt.Fprintf(os.Stderr, "%s\n", err)
	os.Exit(1)
}
