package main

import (
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readTransactionHex returns the decoded bytes of arg, or of stdin when arg
// is empty and stdin is not a terminal.
func readTransactionHex(arg string) ([]byte, error) {
	if arg != "" {
		return decodeHex(arg)
	}
	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("no transaction given, pass it as an argument or pipe it to stdin")
	}
	return readHex(os.Stdin)
}

func readHex(r io.Reader) ([]byte, error) {
	input, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "error reading the transaction from stdin")
	}
	return decodeHex(string(input))
}

func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return nil, errors.New("the transaction is empty")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "the transaction is not valid hex")
	}
	return b, nil
}
