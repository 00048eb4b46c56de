package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/panyam/owl/decl"
)

// readSource returns the contents of path, or of in when path is "-".
func readSource(path string, in io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func printValue(out io.Writer, v decl.Value) {
	fmt.Fprintln(out, decl.PPrint(v))
}
