package apoptosisatlas

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/carbocation/pfx"
)

// OpenFileOrURL consumes a local path or an http(s) URL and returns its
// contents.
func OpenFileOrURL(input string) ([]byte, error) {
	var f io.ReadCloser

	if strings.HasPrefix(input, "http") {
		resp, err := http.Get(input)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, pfx.Err(fmt.Errorf("%s: unexpected status %s", input, resp.Status))
		}

		f = resp.Body
	} else {
		file, err := os.Open(input)
		if err != nil {
			return nil, pfx.Err(err)
		}
		defer file.Close()

		f = file
	}

	return io.ReadAll(f)
}
