package geneset

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/carbocation/pfx"
)

// FetchFunc retrieves the raw bytes behind a URL or path. It exists so tests
// can substitute canned GMT text for the live Enrichr endpoint.
type FetchFunc func(input string) ([]byte, error)

// FetchLibrary downloads a full gene set library in GMT format from the
// Enrichr geneSetLibrary endpoint and parses it. Each GMT line is
// name<TAB>description<TAB>gene1<TAB>gene2...; Enrichr leaves the
// description column empty.
func FetchLibrary(fetch FetchFunc, baseURL, libraryName string) (Library, error) {
	u := fmt.Sprintf("%s/geneSetLibrary?mode=text&libraryName=%s", strings.TrimSuffix(baseURL, "/"), url.QueryEscape(libraryName))

	raw, err := fetch(u)
	if err != nil {
		return nil, pfx.Err(err)
	}

	lib, err := ParseGMT(string(raw))
	if err != nil {
		return nil, pfx.Err(err)
	}

	if len(lib) == 0 {
		return nil, pfx.Err(fmt.Errorf("library %s: empty response", libraryName))
	}

	return lib, nil
}

// ParseGMT parses GMT text into a Library. Genes are trimmed; Enrichr
// sometimes suffixes symbols with ",1.0" weights, which are stripped.
func ParseGMT(text string) (Library, error) {
	lib := make(Library)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return nil, fmt.Errorf("malformed GMT line: %q", line)
		}

		name := strings.TrimSpace(fields[0])
		genes := make([]string, 0, len(fields)-2)
		for _, f := range fields[2:] {
			gene := strings.TrimSpace(f)
			if i := strings.Index(gene, ","); i >= 0 {
				gene = gene[:i]
			}
			if gene == "" {
				continue
			}
			genes = append(genes, gene)
		}

		if len(genes) > 0 {
			lib[name] = genes
		}
	}

	return lib, nil
}
