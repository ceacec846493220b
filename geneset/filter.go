package geneset

import "strings"

// apoptotic reports whether a gene set name refers to the apoptotic process.
func apoptotic(name string) bool {
	upper := strings.ToUpper(name)
	return strings.Contains(upper, "APOPTOSIS") || strings.Contains(upper, "APOPTOTIC")
}

// SelectDirectionalGO splits a GO Biological Process library into
// pro-apoptotic (positive regulation) and anti-apoptotic (negative
// regulation) gene sets by set-name substring. Sets that mention apoptosis
// without a regulation direction are ignored here; the general pathway
// sources cover them.
func SelectDirectionalGO(lib Library) (pro, anti Library) {
	pro = make(Library)
	anti = make(Library)

	for name, genes := range lib {
		if !apoptotic(name) {
			continue
		}

		upper := strings.ToUpper(name)
		switch {
		case strings.Contains(upper, "POSITIVE"):
			pro[name] = genes
		case strings.Contains(upper, "NEGATIVE"):
			anti[name] = genes
		}
	}

	return pro, anti
}

// SelectApoptosis returns the gene sets whose name mentions apoptosis, for
// the pathway libraries (KEGG, Reactome, Hallmark) that carry a single
// undirected apoptosis set each.
func SelectApoptosis(lib Library) Library {
	out := make(Library)

	for name, genes := range lib {
		if apoptotic(name) {
			out[name] = genes
		}
	}

	return out
}
