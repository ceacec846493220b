package orthology

import (
	"log"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/cellfate/apoptosisatlas/mygene"
	"github.com/samber/lo"
)

// Build queries MyGene.info homologene clusters in both directions and
// assembles the ortholog pair list: human symbols looked up for mouse
// cluster members, mouse symbols looked up for human cluster members, then
// all target Entrez IDs resolved back to symbols.
func Build(client *mygene.Client, humanSymbols, mouseSymbols []string) ([]*Pair, error) {
	humanList := lo.Uniq(humanSymbols)
	mouseList := lo.Uniq(mouseSymbols)
	sort.Strings(humanList)
	sort.Strings(mouseList)

	log.Println("Building orthology mapping for", len(humanList), "human and", len(mouseList), "mouse genes")

	humanToMouseIDs, mouseEntrez, err := fetchHomologene(client, humanList, mygene.TaxidHuman, mygene.TaxidMouse)
	if err != nil {
		return nil, pfx.Err(err)
	}

	mouseToHumanIDs, humanEntrez, err := fetchHomologene(client, mouseList, mygene.TaxidMouse, mygene.TaxidHuman)
	if err != nil {
		return nil, pfx.Err(err)
	}

	mouseSymbolByID, err := resolveSymbols(client, mouseEntrez, mygene.TaxidMouse)
	if err != nil {
		return nil, pfx.Err(err)
	}

	humanSymbolByID, err := resolveSymbols(client, humanEntrez, mygene.TaxidHuman)
	if err != nil {
		return nil, pfx.Err(err)
	}

	pairs := make([]*Pair, 0)

	for _, humanSym := range sortedKeys(humanToMouseIDs) {
		for _, mouseID := range humanToMouseIDs[humanSym] {
			mouseSym, exists := mouseSymbolByID[mouseID]
			if !exists {
				continue
			}

			id := mouseID
			pairs = append(pairs, &Pair{
				HumanSymbol:   NormalizeHuman(humanSym),
				MouseSymbol:   mouseSym,
				MouseEntrez:   &id,
				MappingSource: "human_to_mouse",
			})
		}
	}

	for _, mouseSym := range sortedKeys(mouseToHumanIDs) {
		for _, humanID := range mouseToHumanIDs[mouseSym] {
			humanSym, exists := humanSymbolByID[humanID]
			if !exists {
				continue
			}

			id := humanID
			pairs = append(pairs, &Pair{
				HumanSymbol:   NormalizeHuman(humanSym),
				MouseSymbol:   mouseSym,
				HumanEntrez:   &id,
				MappingSource: "mouse_to_human",
			})
		}
	}

	deduped := Dedupe(pairs)
	log.Println("Assembled", len(deduped), "ortholog pairs after dedupe (from", len(pairs), "raw)")

	return deduped, nil
}

// fetchHomologene maps each source symbol to the target-taxid Entrez IDs in
// its homologene cluster, and collects the union of those IDs.
func fetchHomologene(client *mygene.Client, symbols []string, sourceTaxid, targetTaxid int64) (map[string][]int64, []int64, error) {
	if len(symbols) == 0 {
		return map[string][]int64{}, nil, nil
	}

	hits, err := client.Querymany(symbols, "symbol,homologene", sourceTaxid)
	if err != nil {
		return nil, nil, pfx.Err(err)
	}

	orthologs := make(map[string][]int64)
	allIDs := make([]int64, 0)

	for _, hit := range hits {
		if hit.NotFound {
			continue
		}

		sourceSym := hit.Symbol
		if sourceSym == "" {
			sourceSym = hit.Query
		}

		targetIDs := hit.Homologene.TargetEntrez(targetTaxid)
		if len(targetIDs) == 0 {
			continue
		}

		orthologs[sourceSym] = append(orthologs[sourceSym], targetIDs...)
		allIDs = append(allIDs, targetIDs...)
	}

	log.Printf("Found orthologs for %d/%d genes (taxid %d -> %d)\n", len(orthologs), len(symbols), sourceTaxid, targetTaxid)

	return orthologs, lo.Uniq(allIDs), nil
}

func resolveSymbols(client *mygene.Client, entrezIDs []int64, taxid int64) (map[int64]string, error) {
	if len(entrezIDs) == 0 {
		return map[int64]string{}, nil
	}

	sort.Slice(entrezIDs, func(i, j int) bool { return entrezIDs[i] < entrezIDs[j] })

	hits, err := client.GetGenes(entrezIDs, "symbol", taxid)
	if err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[int64]string)
	for _, hit := range hits {
		if hit.NotFound || hit.Symbol == "" {
			continue
		}

		id := parseEntrez(hit.Query, hit.ID)
		if id != 0 {
			out[id] = hit.Symbol
		}
	}

	log.Printf("Resolved %d/%d Entrez IDs to symbols (taxid %d)\n", len(out), len(entrezIDs), taxid)

	return out, nil
}

func sortedKeys(m map[string][]int64) []string {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return keys
}
