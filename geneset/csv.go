package geneset

import (
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteRecords saves raw_data rows to a CSV file, creating or truncating it.
func WriteRecords(path string, records []*Record) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&records, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadRecords loads raw_data rows from a CSV file or URL.
func ReadRecords(fetch FetchFunc, path string) ([]*Record, error) {
	raw, err := fetch(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	records := []*Record{}
	if err := gocsv.UnmarshalBytes(raw, &records); err != nil {
		return nil, pfx.Err(err)
	}

	return records, nil
}
