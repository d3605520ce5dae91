package wordsource

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"

	"crosswarped.com/wordgrid/pkg/dict"
)

// LoadDictionary reads a packed dictionary from path, which may be gzip
// compressed. Any failure leaves no dictionary.
func LoadDictionary(path string) (d *dict.Dictionary, err error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, r.Close())
		if err != nil {
			d = nil
		}
	}()

	d, err = dict.Read(r)
	if err != nil {
		return nil, fmt.Errorf("loading dictionary %s: %w", path, err)
	}
	return d, nil
}

// SaveDictionary writes d to path, gzip compressing it if the name ends in
// ".gz". It returns the number of uncompressed bytes written. On failure the
// partially written file is removed.
func SaveDictionary(path string, d *dict.Dictionary) (int64, error) {
	n, err := saveFile(path, d.WriteTo)
	if err != nil {
		return n, fmt.Errorf("writing dictionary %s: %w", path, err)
	}
	return n, nil
}

// saveFile creates path, fills it with write and closes it, removing the file
// again if any step fails.
func saveFile(path string, write func(io.Writer) (int64, error)) (n int64, err error) {
	w, err := Create(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
		if err != nil {
			err = multierr.Append(err, os.Remove(path))
		}
	}()

	return write(w)
}
