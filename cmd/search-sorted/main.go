// Licensed to the Apache Software Foundation (ASF) under one
// or more contributor license agreements.  See the NOTICE file
// distributed with this work for additional information
// regarding copyright ownership.  The ASF licenses this file
// to you under the Apache License, Version 2.0 (the
// "License"); you may not use this file except in compliance
// with the License.  You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command search-sorted finds, for every row of a keys file, the row at
// which it would be inserted into a sorted haystack file.
//
// Both files may be Arrow IPC (file or stream), CSV with a header row, or
// Parquet. The columns named with --on must exist in both files and the
// haystack must be sorted by them, ascending unless listed in --descending.
//
// Examples:
//
//	$> search-sorted --on=ts events.parquet probes.csv
//	0
//	17
//	17
//
//	$> search-sorted --on=user,ts --descending=ts --json events.arrow probes.arrow
//	{"indices":[3,3,9]}
package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Asrst/Daft/searchsorted"
	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/compute"
	"github.com/apache/arrow/go/v17/arrow/csv"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"
	"github.com/docopt/docopt-go"
	"github.com/goccy/go-json"
)

const usage = `Search Sorted.
Usage:
  search-sorted -h | --help
  search-sorted [--descending=COLS] [--workers=N] [--json] --on=COLS <haystack> <keys>
Options:
  -h --help           Show this screen.
  --on=COLS           Comma delimited key columns, present in both files.
  --descending=COLS   Comma delimited subset of --on sorted descending [default: ].
  --workers=N         Workers for single column searches [default: 1].
  --json              Print a JSON document instead of one index per line.`

type config struct {
	Help       bool
	On         string
	Descending string
	Workers    string
	JSON       bool   `docopt:"--json"`
	Haystack   string `docopt:"<haystack>"`
	Keys       string `docopt:"<keys>"`
}

func main() {
	log.SetPrefix("search-sorted: ")
	log.SetFlags(0)

	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		log.Fatal(err)
	}
	var cfg config
	if err := opts.Bind(&cfg); err != nil {
		log.Fatal(err)
	}

	if err := run(os.Stdout, cfg); err != nil {
		log.Fatal(err)
	}
}

func run(w io.Writer, cfg config) error {
	names := splitList(cfg.On)
	if len(names) == 0 {
		return fmt.Errorf("--on needs at least one column")
	}
	reversed := make([]bool, len(names))
	for _, d := range splitList(cfg.Descending) {
		i := indexOf(names, d)
		if i < 0 {
			return fmt.Errorf("--descending column %q is not listed in --on", d)
		}
		reversed[i] = true
	}
	workers, err := strconv.Atoi(cfg.Workers)
	if err != nil || workers < 1 {
		return fmt.Errorf("--workers needs a positive integer, got %q", cfg.Workers)
	}

	mem := memory.NewGoAllocator()
	ctx := compute.WithAllocator(context.Background(), mem)

	haystack, err := readColumns(ctx, mem, cfg.Haystack, names)
	if err != nil {
		return fmt.Errorf("haystack: %w", err)
	}
	defer releaseAll(haystack)
	keys, err := readColumns(ctx, mem, cfg.Keys, names)
	if err != nil {
		return fmt.Errorf("keys: %w", err)
	}
	defer releaseAll(keys)

	var idx *array.Uint64
	if len(names) == 1 {
		idx, err = searchsorted.SearchSortedParallel(ctx, haystack[0], keys[0],
			searchsorted.Options{Reversed: reversed[0]}, searchsorted.WithWorkers(workers))
	} else {
		idx, err = searchsorted.SearchSortedMulti(ctx, haystack, keys, reversed)
	}
	if err != nil {
		return err
	}
	defer idx.Release()

	if cfg.JSON {
		return writeJSON(w, idx)
	}
	return writeText(w, idx)
}

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}

func releaseAll(arrs []arrow.Array) {
	for _, a := range arrs {
		a.Release()
	}
}

// readColumns loads the named columns of a file as flat arrays.
func readColumns(ctx context.Context, mem memory.Allocator, path string, names []string) ([]arrow.Array, error) {
	tbl, err := readTable(ctx, mem, path)
	if err != nil {
		return nil, err
	}
	defer tbl.Release()

	cols := make([]arrow.Array, 0, len(names))
	for _, name := range names {
		indices := tbl.Schema().FieldIndices(name)
		if len(indices) != 1 {
			releaseAll(cols)
			return nil, fmt.Errorf("%s: expected one column named %q, found %d", path, name, len(indices))
		}
		col, err := searchsorted.Flatten(mem, tbl.Column(indices[0]).Data())
		if err != nil {
			releaseAll(cols)
			return nil, err
		}
		cols = append(cols, col)
	}
	return cols, nil
}

func readTable(ctx context.Context, mem memory.Allocator, path string) (arrow.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".parquet", ".pq":
		return pqarrow.ReadTable(ctx, f, parquet.NewReaderProperties(mem), pqarrow.ArrowReadProperties{}, mem)
	case ".csv":
		return readCSV(mem, f)
	case ".arrow", ".arrows", ".ipc", ".feather":
		return readIPC(mem, f)
	default:
		return nil, fmt.Errorf("%s: unrecognized file extension %q", path, ext)
	}
}

func readCSV(mem memory.Allocator, r io.Reader) (arrow.Table, error) {
	rdr := csv.NewInferringReader(r,
		csv.WithAllocator(mem),
		csv.WithHeader(true),
		csv.WithNullReader(true, ""),
		csv.WithChunk(-1))
	defer rdr.Release()

	var recs []arrow.Record
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()
	for rdr.Next() {
		rec := rdr.Record()
		rec.Retain()
		recs = append(recs, rec)
	}
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("could not read csv: %w", err)
	}
	if rdr.Schema() == nil {
		return nil, fmt.Errorf("could not read csv: no header")
	}
	return array.NewTableFromRecords(rdr.Schema(), recs), nil
}

// readIPC reads an Arrow IPC file, or a stream when the file magic is
// missing.
func readIPC(mem memory.Allocator, f *os.File) (arrow.Table, error) {
	hdr := make([]byte, len(ipc.Magic))
	if _, err := io.ReadFull(f, hdr); err != nil {
		return nil, fmt.Errorf("could not read file header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	var (
		schema *arrow.Schema
		recs   []arrow.Record
	)
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	if bytes.Equal(hdr, ipc.Magic) {
		rdr, err := ipc.NewFileReader(f, ipc.WithAllocator(mem))
		if err != nil {
			return nil, err
		}
		defer rdr.Close()

		schema = rdr.Schema()
		for i := 0; i < rdr.NumRecords(); i++ {
			rec, err := rdr.Record(i)
			if err != nil {
				return nil, err
			}
			rec.Retain()
			recs = append(recs, rec)
		}
	} else {
		rdr, err := ipc.NewReader(f, ipc.WithAllocator(mem))
		if err != nil {
			return nil, err
		}
		defer rdr.Release()

		schema = rdr.Schema()
		for rdr.Next() {
			rec := rdr.Record()
			rec.Retain()
			recs = append(recs, rec)
		}
		if err := rdr.Err(); err != nil {
			return nil, err
		}
	}

	return array.NewTableFromRecords(schema, recs), nil
}

func writeText(w io.Writer, idx *array.Uint64) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 20)
	for _, v := range idx.Uint64Values() {
		buf = strconv.AppendUint(buf[:0], v, 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeJSON(w io.Writer, idx *array.Uint64) error {
	values := idx.Uint64Values()
	if values == nil {
		values = []uint64{}
	}
	return json.NewEncoder(w).Encode(struct {
		Indices []uint64 `json:"indices"`
	}{values})
}
