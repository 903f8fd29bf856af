/*
 * files.go, part of gostream.
 *
 * Copyright 2024 The gostream authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package stream

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Suffixes of compressed stream files. Files with any other name are read and
//written as plain text.
const (
	ZstdSuffix = ".zst"
	GzipSuffix = ".gz"

	streamSuffix = ".stream"
)

//Why couldn't *zstd.Decoder implement io.ReadCloser? :-(
type zstdReadCloser struct {
	*zstd.Decoder
}

func (z zstdReadCloser) Close() error {
	z.Decoder.Close()
	return nil
}

func nopReadCloser(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

//decompressor returns a function that wraps a reader in the decompressor
//corresponding to the name of the file.
func decompressor(name string) func(io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ZstdSuffix:
		return func(a io.Reader) (io.ReadCloser, error) {
			r, err := zstd.NewReader(a)
			if err != nil {
				return nil, err
			}
			return zstdReadCloser{r}, nil
		}
	case GzipSuffix:
		return func(a io.Reader) (io.ReadCloser, error) { return gzip.NewReader(a) }
	default:
		return nopReadCloser
	}
}

//compressor is the writing counterpart of decompressor.
func compressor(name string) func(io.Writer) (io.WriteCloser, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ZstdSuffix:
		return func(a io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(a, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		}
	case GzipSuffix:
		return func(a io.Writer) (io.WriteCloser, error) { return gzip.NewWriterLevel(a, gzip.BestSpeed) }
	default:
		return nil
	}
}

//ReadFile reads a whole stream file, which can be compressed with zstd or gzip
//(see ZstdSuffix and GzipSuffix), and parses it.
func ReadFile(name string, options ...ParseOption) (*Stream, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, newError("unable to open file", name, 0, "ReadFile", true, err)
	}
	defer f.Close()
	r, err := decompressor(name)(f)
	if err != nil {
		return nil, newError("unable to decompress file", name, 0, "ReadFile", true, err)
	}
	defer r.Close()
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, newError("unable to read file", name, 0, "ReadFile", true, err)
	}
	options = append([]ParseOption{WithFilename(name)}, options...)
	s, err := Parse(SplitLines(string(b)), options...)
	if err != nil {
		return nil, errDecorate(err, "ReadFile")
	}
	return s, nil
}

//WriteFile writes data to the file name, compressing it if the name ends in
//ZstdSuffix or GzipSuffix. The file is written in place, so a failure can
//leave a partial file behind.
func WriteFile(name string, data []byte) error {
	f, err := os.Create(name)
	if err != nil {
		return newError("unable to create file", name, 0, "WriteFile", true, err)
	}
	var w io.Writer = f
	var zw io.WriteCloser
	if newW := compressor(name); newW != nil {
		zw, err = newW(f)
		if err != nil {
			f.Close()
			return newError("unable to compress file", name, 0, "WriteFile", true, err)
		}
		w = zw
	}
	if _, err = io.Copy(w, bytes.NewReader(data)); err == nil && zw != nil {
		err = zw.Close()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return newError("unable to write file", name, 0, "WriteFile", true, err)
	}
	return nil
}

//PrefixFromPath returns the name of a stream file without directory, compression
//suffix and ".stream" extension. It is the default prefix for exported files.
func PrefixFromPath(name string) string {
	base := filepath.Base(name)
	for _, suf := range []string{ZstdSuffix, GzipSuffix, streamSuffix} {
		if strings.HasSuffix(strings.ToLower(base), suf) {
			base = base[:len(base)-len(suf)]
		}
	}
	return base
}
