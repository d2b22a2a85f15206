package main

import (
	"fmt"
	"io"

	"github.com/wippyai/fieldblob/textenc"
)

func runBOM(args []string) error {
	var decode bool
	fs := newFlagSet("bom")
	fs.BoolVar(&decode, "decode", false, "write the text transcoded to UTF-8 instead of the encoding name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: blobtool bom [--decode] <file>")
	}
	data, err := readInput(fs.Arg(0))
	if err != nil {
		return err
	}

	if decode {
		text, _, err := textenc.DecodeText(data)
		if err != nil {
			return err
		}
		_, err = io.WriteString(stdout, text)
		return err
	}
	enc, size := textenc.DetermineTextEncoding(data)
	_, err = fmt.Fprintf(stdout, "%s (%d byte mark)\n", enc, size)
	return err
}
