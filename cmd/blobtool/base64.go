package main

import (
	"fmt"

	"github.com/wippyai/fieldblob/textenc"
)

func runBase64(args []string) error {
	fs := newFlagSet("base64")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 || fs.NArg() > 2 {
		return fmt.Errorf("usage: blobtool base64 encode|decode [<file>]")
	}
	mode := fs.Arg(0)
	if mode != "encode" && mode != "decode" {
		return fmt.Errorf("unknown base64 mode %q", mode)
	}
	data, err := readInput(fs.Arg(1))
	if err != nil {
		return err
	}

	if mode == "encode" {
		_, err = fmt.Fprintln(stdout, textenc.EncodeBase64String(data))
		return err
	}
	out, err := textenc.DecodeBase64String(string(data))
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
