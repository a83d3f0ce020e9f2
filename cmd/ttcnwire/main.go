package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ttcn-runtime/encdec"
	"github.com/wippyai/ttcn-runtime/wire"
)

func main() {
	var (
		encode      = flag.String("encode", "", "Fields to encode (i:-130,d:1.5,s:abc,b:true,o:CAFE,q:Mod.id)")
		decode      = flag.String("decode", "", "Hex message to decode")
		layout      = flag.String("layout", "", "Field tags of the message to decode (i,d,s,b,o,q)")
		frame       = flag.Bool("frame", false, "Prefix encoded messages with their length, expect it when decoding")
		behaviors   = flag.String("behaviors", "", "YAML file with an errorBehavior map")
		settings    = flag.String("set", "", "Inline error behaviors (ALL:WARNING,TAG:IGNORE)")
		table       = flag.Bool("table", false, "Print the error behavior table and exit")
		verbose     = flag.Bool("v", false, "Log warnings to stderr")
		interactive = flag.Bool("i", false, "Interactive template playground")
	)
	flag.Parse()

	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			encdec.SetLogger(l)
			defer func() { _ = l.Sync() }()
		}
	}

	if *interactive {
		if err := runPlayground(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	reg := encdec.DefaultRegistry()
	if err := configureBehaviors(reg, *behaviors, *settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var err error
	switch {
	case *table:
		fmt.Print(renderBehaviors(reg, term.IsTerminal(int(os.Stdout.Fd()))))
	case *encode != "":
		err = runEncode(os.Stdout, *encode, *frame)
	case *decode != "":
		err = runDecode(os.Stdout, reg, *decode, *layout, *frame)
	default:
		fmt.Fprintln(os.Stderr, "Usage: ttcnwire -encode i:1,s:abc [-frame]")
		fmt.Fprintln(os.Stderr, "       ttcnwire -decode <hex> -layout i,s [-frame] [-set ALL:WARNING]")
		fmt.Fprintln(os.Stderr, "       ttcnwire -table [-behaviors file.yaml]")
		fmt.Fprintln(os.Stderr, "       ttcnwire -i  (template playground)")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runEncode(w io.Writer, list string, frame bool) error {
	b := wire.Get()
	defer wire.Put(b)
	if err := encodeFields(b, list, frame); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, hex.EncodeToString(b.Bytes()))
	return err
}

func runDecode(w io.Writer, reg *encdec.Registry, msg, layout string, frame bool) error {
	data, err := hex.DecodeString(strings.TrimSpace(msg))
	if err != nil {
		return fmt.Errorf("decode hex: %w", err)
	}
	if layout == "" {
		return fmt.Errorf("-layout is required with -decode")
	}
	b := wire.FromBytes(data)
	if frame {
		if err := unframe(b); err != nil {
			return err
		}
	}
	lines, err := decodeFields(encdec.NewContext(reg), b, layout)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return err
}
