package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"pnghide.adpollak.net/internal/chunk"
	"pnghide.adpollak.net/internal/png"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "hide":
		err = runHide(os.Args[2:])
	case "find":
		err = runFind(os.Args[2:], os.Stdout)
	case "delete":
		err = runDelete(os.Args[2:])
	case "list":
		err = runList(os.Args[2:], os.Stdout)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		logrus.Fatal(err)
	}
}

func usage() {
	fmt.Println("Usage: pnghide <command> [arguments]")
	fmt.Println("Commands:")
	fmt.Println("  hide   -i <input.png> -t <chunk type> -m <message> [-o <output.png>]")
	fmt.Println("  find   -i <input.png> -t <chunk type>")
	fmt.Println("  delete -i <input.png> -t <chunk type>")
	fmt.Println("  list   -i <input.png>")
}

// runHide appends a new chunk carrying the message and writes the result
// to the output path, overwriting the input when no output is given. The
// tag is validated before the image is touched.
func runHide(args []string) error {
	fs := flag.NewFlagSet("hide", flag.ExitOnError)
	input := fs.String("i", "", "path to the source image")
	tag := fs.String("t", "", "chunk type to hide the message under")
	message := fs.String("m", "", "message to hide")
	output := fs.String("o", "", "destination path (default: overwrite the source)")
	fs.Parse(args)

	chunkType, err := chunk.TypeFromString(*tag)
	if err != nil {
		return err
	}

	p, err := loadPng(*input)
	if err != nil {
		return err
	}
	p.AppendChunk(chunk.New(chunkType, []byte(*message)))

	dest := *output
	if dest == "" {
		dest = *input
	}
	return os.WriteFile(dest, p.Encode(), 0o644)
}

// runFind prints the message of every chunk matching the tag,
// newline-joined, through the throttled printer.
func runFind(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("find", flag.ExitOnError)
	input := fs.String("i", "", "path to the source image")
	tag := fs.String("t", "", "chunk type to look for")
	fs.Parse(args)

	if _, err := chunk.TypeFromString(*tag); err != nil {
		return err
	}

	p, err := loadPng(*input)
	if err != nil {
		return err
	}

	var messages []string
	for _, c := range p.Chunks() {
		if c.Type.String() != *tag {
			continue
		}
		msg, err := c.DataAsString()
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	snailPrint(out, strings.Join(messages, "\n"))
	return nil
}

// runDelete removes every chunk matching the tag and rewrites the file in
// place.
func runDelete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	input := fs.String("i", "", "path to the source image")
	tag := fs.String("t", "", "chunk type to remove")
	fs.Parse(args)

	if _, err := chunk.TypeFromString(*tag); err != nil {
		return err
	}

	p, err := loadPng(*input)
	if err != nil {
		return err
	}
	p.RemoveChunks(*tag)

	return os.WriteFile(*input, p.Encode(), 0o644)
}

// runList prints one line per chunk: type, data length, and the
// classification its type bytes encode.
func runList(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	input := fs.String("i", "", "path to the source image")
	fs.Parse(args)

	p, err := loadPng(*input)
	if err != nil {
		return err
	}

	for _, c := range p.Chunks() {
		class := "ancillary"
		if c.Type.IsCritical() {
			class = "critical"
		}
		copySafety := "unsafe-to-copy"
		if c.Type.IsSafeToCopy() {
			copySafety = "safe-to-copy"
		}
		fmt.Fprintf(out, "%s  %8d bytes  %s, %s\n", c.Type, c.Length, class, copySafety)
	}
	return nil
}

func loadPng(path string) (*png.Png, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := png.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
