package main

import (
	"context"
	"io"
	"log"
	"os"
	"strings"

	"github.com/paularlott/cli"
)

var version = "dev"

func main() {
	log.SetFlags(0)
	log.SetPrefix("toon: ")

	root := &cli.Command{
		Name:        "toon",
		Version:     version,
		Usage:       "Convert between JSON, BSON and TOON",
		Description: "Reads from stdin or --input and writes to stdout or --output.",
		Commands: []*cli.Command{
			{
				Name:        "encode",
				Usage:       "Convert JSON or BSON to TOON",
				Description: "Encodes a JSON value, a BSON document or MongoDB Extended JSON as TOON.",
				Flags: append(ioFlags(),
					&cli.StringFlag{
						Name:         "from",
						Usage:        "Input format: json, bson or extjson",
						DefaultValue: "json",
					},
					&cli.StringFlag{
						Name:         "delimiter",
						Usage:        "Array delimiter: comma, tab or pipe",
						DefaultValue: "comma",
						EnvVars:      []string{"TOON_DELIMITER"},
					},
					&cli.IntFlag{
						Name:         "indent",
						Usage:        "Spaces per indentation level",
						DefaultValue: 2,
						EnvVars:      []string{"TOON_INDENT"},
					},
					&cli.StringFlag{
						Name:    "length-marker",
						Usage:   "Character written before array lengths, e.g. #",
						EnvVars: []string{"TOON_LENGTH_MARKER"},
					},
				),
				Run: runEncode,
			},
			{
				Name:        "decode",
				Usage:       "Convert TOON to JSON or BSON",
				Description: "Decodes a TOON document and writes it as JSON or as a BSON document.",
				Flags: append(ioFlags(),
					&cli.StringFlag{
						Name:         "to",
						Usage:        "Output format: json or bson",
						DefaultValue: "json",
					},
					&cli.StringFlag{
						Name:    "delimiter",
						Usage:   "Pin the delimiter instead of detecting it: comma, tab or pipe",
						EnvVars: []string{"TOON_DELIMITER"},
					},
					&cli.BoolFlag{
						Name:    "lenient",
						Usage:   "Accept length mismatches and uneven indentation",
						EnvVars: []string{"TOON_LENIENT"},
					},
					&cli.BoolFlag{
						Name:  "no-coerce",
						Usage: "Keep integers too wide for int64 as strings instead of rounding to floats",
					},
					&cli.BoolFlag{
						Name:  "compact",
						Usage: "Write JSON without indentation",
					},
				),
				Run: runDecode,
			},
		},
	}

	if err := root.Execute(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func ioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "input",
			Usage: "Input file, - for stdin",
		},
		&cli.StringFlag{
			Name:  "output",
			Usage: "Output file, - for stdout",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Report input and output sizes on stderr",
		},
	}
}

func runEncode(ctx context.Context, cmd *cli.Command) error {
	opts, err := encodeOptions(cmd.GetString("delimiter"), cmd.GetInt("indent"), cmd.GetString("length-marker"))
	if err != nil {
		return err
	}

	in, err := readInput(cmd.GetString("input"))
	if err != nil {
		return err
	}
	out, err := encodeInput(in, cmd.GetString("from"), opts)
	if err != nil {
		return err
	}
	if cmd.GetBool("verbose") {
		log.Printf("encoded %d bytes of %s into %d bytes of TOON", len(in), cmd.GetString("from"), len(out))
	}
	return writeOutput(cmd.GetString("output"), []byte(out+"\n"))
}

func runDecode(ctx context.Context, cmd *cli.Command) error {
	opts, err := decodeOptions(cmd.GetString("delimiter"), cmd.GetBool("lenient"), cmd.GetBool("no-coerce"))
	if err != nil {
		return err
	}

	in, err := readInput(cmd.GetString("input"))
	if err != nil {
		return err
	}
	out, err := decodeInput(string(in), cmd.GetString("to"), opts, !cmd.GetBool("compact"))
	if err != nil {
		return err
	}
	if cmd.GetBool("verbose") {
		log.Printf("decoded %d bytes of TOON into %d bytes of %s", len(in), len(out), cmd.GetString("to"))
	}
	return writeOutput(cmd.GetString("output"), out)
}

func readInput(path string) ([]byte, error) {
	if isStdio(path) {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if isStdio(path) {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func isStdio(path string) bool {
	return strings.TrimSpace(path) == "" || path == "-"
}
