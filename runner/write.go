package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/transform"

	"github.com/jeffrom/ghlog/config"
)

// Write writes doc to the configured output file, or to stdout if it is
// config.StdoutFile, in the configured output encoding.
func (r *Runner) Write(stdout io.Writer, doc string) error {
	return WriteOutput(r.cfg, stdout, doc)
}

func WriteOutput(cfg config.Config, stdout io.Writer, doc string) error {
	enc, err := cfg.Encoding()
	if err != nil {
		return err
	}

	path := cfg.OutputFile
	if path == "" || path == config.StdoutFile {
		return encodeTo(stdout, enc.NewEncoder(), doc)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := encodeTo(f, enc.NewEncoder(), doc); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	cfg.Printf("wrote %s", path)
	return nil
}

func encodeTo(w io.Writer, t transform.Transformer, doc string) error {
	bw := bufio.NewWriter(w)
	tw := transform.NewWriter(bw, t)
	if _, err := io.WriteString(tw, doc); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	return bw.Flush()
}
