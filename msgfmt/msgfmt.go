package msgfmt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

const defaultBinName = "msgfmt"

// Runner invokes the GNU gettext msgfmt binary.
type Runner struct {
	BinPath string
	Version string
}

// NewRunner locates msgfmt and probes its version. An explicit binary path
// wins over PATH lookup.
func NewRunner(ctx context.Context, explicitPath string) (*Runner, error) {
	binPath, err := Find(explicitPath)
	if err != nil {
		return nil, err
	}

	version, err := Version(ctx, binPath)
	if err != nil {
		return nil, err
	}

	return &Runner{
		BinPath: binPath,
		Version: version,
	}, nil
}

// Find locates the msgfmt binary.
func Find(explicitPath string) (string, error) {
	name := explicitPath
	if name == "" {
		name = defaultBinName
	}

	binPath, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("msgfmt is not available, GNU gettext tools 0.15 or newer are required: %s", err)
	}

	return binPath, nil
}

// Version reports the first line of `msgfmt --version` output.
func Version(ctx context.Context, binPath string) (string, error) {
	output, err := exec.CommandContext(ctx, binPath, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("failed to probe version of %s: %s", binPath, err)
	}

	line, _, _ := strings.Cut(string(output), "\n")

	return strings.TrimSpace(line), nil
}

// Args builds the argument list for compiling one catalog. Output goes to
// stdout so that the caller can install the result atomically.
func Args(poPath string, useFuzzy bool) []string {
	args := []string{"--check-format"}
	if useFuzzy {
		args = append(args, "--use-fuzzy")
	}

	return append(args, "-o", "-", poPath)
}

// Compile checks and compiles one PO file, returning the binary catalog read
// from msgfmt's stdout.
func (r *Runner) Compile(ctx context.Context, poPath string, useFuzzy bool) ([]byte, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, r.BinPath, Args(poPath, useFuzzy)...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("failed to compile %s: %s", poPath, msg)
	}

	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		log.Warnf("msgfmt reported on %s: %s", poPath, msg)
	}

	return stdout.Bytes(), nil
}
