package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBaseDirectoryPath is where iddiff looks for its configuration.
// It defaults to $IDDIFF_BASE if it is set, otherwise it defaults to $HOME/lib/iddiff.
// The command overrides this via the -base flag.
var DefaultBaseDirectoryPath string

const DefaultContextLines = 8

func init() {
	if base := os.Getenv("IDDIFF_BASE"); base != "" {
		DefaultBaseDirectoryPath = base
	} else {
		DefaultBaseDirectoryPath = os.ExpandEnv("$HOME/lib/iddiff")
	}
}

type C struct {
	// Number of unchanged lines shown around changes; 0 shows all lines.
	ContextLines int

	// Collapse runs of blank lines before diffing.
	SkipWhitespace bool

	// Output format, one of side-by-side, wdiff, hwdiff, chbars, abdiff, unified.
	Mode string

	// Directory relative file names are resolved against. Defaults to the
	// working directory.
	Root string

	// These only make sense for documents named by s3:// URLs.
	S3Region  string
	S3Profile string

	// Directory holding the config file.
	base string
}

func defaults() *C {
	return &C{
		ContextLines: DefaultContextLines,
		Mode:         "side-by-side",
	}
}

// Load loads the configuration from the file called "config" in the provided
// base directory. A missing file yields the defaults.
func Load(base string) (*C, error) {
	filename := filepath.Join(base, "config")
	f, err := os.Open(filename)
	if os.IsNotExist(err) {
		c := defaults()
		c.base = base
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	defer func() {
		// Ignore error closing file opened only for reading.
		_ = f.Close()
	}()
	c, err := load(f)
	if err != nil {
		return nil, fmt.Errorf("config.Load %q: %w", filename, err)
	}
	c.base = base
	if c.Root != "" && !filepath.IsAbs(c.Root) {
		c.Root = filepath.Clean(filepath.Join(c.base, c.Root))
	}
	return c, nil
}

func load(f io.Reader) (*C, error) {
	const method = "load"
	c := defaults()
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		i := strings.IndexAny(line, " 	")
		if i == -1 {
			return nil, errorf(method, "no separator in %q", line)
		}
		switch key, val := line[:i], strings.TrimSpace(line[i:]); key {
		case "context-lines":
			n, err := strconv.Atoi(val)
			if err != nil {
				return nil, errorf(method, "%s: %w", key, err)
			}
			if n < 0 {
				return nil, errorf(method, "%s: %d is negative", key, n)
			}
			c.ContextLines = n
		case "mode":
			c.Mode = val
		case "root":
			c.Root = val
		case "s3-profile":
			c.S3Profile = val
		case "s3-region":
			c.S3Region = val
		case "skip-whitespace":
			b, err := strconv.ParseBool(val)
			if err != nil {
				return nil, errorf(method, "%s: %w", key, err)
			}
			c.SkipWhitespace = b
		default:
			return nil, errorf(method, "unknown key %q", key)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errorf(method, "%w", err)
	}
	return c, nil
}

// Base returns the directory the configuration was loaded from.
func (c *C) Base() string {
	return c.base
}
