package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	mdwerror "github.com/msto63/magres/foundation/core/error"
	mdwlog "github.com/msto63/magres/foundation/core/log"
	"github.com/msto63/magres/pkg/core/cache"
	"github.com/msto63/magres/pkg/magres"
)

// Output formats for convert and merge
const (
	formatMagres = "magres"
	formatJSON   = "json"
	formatYAML   = "yaml"
)

// docCache holds parsed documents keyed by content digest. configure
// clears it since cached documents depend on the parser options.
var docCache = cache.New[*magres.Document](cache.DefaultConfig())

// parseFile reads and parses one magres file with the configured parser
func parseFile(path string) (*magres.Document, error) {
	doc, _, err := loadFile(path)
	return doc, err
}

// loadFile is parseFile that also returns the content digest
func loadFile(path string) (*magres.Document, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeIOError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, "", mdwerror.Wrap(err, "failed to open file").
			WithCode(code).
			WithOperation("cmd.loadFile").
			WithDetail("path", path)
	}

	key := cache.Key(data)
	doc, cached, err := docCache.GetOrSet(key, func() (*magres.Document, error) {
		return appParser.Parse(string(data))
	})
	if err != nil {
		return nil, "", mdwerror.Wrap(magres.AsError(err), path).
			WithDetail("path", path)
	}

	appLogger.Debug("parsed file", mdwlog.Fields{"path": path, "cached": cached})
	return doc, key, nil
}

// encode renders doc in the requested output format
func encode(doc *magres.Document, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case formatMagres, "":
		return []byte(doc.Format()), nil
	case formatJSON:
		data, err := doc.ToJSON()
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatYAML:
		return doc.ToYAML()
	default:
		return nil, mdwerror.New(fmt.Sprintf("unknown output format %q", format)).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.encode")
	}
}

// writeOutput writes data to path, or to w when path is empty or "-"
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return mdwerror.Wrap(err, "failed to write output").
			WithCode(mdwerror.CodeIOError).
			WithOperation("cmd.writeOutput").
			WithDetail("path", path)
	}
	return nil
}
