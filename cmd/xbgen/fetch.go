package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/transport"
)

// schemaLocationRE finds the URL-valued attributes a schema document
// uses to reference another one: XSD's schemaLocation, RELAX NG's href,
// and WSDL/XSD's location.
var schemaLocationRE = regexp.MustCompile(`(?:schemaLocation|location|href)\s*=\s*"([^"]+)"`)

func newFetchCommand() *cobra.Command {
	var (
		outputDir   string
		manifestOut string
		failFast    bool
	)

	cmd := &cobra.Command{
		Use:   "fetch [url ...]",
		Short: "download a schema and everything it transitively imports or includes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := transport.NewHTTPFetcher()
			manifest := transport.NewManifest()

			fetched, err := manifest.FetchAll(context.Background(), fetcher, args, discoverImports, failFast)
			if err != nil {
				return fmt.Errorf("%w: %w", xerr.ErrIO, err)
			}

			if err := os.MkdirAll(outputDir, 0o777); err != nil {
				return fmt.Errorf("xbgen: creating output directory: %w: %w", xerr.ErrIO, err)
			}

			var manifestLines []string
			for _, u := range fetched {
				body, ok := manifest.Body(u)
				if !ok {
					continue
				}
				name := localName(u)
				path := filepath.Join(outputDir, name)
				if err := os.WriteFile(path, body, 0o666); err != nil {
					return fmt.Errorf("xbgen: writing %s: %w: %w", path, xerr.ErrIO, err)
				}
				manifestLines = append(manifestLines, fmt.Sprintf("%s\t%s", u, name))
			}

			if manifestOut != "" {
				content := strings.Join(manifestLines, "\n") + "\n"
				if err := os.WriteFile(manifestOut, []byte(content), 0o666); err != nil {
					return fmt.Errorf("xbgen: writing manifest: %w: %w", xerr.ErrIO, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory fetched schema documents are written under")
	cmd.Flags().StringVar(&manifestOut, "manifest", "", "path to write a tab-separated url/local-name manifest to")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "abort on the first failed fetch instead of continuing")
	return cmd
}

// discoverImports scans body for schemaLocation/href/location attribute
// values and resolves each one relative to the document it was found
// in, so transport.Manifest.FetchAll can queue it alongside the roots.
func discoverImports(sourceURL string, body []byte) []string {
	base, err := url.Parse(sourceURL)
	if err != nil {
		return nil
	}
	var out []string
	for _, m := range schemaLocationRE.FindAllSubmatch(body, -1) {
		ref, err := url.Parse(string(m[1]))
		if err != nil {
			continue
		}
		out = append(out, base.ResolveReference(ref).String())
	}
	return out
}

// localName derives a filesystem-safe name for a fetched URL's content,
// falling back to its escaped form when the URL carries no usable path
// segment (e.g. a bare host).
func localName(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		if base := filepath.Base(u.Path); base != "" && base != "." && base != "/" {
			return base
		}
	}
	return url.QueryEscape(rawURL)
}
