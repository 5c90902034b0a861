package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognitoiq/xbgen/codegen"
	"github.com/cognitoiq/xbgen/emitter"
	"github.com/cognitoiq/xbgen/internal/commandline"
	"github.com/cognitoiq/xbgen/runtime/xerr"
	"github.com/cognitoiq/xbgen/typemap"
)

func newGenerateCommand() *cobra.Command {
	var (
		outputDir    string
		typeMapPath  string
		namespaceMap commandline.Strings
		outputMode   string
		listOutputs  bool
	)

	cmd := &cobra.Command{
		Use:   "generate [schema ...]",
		Short: "generate Go source from one or more schema documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nsMap, err := parseNamespaceMap(namespaceMap)
			if err != nil {
				return err
			}
			mode, err := parseOutputMode(outputMode)
			if err != nil {
				return err
			}

			tm := typemap.Default()
			if typeMapPath != "" {
				f, err := os.Open(typeMapPath)
				if err != nil {
					return fmt.Errorf("xbgen: opening type map: %w: %w", xerr.ErrIO, err)
				}
				defer f.Close()
				loaded, err := typemap.Load(f)
				if err != nil {
					return err
				}
				tm.Merge(loaded)
			}

			set, err := loadSchemas(args)
			if err != nil {
				return err
			}

			logger, err := codegen.NewLogger(cmd.ErrOrStderr(), "info", "logfmt")
			if err != nil {
				return err
			}

			files, _, err := codegen.Generate(set, tm,
				codegen.NamespaceMap(nsMap),
				codegen.OutputMode_(mode),
				codegen.Logger(logger),
			)
			if err != nil {
				return err
			}

			for _, f := range files {
				path := filepath.Join(outputDir, filepath.FromSlash(f.Name))
				if listOutputs {
					fmt.Fprintln(cmd.OutOrStdout(), path)
					continue
				}
				if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
					return fmt.Errorf("xbgen: creating output directory: %w: %w", xerr.ErrIO, err)
				}
				out, err := emitter.Emit(f)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, out, 0o666); err != nil {
					return fmt.Errorf("xbgen: writing %s: %w: %w", path, xerr.ErrIO, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory generated files are written under")
	cmd.Flags().StringVar(&typeMapPath, "type-map", "", "path to a typemap document overriding the built-in XSD-to-Go mapping")
	cmd.Flags().Var(&namespaceMap, "namespace-map", "namespace URI to Go package path, as uri=path (repeatable)")
	cmd.Flags().StringVar(&outputMode, "output-mode", "split", "file-shaping mode: split, header-only, or file-per-type")
	cmd.Flags().BoolVar(&listOutputs, "list-outputs", false, "print the paths that would be written, without writing them")
	return cmd
}

// parseNamespaceMap turns repeated "uri=path" flag values into the map
// codegen.NamespaceMap expects.
func parseNamespaceMap(entries commandline.Strings) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		k, v, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("xbgen: invalid --namespace-map entry %q, want uri=path: %w", e, xerr.ErrUsage)
		}
		out[k] = v
	}
	return out, nil
}

func parseOutputMode(mode string) (codegen.OutputMode, error) {
	switch strings.ToLower(mode) {
	case "", "split":
		return codegen.ModeSplit, nil
	case "header-only":
		return codegen.ModeHeaderOnly, nil
	case "file-per-type":
		return codegen.ModeFilePerType, nil
	default:
		return 0, fmt.Errorf("xbgen: unknown --output-mode %q: %w", mode, xerr.ErrUsage)
	}
}
