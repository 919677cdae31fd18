package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/goliatone/go-pagegen/cmd/internal/bootstrap"
	"github.com/goliatone/go-pagegen/pkg/interfaces"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runPreview(os.Args[1:]); err != nil {
		log.Fatalf("pagegen preview: %v", err)
	}
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("pagegen-preview", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	layoutDir := fs.String("layout-dir", "layouts", "Path to the layout template directory")
	filePath := fs.String("file", "", "Content file to preview, relative to the content root")
	renderHTML := fs.Bool("render-html", true, "Render the markdown body into HTML")
	logLevel := fs.String("log-level", "error", "Log level: trace, debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("--file is required")
	}

	module, err := moduleBuilder(bootstrap.Options{
		ContentDir: *contentDir,
		LayoutDir:  *layoutDir,
		LogLevel:   *logLevel,
	})
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}

	ctx := context.Background()

	doc, err := module.Documents().Load(ctx, *filePath, interfaces.LoadOptions{})
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	preview := map[string]any{
		"file":      doc.FilePath,
		"layout":    doc.Meta.Layout,
		"title":     doc.Meta.Title,
		"permalink": doc.Meta.Permalink,
		"tags":      doc.Meta.Tags,
		"draft":     doc.Meta.Draft,
		"metadata":  doc.Meta.Custom,
	}
	if *renderHTML {
		preview["body_html"] = string(doc.BodyHTML)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(preview); err != nil {
		return fmt.Errorf("encode preview: %w", err)
	}
	return nil
}
