package generator

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	gotheme "github.com/goliatone/go-theme"
)

// AssetConfig points the build at a static asset directory whose files are
// copied into the output alongside rendered pages.
type AssetConfig struct {
	Dir    string
	Output string
}

func (c AssetConfig) enabled() bool {
	return strings.TrimSpace(c.Dir) != ""
}

func (c AssetConfig) outputPrefix() string {
	return strings.Trim(strings.TrimSpace(c.Output), "/")
}

func (s *service) staticAssets() fs.FS {
	if s.deps.Assets != nil {
		return s.deps.Assets
	}
	if s.cfg.Assets.enabled() {
		return os.DirFS(filepath.Clean(strings.TrimSpace(s.cfg.Assets.Dir)))
	}
	return nil
}

func (s *service) themeFiles() fs.FS {
	if s.deps.ThemeFiles != nil {
		return s.deps.ThemeFiles
	}
	if s.cfg.Theme.enabled() {
		return os.DirFS(filepath.Clean(strings.TrimSpace(s.cfg.Theme.Path)))
	}
	return nil
}

// copyAssets mirrors static files and theme assets into the output. Sources
// already recorded in the manifest with a matching checksum are skipped on
// incremental builds.
func (s *service) copyAssets(ctx context.Context, manifest *buildManifest, selection *gotheme.Selection, seen map[string]struct{}) (copied, skipped int, errs []error) {
	if fsys := s.staticAssets(); fsys != nil {
		prefix := s.cfg.Assets.outputPrefix()
		walkErr := fs.WalkDir(fsys, ".", func(entryPath string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if entry.IsDir() {
				return nil
			}
			wasSkipped, copyErr := s.copyAsset(ctx, manifest, fsys, entryPath, path.Join(prefix, entryPath), seen)
			if copyErr != nil {
				errs = append(errs, copyErr)
				return nil
			}
			if wasSkipped {
				skipped++
			} else {
				copied++
			}
			return nil
		})
		if walkErr != nil {
			errs = append(errs, fmt.Errorf("generator: walk assets: %w", walkErr))
		}
	}

	themeFS := s.themeFiles()
	if themeFS == nil || selection == nil {
		return copied, skipped, errs
	}
	for _, asset := range themeAssetPaths(selection) {
		wasSkipped, err := s.copyAsset(ctx, manifest, themeFS, asset, asset, seen)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if wasSkipped {
			skipped++
		} else {
			copied++
		}
	}
	return copied, skipped, errs
}

func (s *service) copyAsset(ctx context.Context, manifest *buildManifest, fsys fs.FS, source, output string, seen map[string]struct{}) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	data, err := fs.ReadFile(fsys, source)
	if err != nil {
		return false, fmt.Errorf("generator: read asset %s: %w", source, err)
	}
	checksum := computeHash(data)
	seen[strings.TrimSpace(source)] = struct{}{}

	if s.cfg.Incremental && manifest.shouldSkipAsset(source, checksum, output) {
		return true, nil
	}

	req := WriteRequest{
		Path:        output,
		Content:     strings.NewReader(string(data)),
		Size:        int64(len(data)),
		Category:    categoryAsset,
		ContentType: detectAssetContentType(output),
		Checksum:    checksum,
		Metadata: map[string]string{
			"source": source,
		},
	}
	if err := s.deps.Writer.WriteFile(ctx, req); err != nil {
		return false, fmt.Errorf("generator: write asset %s: %w", output, err)
	}

	manifest.setAsset(manifestAsset{
		Source:   source,
		Output:   output,
		Checksum: checksum,
		Size:     int64(len(data)),
		CopiedAt: s.now(),
	})
	return false, nil
}

// themeAssetPaths lists the asset files the selected theme declares, with
// variant entries overriding the base set.
func themeAssetPaths(selection *gotheme.Selection) []string {
	if selection == nil || selection.Manifest == nil {
		return nil
	}

	assets := selection.Manifest.Assets.Files
	if variant := strings.TrimSpace(selection.Variant); variant != "" {
		if v, ok := selection.Manifest.Variants[variant]; ok && len(v.Assets.Files) > 0 {
			merged := make(map[string]string, len(assets)+len(v.Assets.Files))
			for key, file := range assets {
				merged[key] = file
			}
			for key, file := range v.Assets.Files {
				merged[key] = file
			}
			assets = merged
		}
	}

	seen := map[string]struct{}{}
	var out []string
	for _, asset := range assets {
		asset = strings.TrimPrefix(strings.TrimSpace(asset), "/")
		if asset == "" {
			continue
		}
		if _, ok := seen[asset]; ok {
			continue
		}
		seen[asset] = struct{}{}
		out = append(out, filepath.ToSlash(asset))
	}
	return out
}

func detectAssetContentType(asset string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(asset), "."))
	switch ext {
	case "css":
		return "text/css"
	case "js":
		return "application/javascript"
	case "json":
		return "application/json"
	case "svg":
		return "image/svg+xml"
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "ico":
		return "image/x-icon"
	case "txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}
