// Package generator turns registered content pages into a static site tree.
// It loads documents from the content root, registers them against the page
// registry, renders each page through its layout, and writes the output
// together with sitemap, robots, and an incremental build manifest. Pages are
// independent; one page failing never aborts the run.
package generator
