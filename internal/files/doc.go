// Package files discovers trade-history files on disk.
//
// Discovery matches regular files by extension, typically the import
// allow-list, so a directory can be validated as a batch:
//
//	discovery := files.NewDiscovery(cfg.Import.AllowedExtensions)
//	found, err := discovery.FindImportFiles("exports/2024")
//	results := engine.ValidateFiles(ctx, files.Paths(found), 4)
package files
