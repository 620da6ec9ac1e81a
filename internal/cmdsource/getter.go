// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package cmdsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/volley/internal/ctxlog"
)

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// isLocal reports whether src is a path on the local filesystem rather than
// something go-getter has to download.
func isLocal(src string) bool {
	wd, err := os.Getwd()
	if err != nil {
		wd = ""
	}

	req := &getter.Request{
		Src: src,
		Pwd: wd,
	}

	ok, err := getter.Detect(req, &getter.FileGetter{})

	return ok && err == nil
}

// fetch retrieves src into a temporary directory and returns the file's
// content.
//
// go-getter cannot fetch a single file out of a repository, so when the URL
// has a subdirectory part the enclosing directory is fetched and the file read
// from it. Any other URL is fetched as a single file.
func fetch(ctx context.Context, src string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "volley-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     src,
		Dst:     filepath.Join(tmpDir, "commands"),
		Pwd:     wd,
		GetMode: getter.ModeFile,
	}

	fileName := ""
	if dir, name := splitFileNameFromGetterURL(src); dir != "" && name != "" {
		req.Src = dir
		req.Dst = filepath.Join(tmpDir, "g")
		req.GetMode = getter.ModeDir
		fileName = name
	}

	ctxlog.Debug(ctx, "fetching command file", "src", req.Src, "file", fileName, "mode", req.GetMode)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return data, nil
}

// splitFileNameFromGetterURL splits a go-getter URL with a subdirectory part
// (`repo//path/file`) into the URL of the enclosing directory and the file
// name. A ref query is carried over to the directory URL. Both results are
// empty when the URL has no subdirectory part or does not name a file.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]
	if before, after, found := strings.Cut(last, goGetterRefSeparator); found {
		last = before
		ref = after
	}

	if last == "" || strings.HasSuffix(last, "/") || filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	parts[len(parts)-1] = filepath.Dir(last)

	if parts[len(parts)-1] == "." {
		parts = parts[:len(parts)-1]
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
