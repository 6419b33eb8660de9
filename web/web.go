// Package web embeds the static assets served under /assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed assets/*
var embedded embed.FS

// Assets is the asset directory, rooted so "script.js" resolves directly.
var Assets fs.FS = mustSub(embedded, "assets")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
