package web

import "embed"

// Templates holds the layouts, partials and pages for the rendered shell.
//
//go:embed templates/**/*.html
var Templates embed.FS

// Static holds the assets served under /static.
//
//go:embed static/**/*
var Static embed.FS
