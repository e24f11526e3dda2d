// Package cmd provides the check, fmt, resolve, and view subcommands
// for working with vspec language files.
package cmd
