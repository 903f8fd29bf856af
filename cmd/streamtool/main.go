// Package main provides the entry point for the streamtool CLI.
//
// streamtool summarizes CrystFEL stream files and writes random subsets of
// their indexed images or crystals to new stream files.
//
// Usage:
//
//	streamtool stats -i run12.stream --cells
//	streamtool images -i run12.stream -n 500
//	streamtool crystals -i run12.stream -n 500 -m xgandalf-nolatt-cell
//	streamtool plot -i run12.stream --bins 30
//
// See --help for all available options.
package main

func main() {
	Execute()
}
